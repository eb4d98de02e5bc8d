package pokeapi

import "testing"

func TestGenerationFromID(t *testing.T) {
	tests := []struct {
		id   int
		want string
	}{
		{1, "generation-i"},
		{151, "generation-i"},
		{152, "generation-ii"},
		{251, "generation-ii"},
		{386, "generation-iii"},
		{493, "generation-iv"},
		{494, "generation-v"},
		{721, "generation-vi"},
		{809, "generation-vii"},
		{905, "generation-viii"},
		{906, "generation-ix"},
		{1025, "generation-ix"},
		{1026, "generation-x"},
		{10001, "generation-x"},
	}

	for _, tt := range tests {
		if got := GenerationFromID(tt.id); got != tt.want {
			t.Errorf("GenerationFromID(%d) = %s, want %s", tt.id, got, tt.want)
		}
	}
}

func TestGenerationFromIDIsMonotonic(t *testing.T) {
	order := map[string]int{FallbackGeneration: len(generationBuckets)}
	for i, bucket := range generationBuckets {
		order[bucket.name] = i
	}

	prev := order[GenerationFromID(1)]
	for id := 2; id <= 1100; id++ {
		cur := order[GenerationFromID(id)]
		if cur < prev {
			t.Fatalf("generation label went backwards at id %d", id)
		}
		prev = cur
	}
}
