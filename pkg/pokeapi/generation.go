package pokeapi

// generationBuckets maps the highest national dex id of each generation to
// its label. Ids past the last bucket fall into FallbackGeneration.
var generationBuckets = []struct {
	max  int
	name string
}{
	{151, "generation-i"},
	{251, "generation-ii"},
	{386, "generation-iii"},
	{493, "generation-iv"},
	{649, "generation-v"},
	{721, "generation-vi"},
	{809, "generation-vii"},
	{905, "generation-viii"},
	{1025, "generation-ix"},
}

// FallbackGeneration is an open-ended sentinel, not a real generation.
const FallbackGeneration = "generation-x"

func GenerationFromID(id int) string {
	for _, bucket := range generationBuckets {
		if id <= bucket.max {
			return bucket.name
		}
	}
	return FallbackGeneration
}
