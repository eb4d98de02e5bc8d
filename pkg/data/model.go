package data

type TypeSlot struct {
	Slot int
	Name string
}

type Stat struct {
	Name   string
	Base   int
	Effort int
}

// Pokemon is a catalog item as the rest of the program sees it. Values are
// built once from an API response and never mutated.
type Pokemon struct {
	ID      int
	Name    string
	Height  int // decimetres
	Weight  int // hectograms
	Types   []TypeSlot
	Stats   []Stat
	Sprite  string
	Artwork string
	Species string
}

func (p *Pokemon) HasType(name string) bool {
	for _, t := range p.Types {
		if t.Name == name {
			return true
		}
	}
	return false
}

func (p *Pokemon) TypeNames() []string {
	names := make([]string, len(p.Types))
	for i, t := range p.Types {
		names[i] = t.Name
	}
	return names
}

// ImageURL prefers the official artwork and falls back to the default sprite.
func (p *Pokemon) ImageURL() string {
	if p.Artwork != "" {
		return p.Artwork
	}
	return p.Sprite
}

// Entry is a Pokemon plus the fields the catalog filters on.
type Entry struct {
	Pokemon
	Generation     string
	EvolutionGroup []string
}

// Evolution is one flattened stage of a chain. Depth 0 is the root.
type Evolution struct {
	Pokemon Pokemon
	Depth   int
	Trigger string
	Level   int
}

type Details struct {
	Pokemon     Pokemon
	Generation  string
	Description string
	ImageURL    string
	Evolutions  []Evolution
}

type TypeOption struct {
	Name  string
	Count int
}

type GenerationOption struct {
	ID    int
	Name  string
	Count int
}
