package pokeapi

import (
	"github.com/go-playground/validator/v10"
)

// validate checks decoded responses before they enter the cache.
var validate = validator.New()

type NamedResource struct {
	Name string `json:"name" validate:"required"`
	URL  string `json:"url"`
}

type APIResource struct {
	URL string `json:"url" validate:"required"`
}

type Pokemon struct {
	ID      int           `json:"id" validate:"gt=0"`
	Name    string        `json:"name" validate:"required"`
	Height  int           `json:"height"`
	Weight  int           `json:"weight"`
	Sprites Sprites       `json:"sprites"`
	Types   []TypeSlot    `json:"types" validate:"min=1,dive"`
	Stats   []Stat        `json:"stats"`
	Species NamedResource `json:"species"`
}

type Sprites struct {
	FrontDefault string `json:"front_default"`
	FrontShiny   string `json:"front_shiny"`
	Other        struct {
		OfficialArtwork struct {
			FrontDefault string `json:"front_default"`
			FrontShiny   string `json:"front_shiny"`
		} `json:"official-artwork"`
	} `json:"other"`
}

type TypeSlot struct {
	Slot int           `json:"slot" validate:"gte=1"`
	Type NamedResource `json:"type"`
}

type Stat struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

type Species struct {
	ID                int           `json:"id" validate:"gt=0"`
	Name              string        `json:"name" validate:"required"`
	Generation        NamedResource `json:"generation"`
	EvolutionChain    *APIResource  `json:"evolution_chain"`
	FlavorTextEntries []FlavorText  `json:"flavor_text_entries"`
}

type FlavorText struct {
	FlavorText string        `json:"flavor_text"`
	Language   NamedResource `json:"language"`
	Version    NamedResource `json:"version"`
}

type EvolutionChain struct {
	ID    int       `json:"id" validate:"gt=0"`
	Chain ChainLink `json:"chain"`
}

// ChainLink is one node of an evolution tree. The root is the earliest form.
type ChainLink struct {
	IsBaby           bool              `json:"is_baby"`
	Species          NamedResource     `json:"species"`
	EvolutionDetails []EvolutionDetail `json:"evolution_details"`
	EvolvesTo        []ChainLink       `json:"evolves_to"`
}

type EvolutionDetail struct {
	MinLevel *int           `json:"min_level"`
	Trigger  NamedResource  `json:"trigger"`
	Item     *NamedResource `json:"item"`
}

// ListResponse is the paged envelope returned by index endpoints.
type ListResponse struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []NamedResource `json:"results" validate:"dive"`
}

type Generation struct {
	ID             int             `json:"id" validate:"gt=0"`
	Name           string          `json:"name" validate:"required"`
	PokemonSpecies []NamedResource `json:"pokemon_species"`
}

type Type struct {
	ID      int          `json:"id" validate:"gt=0"`
	Name    string       `json:"name" validate:"required"`
	Pokemon []TypeMember `json:"pokemon"`
}

type TypeMember struct {
	Slot    int           `json:"slot"`
	Pokemon NamedResource `json:"pokemon"`
}

// CompleteInfo bundles everything the detail view needs. EvolutionChain is
// nil when the species has no chain.
type CompleteInfo struct {
	Pokemon        *Pokemon
	Species        *Species
	EvolutionChain *EvolutionChain
}
