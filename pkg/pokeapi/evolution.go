package pokeapi

import "errors"

// MaxEvolutionDepth bounds recursion over upstream chains. Real chains are
// at most three stages deep.
const MaxEvolutionDepth = 32

var ErrChainTooDeep = errors.New("evolution chain exceeds maximum depth")

// EvolutionNames flattens a chain into species names, pre-order: a node
// comes before its descendants and siblings keep their listed order.
func EvolutionNames(root ChainLink) ([]string, error) {
	var names []string
	if err := collectNames(&root, 0, &names); err != nil {
		return nil, err
	}
	return names, nil
}

func collectNames(link *ChainLink, depth int, names *[]string) error {
	if depth >= MaxEvolutionDepth {
		return ErrChainTooDeep
	}
	*names = append(*names, link.Species.Name)
	for i := range link.EvolvesTo {
		if err := collectNames(&link.EvolvesTo[i], depth+1, names); err != nil {
			return err
		}
	}
	return nil
}

// Stage is a flattened chain node with its depth, used to indent the chain
// in the detail view.
type Stage struct {
	Name    string
	Depth   int
	IsBaby  bool
	Trigger string
	Level   int
}

// EvolutionStages flattens like EvolutionNames but keeps per-node data.
func EvolutionStages(root ChainLink) ([]Stage, error) {
	var stages []Stage
	var walk func(link *ChainLink, depth int) error
	walk = func(link *ChainLink, depth int) error {
		if depth >= MaxEvolutionDepth {
			return ErrChainTooDeep
		}
		stage := Stage{Name: link.Species.Name, Depth: depth, IsBaby: link.IsBaby}
		if len(link.EvolutionDetails) > 0 {
			detail := link.EvolutionDetails[0]
			stage.Trigger = detail.Trigger.Name
			if detail.MinLevel != nil {
				stage.Level = *detail.MinLevel
			}
		}
		stages = append(stages, stage)
		for i := range link.EvolvesTo {
			if err := walk(&link.EvolvesTo[i], depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(&root, 0); err != nil {
		return nil, err
	}
	return stages, nil
}
