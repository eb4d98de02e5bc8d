package screens

import "github.com/kerbaras/pokedex/pkg/data"

// SwitchScreenMsg asks the root screen to change the active view.
type SwitchScreenMsg struct {
	Screen string
	Data   interface{}
}

type catalogLoadedMsg struct {
	entries []data.Entry
	err     error
}

type optionsLoadedMsg struct {
	types       []data.TypeOption
	generations []data.GenerationOption
	err         error
}

// Details and sprites carry the name they were requested for, so results
// arriving after the user moved on are ignored.
type detailsLoadedMsg struct {
	name    string
	details *data.Details
	err     error
}

type spriteLoadedMsg struct {
	name string
	art  string
	err  error
}
