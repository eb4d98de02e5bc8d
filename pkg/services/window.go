package services

import "github.com/kerbaras/pokedex/pkg/data"

const (
	DefaultPageSize  = 20
	DefaultStep      = 20
	DefaultThreshold = 500
)

// Window is the number of filtered entries currently rendered. It grows by
// Step whenever the viewer gets within Threshold of the bottom. The unit of
// Threshold is whatever the caller measures distance in.
type Window struct {
	Visible   int
	PageSize  int
	Step      int
	Threshold int
}

func NewWindow() *Window {
	return &Window{
		Visible:   DefaultPageSize,
		PageSize:  DefaultPageSize,
		Step:      DefaultStep,
		Threshold: DefaultThreshold,
	}
}

// OnScroll grows the window when distanceToBottom is within the threshold
// and there are entries left to show. It reports whether it grew.
func (w *Window) OnScroll(distanceToBottom, total int) bool {
	if distanceToBottom > w.Threshold || w.Visible >= total {
		return false
	}
	w.Visible = min(w.Visible+w.Step, total)
	return true
}

func (w *Window) Reset() {
	w.Visible = w.PageSize
}

func (w *Window) Slice(entries []data.Entry) []data.Entry {
	return entries[:min(w.Visible, len(entries))]
}
