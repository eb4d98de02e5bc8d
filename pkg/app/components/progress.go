package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/pokedex/pkg/app/styles"
	"github.com/kerbaras/pokedex/pkg/services"
)

// ProgressTracker shows how far the catalog load has come.
type ProgressTracker struct {
	last  services.Progress
	bar   progress.Model
	width int
}

func NewProgressTracker(width int) *ProgressTracker {
	bar := progress.New(progress.WithSolidFill(string(styles.Primary)))
	bar.Width = max(width, 10)
	return &ProgressTracker{bar: bar, width: width}
}

func (p *ProgressTracker) Update(update services.Progress) {
	p.last = update
}

func (p *ProgressTracker) SetWidth(width int) {
	p.width = width
	p.bar.Width = max(width, 10)
}

func (p *ProgressTracker) Clear() {
	p.last = services.Progress{}
}

func (p *ProgressTracker) Done() bool {
	return p.last.Total > 0 && p.last.Completed >= p.last.Total
}

func (p *ProgressTracker) View() string {
	var b strings.Builder
	b.WriteString(styles.StatusLoading.Render("Loading Pokédex..."))
	b.WriteString("\n\n")

	if p.last.Total == 0 {
		b.WriteString(styles.MutedStyle.Render("Fetching the catalog index"))
		return b.String()
	}

	b.WriteString(p.bar.ViewAs(p.last.Ratio()))
	b.WriteString("\n")
	b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("batch %d/%d • %d Pokémon loaded",
		p.last.Completed, p.last.Total, p.last.Loaded)))
	return b.String()
}

func renderProgressBar(current, total, width int) string {
	if total == 0 || width <= 0 {
		return ""
	}

	filled := int(float64(current) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return styles.ProgressBarStyle.Render(bar)
}

// SimpleProgress renders a simple progress bar
func SimpleProgress(current, total, width int) string {
	return renderProgressBar(current, total, width)
}

// StatBar renders a base stat as a labelled bar scaled to max.
func StatBar(label string, value, maxValue, width int) string {
	filled := 0
	if maxValue > 0 {
		filled = min(value*width/maxValue, width)
	}
	bar := lipgloss.NewStyle().Foreground(styles.StatColor(value)).Render(strings.Repeat("█", filled)) +
		styles.ProgressEmptyStyle.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%-8s %3d %s", label, value, bar)
}
