package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	Primary    = lipgloss.Color("#EE1515")
	Secondary  = lipgloss.Color("#C792EA")
	Success    = lipgloss.Color("#C3E88D")
	Warning    = lipgloss.Color("#FFCB6B")
	Error      = lipgloss.Color("#F07178")
	Info       = lipgloss.Color("#82AAFF")
	Muted      = lipgloss.Color("#546E7A")
	Background = lipgloss.Color("#263238")
	Foreground = lipgloss.Color("#EEFFFF")

	RoundedBorder = lipgloss.RoundedBorder()
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Italic(true)

	TextStyle = lipgloss.NewStyle().
			Foreground(Foreground)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// Selected row in the catalog list
	SelectedStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Background(lipgloss.Color("#37474F")).
			Bold(true)

	CardStyle = lipgloss.NewStyle().
			Border(RoundedBorder).
			BorderForeground(Secondary).
			Padding(1, 2).
			MarginBottom(1)

	StatusLoading = lipgloss.NewStyle().
			Foreground(Info).
			Bold(true)

	StatusError = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	ProgressBarStyle = lipgloss.NewStyle().
				Foreground(Primary)

	ProgressEmptyStyle = lipgloss.NewStyle().
				Foreground(Muted)

	// Active filter chip
	ActiveFilterStyle = lipgloss.NewStyle().
				Foreground(Primary).
				Background(lipgloss.Color("#37474F")).
				Padding(0, 1).
				Bold(true)

	InactiveFilterStyle = lipgloss.NewStyle().
				Foreground(Muted).
				Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true).
			MarginTop(1)

	InputStyle = lipgloss.NewStyle().
			Border(RoundedBorder).
			BorderForeground(Secondary).
			Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
				Border(RoundedBorder).
				BorderForeground(Primary).
				Padding(0, 1)
)

var typeColors = map[string]lipgloss.Color{
	"normal":   lipgloss.Color("#A8A77A"),
	"fire":     lipgloss.Color("#EE8130"),
	"water":    lipgloss.Color("#6390F0"),
	"electric": lipgloss.Color("#F7D02C"),
	"grass":    lipgloss.Color("#7AC74C"),
	"ice":      lipgloss.Color("#96D9D6"),
	"fighting": lipgloss.Color("#C22E28"),
	"poison":   lipgloss.Color("#A33EA1"),
	"ground":   lipgloss.Color("#E2BF65"),
	"flying":   lipgloss.Color("#A98FF3"),
	"psychic":  lipgloss.Color("#F95587"),
	"bug":      lipgloss.Color("#A6B91A"),
	"rock":     lipgloss.Color("#B6A136"),
	"ghost":    lipgloss.Color("#735797"),
	"dragon":   lipgloss.Color("#6F35FC"),
	"dark":     lipgloss.Color("#705746"),
	"steel":    lipgloss.Color("#B7B7CE"),
	"fairy":    lipgloss.Color("#D685AD"),
}

func TypeColor(name string) lipgloss.Color {
	if c, ok := typeColors[name]; ok {
		return c
	}
	return Muted
}

// TypeBadge renders a type name as a coloured chip.
func TypeBadge(name, label string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(TypeColor(name)).
		Padding(0, 1).
		Render(label)
}

// StatColor grades a base stat value.
func StatColor(value int) lipgloss.Color {
	switch {
	case value >= 100:
		return Success
	case value >= 60:
		return Warning
	default:
		return Error
	}
}
