package data

import (
	"fmt"
	"strings"
)

// FormatName turns an API name into a label: "mr-mime" becomes "Mr mime".
func FormatName(name string) string {
	if name == "" {
		return ""
	}
	spaced := strings.ReplaceAll(name, "-", " ")
	return strings.ToUpper(spaced[:1]) + spaced[1:]
}

// PaddedID renders a national dex number, e.g. 25 as "#025".
func PaddedID(id int) string {
	return fmt.Sprintf("#%03d", id)
}

var statLabels = map[string]string{
	"hp":              "HP",
	"attack":          "Attack",
	"defense":         "Defense",
	"special-attack":  "Sp. Atk",
	"special-defense": "Sp. Def",
	"speed":           "Speed",
}

func StatLabel(name string) string {
	if label, ok := statLabels[name]; ok {
		return label
	}
	return FormatName(name)
}

// GenerationLabel renders "generation-iv" as "Generation IV".
func GenerationLabel(name string) string {
	numeral, ok := strings.CutPrefix(name, "generation-")
	if !ok {
		return FormatName(name)
	}
	return "Generation " + strings.ToUpper(numeral)
}

// Height and weight come in decimetres and hectograms.
func FormatHeight(dm int) string {
	return fmt.Sprintf("%.1f m", float64(dm)/10)
}

func FormatWeight(hg int) string {
	return fmt.Sprintf("%.1f kg", float64(hg)/10)
}

// CleanFlavorText collapses the control characters and line breaks the API
// embeds in flavor text.
func CleanFlavorText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
