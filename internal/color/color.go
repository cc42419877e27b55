// Package color decides whether CLI output is styled and holds the styles
// used by the doctor report and the origins table.
package color

import (
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/smykla-skalski/netsettings/pkg/settings"
)

// Enabled reports whether styled output should be produced.
//
// Styling is off when any of:
//   - noColorFlag is true (--no-color)
//   - NO_COLOR is set to any value (https://no-color.org)
//   - CLICOLOR=0
//   - TERM=dumb
//   - out is not a terminal
func Enabled(noColorFlag bool, out *os.File) bool {
	if noColorFlag {
		return false
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	if os.Getenv("CLICOLOR") == "0" || os.Getenv("TERM") == "dumb" {
		return false
	}

	return out != nil && IsTerminal(out)
}

// IsTerminal returns true if f is a character device.
func IsTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}

	return (info.Mode() & os.ModeCharDevice) != 0
}

// Theme holds lipgloss styles for CLI output. The zero Theme renders text
// unchanged.
type Theme struct {
	Pass      lipgloss.Style
	Fail      lipgloss.Style
	Warning   lipgloss.Style
	Skip      lipgloss.Style
	Header    lipgloss.Style
	CheckName lipgloss.Style
	Muted     lipgloss.Style

	layers map[settings.Layer]lipgloss.Style
}

// NewTheme creates a Theme. When color is false all styles are empty.
func NewTheme(color bool) Theme {
	if !color {
		return Theme{}
	}

	return Theme{
		Pass:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Fail:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Skip:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		CheckName: lipgloss.NewStyle().Bold(true),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		layers: map[settings.Layer]lipgloss.Style{
			settings.LayerDefault:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			settings.LayerGlobal:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			settings.LayerFabric:     lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
			settings.LayerDeviceType: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			settings.LayerDevice:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		},
	}
}

// Layer renders a layer label in the layer's style.
func (t Theme) Layer(layer settings.Layer) string {
	style, ok := t.layers[layer]
	if !ok {
		return layer.String()
	}

	return style.Render(layer.String())
}
