package theme

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// palette maps the accepted colour names to ANSI 256 colours.
var palette = map[string]lipgloss.Color{
	"light_red": lipgloss.Color("9"),
	"red":       lipgloss.Color("1"),
	"dark_red":  lipgloss.Color("88"),
	"dark_blue": lipgloss.Color("18"),
	"blue":      lipgloss.Color("4"),
	"cyan":      lipgloss.Color("6"),
	"yellow":    lipgloss.Color("3"),
	"green":     lipgloss.Color("2"),
	"pink":      lipgloss.Color("218"),
	"white":     lipgloss.Color("15"),
	"black":     lipgloss.Color("0"),
	"purple":    lipgloss.Color("93"),
	"neon":      lipgloss.Color("118"),
	"grey":      lipgloss.Color("8"),
	"beige":     lipgloss.Color("230"),
	"orange":    lipgloss.Color("208"),
	"magenta":   lipgloss.Color("5"),
	"peach":     lipgloss.Color("216"),
}

var attrs = map[string]func(lipgloss.Style) lipgloss.Style{
	"bold":       func(s lipgloss.Style) lipgloss.Style { return s.Bold(true) },
	"dim":        func(s lipgloss.Style) lipgloss.Style { return s.Faint(true) },
	"underlined": func(s lipgloss.Style) lipgloss.Style { return s.Underline(true) },
	"blink":      func(s lipgloss.Style) lipgloss.Style { return s.Blink(true) },
	"reverse":    func(s lipgloss.Style) lipgloss.Style { return s.Reverse(true) },
}

// ValidColor reports whether name is in the palette.
func ValidColor(name string) bool {
	_, ok := palette[name]
	return ok
}

// ValidAttr reports whether name is a known style attribute.
func ValidAttr(name string) bool {
	_, ok := attrs[name]
	return ok
}

// Colors returns the palette names, sorted.
func Colors() []string { return sortedKeys(palette) }

// Attrs returns the attribute names, sorted.
func Attrs() []string { return sortedKeys(attrs) }

func withAttr(s lipgloss.Style, name string) lipgloss.Style {
	if fn, ok := attrs[name]; ok {
		return fn(s)
	}
	return s
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
