// Package theme holds the validated visual configuration shared by every
// renderer: the bar symbol and the header, text and graph styles.
package theme

import (
	"io"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"vizex/pkg/common"
)

// Defaults applied to unset fields.
const (
	DefaultSymbol      = "▒"
	DefaultHeaderColor = "light_red"
	DefaultHeaderStyle = "bold"
	DefaultTextColor   = "white"
	DefaultGraphColor  = "white"
)

// Ambiguous-width runes such as the default symbol count as narrow
// regardless of the locale.
var narrow = &runewidth.Condition{StrictEmojiNeutral: true}

// ValidSymbol reports whether s can fill one bar segment: a single rune
// occupying exactly one terminal column.
func ValidSymbol(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size > 0 && size == len(s) && r != utf8.RuneError && narrow.RuneWidth(r) == 1
}

// Theme is immutable once built by New. The zero value is not usable.
type Theme struct {
	symbol      string
	headerColor string
	headerStyle string
	textColor   string
	graphColor  string
	profile     termenv.Profile

	renderer *lipgloss.Renderer
	header   lipgloss.Style
	text     lipgloss.Style
	graph    lipgloss.Style
}

// Option sets one theme field. Empty values leave the default in place.
type Option func(*settings)

type settings struct {
	symbol      string
	headerColor string
	headerStyle string
	textColor   string
	graphColor  string
	profile     termenv.Profile
}

func WithSymbol(s string) Option      { return func(o *settings) { setIf(&o.symbol, s) } }
func WithHeaderColor(c string) Option { return func(o *settings) { setIf(&o.headerColor, c) } }
func WithHeaderStyle(a string) Option { return func(o *settings) { setIf(&o.headerStyle, a) } }
func WithTextColor(c string) Option   { return func(o *settings) { setIf(&o.textColor, c) } }
func WithGraphColor(c string) Option  { return func(o *settings) { setIf(&o.graphColor, c) } }

// WithProfile pins the colour profile used for rendering. Output for a
// given profile is byte-identical on every terminal; termenv.Ascii drops
// all escape codes.
func WithProfile(p termenv.Profile) Option {
	return func(o *settings) { o.profile = p }
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// New builds a Theme from defaults and opts, validating every field.
// Invalid values are reported as *common.ConfigError.
func New(opts ...Option) (Theme, error) {
	s := settings{
		symbol:      DefaultSymbol,
		headerColor: DefaultHeaderColor,
		headerStyle: DefaultHeaderStyle,
		textColor:   DefaultTextColor,
		graphColor:  DefaultGraphColor,
		profile:     termenv.ANSI256,
	}
	for _, opt := range opts {
		opt(&s)
	}

	if !ValidSymbol(s.symbol) {
		return Theme{}, &common.ConfigError{Field: "mark", Value: s.symbol, Reason: "must be a single character of width 1"}
	}
	for _, c := range []struct{ field, value string }{
		{"header", s.headerColor},
		{"text", s.textColor},
		{"graph", s.graphColor},
	} {
		if !ValidColor(c.value) {
			return Theme{}, &common.ConfigError{Field: c.field + " color", Value: c.value, Reason: "unknown color"}
		}
	}
	if !ValidAttr(s.headerStyle) {
		return Theme{}, &common.ConfigError{Field: "style", Value: s.headerStyle, Reason: "unknown attribute"}
	}

	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(s.profile)

	t := Theme{
		symbol:      s.symbol,
		headerColor: s.headerColor,
		headerStyle: s.headerStyle,
		textColor:   s.textColor,
		graphColor:  s.graphColor,
		profile:     s.profile,
		renderer:    r,
	}
	t.header = withAttr(r.NewStyle().Foreground(palette[s.headerColor]), s.headerStyle)
	t.text = r.NewStyle().Foreground(palette[s.textColor])
	t.graph = r.NewStyle().Foreground(palette[s.graphColor])
	return t, nil
}

// Default returns the default theme rendered with profile.
func Default(profile termenv.Profile) Theme {
	t, err := New(WithProfile(profile))
	if err != nil {
		panic("default theme is invalid: " + err.Error())
	}
	return t
}

func (t Theme) Symbol() string           { return t.symbol }
func (t Theme) HeaderColor() string      { return t.headerColor }
func (t Theme) HeaderStyle() string      { return t.headerStyle }
func (t Theme) TextColor() string        { return t.textColor }
func (t Theme) GraphColor() string       { return t.graphColor }
func (t Theme) Profile() termenv.Profile { return t.profile }

// Header styles a partition or entry name.
func (t Theme) Header(s string) string { return t.header.Render(s) }

// Text styles regular report text.
func (t Theme) Text(s string) string { return t.text.Render(s) }

// Graph styles the filled part of a bar.
func (t Theme) Graph(s string) string { return t.graph.Render(s) }

// Style renders text with a palette colour and attributes using the
// theme's colour profile. Unknown names are rejected.
func (t Theme) Style(text, color string, attrs ...string) (string, error) {
	c, ok := palette[color]
	if !ok {
		return "", &common.ConfigError{Field: "color", Value: color, Reason: "unknown color"}
	}
	st := t.renderer.NewStyle().Foreground(c)
	for _, a := range attrs {
		if !ValidAttr(a) {
			return "", &common.ConfigError{Field: "attribute", Value: a, Reason: "unknown attribute"}
		}
		st = withAttr(st, a)
	}
	return st.Render(text), nil
}
