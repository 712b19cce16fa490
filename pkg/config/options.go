package config

import (
	"errors"
	"strconv"

	"github.com/muesli/termenv"

	"vizex/pkg/common"
	"vizex/pkg/order"
	"vizex/pkg/theme"
)

// Defaults used when neither preferences nor flags set a value.
const (
	DefaultWidth     = 40
	DefaultSort      = order.KeyType
	DefaultDirection = order.Ascending
)

// Options is the validated, immutable configuration of one run.
type Options struct {
	Theme   theme.Theme
	Sort    order.SortSpec
	Width   int
	Every   bool
	Details bool
	Include []string
	Exclude []string
}

// Builder collects settings from each layer and validates them in Build.
type Builder struct {
	prefs      Prefs
	flags      Prefs
	widthSet   bool
	profile    termenv.Profile
	showHidden bool
	every      bool
	details    bool
	include    []string
	exclude    []string
}

// NewBuilder returns a Builder holding the defaults.
func NewBuilder() *Builder {
	return &Builder{profile: termenv.ANSI256}
}

// Prefs layers stored preferences over the defaults.
func (b *Builder) Prefs(p Prefs) *Builder {
	b.prefs = p
	return b
}

// Flags layers command-line values over the preferences. Empty fields are
// ignored; Width is ignored unless WidthFlag was called.
func (b *Builder) Flags(p Prefs) *Builder {
	b.flags = p
	return b
}

// WidthFlag marks the width flag as explicitly given, so that zero or
// negative values are rejected rather than ignored.
func (b *Builder) WidthFlag(w int) *Builder {
	b.flags.Width = w
	b.widthSet = true
	return b
}

func (b *Builder) Profile(p termenv.Profile) *Builder {
	b.profile = p
	return b
}

func (b *Builder) ShowHidden(v bool) *Builder {
	b.showHidden = v
	return b
}

func (b *Builder) Every(v bool) *Builder {
	b.every = v
	return b
}

func (b *Builder) Details(v bool) *Builder {
	b.details = v
	return b
}

func (b *Builder) Include(paths ...string) *Builder {
	b.include = append(b.include, paths...)
	return b
}

func (b *Builder) Exclude(paths ...string) *Builder {
	b.exclude = append(b.exclude, paths...)
	return b
}

// Build resolves every layer and validates the result. All invalid values
// are reported together; each one is a *common.ConfigError.
func (b *Builder) Build() (Options, error) {
	var errs []error

	th, err := theme.New(
		theme.WithSymbol(pick(b.flags.Symbol, b.prefs.Symbol)),
		theme.WithHeaderColor(pick(b.flags.HeaderColor, b.prefs.HeaderColor)),
		theme.WithHeaderStyle(pick(b.flags.HeaderStyle, b.prefs.HeaderStyle)),
		theme.WithTextColor(pick(b.flags.TextColor, b.prefs.TextColor)),
		theme.WithGraphColor(pick(b.flags.GraphColor, b.prefs.GraphColor)),
		theme.WithProfile(b.profile),
	)
	if err != nil {
		errs = append(errs, err)
	}

	key, err := order.ParseKey(pick(b.flags.Sort, b.prefs.Sort, string(DefaultSort)))
	if err != nil {
		errs = append(errs, err)
	}
	dir, err := order.ParseDirection(pick(b.flags.Order, b.prefs.Order, string(DefaultDirection)))
	if err != nil {
		errs = append(errs, err)
	}

	width := DefaultWidth
	if b.prefs.Width != 0 {
		width = b.prefs.Width
	}
	if b.widthSet || b.flags.Width != 0 {
		width = b.flags.Width
	}
	if width <= 0 {
		errs = append(errs, &common.ConfigError{Field: "width", Value: strconv.Itoa(width), Reason: "must be positive"})
	}

	if len(errs) > 0 {
		return Options{}, errors.Join(errs...)
	}
	return Options{
		Theme:   th,
		Sort:    order.SortSpec{Key: key, Direction: dir, ShowHidden: b.showHidden},
		Width:   width,
		Every:   b.every,
		Details: b.details,
		Include: append([]string(nil), b.include...),
		Exclude: append([]string(nil), b.exclude...),
	}, nil
}

// pick returns the first non-empty value.
func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
