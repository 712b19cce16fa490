// Package chart draws proportional bar charts.
package chart

import (
	"fmt"
	"math"
	"strings"

	"vizex/pkg/common"
	"vizex/pkg/theme"
)

// Filler is drawn for the unfilled part of a bar. It is never styled.
const Filler = " "

// Bar is the geometry of one rendered bar.
type Bar struct {
	Filled  int
	Total   int
	Percent float64
}

// Compute returns the bar geometry for used out of total over width
// segments. A non-positive total yields an empty bar at 0%.
func Compute(used, total float64, width int) Bar {
	if width < 0 {
		width = 0
	}
	p := common.Percent(used, total)
	filled := int(math.RoundToEven(p / 100 * float64(width)))
	filled = max(0, min(filled, width))
	return Bar{Filled: filled, Total: width, Percent: p}
}

// Render computes the bar for used/total and draws it: filled segments in
// the graph colour, unstyled filler, then the percent label in the text
// colour. Identical inputs give byte-identical output.
func Render(used, total float64, width int, th theme.Theme) (Bar, string) {
	b := Compute(used, total, width)
	var sb strings.Builder
	if b.Filled > 0 {
		sb.WriteString(th.Graph(strings.Repeat(th.Symbol(), b.Filled)))
	}
	sb.WriteString(strings.Repeat(Filler, b.Total-b.Filled))
	sb.WriteString(" ")
	sb.WriteString(th.Text(Label(b.Percent)))
	return b, sb.String()
}

// Label formats a percentage the way bars print it, e.g. "25.0%".
func Label(percent float64) string {
	return fmt.Sprintf("%.1f%%", percent)
}

// Header styles an entry name with the theme's header colour and style.
func Header(name string, th theme.Theme) string {
	return th.Header(name)
}
