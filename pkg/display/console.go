// Package display implementation for terminal-based output.
package display

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// consoleDisplay handles terminal output.
type consoleDisplay struct {
	out *bufio.Writer
}

// NewWriterDisplay creates a Display that writes to the provided io.Writer.
func NewWriterDisplay(w io.Writer) Display {
	return &consoleDisplay{
		out: bufio.NewWriter(w),
	}
}

// Print writes a message directly to the output writer.
func (d *consoleDisplay) Print(msg string) {
	fmt.Fprint(d.out, msg)
}

func (d *consoleDisplay) PrintLines(lines []string) {
	for _, l := range lines {
		fmt.Fprintln(d.out, l)
	}
}

func (d *consoleDisplay) RenderTable(t *Table) {
	d.PrintLines(FormatTable(t))
}

func (d *consoleDisplay) Close() {
	d.out.Flush()
}

// FormatTable lays out a table as lines: header, separator, rows. Columns
// are padded to the widest visible cell.
func FormatTable(t *Table) []string {
	if t == nil || len(t.Header) == 0 {
		return nil
	}

	widths := make([]int, len(t.Header))
	for i, h := range t.Header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	lines := make([]string, 0, len(t.Rows)+2)
	lines = append(lines, formatRow(t.Header, widths))

	totalWidth := 0
	for _, w := range widths {
		totalWidth += w + 2
	}
	lines = append(lines, strings.Repeat("-", totalWidth-2))

	for _, row := range t.Rows {
		lines = append(lines, formatRow(row, widths))
	}
	return lines
}

func formatRow(cells []string, widths []int) string {
	var sb strings.Builder
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		sb.WriteString(cell)
		if i < len(widths)-1 {
			sb.WriteString(strings.Repeat(" ", w-lipgloss.Width(cell)+2))
		}
	}
	return sb.String()
}
