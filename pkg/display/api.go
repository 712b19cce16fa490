package display

// Table is a header row plus data rows. Cells may carry ANSI styling;
// column widths are measured on the visible text.
type Table struct {
	Header []string
	Rows   [][]string
}

// Display handles the output of rendered reports.
type Display interface {
	// Print writes a message as-is.
	Print(msg string)
	// PrintLines writes each line followed by a newline.
	PrintLines(lines []string)
	// RenderTable writes a table with aligned columns.
	RenderTable(t *Table)
	// Close flushes any buffered output.
	Close()
}
