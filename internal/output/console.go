package output

import (
	"bytes"
	"fmt"
	"strings"
)

// ConsoleFormatter renders a report as aligned plain text
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 64))
	fmt.Fprintln(&buf, strings.ToUpper(r.Title))
	fmt.Fprintln(&buf, strings.Repeat("=", 64))

	width := 0
	for _, s := range r.Sections {
		for _, row := range s.Rows {
			width = max(width, len(row.Label))
		}
	}

	for _, s := range r.Sections {
		fmt.Fprintln(&buf)
		if s.Heading != "" {
			fmt.Fprintln(&buf, s.Heading)
			fmt.Fprintln(&buf, strings.Repeat("-", len(s.Heading)))
		}
		for _, row := range s.Rows {
			fmt.Fprintf(&buf, "  %-*s  %s\n", width, row.Label+":", row.Value)
		}
	}

	if r.Table != nil {
		fmt.Fprintln(&buf)
		writeTable(&buf, r.Table)
	}

	if len(r.Notes) > 0 {
		fmt.Fprintln(&buf)
		for _, n := range r.Notes {
			fmt.Fprintf(&buf, "• %s\n", n)
		}
	}

	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, Disclaimer)
	return buf.Bytes(), nil
}

func writeTable(buf *bytes.Buffer, t *Table) {
	widths := make([]int, len(t.Header))
	for i, h := range t.Header {
		widths[i] = len(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], len(cell))
			}
		}
	}

	line := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			if i == 0 {
				parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
			} else {
				parts[i] = fmt.Sprintf("%*s", widths[i], cell)
			}
		}
		fmt.Fprintln(buf, strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	line(t.Header)
	total := 0
	for _, w := range widths {
		total += w
	}
	fmt.Fprintln(buf, strings.Repeat("-", total+2*(len(widths)-1)))
	for _, row := range t.Rows {
		line(row)
	}
}
