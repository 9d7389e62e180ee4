package table

import (
	"fmt"
	"io"
	"strings"
)

// Render writes a plain-text view of the table: a header row with
// name:kind labels, a rule, then one line per row. Output is deterministic
// and used by golden tests and the CLI text formatter.
func Render(w io.Writer, t *Table) error {
	if t.NumColumns() == 0 {
		_, err := fmt.Fprintln(w, "(empty table)")
		return err
	}

	headers := make([]string, t.NumColumns())
	widths := make([]int, t.NumColumns())
	for i, c := range t.cols {
		headers[i] = fmt.Sprintf("%s:%s", c.Name, c.Kind)
		widths[i] = len(headers[i])
		for _, v := range c.Cells {
			if n := len(formatValue(v)); n > widths[i] {
				widths[i] = n
			}
		}
	}

	writeRow := func(cells []string) error {
		parts := make([]string, len(cells))
		for i, s := range cells {
			parts[i] = pad(s, widths[i])
		}
		_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
		return err
	}

	if err := writeRow(headers); err != nil {
		return err
	}
	rules := make([]string, t.NumColumns())
	for i := range rules {
		rules[i] = strings.Repeat("-", widths[i])
	}
	if err := writeRow(rules); err != nil {
		return err
	}
	for r := 0; r < t.NumRows(); r++ {
		cells := make([]string, t.NumColumns())
		for i, c := range t.cols {
			cells[i] = formatValue(c.Cells[r])
		}
		if err := writeRow(cells); err != nil {
			return err
		}
	}
	return nil
}

// RenderString renders the table to a string.
func RenderString(t *Table) string {
	var b strings.Builder
	_ = Render(&b, t)
	return b.String()
}

func pad(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}
