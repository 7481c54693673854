package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/agbru/paramsweep/internal/sweep"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 2)
	cellStyle   = lipgloss.NewStyle().Padding(0, 2)
)

// PrintTable writes records as a double-bordered table. Columns default to
// the field order of the first record; unknown columns and nil values render
// as empty cells.
func PrintTable(out io.Writer, records []sweep.Record, columns ...string) {
	if len(columns) == 0 && len(records) > 0 {
		columns = records[0].Names()
	}
	if len(columns) == 0 {
		return
	}
	fmt.Fprintln(out, FormatTable(records, columns))
}

// FormatTable renders the table PrintTable writes, with the same column
// defaulting.
func FormatTable(records []sweep.Record, columns []string) string {
	if len(columns) == 0 && len(records) > 0 {
		columns = records[0].Names()
	}
	rows := make([][]string, len(records))
	for i, r := range records {
		row := make([]string, len(columns))
		for j, col := range columns {
			if v, ok := r.Get(col); ok {
				row[j] = FormatCell(v)
			}
		}
		rows[i] = row
	}

	t := table.New().
		Border(lipgloss.DoubleBorder()).
		BorderRow(false).
		Headers(columns...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}

// FormatCell renders a value for display.
func FormatCell(v any) string {
	if v == nil {
		return ""
	}
	s, err := FormatField(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}
