package report

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TableStyle defines the style for table output.
type TableStyle struct {
	Border      lipgloss.Border
	BorderColor lipgloss.Color
	HeaderStyle lipgloss.Style
	CellStyle   lipgloss.Style
}

// DefaultTableStyle returns the default table style.
func DefaultTableStyle() TableStyle {
	return TableStyle{
		Border:      lipgloss.NormalBorder(),
		BorderColor: lipgloss.Color("240"),
		HeaderStyle: lipgloss.NewStyle().Bold(true).Padding(0, 1),
		CellStyle:   lipgloss.NewStyle().Padding(0, 1),
	}
}

// Table accumulates rows and renders them with lipgloss.
type Table struct {
	headers []string
	rows    [][]string
	style   TableStyle
	// rightAlign holds column indexes rendered right-aligned.
	rightAlign map[int]bool
}

// NewTable creates a table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers, style: DefaultTableStyle(), rightAlign: map[int]bool{}}
}

// AlignRight right-aligns the given column.
func (t *Table) AlignRight(col int) *Table {
	t.rightAlign[col] = true
	return t
}

// Row adds a row. Missing cells render empty.
func (t *Table) Row(cells ...string) *Table {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// String renders the table.
func (t *Table) String() string {
	tbl := table.New().
		Border(t.style.Border).
		BorderStyle(lipgloss.NewStyle().Foreground(t.style.BorderColor)).
		Headers(t.headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := t.style.CellStyle
			if row == table.HeaderRow {
				s = t.style.HeaderStyle
			}
			if t.rightAlign[col] {
				s = s.Align(lipgloss.Right)
			}
			return s
		})
	for _, row := range t.rows {
		tbl.Row(row...)
	}
	return tbl.String()
}
