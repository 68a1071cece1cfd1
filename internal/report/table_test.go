package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_Render(t *testing.T) {
	tbl := NewTable("FILE", "OCCURRENCES").AlignRight(1)
	tbl.Row("README.md", "2")
	tbl.Row("custom_components/glow/manifest.json", "12")

	out := tbl.String()
	assert.Equal(t, 2, tbl.Len())
	assert.Contains(t, out, "FILE")
	assert.Contains(t, out, "OCCURRENCES")
	assert.Contains(t, out, "custom_components/glow/manifest.json")

	// Right-aligned counts end at the same column.
	var two, twelve string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "README.md") {
			two = line
		}
		if strings.Contains(line, "manifest.json") {
			twelve = line
		}
	}
	assert.Equal(t, strings.Index(two, "2 "), strings.Index(twelve, "12 ")+1)
}

func TestTable_MissingCells(t *testing.T) {
	tbl := NewTable("A", "B", "C")
	tbl.Row("only")
	assert.Contains(t, tbl.String(), "only")
}
