package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sourceplane/chasm/internal/model"
)

// DatasetViewer provides a human-readable table of a dataset
type DatasetViewer struct {
	data model.Dataset
	// MaxRows limits the rows shown; zero shows all
	MaxRows int
}

// NewDatasetViewer creates a new dataset viewer
func NewDatasetViewer(data model.Dataset) *DatasetViewer {
	return &DatasetViewer{data: data}
}

// Table renders the dataset with one column per field of the first record
func (dv *DatasetViewer) Table() string {
	first := dv.data.First()
	if first == nil {
		return "No records"
	}

	columns := first.Keys()
	rows := dv.data
	if dv.MaxRows > 0 && len(rows) > dv.MaxRows {
		rows = rows[:dv.MaxRows]
	}

	cells := make([][]string, len(rows))
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = utf8.RuneCountInString(col)
	}
	for r, rec := range rows {
		cells[r] = make([]string, len(columns))
		for c, col := range columns {
			cell := formatCell(rec, col)
			cells[r][c] = cell
			if n := utf8.RuneCountInString(cell); n > widths[c] {
				widths[c] = n
			}
		}
	}

	var sb strings.Builder
	writeRow(&sb, columns, widths)
	sep := make([]string, len(columns))
	for i, w := range widths {
		sep[i] = strings.Repeat("─", w)
	}
	writeRow(&sb, sep, widths)
	for _, row := range cells {
		writeRow(&sb, row, widths)
	}
	if len(rows) < len(dv.data) {
		fmt.Fprintf(&sb, "… %d more records\n", len(dv.data)-len(rows))
	}
	return sb.String()
}

func formatCell(rec *model.Record, key string) string {
	v, ok := rec.Get(key)
	switch {
	case !ok:
		return "-"
	case v == nil:
		return "null"
	}
	return fmt.Sprintf("%v", v)
}

func writeRow(sb *strings.Builder, cells []string, widths []int) {
	for i, cell := range cells {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(cell)
		if i < len(cells)-1 {
			sb.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)))
		}
	}
	sb.WriteString("\n")
}
