// Package importing implements the import core: positional row parsing,
// the ordered validation/normalization pipeline and the partial-failure
// tolerant batch committer.
package importing

import (
	"strings"

	"github.com/taskdock/importer/modules/tasks/domain/importentry"
	"github.com/taskdock/importer/pkg/excel"
)

// RawRow is one data row of the uploaded sheet: its 1-based source index
// and the raw cell values padded to the kind's column count.
type RawRow struct {
	Index int
	Cells []string
}

// Cell returns the trimmed value at the given column position.
func (r RawRow) Cell(col int) string {
	return strings.TrimSpace(r.Cells[col])
}

func (r RawRow) blank() bool {
	for _, c := range r.Cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// RowReader lazily yields RawRows from the kind's data sheet, skipping
// the header row and fully blank rows. Extraction is purely positional;
// header text is never interpreted.
type RowReader struct {
	wb    *excel.Workbook
	sheet *excel.SheetReader
	width int
	cur   RawRow
	err   error
}

// NewRowReader opens the workbook bytes and locates the kind's data
// sheet by name. A missing sheet surfaces excel.ErrSheetNotFound and
// aborts the import before any row is read.
func NewRowReader(data []byte, kind importentry.Kind) (*RowReader, error) {
	wb, err := excel.OpenBuffer(data)
	if err != nil {
		return nil, err
	}
	sheet, err := wb.Sheet(kind.SheetName())
	if err != nil {
		_ = wb.Close()
		return nil, err
	}
	return &RowReader{
		wb:    wb,
		sheet: sheet,
		width: kind.ColumnCount(),
	}, nil
}

func (r *RowReader) Next() bool {
	if r.err != nil {
		return false
	}
	for r.sheet.Next() {
		if r.sheet.Index() == 1 {
			continue // header
		}
		cells, err := r.sheet.Columns()
		if err != nil {
			r.err = err
			return false
		}
		for len(cells) < r.width {
			cells = append(cells, "")
		}
		row := RawRow{Index: r.sheet.Index(), Cells: cells[:r.width]}
		if row.blank() {
			continue
		}
		r.cur = row
		return true
	}
	r.err = r.sheet.Err()
	return false
}

func (r *RowReader) Row() RawRow {
	return r.cur
}

func (r *RowReader) Err() error {
	return r.err
}

func (r *RowReader) Close() error {
	serr := r.sheet.Close()
	if werr := r.wb.Close(); werr != nil {
		return werr
	}
	return serr
}
