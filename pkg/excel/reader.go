package excel

import (
	"bytes"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"

	"github.com/taskdock/importer/pkg/serrors"
)

// ErrSheetNotFound is returned when a workbook lacks the requested
// worksheet. Compare with errors.Is.
var ErrSheetNotFound = serrors.NewError(
	"EXCEL_SHEET_NOT_FOUND",
	"worksheet not found",
	"Excel.SheetNotFound",
)

// Workbook is a read-only workbook opened from an uploaded byte buffer.
type Workbook struct {
	f *excelize.File
}

func OpenBuffer(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}
	return &Workbook{f: f}, nil
}

func (w *Workbook) Close() error {
	return w.f.Close()
}

// Sheet returns a lazy row reader over the named worksheet. The caller
// owns the reader and must Close it.
func (w *Workbook) Sheet(name string) (*SheetReader, error) {
	idx, err := w.f.GetSheetIndex(name)
	if err != nil {
		return nil, err
	}
	if idx == -1 {
		return nil, ErrSheetNotFound.WithMessage("worksheet %q not found", name).
			WithTemplateData(map[string]string{"sheet": name})
	}
	rows, err := w.f.Rows(name)
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %q", name)
	}
	return &SheetReader{rows: rows}, nil
}

// SheetReader iterates worksheet rows without loading the whole sheet.
// Cell values are raw: date cells surface as Excel serial numbers, which
// callers convert with excelize.ExcelDateToTime.
type SheetReader struct {
	rows *excelize.Rows
	row  int
	err  error
}

func (r *SheetReader) Next() bool {
	if r.err != nil {
		return false
	}
	if !r.rows.Next() {
		r.err = r.rows.Error()
		return false
	}
	r.row++
	return true
}

// Index returns the 1-based index of the current row.
func (r *SheetReader) Index() int {
	return r.row
}

func (r *SheetReader) Columns() ([]string, error) {
	return r.rows.Columns(excelize.Options{RawCellValue: true})
}

func (r *SheetReader) Err() error {
	return r.err
}

func (r *SheetReader) Close() error {
	return r.rows.Close()
}
