// Package excel wraps excelize behind a small exporter/reader surface:
// data sources are rendered into styled multi-sheet workbooks, and
// uploaded workbooks are opened from byte buffers and read row by row.
package excel

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"
)

// DataSource supplies one worksheet of tabular data to the exporter.
type DataSource interface {
	SheetName() string
	// Headers returns the header row, or nil for sheets without one.
	Headers() []string
	Rows() [][]any
	// ColumnWidths returns per-column widths, or nil for defaults.
	ColumnWidths() []float64
}

// SliceDataSource is an in-memory DataSource.
type SliceDataSource struct {
	sheetName string
	headers   []string
	rows      [][]any
	widths    []float64
	titleRow  bool
}

func NewSliceDataSource(sheetName string, headers []string, rows [][]any) *SliceDataSource {
	return &SliceDataSource{
		sheetName: sheetName,
		headers:   headers,
		rows:      rows,
	}
}

func (s *SliceDataSource) WithColumnWidths(widths ...float64) *SliceDataSource {
	s.widths = widths
	return s
}

// WithTitleRow renders the first data row bold, for headerless sheets
// that open with a title line.
func (s *SliceDataSource) WithTitleRow() *SliceDataSource {
	s.titleRow = true
	return s
}

func (s *SliceDataSource) SheetName() string       { return s.sheetName }
func (s *SliceDataSource) Headers() []string       { return s.headers }
func (s *SliceDataSource) Rows() [][]any           { return s.rows }
func (s *SliceDataSource) ColumnWidths() []float64 { return s.widths }

type ExportOptions struct {
	IncludeHeaders bool
}

type StyleOptions struct {
	HeaderBold      bool
	HeaderFillColor string
	DataBorders     bool
}

func DefaultExportOptions() ExportOptions {
	return ExportOptions{IncludeHeaders: true}
}

func DefaultStyleOptions() StyleOptions {
	return StyleOptions{
		HeaderBold:      true,
		HeaderFillColor: "E6F3FF",
		DataBorders:     true,
	}
}

type Exporter struct {
	opts  ExportOptions
	style StyleOptions
}

func NewExporter(opts ExportOptions, style StyleOptions) *Exporter {
	return &Exporter{opts: opts, style: style}
}

// Export renders each data source into its own worksheet and returns the
// workbook bytes. The first source replaces the default sheet so the
// workbook never carries an empty "Sheet1".
func (e *Exporter) Export(ctx context.Context, sources ...DataSource) ([]byte, error) {
	if len(sources) == 0 {
		return nil, errors.New("excel: no data sources")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := src.SheetName()
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return nil, errors.Wrap(err, "rename sheet")
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, errors.Wrap(err, "add sheet")
			}
		}
		if err := e.writeSheet(f, src); err != nil {
			return nil, errors.Wrapf(err, "write sheet %q", name)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "serialize workbook")
	}
	return buf.Bytes(), nil
}

func (e *Exporter) writeSheet(f *excelize.File, src DataSource) error {
	sheet := src.SheetName()
	rowNum := 0

	writeRow := func(values []any) error {
		rowNum++
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
		return nil
	}

	headers := src.Headers()
	if e.opts.IncludeHeaders && len(headers) > 0 {
		values := make([]any, len(headers))
		for i, h := range headers {
			values[i] = h
		}
		if err := writeRow(values); err != nil {
			return err
		}
	}

	width := len(headers)
	for _, row := range src.Rows() {
		if len(row) > width {
			width = len(row)
		}
		if err := writeRow(row); err != nil {
			return err
		}
	}

	for i, w := range src.ColumnWidths() {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return err
		}
	}

	return e.applyStyles(f, src, width, rowNum)
}

func (e *Exporter) applyStyles(f *excelize.File, src DataSource, width, lastRow int) error {
	if width == 0 || lastRow == 0 {
		return nil
	}
	sheet := src.SheetName()
	lastCol, err := excelize.ColumnNumberToName(width)
	if err != nil {
		return err
	}

	var borders []excelize.Border
	if e.style.DataBorders {
		for _, side := range []string{"top", "left", "bottom", "right"} {
			borders = append(borders, excelize.Border{Type: side, Style: 1, Color: "000000"})
		}
		dataStyle, err := f.NewStyle(&excelize.Style{Border: borders})
		if err != nil {
			return err
		}
		lastCell, err := excelize.CoordinatesToCellName(width, lastRow)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", lastCell, dataStyle); err != nil {
			return err
		}
	}

	styleFirstRow := e.opts.IncludeHeaders && len(src.Headers()) > 0
	if s, ok := src.(*SliceDataSource); ok && s.titleRow {
		styleFirstRow = true
	}
	if !styleFirstRow {
		return nil
	}

	headerStyle := &excelize.Style{Border: borders}
	if e.style.HeaderBold {
		headerStyle.Font = &excelize.Font{Bold: true}
	}
	if e.style.HeaderFillColor != "" {
		headerStyle.Fill = excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{e.style.HeaderFillColor},
		}
	}
	styleID, err := f.NewStyle(headerStyle)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", lastCol+"1", styleID)
}
