package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"qtirender/internal/domain"
)

// SheetName is the worksheet holding exported responses.
const SheetName = "Responses"

// XLSXWriter streams responses into a single worksheet.
type XLSXWriter struct {
	out         io.Writer
	file        *excelize.File
	stream      *excelize.StreamWriter
	identifiers []string
	row         int
}

// NewXLSXWriter creates an XLSXWriter. The workbook is written to w on Close.
func NewXLSXWriter(w io.Writer, identifiers []string) (*XLSXWriter, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("open stream writer: %w", err)
	}
	return &XLSXWriter{out: w, file: f, stream: sw, identifiers: identifiers}, nil
}

// WriteHeader writes the header row.
func (w *XLSXWriter) WriteHeader() error {
	return w.writeRow(Header(w.identifiers))
}

// WriteResponses appends one row per response.
func (w *XLSXWriter) WriteResponses(responses []domain.Response) error {
	for i := range responses {
		if err := w.writeRow(responseToRow(&responses[i], w.identifiers)); err != nil {
			return err
		}
	}
	return nil
}

func (w *XLSXWriter) writeRow(values []string) error {
	w.row++
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return w.stream.SetRow(cell, row)
}

// Close finishes the sheet and writes the workbook.
func (w *XLSXWriter) Close() error {
	defer func() { _ = w.file.Close() }()
	if err := w.stream.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}
	if err := w.file.Write(w.out); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
