package export

import (
	"encoding/csv"
	"io"

	"qtirender/internal/domain"
)

// CSVWriter wraps csv.Writer for exporting responses as CSV.
type CSVWriter struct {
	out         io.Writer
	csv         *csv.Writer
	identifiers []string
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer, identifiers []string) *CSVWriter {
	return &CSVWriter{out: w, csv: csv.NewWriter(w), identifiers: identifiers}
}

// WriteHeader writes the BOM followed by the header row.
func (w *CSVWriter) WriteHeader() error {
	if _, err := w.out.Write(BOM); err != nil {
		return err
	}
	return w.csv.Write(Header(w.identifiers))
}

// WriteResponses converts a batch of responses to CSV rows and writes them.
func (w *CSVWriter) WriteResponses(responses []domain.Response) error {
	for i := range responses {
		if err := w.csv.Write(responseToRow(&responses[i], w.identifiers)); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Close() error {
	w.csv.Flush()
	return w.csv.Error()
}
