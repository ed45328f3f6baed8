// Package export writes item responses as CSV or XLSX spreadsheets.
package export

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"qtirender/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// fixedColumns precede one column per response identifier.
var fixedColumns = []string{
	"Response ID",
	"Learner ID",
	"Submitted At",
}

// Writer streams responses in one export format.
type Writer interface {
	WriteHeader() error
	WriteResponses(responses []domain.Response) error
	// Close flushes buffered output. The Writer must not be used afterwards.
	Close() error
}

// NewWriter returns a Writer for format. identifiers fixes the answer columns
// and their order.
func NewWriter(format domain.ExportFormat, w io.Writer, identifiers []string) (Writer, error) {
	switch format {
	case domain.ExportFormatCSV:
		return NewCSVWriter(w, identifiers), nil
	case domain.ExportFormatXLSX:
		return NewXLSXWriter(w, identifiers)
	}
	return nil, domain.ErrInvalidExportFormat
}

// Header returns the header row for the given response identifiers.
func Header(identifiers []string) []string {
	row := make([]string, 0, len(fixedColumns)+len(identifiers))
	row = append(row, fixedColumns...)
	return append(row, identifiers...)
}

// responseToRow converts a response into a row matching Header(identifiers).
// Answers to identifiers outside the list are not exported.
func responseToRow(resp *domain.Response, identifiers []string) []string {
	row := make([]string, len(fixedColumns)+len(identifiers))
	row[0] = resp.ID.String()
	row[1] = resp.LearnerID.String()
	row[2] = resp.SubmittedAt.UTC().Format(time.RFC3339)
	for i, id := range identifiers {
		row[len(fixedColumns)+i] = resp.Answers[id]
	}
	return row
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans an item title for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "item"
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_title}_responses_{YYYY-MM-DD}.{format}
func BuildFilename(title string, format domain.ExportFormat, now time.Time) string {
	return fmt.Sprintf("%s_responses_%s.%s", SanitizeFilename(title), now.Format("2006-01-02"), format)
}
