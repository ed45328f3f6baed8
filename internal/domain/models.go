package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Item is an assessment item body authored as HTML with inline blanks.
type Item struct {
	ID                  uuid.UUID    `db:"id" json:"id"`
	Title               string       `db:"title" json:"title"`
	SourceHTML          string       `db:"source_html" json:"source_html"`
	RenderedHTML        string       `db:"rendered_html" json:"rendered_html"`
	StyleCSS            string       `db:"style_css" json:"style_css"`
	BlankCount          int          `db:"blank_count" json:"blank_count"`
	ResponseIdentifiers StringList   `db:"response_identifiers" json:"response_identifiers"`
	RenderStatus        RenderStatus `db:"render_status" json:"render_status"`
	RenderError         string       `db:"render_error" json:"render_error,omitempty"`
	RenderAttempts      int          `db:"render_attempts" json:"render_attempts"`
	RenderedAt          *time.Time   `db:"rendered_at" json:"rendered_at"`
	SnapshotKey         string       `db:"snapshot_key" json:"-"`
	CreatedBy           uuid.UUID    `db:"created_by" json:"created_by"`
	CreatedAt           time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time    `db:"updated_at" json:"updated_at"`
}

// Response is one learner's set of answers to an item.
type Response struct {
	ID          uuid.UUID `db:"id" json:"id"`
	ItemID      uuid.UUID `db:"item_id" json:"item_id"`
	LearnerID   uuid.UUID `db:"learner_id" json:"learner_id"`
	Answers     Answers   `db:"answers" json:"answers"`
	SubmittedAt time.Time `db:"submitted_at" json:"submitted_at"`
}

// StyleRule is a CSS rule a rendered fragment depends on.
type StyleRule struct {
	ID  string `json:"id"`
	CSS string `json:"css"`
}

// BlankInfo describes how one blank was labeled.
type BlankInfo struct {
	ID                 string   `json:"id"`
	Kind               string   `json:"kind"`
	ResponseIdentifier string   `json:"response_identifier,omitempty"`
	LabelledBy         []string `json:"labelled_by,omitempty"`
	Label              string   `json:"label,omitempty"`
	DescribedBy        string   `json:"described_by,omitempty"`
}

// RenderedFragment is the result of annotating one HTML fragment.
type RenderedFragment struct {
	HTML      string      `json:"html"`
	Styles    []StyleRule `json:"styles"`
	Blanks    []BlankInfo `json:"blanks"`
	Annotated bool        `json:"annotated"`
}

// ResponseIdentifiers returns the distinct non-empty response identifiers of
// the blanks, in document order.
func (f *RenderedFragment) ResponseIdentifiers() []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, b := range f.Blanks {
		if b.ResponseIdentifier == "" || seen[b.ResponseIdentifier] {
			continue
		}
		seen[b.ResponseIdentifier] = true
		out = append(out, b.ResponseIdentifier)
	}
	return out
}

// StringList is a list of strings stored as a JSONB array.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	return scanJSON(src, l)
}

// Contains reports whether s is in the list.
func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}

// Answers maps response identifiers to the learner's answer, stored as JSONB.
type Answers map[string]string

// Value implements driver.Valuer.
func (a Answers) Value() (driver.Value, error) {
	if a == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]string(a))
}

// Scan implements sql.Scanner.
func (a *Answers) Scan(src any) error {
	return scanJSON(src, a)
}

func scanJSON(src, dst any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported JSON column type %T", src)
	}
	return json.Unmarshal(data, dst)
}
