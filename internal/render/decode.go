package render

import (
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
)

// ReadMarkup reads r as HTML text and converts it to UTF-8. The encoding is
// taken from contentType when it names a charset, and otherwise sniffed from
// a BOM or <meta> declaration.
func ReadMarkup(r io.Reader, contentType string) (string, error) {
	utf8Reader, err := charset.NewReader(r, contentType)
	if err != nil {
		return "", fmt.Errorf("detecting charset: %w", err)
	}
	data, err := io.ReadAll(utf8Reader)
	if err != nil {
		return "", fmt.Errorf("decoding markup: %w", err)
	}
	return string(data), nil
}
