package annotate

import (
	"strconv"

	"github.com/google/uuid"
)

// DefaultIDPrefix prefixes every generated id.
const DefaultIDPrefix = "qti-a11y-"

// IDGenerator returns a fresh id that is not used anywhere in the document.
type IDGenerator func() string

// UUIDs returns a generator of prefixed random UUIDs. It holds no shared
// state, so fragments rendered independently never collide.
func UUIDs(prefix string) IDGenerator {
	return func() string {
		return prefix + uuid.NewString()
	}
}

// SequentialIDs returns a deterministic generator: prefix1, prefix2, ...
// Not safe for concurrent use.
func SequentialIDs(prefix string) IDGenerator {
	var n int
	return func() string {
		n++
		return prefix + strconv.Itoa(n)
	}
}
