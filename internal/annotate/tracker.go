package annotate

import "golang.org/x/net/html"

// Interaction records one blank and the span ids on either side of it.
type Interaction struct {
	Blank     *html.Node
	BeforeIDs []string
	AfterIDs  []string
}

// tracker groups span ids into segments and hands them out as before/after
// context. A record's AfterIDs are only known once the next blank (or the end
// of the container) is reached.
type tracker struct {
	current      []string
	pending      [][]string
	interactions []Interaction
}

func newTracker() *tracker {
	return &tracker{}
}

func (t *tracker) trackSpan(id string) {
	t.current = append(t.current, id)
}

func (t *tracker) startNewRegion() {
	if len(t.current) == 0 {
		return
	}
	t.pending = append(t.pending, t.current)
	t.current = nil
}

func (t *tracker) trackInteraction(blank *html.Node) {
	t.startNewRegion()
	after, before := assignSegments(t.pending)
	t.pending = nil

	if n := len(t.interactions); n > 0 {
		t.interactions[n-1].AfterIDs = after
	}
	t.interactions = append(t.interactions, Interaction{
		Blank:     blank,
		BeforeIDs: before,
	})
}

// finalize closes the last region and returns the records. Segments past the
// first boundary after the last blank are dropped.
func (t *tracker) finalize() []Interaction {
	t.startNewRegion()
	if n := len(t.interactions); n > 0 && len(t.pending) > 0 {
		t.interactions[n-1].AfterIDs = t.pending[0]
	}
	t.pending = nil
	return t.interactions
}

// assignSegments splits the segments found between two blanks into the
// previous blank's trailing context and the next blank's leading context.
// A single segment is shared. With two or more, the first goes after the
// previous blank, the last goes before the next one and anything in between
// is left unreferenced.
func assignSegments(segments [][]string) (after, before []string) {
	switch len(segments) {
	case 0:
		return nil, nil
	case 1:
		return segments[0], segments[0]
	default:
		return segments[0], segments[len(segments)-1]
	}
}
