package annotate

import (
	"regexp"

	"golang.org/x/net/html"
)

// sentenceBoundary matches terminal punctuation followed by whitespace.
var sentenceBoundary = regexp.MustCompile(`[.!?][\s\p{Zs}]+`)

// processor walks containers and keeps every span it creates so that unused
// ones can be dissolved later without searching the tree.
type processor struct {
	gen   IDGenerator
	spans map[string]*html.Node
}

func newProcessor(gen IDGenerator) *processor {
	return &processor{gen: gen, spans: make(map[string]*html.Node)}
}

// run is the state of a single container walk.
type run struct {
	group   []*html.Node
	spanIDs []string
}

// processContainer segments the children of container. A nil tracker marks the
// top-level call: a tracker is created and finalized here and the interaction
// records are returned. Recursive calls share the caller's tracker and only
// report the span ids they produced.
func (p *processor) processContainer(container *html.Node, t *tracker) ([]Interaction, []string) {
	topLevel := t == nil
	if topLevel {
		t = newTracker()
	}

	r := &run{}
	for _, child := range children(container) {
		switch Classify(child) {
		case KindText:
			p.splitText(child, r, t)
		case KindBlank:
			p.flush(r, t)
			if !IsAlreadyLabeled(child) {
				t.trackInteraction(child)
			}
		case KindLineBreak:
			p.flush(r, t)
			t.startNewRegion()
		case KindInline:
			if containsUnlabeledBlank(child) || sentenceBoundary.MatchString(textContent(child)) {
				p.flush(r, t)
				_, nested := p.processContainer(child, t)
				r.spanIDs = append(r.spanIDs, nested...)
				continue
			}
			r.group = append(r.group, child)
		case KindBlock:
			p.flush(r, t)
		case KindAtomic:
			r.group = append(r.group, child)
		default:
			// Unrecognised elements travel with the run unless a blank
			// hides inside; those are walked like inline formatting.
			if child.Type == html.ElementNode && containsUnlabeledBlank(child) {
				p.flush(r, t)
				_, nested := p.processContainer(child, t)
				r.spanIDs = append(r.spanIDs, nested...)
				continue
			}
			r.group = append(r.group, child)
		}
	}
	p.flush(r, t)

	if !topLevel {
		return nil, r.spanIDs
	}
	return t.finalize(), r.spanIDs
}

// flush materializes the pending group. The span is tracked before any
// caller closes the region.
func (p *processor) flush(r *run, t *tracker) {
	span := flushGroup(r.group, p.gen)
	r.group = nil
	if span == nil {
		return
	}
	id := getAttrValue("id", span.Attr)
	p.spans[id] = span
	r.spanIDs = append(r.spanIDs, id)
	t.trackSpan(id)
}

// splitText cuts a text node at every sentence boundary. Each left part,
// punctuation and trailing whitespace included, closes the current group and
// region; the remainder stays in the tree as the start of the next group.
func (p *processor) splitText(text *html.Node, r *run, t *tracker) {
	for {
		loc := sentenceBoundary.FindStringIndex(text.Data)
		if loc == nil {
			break
		}
		left := &html.Node{Type: html.TextNode, Data: text.Data[:loc[1]]}
		text.Parent.InsertBefore(left, text)
		text.Data = text.Data[loc[1]:]

		r.group = append(r.group, left)
		p.flush(r, t)
		t.startNewRegion()
	}
	if text.Data == "" {
		text.Parent.RemoveChild(text)
		return
	}
	r.group = append(r.group, text)
}
