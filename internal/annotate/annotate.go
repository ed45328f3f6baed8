// Package annotate gives inline interaction controls ("blanks") an accessible
// name built from the prose around them.
//
// The surrounding text of a block is cut into spans at sentence and line
// boundaries. Each blank is pointed, through aria-labelledby, at the spans
// directly before and after it within the same sentence, so a screen reader
// announces "The year was, blank, ." rather than an unlabeled edit box.
// Spans that end up unreferenced are dissolved again, leaving the tree as it
// was for those regions.
package annotate

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// VisuallyHiddenClass is set on generated description spans. The matching
// CSS rule must be registered by the caller when Annotate reports true.
const VisuallyHiddenClass = "qti-visually-hidden"

type options struct {
	gen IDGenerator
}

// Option configures Annotate.
type Option func(*options)

// WithIDGenerator sets the id generator used for spans and for blanks that
// have no id yet.
func WithIDGenerator(gen IDGenerator) Option {
	return func(o *options) {
		if gen != nil {
			o.gen = gen
		}
	}
}

// Annotate labels every not yet labeled blank under fragment, mutating the
// tree in place. It reports whether any blank received an aria-labelledby
// reference, i.e. whether generated spans now depend on the visually hidden
// style. Running it again on the same fragment is a no-op that returns false.
func Annotate(fragment *html.Node, opts ...Option) bool {
	o := options{gen: UUIDs(DefaultIDPrefix)}
	for _, opt := range opts {
		opt(&o)
	}

	var unlabeled []*html.Node
	for _, b := range Blanks(fragment) {
		if !IsAlreadyLabeled(b) {
			unlabeled = append(unlabeled, b)
		}
	}
	if len(unlabeled) == 0 {
		return false
	}

	p := newProcessor(o.gen)
	annotated := false
	for _, container := range containersOf(fragment, unlabeled) {
		if p.annotateContainer(container) {
			annotated = true
		}
	}
	return annotated
}

// containersOf returns the nearest block ancestor of each blank, falling back
// to fragment, without duplicates and in first-seen order.
func containersOf(fragment *html.Node, blanks []*html.Node) []*html.Node {
	seen := make(map[*html.Node]bool)
	var out []*html.Node
	for _, b := range blanks {
		container := fragment
		for n := b.Parent; n != nil && n != fragment; n = n.Parent {
			if IsBlock(n) {
				container = n
				break
			}
		}
		if !seen[container] {
			seen[container] = true
			out = append(out, container)
		}
	}
	return out
}

func (p *processor) annotateContainer(container *html.Node) bool {
	interactions, spanIDs := p.processContainer(container, nil)
	n := len(interactions)
	if n == 0 {
		p.dissolve(spanIDs, nil)
		return false
	}

	annotated := false
	referenced := make(map[string]bool)
	var described []int

	for i, in := range interactions {
		id := getAttrValue("id", in.Blank.Attr)
		if id == "" {
			id = p.gen()
			setAttr(in.Blank, "id", id)
		}

		if len(in.BeforeIDs) == 0 && len(in.AfterIDs) == 0 {
			setAttr(in.Blank, AttrLabel, positionLabel(i, n))
			continue
		}

		refs := make([]string, 0, len(in.BeforeIDs)+1+len(in.AfterIDs))
		refs = append(refs, in.BeforeIDs...)
		refs = append(refs, id)
		refs = append(refs, in.AfterIDs...)
		setAttr(in.Blank, AttrLabelledBy, strings.Join(refs, " "))
		annotated = true
		for _, ref := range in.BeforeIDs {
			referenced[ref] = true
		}
		for _, ref := range in.AfterIDs {
			referenced[ref] = true
		}
		described = append(described, i)
	}

	p.dissolve(spanIDs, referenced)

	if n > 1 {
		for _, i := range described {
			p.appendDescription(container, interactions[i].Blank, positionLabel(i, n))
		}
	}
	return annotated
}

// dissolve unwraps every span in ids that is not referenced.
func (p *processor) dissolve(ids []string, referenced map[string]bool) {
	for _, id := range ids {
		if referenced[id] {
			continue
		}
		if span, ok := p.spans[id]; ok {
			unwrapSpan(span)
			delete(p.spans, id)
		}
	}
}

// appendDescription adds a hidden "blank i of n" text at the end of container
// and adds its id to the blank's aria-describedby.
func (p *processor) appendDescription(container, blank *html.Node, text string) {
	id := p.gen()
	// aria-hidden keeps the text out of the reading order only. Accessible
	// description computation follows aria-describedby into hidden nodes, so
	// the blank still announces it.
	span := newElement(atom.Span,
		html.Attribute{Key: "id", Val: id},
		html.Attribute{Key: "class", Val: VisuallyHiddenClass},
		html.Attribute{Key: "aria-hidden", Val: "true"},
	)
	span.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	container.AppendChild(span)
	addAttrToken(blank, AttrDescribedBy, id)
}

func positionLabel(i, n int) string {
	if n == 1 {
		return "blank"
	}
	return fmt.Sprintf("blank %d of %d", i+1, n)
}
