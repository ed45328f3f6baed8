package annotate

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// flushGroup wraps nodes in a new span placed where the first node was.
// Runs without visible text are left untouched and nil is returned.
func flushGroup(nodes []*html.Node, gen IDGenerator) *html.Node {
	if len(nodes) == 0 {
		return nil
	}
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(textContent(n))
	}
	if strings.TrimSpace(sb.String()) == "" {
		return nil
	}

	first := nodes[0]
	parent := first.Parent
	if parent == nil {
		return nil
	}

	span := newElement(atom.Span, html.Attribute{Key: "id", Val: gen()})
	parent.InsertBefore(span, first)
	for _, n := range nodes {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		span.AppendChild(n)
	}
	return span
}

// unwrapSpan dissolves span, moving its children to span's position.
func unwrapSpan(span *html.Node) {
	parent := span.Parent
	if parent == nil {
		return
	}
	for _, c := range children(span) {
		span.RemoveChild(c)
		parent.InsertBefore(c, span)
	}
	parent.RemoveChild(span)
}
