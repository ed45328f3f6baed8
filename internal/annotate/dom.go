package annotate

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func iterNodes(node *html.Node, f func(child *html.Node) bool) {
	if f(node) {
		return
	}
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		iterNodes(c, f)
	}
}

// AttrValue returns the value of key on n, or "" when it is absent.
func AttrValue(n *html.Node, key string) string {
	return getAttrValue(key, n.Attr)
}

// HasHiddenText reports whether any element under root carries the visually
// hidden class.
func HasHiddenText(root *html.Node) bool {
	found := false
	iterNodes(root, func(n *html.Node) bool {
		if found {
			return true
		}
		if n.Type == html.ElementNode && hasClass(n, VisuallyHiddenClass) {
			found = true
		}
		return found
	})
	return found
}

func getAttrValue(key string, attrs []html.Attribute) string {
	for _, attr := range attrs {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func attrExists(key string, attrs []html.Attribute) bool {
	return slices.ContainsFunc(attrs, func(attr html.Attribute) bool {
		return attr.Key == key
	})
}

// setAttr replaces the value of key in place, or appends it.
func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// addAttrToken appends tok to the space-separated value of key unless it is
// already listed.
func addAttrToken(n *html.Node, key, tok string) {
	fields := strings.Fields(getAttrValue(key, n.Attr))
	if slices.Contains(fields, tok) {
		return
	}
	setAttr(n, key, strings.Join(append(fields, tok), " "))
}

func hasClass(n *html.Node, class string) bool {
	return slices.Contains(strings.Fields(getAttrValue("class", n.Attr)), class)
}

// textContent concatenates every descendant text node of n.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	iterNodes(n, func(child *html.Node) bool {
		if child.Type == html.TextNode {
			sb.WriteString(child.Data)
		}
		return false
	})
	return sb.String()
}

// children returns a snapshot of n's children so callers can mutate the tree
// while walking it.
func children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

func newElement(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}
