package annotate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// parseFragment parses markup as the children of a synthetic <div> root.
func parseFragment(t *testing.T, markup string) *html.Node {
	t.Helper()
	root := newElement(atom.Div)
	nodes, err := html.ParseFragment(strings.NewReader(markup), newElement(atom.Body))
	require.NoError(t, err)
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root
}

func innerHTML(t *testing.T, n *html.Node) string {
	t.Helper()
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		require.NoError(t, html.Render(&sb, c))
	}
	return sb.String()
}

func byID(root *html.Node, id string) *html.Node {
	var found *html.Node
	iterNodes(root, func(n *html.Node) bool {
		if found != nil {
			return true
		}
		if n.Type == html.ElementNode && getAttrValue("id", n.Attr) == id {
			found = n
			return true
		}
		return false
	})
	return found
}

func mustByID(t *testing.T, root *html.Node, id string) *html.Node {
	t.Helper()
	n := byID(root, id)
	require.NotNil(t, n, "no element with id %q", id)
	return n
}

func labelRefs(n *html.Node) []string {
	return strings.Fields(getAttrValue(AttrLabelledBy, n.Attr))
}

// spansWithPrefix returns the generated spans still present in the tree.
func spansWithPrefix(root *html.Node, prefix string) []*html.Node {
	var out []*html.Node
	iterNodes(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "span" &&
			strings.HasPrefix(getAttrValue("id", n.Attr), prefix) &&
			!hasClass(n, VisuallyHiddenClass) {
			out = append(out, n)
		}
		return false
	})
	return out
}

func annotateSeq(root *html.Node) bool {
	return Annotate(root, WithIDGenerator(SequentialIDs("s")))
}

const (
	entry = `class="qti-text-entry-interaction"`
)
