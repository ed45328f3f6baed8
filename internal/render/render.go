// Package render turns authored item markup into accessible HTML: it
// sanitises the input, labels inline blanks from their surrounding prose and
// reports the styles and labels the result depends on.
package render

import (
	"context"
	"log/slog"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/tdewolff/minify/v2"
	minhtml "github.com/tdewolff/minify/v2/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"qtirender/internal/annotate"
	"qtirender/internal/domain"
	"qtirender/internal/style"
)

const mimeHTML = "text/html"

// Options configures a Renderer.
type Options struct {
	// IDPrefix prefixes generated span and blank ids.
	IDPrefix string
	// MaxFragmentBytes rejects larger input. Zero disables the check.
	MaxFragmentBytes int
	// Sanitize runs the markup through the item policy before parsing.
	Sanitize bool
	// Minify compacts the serialized output.
	Minify bool
	// Sequential numbers ids per call instead of using random UUIDs, which
	// makes output reproducible.
	Sequential bool
}

// Renderer is safe for concurrent use.
type Renderer struct {
	opts     Options
	policy   *bluemonday.Policy
	minifier *minify.M
}

// New creates a Renderer.
func New(opts Options) *Renderer {
	if opts.IDPrefix == "" {
		opts.IDPrefix = annotate.DefaultIDPrefix
	}
	m := minify.New()
	m.Add(mimeHTML, &minhtml.Minifier{
		KeepDefaultAttrVals: true,
		KeepDocumentTags:    true,
		KeepEndTags:         true,
		KeepQuotes:          true,
	})
	return &Renderer{
		opts:     opts,
		policy:   NewPolicy(),
		minifier: m,
	}
}

// Sanitize strips markup the item policy does not allow.
func (r *Renderer) Sanitize(markup string) string {
	return r.policy.Sanitize(markup)
}

// Render annotates markup and returns the rendered fragment.
func (r *Renderer) Render(ctx context.Context, markup string) (*domain.RenderedFragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.opts.MaxFragmentBytes > 0 && len(markup) > r.opts.MaxFragmentBytes {
		return nil, domain.ErrFragmentTooLarge
	}
	if strings.TrimSpace(markup) == "" {
		return nil, domain.ErrEmptyFragment
	}
	if r.opts.Sanitize {
		markup = r.Sanitize(markup)
		if strings.TrimSpace(markup) == "" {
			return nil, domain.ErrEmptyFragment
		}
	}

	root, err := ParseFragment(markup)
	if err != nil {
		return nil, err
	}

	annotated := annotate.Annotate(root, annotate.WithIDGenerator(r.newGenerator()))

	styles := style.NewRegistry()
	if annotated || annotate.HasHiddenText(root) {
		style.EnsureVisuallyHidden(styles)
	}

	out, err := Serialize(root)
	if err != nil {
		return nil, err
	}
	if r.opts.Minify {
		minified, err := r.minifier.String(mimeHTML, out)
		if err != nil {
			slog.Warn("render: minify failed, keeping unminified output", "err", err)
		} else {
			out = minified
		}
	}

	blanks := describeBlanks(root)
	slog.Debug("render: fragment rendered",
		slog.Int("blanks", len(blanks)),
		slog.Bool("annotated", annotated),
		slog.Int("bytes", len(out)))

	return &domain.RenderedFragment{
		HTML:      out,
		Styles:    styles.Rules(),
		Blanks:    blanks,
		Annotated: annotated,
	}, nil
}

func (r *Renderer) newGenerator() annotate.IDGenerator {
	if r.opts.Sequential {
		return annotate.SequentialIDs(r.opts.IDPrefix)
	}
	return annotate.UUIDs(r.opts.IDPrefix)
}

// ParseFragment parses markup in a <div> context and returns a synthetic
// <div> holding the parsed nodes.
func ParseFragment(markup string) (*html.Node, error) {
	parent := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(markup), parent)
	if err != nil {
		return nil, err
	}
	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, nil
}

// Serialize renders the children of root.
func Serialize(root *html.Node) (string, error) {
	var sb strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

func describeBlanks(root *html.Node) []domain.BlankInfo {
	blanks := annotate.Blanks(root)
	out := make([]domain.BlankInfo, 0, len(blanks))
	for _, b := range blanks {
		out = append(out, domain.BlankInfo{
			ID:                 annotate.AttrValue(b, "id"),
			Kind:               string(annotate.BlankKindOf(b)),
			ResponseIdentifier: responseIdentifier(b),
			LabelledBy:         strings.Fields(annotate.AttrValue(b, annotate.AttrLabelledBy)),
			Label:              annotate.AttrValue(b, annotate.AttrLabel),
			DescribedBy:        annotate.AttrValue(b, annotate.AttrDescribedBy),
		})
	}
	return out
}

func responseIdentifier(n *html.Node) string {
	if v := annotate.AttrValue(n, "data-response-identifier"); v != "" {
		return v
	}
	if v := annotate.AttrValue(n, "response-identifier"); v != "" {
		return v
	}
	return annotate.AttrValue(n, "name")
}
