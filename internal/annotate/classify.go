package annotate

import (
	"strings"

	"golang.org/x/net/html"
)

// Kind is the classification of a node as seen by the annotator.
type Kind int

const (
	KindOther Kind = iota
	KindText
	KindBlank
	KindAtomic
	KindLineBreak
	KindInline
	KindBlock
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBlank:
		return "blank"
	case KindAtomic:
		return "atomic"
	case KindLineBreak:
		return "line-break"
	case KindInline:
		return "inline"
	case KindBlock:
		return "block"
	default:
		return "other"
	}
}

// BlankKind names the interaction type of a blank.
type BlankKind string

const (
	TextEntry    BlankKind = "textEntry"
	InlineChoice BlankKind = "inlineChoice"
)

// Attributes written and read on blanks.
const (
	AttrLabelledBy  = "aria-labelledby"
	AttrLabel       = "aria-label"
	AttrDescribedBy = "aria-describedby"
	AttrInteraction = "data-qti-interaction"
	AttrAtomic      = "data-qti-atomic"
)

const (
	textEntryClass    = "qti-text-entry-interaction"
	inlineChoiceClass = "qti-inline-choice-interaction"
)

var atomicTags = map[string]bool{
	"math":          true,
	"img":           true,
	"svg":           true,
	"video":         true,
	"audio":         true,
	"picture":       true,
	"object":        true,
	"embed":         true,
	"iframe":        true,
	"canvas":        true,
	"mjx-container": true,
}

var inlineTags = map[string]bool{
	"a": true, "abbr": true, "b": true, "bdi": true, "bdo": true,
	"cite": true, "code": true, "data": true, "del": true, "dfn": true,
	"em": true, "i": true, "ins": true, "kbd": true, "label": true,
	"mark": true, "q": true, "s": true, "samp": true, "small": true,
	"span": true, "strong": true, "sub": true, "sup": true, "time": true,
	"u": true, "var": true,
}

var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"caption": true, "dd": true, "details": true, "div": true, "dl": true,
	"dt": true, "fieldset": true, "figcaption": true, "figure": true,
	"footer": true, "form": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "header": true, "li": true,
	"main": true, "nav": true, "ol": true, "p": true, "pre": true,
	"section": true, "summary": true, "table": true, "tbody": true,
	"td": true, "tfoot": true, "th": true, "thead": true, "tr": true,
	"ul": true, "qti-item-body": true, "qti-prompt": true,
}

// Classify returns the kind of n. It never fails and never mutates n.
func Classify(n *html.Node) Kind {
	switch {
	case n.Type == html.TextNode:
		return KindText
	case n.Type != html.ElementNode:
		return KindOther
	case IsBlank(n):
		return KindBlank
	case IsLineBreak(n):
		return KindLineBreak
	case IsAtomic(n):
		return KindAtomic
	case IsBlock(n):
		return KindBlock
	case IsInlineFormatting(n):
		return KindInline
	}
	return KindOther
}

// BlankKindOf returns the interaction type of n, or "" if n is not a blank.
func BlankKindOf(n *html.Node) BlankKind {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	switch BlankKind(getAttrValue(AttrInteraction, n.Attr)) {
	case TextEntry:
		return TextEntry
	case InlineChoice:
		return InlineChoice
	}
	tag := strings.ToLower(n.Data)
	switch {
	case tag == textEntryClass, tag == "input" && hasClass(n, textEntryClass):
		return TextEntry
	case tag == inlineChoiceClass, tag == "select" && hasClass(n, inlineChoiceClass):
		return InlineChoice
	}
	return ""
}

// IsBlank reports whether n is an inline interaction control.
func IsBlank(n *html.Node) bool {
	return BlankKindOf(n) != ""
}

// IsAlreadyLabeled reports whether n already carries an accessible name
// from a previous pass.
func IsAlreadyLabeled(n *html.Node) bool {
	return attrExists(AttrLabelledBy, n.Attr) || attrExists(AttrLabel, n.Attr)
}

// IsAtomic reports whether n must be treated as a single opaque token.
func IsAtomic(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	return atomicTags[strings.ToLower(n.Data)] || attrExists(AttrAtomic, n.Attr)
}

// IsLineBreak reports whether n is an explicit line break.
func IsLineBreak(n *html.Node) bool {
	return n.Type == html.ElementNode && strings.EqualFold(n.Data, "br")
}

// IsInlineFormatting reports whether n is an inline formatting wrapper.
func IsInlineFormatting(n *html.Node) bool {
	return n.Type == html.ElementNode && inlineTags[strings.ToLower(n.Data)]
}

// IsBlock reports whether n is a block-level container.
func IsBlock(n *html.Node) bool {
	return n.Type == html.ElementNode && blockTags[strings.ToLower(n.Data)]
}

// Blanks returns every blank under root in document order. Blanks nested in
// atomic elements are not searched.
func Blanks(root *html.Node) []*html.Node {
	var out []*html.Node
	iterNodes(root, func(n *html.Node) bool {
		if n == root {
			return false
		}
		if IsBlank(n) {
			out = append(out, n)
			return true
		}
		return IsAtomic(n)
	})
	return out
}

func containsUnlabeledBlank(n *html.Node) bool {
	for _, b := range Blanks(n) {
		if !IsAlreadyLabeled(b) {
			return true
		}
	}
	return false
}
