package render

import (
	"github.com/microcosm-cc/bluemonday"
)

// blankElements are the custom interaction elements kept by the policy.
var blankElements = []string{
	"qti-text-entry-interaction",
	"qti-inline-choice-interaction",
	"qti-inline-choice",
}

var mathElements = []string{
	"math", "mi", "mn", "mo", "ms", "mtext", "mrow", "msup", "msub",
	"msubsup", "mfrac", "msqrt", "mroot", "mover", "munder", "mspace",
	"mtable", "mtr", "mtd", "semantics", "annotation",
}

// NewPolicy returns the sanitising policy for item markup: user generated
// content plus the attributes and elements that inline interactions and their
// accessible names depend on.
func NewPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	p.AllowElements(blankElements...)
	p.AllowElements(mathElements...)
	p.AllowElements("input", "select", "option")
	p.AllowNoAttrs().OnElements("span")

	p.AllowAttrs("id", "class").Globally()
	p.AllowAttrs("aria-label", "aria-labelledby", "aria-describedby", "aria-hidden").Globally()
	p.AllowAttrs("data-qti-interaction", "data-qti-atomic", "data-response-identifier").Globally()
	p.AllowAttrs("response-identifier", "expected-length", "pattern-mask", "placeholder-text").
		OnElements(blankElements...)
	p.AllowAttrs("identifier").OnElements("qti-inline-choice")
	p.AllowAttrs("type", "name", "size", "maxlength", "placeholder", "value", "autocomplete", "spellcheck").
		OnElements("input")
	p.AllowAttrs("name").OnElements("select")
	p.AllowAttrs("value", "selected").OnElements("option")
	p.AllowAttrs("display", "xmlns").OnElements("math")
	p.AllowAttrs("encoding").OnElements("annotation")

	return p
}
