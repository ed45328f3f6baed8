package annotate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   Kind
	}{
		{"text", `plain words`, KindText},
		{"text entry input", `<input class="qti-text-entry-interaction">`, KindBlank},
		{"text entry among classes", `<input class="wide qti-text-entry-interaction">`, KindBlank},
		{"inline choice select", `<select class="qti-inline-choice-interaction"></select>`, KindBlank},
		{"custom text entry element", `<qti-text-entry-interaction></qti-text-entry-interaction>`, KindBlank},
		{"custom inline choice element", `<qti-inline-choice-interaction></qti-inline-choice-interaction>`, KindBlank},
		{"data marker", `<span data-qti-interaction="inlineChoice"></span>`, KindBlank},
		{"plain input", `<input type="text">`, KindOther},
		{"select without marker", `<select></select>`, KindOther},
		{"class on wrong tag", `<span class="qti-text-entry-interaction"></span>`, KindInline},
		{"line break", `<br>`, KindLineBreak},
		{"image", `<img src="x.png">`, KindAtomic},
		{"math", `<math><mi>x</mi></math>`, KindAtomic},
		{"svg", `<svg></svg>`, KindAtomic},
		{"atomic marker", `<span data-qti-atomic>x</span>`, KindAtomic},
		{"emphasis", `<em>x</em>`, KindInline},
		{"anchor", `<a href="#">x</a>`, KindInline},
		{"paragraph", `<p>x</p>`, KindBlock},
		{"div", `<div>x</div>`, KindBlock},
		{"heading", `<h2>x</h2>`, KindBlock},
		{"unknown element", `<custom-widget>x</custom-widget>`, KindOther},
		{"comment", `<!-- note -->`, KindOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parseFragment(t, tt.markup)
			require.NotNil(t, root.FirstChild)
			assert.Equal(t, tt.want, Classify(root.FirstChild))
		})
	}
}

func TestClassify_ListItemAndCell(t *testing.T) {
	root := parseFragment(t, `<ul><li>x</li></ul><table><tbody><tr><td>y</td></tr></tbody></table>`)

	li := root.FirstChild.FirstChild
	td := root.LastChild.FirstChild.FirstChild.FirstChild
	assert.Equal(t, KindBlock, Classify(li))
	assert.Equal(t, KindBlock, Classify(td))
}

func TestBlankKindOf(t *testing.T) {
	root := parseFragment(t,
		`<input class="qti-text-entry-interaction">`+
			`<select class="qti-inline-choice-interaction"></select>`+
			`<span data-qti-interaction="textEntry"></span>`+
			`<em>x</em>`)

	var got []BlankKind
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		got = append(got, BlankKindOf(c))
	}
	assert.Equal(t, []BlankKind{TextEntry, InlineChoice, TextEntry, ""}, got)
	assert.Equal(t, BlankKind(""), BlankKindOf(nil))
}

func TestIsAlreadyLabeled(t *testing.T) {
	root := parseFragment(t,
		`<input aria-labelledby="a" class="qti-text-entry-interaction">`+
			`<input aria-label="blank" class="qti-text-entry-interaction">`+
			`<input class="qti-text-entry-interaction">`)

	first := root.FirstChild
	assert.True(t, IsAlreadyLabeled(first))
	assert.True(t, IsAlreadyLabeled(first.NextSibling))
	assert.False(t, IsAlreadyLabeled(first.NextSibling.NextSibling))
}

func TestBlanks_DocumentOrderAndAtomicSkipped(t *testing.T) {
	root := parseFragment(t,
		`<p><input id="a" class="qti-text-entry-interaction"></p>`+
			`<svg><foreignObject><input id="hidden" class="qti-text-entry-interaction"></foreignObject></svg>`+
			`<p><em><select id="b" class="qti-inline-choice-interaction"></select></em></p>`)

	var ids []string
	for _, b := range Blanks(root) {
		ids = append(ids, getAttrValue("id", b.Attr))
	}
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "blank", KindBlank.String())
	assert.Equal(t, "line-break", KindLineBreak.String())
	assert.Equal(t, "other", Kind(99).String())
}

func TestContainsUnlabeledBlank(t *testing.T) {
	root := parseFragment(t,
		`<em>no blank</em>`+
			`<em>a <input aria-label="blank" class="qti-text-entry-interaction"></em>`+
			`<em>b <strong><input class="qti-text-entry-interaction"></strong></em>`)

	var got []bool
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			got = append(got, containsUnlabeledBlank(c))
		}
	}
	assert.Equal(t, []bool{false, false, true}, got)
}
