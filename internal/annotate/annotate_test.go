package annotate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// --- Concrete scenarios ---

func TestAnnotate_SingleBlankInSentence(t *testing.T) {
	root := parseFragment(t, `The year was <input id="b1" `+entry+`>.`)

	assert.True(t, annotateSeq(root))

	b1 := mustByID(t, root, "b1")
	assert.Equal(t, []string{"s1", "b1", "s2"}, labelRefs(b1))
	assert.Equal(t, "The year was ", textContent(mustByID(t, root, "s1")))
	assert.Equal(t, ".", textContent(mustByID(t, root, "s2")))
	assert.False(t, attrExists(AttrLabel, b1.Attr))
	assert.False(t, attrExists(AttrDescribedBy, b1.Attr))
}

func TestAnnotate_SentenceBoundaryBetweenBlanks(t *testing.T) {
	root := parseFragment(t,
		`The year was <input id="b1" `+entry+`>. The city was <input id="b2" `+entry+`>, PA.`)

	assert.True(t, annotateSeq(root))

	b1 := mustByID(t, root, "b1")
	b2 := mustByID(t, root, "b2")
	assert.Equal(t, []string{"s1", "b1", "s2"}, labelRefs(b1))
	assert.Equal(t, []string{"s3", "b2", "s4"}, labelRefs(b2))

	assert.Equal(t, "The year was ", textContent(mustByID(t, root, "s1")))
	assert.Equal(t, ". ", textContent(mustByID(t, root, "s2")))
	assert.Equal(t, "The city was ", textContent(mustByID(t, root, "s3")))
	assert.Equal(t, ", PA.", textContent(mustByID(t, root, "s4")))

	for _, ref := range labelRefs(b1) {
		if ref != "b1" {
			assert.NotContains(t, labelRefs(b2), ref)
		}
	}
}

func TestAnnotate_BareBlankGetsFallbackLabel(t *testing.T) {
	root := parseFragment(t, `<input id="b1" `+entry+`>`)

	assert.False(t, annotateSeq(root))

	b1 := mustByID(t, root, "b1")
	assert.Equal(t, "blank", getAttrValue(AttrLabel, b1.Attr))
	assert.False(t, attrExists(AttrLabelledBy, b1.Attr))
	assert.Empty(t, spansWithPrefix(root, "s"))
}

func TestAnnotate_TwoBareBlanksGetPositionalLabels(t *testing.T) {
	for name, markup := range map[string]string{
		"adjacent":           `<input id="b1" ` + entry + `><input id="b2" ` + entry + `>`,
		"whitespace between": `<input id="b1" ` + entry + `>   <input id="b2" ` + entry + `>`,
	} {
		t.Run(name, func(t *testing.T) {
			root := parseFragment(t, markup)

			assert.False(t, annotateSeq(root))

			assert.Equal(t, "blank 1 of 2", getAttrValue(AttrLabel, mustByID(t, root, "b1").Attr))
			assert.Equal(t, "blank 2 of 2", getAttrValue(AttrLabel, mustByID(t, root, "b2").Attr))
			assert.Empty(t, spansWithPrefix(root, "s"))
			assert.NotContains(t, innerHTML(t, root), VisuallyHiddenClass)
		})
	}
}

func TestAnnotate_RecursesIntoInlineFormattingWithBlank(t *testing.T) {
	root := parseFragment(t,
		`<p>Choose <em>bold text then <input id="b1" `+entry+`> more bold</em>.</p>`)

	assert.True(t, annotateSeq(root))

	b1 := mustByID(t, root, "b1")
	assert.Equal(t, []string{"s1", "s2", "b1", "s3", "s4"}, labelRefs(b1))

	p := root.FirstChild
	s1 := mustByID(t, root, "s1")
	s2 := mustByID(t, root, "s2")
	s3 := mustByID(t, root, "s3")
	s4 := mustByID(t, root, "s4")
	assert.Equal(t, "Choose ", textContent(s1))
	assert.Equal(t, "bold text then ", textContent(s2))
	assert.Equal(t, " more bold", textContent(s3))
	assert.Equal(t, ".", textContent(s4))

	assert.Same(t, p, s1.Parent)
	assert.Equal(t, "em", s2.Parent.Data)
	assert.Equal(t, "em", s3.Parent.Data)
	assert.Same(t, p, s4.Parent)
}

func TestAnnotate_PreLabeledBlankIsInert(t *testing.T) {
	root := parseFragment(t,
		`<p>Pre <input id="b0" aria-labelledby="x b0" `+entry+`> mid <input id="b1" `+entry+`> post</p>`)

	assert.True(t, annotateSeq(root))

	p := root.FirstChild
	b0 := mustByID(t, root, "b0")
	assert.Same(t, p, b0.Parent)
	assert.Equal(t, "x b0", getAttrValue(AttrLabelledBy, b0.Attr))
	assert.False(t, attrExists(AttrDescribedBy, b0.Attr))

	b1 := mustByID(t, root, "b1")
	assert.Equal(t, []string{"s1", "s2", "b1", "s3"}, labelRefs(b1))
	assert.Same(t, p, b1.Parent)
}

// --- Properties ---

func TestAnnotate_Idempotent(t *testing.T) {
	fixtures := []string{
		`The year was <input id="b1" ` + entry + `>.`,
		`The year was <input id="b1" ` + entry + `>. The city was <input id="b2" ` + entry + `>, PA.`,
		`<input ` + entry + `><input ` + entry + `> trailing words`,
		`<p>Choose <em>bold text then <input ` + entry + `> more bold</em>.</p><p><input ` + entry + `></p>`,
	}
	for _, markup := range fixtures {
		root := parseFragment(t, markup)
		annotateSeq(root)
		first := innerHTML(t, root)

		assert.False(t, Annotate(root, WithIDGenerator(SequentialIDs("again"))), markup)
		assert.Equal(t, first, innerHTML(t, root), markup)
	}
}

func TestAnnotate_EveryBlankLabeledExactlyOnce(t *testing.T) {
	fixtures := []string{
		`<input ` + entry + `>`,
		`A <input ` + entry + `> b <input ` + entry + `> c. <input ` + entry + `>`,
		`<p><input ` + entry + `></p><p>Some text <input ` + entry + `></p>`,
		`<ul><li>One <input ` + entry + `></li><li><input ` + entry + `> two</li></ul>`,
	}
	for _, markup := range fixtures {
		root := parseFragment(t, markup)
		annotateSeq(root)

		for _, b := range Blanks(root) {
			hasRefs := attrExists(AttrLabelledBy, b.Attr)
			hasLabel := attrExists(AttrLabel, b.Attr)
			assert.True(t, hasRefs != hasLabel, "blank must carry exactly one label in %q", markup)
		}
	}
}

func TestAnnotate_NoOrphanSpans(t *testing.T) {
	root := parseFragment(t,
		`<p><input id="b1" `+entry+`> One. Two. Three. Four <input id="b2" `+entry+`> five.</p>`+
			`<p>Lone sentence. Another <input id="b3" `+entry+`></p>`)

	annotateSeq(root)

	referenced := map[string]bool{}
	for _, b := range Blanks(root) {
		for _, ref := range labelRefs(b) {
			referenced[ref] = true
		}
	}
	for _, span := range spansWithPrefix(root, "s") {
		id := getAttrValue("id", span.Attr)
		assert.True(t, referenced[id], "span %s left in tree without a reference", id)
	}
}

func TestAnnotate_SharedRegionBetweenBlanks(t *testing.T) {
	root := parseFragment(t,
		`<p>Add <input id="b1" `+entry+`> and <input id="b2" `+entry+`> together.</p>`)

	assert.True(t, annotateSeq(root))

	assert.Equal(t, []string{"s1", "b1", "s2"}, labelRefs(mustByID(t, root, "b1")))
	assert.Equal(t, []string{"s2", "b2", "s3"}, labelRefs(mustByID(t, root, "b2")))
	assert.Equal(t, " and ", textContent(mustByID(t, root, "s2")))
}

func TestAnnotate_MiddleSentencesAreUnwrapped(t *testing.T) {
	root := parseFragment(t,
		`<p><input id="b1" `+entry+`> One. Two. Three <input id="b2" `+entry+`></p>`)

	assert.True(t, annotateSeq(root))

	assert.Equal(t, []string{"b1", "s1"}, labelRefs(mustByID(t, root, "b1")))
	assert.Equal(t, []string{"s3", "b2"}, labelRefs(mustByID(t, root, "b2")))
	assert.Nil(t, byID(root, "s2"))
	assert.Contains(t, textContent(root), "Two. ")
}

// --- Boundaries and element kinds ---

func TestAnnotate_LineBreakSeparatesRegions(t *testing.T) {
	root := parseFragment(t,
		`<p><input id="b1" `+entry+`> left<br>right <input id="b2" `+entry+`></p>`)

	assert.True(t, annotateSeq(root))

	assert.Equal(t, []string{"b1", "s1"}, labelRefs(mustByID(t, root, "b1")))
	assert.Equal(t, []string{"s2", "b2"}, labelRefs(mustByID(t, root, "b2")))
	assert.Equal(t, " left", textContent(mustByID(t, root, "s1")))
	assert.Equal(t, "right ", textContent(mustByID(t, root, "s2")))
}

func TestAnnotate_AtomicElementStaysInSpan(t *testing.T) {
	root := parseFragment(t,
		`<p>The area is <math><mi>x</mi></math> = <input id="b1" `+entry+`></p>`)

	assert.True(t, annotateSeq(root))

	s1 := mustByID(t, root, "s1")
	assert.Equal(t, []string{"s1", "b1"}, labelRefs(mustByID(t, root, "b1")))

	var math *html.Node
	for c := s1.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "math" {
			math = c
		}
	}
	require.NotNil(t, math)
	assert.Equal(t, "mi", math.FirstChild.Data, "atomic internals must be left alone")
}

func TestAnnotate_InlineFormattingWithoutBlankStaysWhole(t *testing.T) {
	root := parseFragment(t,
		`<p>The <strong>bolded words</strong> before <input id="b1" `+entry+`></p>`)

	assert.True(t, annotateSeq(root))

	s1 := mustByID(t, root, "s1")
	assert.Equal(t, []string{"s1", "b1"}, labelRefs(mustByID(t, root, "b1")))
	assert.Equal(t, "The bolded words before ", textContent(s1))
	assert.Equal(t, "strong", s1.FirstChild.NextSibling.Data)
}

func TestAnnotate_InlineFormattingWithBoundaryIsSplit(t *testing.T) {
	root := parseFragment(t,
		`<p><input id="b1" `+entry+`> after. <em>Next one. Here</em> tail</p>`)

	assert.True(t, annotateSeq(root))

	assert.Equal(t, []string{"b1", "s1"}, labelRefs(mustByID(t, root, "b1")))
	assert.Equal(t, " after. ", textContent(mustByID(t, root, "s1")))

	em := root.FirstChild.LastChild.PrevSibling
	require.Equal(t, "em", em.Data)
	for c := em.FirstChild; c != nil; c = c.NextSibling {
		assert.Equal(t, html.TextNode, c.Type, "unused spans inside <em> must be dissolved")
	}
	assert.Equal(t, "Next one. Here", textContent(em))
}

func TestAnnotate_BlockChildIsSkipped(t *testing.T) {
	root := parseFragment(t, `Lead <div id="d">block text</div> <input id="b1" `+entry+`>`)

	assert.True(t, annotateSeq(root))

	assert.Equal(t, []string{"s1", "b1"}, labelRefs(mustByID(t, root, "b1")))
	assert.Equal(t, "Lead ", textContent(mustByID(t, root, "s1")))
	d := mustByID(t, root, "d")
	assert.Equal(t, html.TextNode, d.FirstChild.Type)
}

func TestAnnotate_InlineChoiceBlank(t *testing.T) {
	root := parseFragment(t,
		`<p>The sky is <select id="c1" class="qti-inline-choice-interaction"><option>blue</option><option>green</option></select> today.</p>`)

	assert.True(t, annotateSeq(root))

	assert.Equal(t, []string{"s1", "c1", "s2"}, labelRefs(mustByID(t, root, "c1")))
	assert.Equal(t, " today.", textContent(mustByID(t, root, "s2")))
}

func TestAnnotate_BoundaryAtEndOfText(t *testing.T) {
	root := parseFragment(t, `<p>First sentence. <input id="b1" `+entry+`> rest</p>`)

	assert.True(t, annotateSeq(root))

	// "First sentence. " closes its own region; with a single pending segment
	// it is still the nearest context before the first blank.
	assert.Equal(t, []string{"s1", "b1", "s2"}, labelRefs(mustByID(t, root, "b1")))
	for c := root.FirstChild.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			assert.NotEmpty(t, c.Data, "empty remainders must not be left in the tree")
		}
	}
}

// --- Orchestration ---

func TestAnnotate_NoBlanks(t *testing.T) {
	root := parseFragment(t, `<p>Nothing to do here. Really.</p>`)
	before := innerHTML(t, root)

	assert.False(t, annotateSeq(root))
	assert.Equal(t, before, innerHTML(t, root))
}

func TestAnnotate_AllBlanksAlreadyLabeled(t *testing.T) {
	root := parseFragment(t, `<p>A <input aria-labelledby="x" `+entry+`> b <input aria-label="blank" `+entry+`></p>`)
	before := innerHTML(t, root)

	assert.False(t, annotateSeq(root))
	assert.Equal(t, before, innerHTML(t, root))
}

func TestAnnotate_GeneratesBlankIDWhenMissing(t *testing.T) {
	root := parseFragment(t, `The year was <input `+entry+`>.`)

	assert.True(t, annotateSeq(root))

	blanks := Blanks(root)
	require.Len(t, blanks, 1)
	assert.Equal(t, "s3", getAttrValue("id", blanks[0].Attr))
	assert.Equal(t, []string{"s1", "s3", "s2"}, labelRefs(blanks[0]))
}

func TestAnnotate_ContainersProcessedSeparately(t *testing.T) {
	root := parseFragment(t,
		`<p>A <input id="b1" `+entry+`>.</p><p>B <input id="b2" `+entry+`>.</p>`)

	assert.True(t, annotateSeq(root))

	assert.Equal(t, []string{"s1", "b1", "s2"}, labelRefs(mustByID(t, root, "b1")))
	assert.Equal(t, []string{"s3", "b2", "s4"}, labelRefs(mustByID(t, root, "b2")))
	assert.NotContains(t, innerHTML(t, root), VisuallyHiddenClass, "single-blank containers get no descriptions")
}

func TestAnnotate_MultipleBlanksGetDescriptions(t *testing.T) {
	root := parseFragment(t,
		`<p>The year was <input id="b1" `+entry+`>. The city was <input id="b2" `+entry+`>, PA.</p>`)

	assert.True(t, annotateSeq(root))

	p := root.FirstChild
	d1 := mustByID(t, root, getAttrValue(AttrDescribedBy, mustByID(t, root, "b1").Attr))
	d2 := mustByID(t, root, getAttrValue(AttrDescribedBy, mustByID(t, root, "b2").Attr))

	assert.Equal(t, "blank 1 of 2", textContent(d1))
	assert.Equal(t, "blank 2 of 2", textContent(d2))
	for _, d := range []*html.Node{d1, d2} {
		assert.Same(t, p, d.Parent)
		assert.True(t, hasClass(d, VisuallyHiddenClass))
		assert.Equal(t, "true", getAttrValue("aria-hidden", d.Attr))
	}
	assert.Same(t, d2, p.LastChild)
}

func TestAnnotate_DescriptionsOnlyForReferencedBlanks(t *testing.T) {
	root := parseFragment(t,
		`<p><input id="b1" `+entry+`><input id="b2" `+entry+`> tail</p>`)

	assert.True(t, annotateSeq(root))

	b1 := mustByID(t, root, "b1")
	b2 := mustByID(t, root, "b2")
	assert.Equal(t, "blank 1 of 2", getAttrValue(AttrLabel, b1.Attr))
	assert.False(t, attrExists(AttrDescribedBy, b1.Attr))
	assert.Equal(t, []string{"b2", "s1"}, labelRefs(b2))
	assert.Equal(t, "blank 2 of 2", textContent(mustByID(t, root, getAttrValue(AttrDescribedBy, b2.Attr))))
}

func TestAnnotate_DefaultGeneratorUsesPrefix(t *testing.T) {
	root := parseFragment(t, `The year was <input id="b1" `+entry+`>.`)

	assert.True(t, Annotate(root))

	for _, ref := range labelRefs(mustByID(t, root, "b1")) {
		if ref == "b1" {
			continue
		}
		assert.True(t, strings.HasPrefix(ref, DefaultIDPrefix), ref)
	}
}

func TestAnnotate_SplitsOnEveryTerminator(t *testing.T) {
	tests := []struct {
		name string
		sep  string
	}{
		{"period", ". "},
		{"exclamation", "! "},
		{"question", "? "},
		{"exclamation before no-break space", "!\u00a0"},
		{"period before no-break space", ".\u00a0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parseFragment(t,
				`<p><input id="b1" `+entry+`> Stop`+tt.sep+`Then <input id="b2" `+entry+`></p>`)

			assert.True(t, annotateSeq(root))

			assert.Equal(t, []string{"b1", "s1"}, labelRefs(mustByID(t, root, "b1")))
			assert.Equal(t, []string{"s2", "b2"}, labelRefs(mustByID(t, root, "b2")))
			assert.Equal(t, " Stop"+tt.sep, textContent(mustByID(t, root, "s1")))
			assert.Equal(t, "Then ", textContent(mustByID(t, root, "s2")))
		})
	}
}

func TestAnnotate_DecimalPointDoesNotSplit(t *testing.T) {
	root := parseFragment(t,
		`<p><input id="b1" `+entry+`> Pi is 3.14 today <input id="b2" `+entry+`></p>`)

	assert.True(t, annotateSeq(root))

	assert.Equal(t, []string{"b1", "s1"}, labelRefs(mustByID(t, root, "b1")))
	assert.Equal(t, []string{"s1", "b2"}, labelRefs(mustByID(t, root, "b2")))
	assert.Equal(t, " Pi is 3.14 today ", textContent(mustByID(t, root, "s1")))
}

func TestAnnotate_RecursesIntoUnrecognisedElementWithBlank(t *testing.T) {
	tests := []struct {
		name    string
		wrapper string
	}{
		{"font", "font"},
		{"custom element", "custom-widget"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := parseFragment(t,
				`<p>Fill <`+tt.wrapper+`>in <input id="b1" `+entry+`></`+tt.wrapper+`> now.</p>`)

			assert.True(t, annotateSeq(root))

			b1 := mustByID(t, root, "b1")
			assert.Equal(t, []string{"s1", "s2", "b1", "s3"}, labelRefs(b1))
			assert.Equal(t, "Fill ", textContent(mustByID(t, root, "s1")))
			assert.Equal(t, "in ", textContent(mustByID(t, root, "s2")))
			assert.Equal(t, " now.", textContent(mustByID(t, root, "s3")))
			assert.Equal(t, tt.wrapper, mustByID(t, root, "s2").Parent.Data)

			first := innerHTML(t, root)
			assert.False(t, Annotate(root, WithIDGenerator(SequentialIDs("again"))))
			assert.Equal(t, first, innerHTML(t, root))
		})
	}
}

func TestAnnotateContainer_NoInteractionsLeavesNoSpans(t *testing.T) {
	root := parseFragment(t, `<p>Just words. More <em>words. Here</em> end</p>`)

	p := newProcessor(SequentialIDs("s"))
	assert.False(t, p.annotateContainer(root.FirstChild))

	assert.Empty(t, spansWithPrefix(root, "s"))
	assert.Empty(t, p.spans)
	assert.Equal(t, "Just words. More words. Here end", textContent(root))
	assert.NotContains(t, innerHTML(t, root), "<span")
}

func TestAnnotate_DescriptionAppendsToExistingDescribedBy(t *testing.T) {
	root := parseFragment(t,
		`<p>Add <input id="b1" aria-describedby="hint" `+entry+`> and <input id="b2" `+entry+`> together.</p>`+
			`<span id="hint">Whole numbers only</span>`)

	assert.True(t, annotateSeq(root))

	refs := strings.Fields(getAttrValue(AttrDescribedBy, mustByID(t, root, "b1").Attr))
	require.Len(t, refs, 2)
	assert.Equal(t, "hint", refs[0])
	assert.Equal(t, "blank 1 of 2", textContent(mustByID(t, root, refs[1])))

	b2Refs := strings.Fields(getAttrValue(AttrDescribedBy, mustByID(t, root, "b2").Attr))
	require.Len(t, b2Refs, 1)
	assert.Equal(t, "blank 2 of 2", textContent(mustByID(t, root, b2Refs[0])))
}

func TestAddAttrToken(t *testing.T) {
	n := &html.Node{Type: html.ElementNode, Data: "input"}

	addAttrToken(n, AttrDescribedBy, "a")
	addAttrToken(n, AttrDescribedBy, "b")
	addAttrToken(n, AttrDescribedBy, "a")

	assert.Equal(t, "a b", getAttrValue(AttrDescribedBy, n.Attr))
}

func TestHasHiddenTextAndAttrValue(t *testing.T) {
	root := parseFragment(t,
		`<p>A <input id="b1" `+entry+`>. B <input id="b2" `+entry+`>.</p>`)
	assert.False(t, HasHiddenText(root))

	annotateSeq(root)

	assert.True(t, HasHiddenText(root))
	assert.Equal(t, "b1", AttrValue(mustByID(t, root, "b1"), "id"))
	assert.Equal(t, "", AttrValue(mustByID(t, root, "b1"), "missing"))
}
