package fixers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/doxfix/internal/docmodel"
)

func TestLinkFixer_ExternalLink_OpensNewTab(t *testing.T) {
	doc := parseDoc(t, `<p><a href="https://example.com/page">site</a> and <a href="#local">here</a></p>`)
	f := NewLinkFixer()

	changed, err := f.Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.True(t, changed)

	a := findAnchor(t, doc)
	require.Equal(t, "_blank", docmodel.Attr(a, "target"))
	require.True(t, docmodel.HasClass(a, "dox-external"))

	changed, err = f.Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.False(t, changed)
}

func TestLinkFixer_MailtoLink_CountsAsExternal(t *testing.T) {
	doc := parseDoc(t, `<p><a href="mailto:dev@example.com">mail</a></p>`)

	changed, err := NewLinkFixer().Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, "_blank", docmodel.Attr(findAnchor(t, doc), "target"))
}

func TestLinkFixer_GodboltParagraph_MovesIntoListing(t *testing.T) {
	doc := parseDoc(t, `<p><a href="https://godbolt.org/z/abc123">Try it</a></p><pre class="m-code"><span class="k">int</span> x;</pre>`)

	changed, err := NewLinkFixer().Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.True(t, changed)

	pre := docmodel.FindElement(doc.ArticleContent, "pre")
	require.NotNil(t, pre)
	p := docmodel.FirstElementChild(pre, "p")
	require.NotNil(t, p)
	require.True(t, docmodel.HasClass(p, "m-note"))
	require.True(t, docmodel.HasClass(p, "m-success"))
	require.True(t, docmodel.HasClass(p, "godbolt"))

	a := findAnchor(t, doc)
	require.True(t, docmodel.HasClass(a, "godbolt"))
	require.Equal(t, "_blank", docmodel.Attr(a, "target"))
}

func TestLinkFixer_GodboltWithSurroundingText_OnlyStyled(t *testing.T) {
	doc := parseDoc(t, `<p>see <a href="https://godbolt.org/z/abc123">this</a> example</p><pre class="m-code">x</pre>`)

	changed, err := NewLinkFixer().Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.True(t, changed)

	pre := docmodel.FindElement(doc.ArticleContent, "pre")
	require.Nil(t, docmodel.FirstElementChild(pre, "p"))
	require.True(t, docmodel.HasClass(findAnchor(t, doc), "godbolt"))
}

func TestLinkFixer_VanishedFragment_RetargetsEnclosingID(t *testing.T) {
	doc := parseDoc(t, `<div id="ab12cd"><p><a href="#deadbeef" class="m-doc">gone</a></p></div>`)
	f := NewLinkFixer()

	changed, err := f.Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.True(t, changed)

	a := findAnchor(t, doc)
	require.Equal(t, "#ab12cd", docmodel.Attr(a, "href"))
	require.False(t, docmodel.HasClass(a, "m-doc"))
	require.True(t, docmodel.HasClass(a, "m-doc-self"))

	changed, err = f.Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.False(t, changed)
}

func TestLinkFixer_VanishedFragment_NoAnchorAncestor_FallsBackToHash(t *testing.T) {
	doc := parseDoc(t, `<div id="section-intro"><p><a href="#deadbeef" class="m-doc">gone</a></p></div>`)

	changed, err := NewLinkFixer().Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, "#", docmodel.Attr(findAnchor(t, doc), "href"))
}

func TestLinkFixer_FragmentStillPresent_LeftAlone(t *testing.T) {
	doc := parseDoc(t, `<div id="deadbeef"></div><p><a href="#deadbeef" class="m-doc">there</a></p>`)

	changed, err := NewLinkFixer().Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.False(t, changed)
	require.Equal(t, "#deadbeef", docmodel.Attr(findAnchor(t, doc), "href"))
}
