package fixers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/doxfix/internal/config"
	"git.home.luguber.info/inful/doxfix/internal/docmodel"
)

func autoLinkFixer(t *testing.T, links ...config.AutoLink) *AutoLinkFixer {
	t.Helper()
	f, err := NewAutoLinkFixer(links)
	require.NoError(t, err)
	return f
}

func allAnchors(doc *docmodel.Document) []*html.Node {
	return docmodel.FindAll(doc.ArticleContent, func(n *html.Node) bool {
		return docmodel.IsElement(n, "a")
	})
}

func TestAutoLinkFixer_BadPattern_ReturnsError(t *testing.T) {
	_, err := NewAutoLinkFixer([]config.AutoLink{{Pattern: `std::(`, URI: "x.html"}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "std::(")
}

func TestAutoLinkFixer_PlainMention_GetsWrapped(t *testing.T) {
	doc := parseDoc(t, `<p>Use std::vector here.</p>`)
	f := autoLinkFixer(t, config.AutoLink{
		Pattern: `std::vector`,
		URI:     "https://en.cppreference.com/w/cpp/container/vector",
	})

	changed, err := f.Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.True(t, changed)

	anchors := allAnchors(doc)
	require.Len(t, anchors, 1)
	a := anchors[0]
	require.Equal(t, "std::vector", docmodel.Text(a))
	require.Equal(t, "https://en.cppreference.com/w/cpp/container/vector", docmodel.Attr(a, "href"))
	require.True(t, docmodel.HasClass(a, "m-doc"))
	require.True(t, docmodel.HasClass(a, "dox-injected"))
	require.True(t, docmodel.HasClass(a, "dox-external"))
	require.Equal(t, "_blank", docmodel.Attr(a, "target"))
	require.Equal(t, "Use std::vector here.", docmodel.Text(doc.ArticleContent))
}

func TestAutoLinkFixer_IdentifierBoundary_Respected(t *testing.T) {
	doc := parseDoc(t, `<p>my_mode and mode_t stay, mode goes.</p>`)
	f := autoLinkFixer(t, config.AutoLink{Pattern: `mode`, URI: "mode.html"})

	changed, err := f.Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.True(t, changed)

	anchors := allAnchors(doc)
	require.Len(t, anchors, 1)
	require.Equal(t, "mode", docmodel.Text(anchors[0]))
	require.Equal(t, "mode.html", docmodel.Attr(anchors[0], "href"))
	require.Equal(t, "my_mode and mode_t stay, mode goes.", docmodel.Text(doc.ArticleContent))
}

func TestAutoLinkFixer_SecondApplication_ChangesNothing(t *testing.T) {
	doc := parseDoc(t, `<p>See std::vector twice: std::vector.</p>`)
	f := autoLinkFixer(t, config.AutoLink{Pattern: `std::vector`, URI: "vector.html"})

	changed, err := f.Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.True(t, changed)
	require.Len(t, allAnchors(doc), 2)

	changed, err = f.Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.False(t, changed)
	require.Len(t, allAnchors(doc), 2)
}

func TestAutoLinkFixer_ExistingReferenceLink_Retargeted(t *testing.T) {
	doc := parseDoc(t, `<p><a href="wrong.html" class="m-doc">thing</a></p>`)
	f := autoLinkFixer(t, config.AutoLink{Pattern: `thing`, URI: "right.html"})

	changed, err := f.Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.True(t, changed)

	a := findAnchor(t, doc)
	require.Equal(t, "right.html", docmodel.Attr(a, "href"))
	require.True(t, docmodel.HasClass(a, "dox-injected"))
	require.False(t, docmodel.HasClass(a, "dox-external"))

	changed, err = f.Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.False(t, changed)
}

func TestAutoLinkFixer_OrdinaryAnchor_NotRetargeted(t *testing.T) {
	doc := parseDoc(t, `<p><a href="wrong.html">thing</a></p>`)
	f := autoLinkFixer(t, config.AutoLink{Pattern: `thing`, URI: "right.html"})

	changed, err := f.Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.False(t, changed)
	require.Equal(t, "wrong.html", docmodel.Attr(findAnchor(t, doc), "href"))
}

func TestAutoLinkFixer_EscapedText_SurvivesInjection(t *testing.T) {
	doc := parseDoc(t, `<p>a &lt; b, see ref &amp; docs</p>`)
	f := autoLinkFixer(t, config.AutoLink{Pattern: `ref`, URI: "ref.html"})

	changed, err := f.Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, "a < b, see ref & docs", docmodel.Text(doc.ArticleContent))
}
