package fixers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/doxfix/internal/docmodel"
)

func TestTemplateLineFixer_StackedHeaders_SplitByLineBreak(t *testing.T) {
	doc := parseDoc(t, `<div class="m-doc-template">template&lt;class T&gt; template&lt;class U&gt;</div>`)
	f := NewTemplateLineFixer()

	changed, err := f.Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.True(t, changed)

	header := docmodel.FindAll(doc.ArticleContent, func(n *html.Node) bool {
		return docmodel.IsElement(n, "div") && docmodel.HasClass(n, "m-doc-template")
	})
	require.Len(t, header, 1)
	require.NotNil(t, docmodel.FindElement(header[0], "br"))

	out, err := docmodel.Render(header[0])
	require.NoError(t, err)
	require.Contains(t, out, "template&lt;class T&gt;<br/>")
	require.Contains(t, out, "template&lt;class U&gt;")

	changed, err = f.Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.False(t, changed)
}

func TestTemplateLineFixer_SingleHeader_NoChange(t *testing.T) {
	doc := parseDoc(t, `<div class="m-doc-template">template&lt;class T&gt;</div>`)

	changed, err := NewTemplateLineFixer().Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.False(t, changed)
}
