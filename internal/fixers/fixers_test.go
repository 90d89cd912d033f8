package fixers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/doxfix/internal/docmodel"
)

// parseDoc wraps content in the structural skeleton the generator emits and
// parses it into a document.
func parseDoc(t *testing.T, content string) *docmodel.Document {
	t.Helper()
	return parseNamedDoc(t, "page.html", content)
}

func parseNamedDoc(t *testing.T, path, content string) *docmodel.Document {
	t.Helper()
	page := `<html><head></head><body><main><article><div><div><div>` +
		content + `</div></div></div></article></main></body></html>`
	root, err := html.Parse(strings.NewReader(page))
	require.NoError(t, err)
	doc, err := docmodel.FromNode(root, path)
	require.NoError(t, err)
	return doc
}

func renderContent(t *testing.T, doc *docmodel.Document) string {
	t.Helper()
	out, err := docmodel.Render(doc.ArticleContent)
	require.NoError(t, err)
	return out
}

func findAnchor(t *testing.T, doc *docmodel.Document) *html.Node {
	t.Helper()
	a := docmodel.FindElement(doc.ArticleContent, "a")
	require.NotNil(t, a)
	return a
}
