package fixers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/doxfix/internal/docmodel"
	"git.home.luguber.info/inful/doxfix/internal/symbols"
)

func testClassifier(t *testing.T) *symbols.Classifier {
	t.Helper()
	s := symbols.NewSets()
	s.Namespaces.AddAll("std", "mylib")
	s.Types.Add("mylib::Thing")
	s.StringLiterals.Add("_fmt")
	s.NumericLiterals.Add("_deg")
	s.Macros = []string{"MY_[A-Z_]+"}
	c, err := s.Compile()
	require.NoError(t, err)
	return c
}

func codeSpans(t *testing.T, doc *docmodel.Document) []*html.Node {
	t.Helper()
	block := docmodel.FindElement(doc.ArticleContent, "pre")
	require.NotNil(t, block)
	return docmodel.FindAll(block, func(n *html.Node) bool {
		return docmodel.IsElement(n, "span")
	})
}

func TestCodeBlockFixer_SplitComment_StitchedIntoOne(t *testing.T) {
	doc := parseDoc(t, `<pre class="m-code"><span class="o">/!*</span> hello <span class="o">*!/</span>
<span class="k">int</span></pre>`)
	f := NewCodeBlockFixer(testClassifier(t))

	changed, err := f.Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.True(t, changed)

	spans := codeSpans(t, doc)
	require.Len(t, spans, 2)
	require.Equal(t, "cm", docmodel.FirstClass(spans[0]))
	require.Equal(t, "/* hello */", docmodel.Text(spans[0]))
	require.Equal(t, "k", docmodel.FirstClass(spans[1]))

	changed, err = f.Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.False(t, changed)
}

func TestCodeBlockFixer_QualifiedType_Reclassified(t *testing.T) {
	doc := parseDoc(t, `<pre class="m-code"><span class="n">mylib</span><span class="o">::</span><span class="n">Thing</span> <span class="n">x</span>;</pre>`)

	changed, err := NewCodeBlockFixer(testClassifier(t)).Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.True(t, changed)

	spans := codeSpans(t, doc)
	require.Len(t, spans, 4)
	require.Equal(t, "ns", docmodel.FirstClass(spans[0]))
	require.Equal(t, "o", docmodel.FirstClass(spans[1]))
	require.Equal(t, "ut", docmodel.FirstClass(spans[2]))
	require.Equal(t, "n", docmodel.FirstClass(spans[3]))
}

func TestCodeBlockFixer_UnknownName_LeftAlone(t *testing.T) {
	doc := parseDoc(t, `<pre class="m-code"><span class="n">other</span><span class="o">::</span><span class="n">Stuff</span></pre>`)

	changed, err := NewCodeBlockFixer(testClassifier(t)).Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.False(t, changed)
}

func TestCodeBlockFixer_LiteralSuffixes_TakeNeighborKind(t *testing.T) {
	doc := parseDoc(t, `<pre class="m-code"><span class="s">&#34;pi&#34;</span><span class="n">_fmt</span> <span class="mi">90</span><span class="n">_deg</span></pre>`)

	changed, err := NewCodeBlockFixer(testClassifier(t)).Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.True(t, changed)

	spans := codeSpans(t, doc)
	require.Len(t, spans, 4)
	require.Equal(t, "sa", docmodel.FirstClass(spans[1]))
	require.Equal(t, "mi", docmodel.FirstClass(spans[3]))
}

func TestCodeBlockFixer_MacrosAndKeywords_Recolored(t *testing.T) {
	doc := parseDoc(t, `<pre class="m-code"><span class="n">MY_ASSERT</span>(<span class="kt">int32_t</span>) <span class="nf">sizeof</span></pre>`)

	changed, err := NewCodeBlockFixer(testClassifier(t)).Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.True(t, changed)

	spans := codeSpans(t, doc)
	require.Len(t, spans, 3)
	require.Equal(t, "m", docmodel.FirstClass(spans[0]))
	require.Equal(t, "kt", docmodel.FirstClass(spans[1]))
	require.Equal(t, "k", docmodel.FirstClass(spans[2]))
}

func TestCodeBlockFixer_InlineListing_PromotedToBlock(t *testing.T) {
	doc := parseDoc(t, `<p>Run: <code class="m-console">$ make</code></p>`)
	f := NewCodeBlockFixer(testClassifier(t))

	changed, err := f.Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.True(t, changed)

	pre := docmodel.FindElement(doc.ArticleContent, "pre")
	require.NotNil(t, pre)
	require.True(t, docmodel.HasClass(pre, "m-console"))
	p := docmodel.FindElement(doc.ArticleContent, "p")
	require.NotNil(t, p)
	require.Equal(t, "Run: ", docmodel.Text(p))

	changed, err = f.Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.False(t, changed)
}

func TestCodeBlockFixer_InlineListing_EmptyParagraphRemoved(t *testing.T) {
	doc := parseDoc(t, `<p><code class="m-code">x = 1</code></p>`)

	changed, err := NewCodeBlockFixer(testClassifier(t)).Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.True(t, changed)

	require.Nil(t, docmodel.FindElement(doc.ArticleContent, "p"))
	pre := docmodel.FindElement(doc.ArticleContent, "pre")
	require.NotNil(t, pre)
	require.Equal(t, "x = 1", docmodel.Text(pre))
}
