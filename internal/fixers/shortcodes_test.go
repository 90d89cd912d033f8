package fixers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/doxfix/internal/docmodel"
	"git.home.luguber.info/inful/doxfix/internal/emoji"
)

func testEmojiTable() *emoji.Table {
	return emoji.FromEntries(map[string]string{
		"ice_cream": "https://github.githubassets.com/images/icons/emoji/unicode/1f368.png?v8",
		"wave":      "https://github.githubassets.com/images/icons/emoji/unicode/1f44b.png?v8",
	})
}

func shortcodeFixer() *ShortcodeFixer {
	return NewShortcodeFixer(testEmojiTable())
}

func TestShortcodeFixer_PairedTag_BecomesElement(t *testing.T) {
	doc := parseDoc(t, `<p>before [span class="m-text m-dim"]inner[/span] after</p>`)

	changed, err := shortcodeFixer().Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.True(t, changed)

	span := docmodel.FindElement(doc.ArticleContent, "span")
	require.NotNil(t, span)
	require.True(t, docmodel.HasClass(span, "m-dim"))
	require.Equal(t, "inner", docmodel.Text(span))
	require.Equal(t, "before inner after", docmodel.Text(doc.ArticleContent))
}

func TestShortcodeFixer_Emoji_ExpandsToCodepointWithSelector(t *testing.T) {
	doc := parseDoc(t, `<p>hello [emoji wave]</p>`)

	changed, err := shortcodeFixer().Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, "hello \U0001F44B️", docmodel.Text(doc.ArticleContent))
}

func TestShortcodeFixer_EmojiAlias_MatchesCanonicalName(t *testing.T) {
	aliased := parseDoc(t, `<p>[emoji sundae]</p>`)
	canonical := parseDoc(t, `<p>[emoji ice_cream]</p>`)
	f := shortcodeFixer()

	_, err := f.Apply(".", "page.html", aliased)
	require.NoError(t, err)
	_, err = f.Apply(".", "page.html", canonical)
	require.NoError(t, err)
	require.Equal(t,
		docmodel.Text(canonical.ArticleContent),
		docmodel.Text(aliased.ArticleContent))
	require.Equal(t, "\U0001F368️", docmodel.Text(aliased.ArticleContent))
}

func TestShortcodeFixer_UnknownEmoji_Vanishes(t *testing.T) {
	doc := parseDoc(t, `<p>x[emoji no_such]y</p>`)

	changed, err := shortcodeFixer().Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, "xy", docmodel.Text(doc.ArticleContent))
}

func TestShortcodeFixer_Entity_HexAndNamedForms(t *testing.T) {
	doc := parseDoc(t, `<p>[entity 48][htmlentity amp]</p>`)

	changed, err := shortcodeFixer().Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, "H&", docmodel.Text(doc.ArticleContent))
}

func TestShortcodeFixer_ParentSetClass_TargetsEnclosingElement(t *testing.T) {
	doc := parseDoc(t, `<aside><p>note[parent_set_class m-note m-danger]</p></aside>`)

	changed, err := shortcodeFixer().Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.True(t, changed)

	aside := docmodel.FindElement(doc.ArticleContent, "aside")
	require.NotNil(t, aside)
	require.True(t, docmodel.HasClass(aside, "m-note"))
	require.True(t, docmodel.HasClass(aside, "m-danger"))
	require.Equal(t, "note", docmodel.Text(aside))
}

func TestShortcodeFixer_SetName_RetargetsTheElement(t *testing.T) {
	doc := parseDoc(t, `<div><p>content[set_name blockquote]</p></div>`)

	changed, err := shortcodeFixer().Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.True(t, changed)

	require.Nil(t, docmodel.FindElement(doc.ArticleContent, "p"))
	bq := docmodel.FindElement(doc.ArticleContent, "blockquote")
	require.NotNil(t, bq)
	require.Equal(t, "content", docmodel.Text(bq))
}

func TestShortcodeFixer_PlainText_NoChange(t *testing.T) {
	doc := parseDoc(t, `<p>array[0] and [not a tag]</p>`)

	changed, err := shortcodeFixer().Apply(".", "page.html", doc)
	require.NoError(t, err)
	require.False(t, changed)
	require.Equal(t, "array[0] and [not a tag]", docmodel.Text(doc.ArticleContent))
}
