package fixers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/doxfix/internal/docmodel"
)

func TestDeadLinkFixer_MissingTarget_BecomesSelfAnchor(t *testing.T) {
	dir := t.TempDir()
	doc := parseDoc(t, `<dl><dt><a href="other.html#deadbeef" class="m-doc">thing</a></dt></dl>`)
	f := NewDeadLinkFixer()

	changed, err := f.Apply(dir, "page.html", doc)
	require.NoError(t, err)
	require.True(t, changed)

	a := findAnchor(t, doc)
	require.False(t, docmodel.HasClass(a, "m-doc"))
	require.True(t, docmodel.HasClass(a, "m-doc-self"))
	require.Equal(t, "#deadbeef", docmodel.Attr(a, "href"))
	require.Equal(t, "deadbeef", docmodel.Attr(a.Parent, "id"))

	changed, err = f.Apply(dir, "page.html", doc)
	require.NoError(t, err)
	require.False(t, changed)
}

func TestDeadLinkFixer_ExistingTarget_LeftAlone(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.html"), []byte("<html></html>"), 0o644))
	doc := parseDoc(t, `<dl><dt><a href="other.html#abc" class="m-doc">thing</a></dt></dl>`)

	changed, err := NewDeadLinkFixer().Apply(dir, "page.html", doc)
	require.NoError(t, err)
	require.False(t, changed)
	require.True(t, docmodel.HasClass(findAnchor(t, doc), "m-doc"))
}

func TestDeadLinkFixer_NoFragment_DerivesDeterministicID(t *testing.T) {
	dir := t.TempDir()
	content := `<dl><dt><a href="gone.html" class="m-doc">symbol</a></dt></dl>`

	first := parseDoc(t, content)
	_, err := NewDeadLinkFixer().Apply(dir, "page.html", first)
	require.NoError(t, err)
	id := docmodel.Attr(findAnchor(t, first).Parent, "id")
	require.Len(t, id, 64)

	second := parseDoc(t, content)
	_, err = NewDeadLinkFixer().Apply(dir, "page.html", second)
	require.NoError(t, err)
	require.Equal(t, id, docmodel.Attr(findAnchor(t, second).Parent, "id"))
}

func TestDeadLinkFixer_ParentWithID_ReusesIt(t *testing.T) {
	dir := t.TempDir()
	doc := parseDoc(t, `<dl><dt id="have"><a href="gone.html#x" class="m-doc">symbol</a></dt></dl>`)

	changed, err := NewDeadLinkFixer().Apply(dir, "page.html", doc)
	require.NoError(t, err)
	require.True(t, changed)

	a := findAnchor(t, doc)
	require.Equal(t, "#have", docmodel.Attr(a, "href"))
	require.Equal(t, "have", docmodel.Attr(a.Parent, "id"))
}

func TestDeadLinkFixer_OutsideDefinitionList_OnlyStripsClass(t *testing.T) {
	dir := t.TempDir()
	doc := parseDoc(t, `<p><a href="gone.html" class="m-doc">symbol</a></p>`)
	f := NewDeadLinkFixer()

	changed, err := f.Apply(dir, "page.html", doc)
	require.NoError(t, err)
	require.True(t, changed)

	a := findAnchor(t, doc)
	require.False(t, docmodel.HasClass(a, "m-doc"))
	require.False(t, docmodel.HasClass(a, "m-doc-self"))
	require.Equal(t, "gone.html", docmodel.Attr(a, "href"))

	changed, err = f.Apply(dir, "page.html", doc)
	require.NoError(t, err)
	require.False(t, changed)
}
