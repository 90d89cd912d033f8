package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestInstall_CopiesThemeAndOwnAssets(t *testing.T) {
	assetDir := t.TempDir()
	mcssDir := t.TempDir()
	htmlDir := t.TempDir()
	seed(t, filepath.Join(mcssDir, "css", compiledTheme), "theme")
	seed(t, filepath.Join(assetDir, "dox.css"), "styles")
	seed(t, filepath.Join(assetDir, "github-icon.png"), "icon")

	require.NoError(t, Install(assetDir, mcssDir, htmlDir))

	for name, want := range map[string]string{
		compiledTheme:     "theme",
		"dox.css":         "styles",
		"github-icon.png": "icon",
	} {
		data, err := os.ReadFile(filepath.Join(htmlDir, name))
		require.NoError(t, err)
		require.Equal(t, want, string(data))
	}
}

func TestInstall_OverwritesPreviousCopies(t *testing.T) {
	assetDir := t.TempDir()
	mcssDir := t.TempDir()
	htmlDir := t.TempDir()
	seed(t, filepath.Join(mcssDir, "css", compiledTheme), "new theme")
	seed(t, filepath.Join(assetDir, "dox.css"), "new styles")
	seed(t, filepath.Join(assetDir, "github-icon.png"), "icon")
	seed(t, filepath.Join(htmlDir, compiledTheme), "old theme")
	seed(t, filepath.Join(htmlDir, "dox.css"), "old styles")

	require.NoError(t, Install(assetDir, mcssDir, htmlDir))

	data, err := os.ReadFile(filepath.Join(htmlDir, "dox.css"))
	require.NoError(t, err)
	require.Equal(t, "new styles", string(data))
}

func TestInstall_MissingTheme_ReturnsError(t *testing.T) {
	err := Install(t.TempDir(), t.TempDir(), t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), compiledTheme)
}
