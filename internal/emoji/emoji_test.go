package emoji

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var testEntries = map[string]string{
	"ice_cream":          "https://github.githubassets.com/images/icons/emoji/unicode/1f368.png?v8",
	"information_source": "https://github.githubassets.com/images/icons/emoji/unicode/2139.png?v8",
	"wave":               "https://github.githubassets.com/images/icons/emoji/unicode/1f44b.png?v8",
	"octocat":            "https://github.githubassets.com/images/icons/emoji/octocat.png?v8",
}

func TestFromEntries_SkipsEntriesWithoutCodepoint(t *testing.T) {
	table := FromEntries(testEntries)

	_, ok := table.Resolve("octocat")
	require.False(t, ok)
}

func TestResolve_AliasMatchesCanonicalName(t *testing.T) {
	table := FromEntries(testEntries)

	sundae, ok := table.Resolve("sundae")
	require.True(t, ok)
	iceCream, ok := table.Resolve("ice_cream")
	require.True(t, ok)
	require.Equal(t, iceCream, sundae)
	require.Equal(t, rune(0x1f368), sundae)

	info, ok := table.Resolve("info")
	require.True(t, ok)
	require.Equal(t, rune(0x2139), info)
}

func TestResolve_LiteralCodepoints_OnlyWhenKnown(t *testing.T) {
	table := FromEntries(testEntries)

	cp, ok := table.Resolve("1f368")
	require.True(t, ok)
	require.Equal(t, rune(0x1f368), cp)

	// decimal form of 1f44b
	cp, ok = table.Resolve("128075")
	require.True(t, ok)
	require.Equal(t, rune(0x1f44b), cp)

	_, ok = table.Resolve("1f999")
	require.False(t, ok)
}

func TestResolve_UnknownAndEmpty_ResolveToNothing(t *testing.T) {
	table := FromEntries(testEntries)

	_, ok := table.Resolve("no_such_emoji")
	require.False(t, ok)
	_, ok = table.Resolve("")
	require.False(t, ok)
}

func TestResolve_NameLookupIsCaseInsensitive(t *testing.T) {
	table := FromEntries(testEntries)

	cp, ok := table.Resolve("WAVE")
	require.True(t, ok)
	require.Equal(t, rune(0x1f44b), cp)
}

func TestLoad_RawCacheFile_BuildsTableAndWritesProcessedForm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emojis_v2.json")
	raw, err := json.Marshal(testEntries)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	table, err := Load(path)
	require.NoError(t, err)
	cp, ok := table.Resolve("sundae")
	require.True(t, ok)
	require.Equal(t, rune(0x1f368), cp)

	// the cache now holds the processed form and loads without reparsing
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var pre processed
	require.NoError(t, json.Unmarshal(data, &pre))
	require.True(t, pre.Processed)

	again, err := Load(path)
	require.NoError(t, err)
	cp, ok = again.Resolve("sundae")
	require.True(t, ok)
	require.Equal(t, rune(0x1f368), cp)
}
