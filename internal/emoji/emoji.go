// Package emoji resolves emoji shortcodes against the GitHub emoji table.
// The table is built once, single-threaded, before concurrent document work
// starts, and is read-only afterwards.
package emoji

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"git.home.luguber.info/inful/doxfix/internal/util/sets"
)

// SourceURL is the canonical emoji table location.
const SourceURL = "https://api.github.com/emojis"

// uriCodepointRe extracts the code point from asset URIs of the form
// .../unicode/1f366.png?v8.
var uriCodepointRe = regexp.MustCompile(`(?i)\A.+unicode/([0-9a-f]+)[.]png.*\z`)

// aliases maps shortcodes the documentation uses onto their canonical table
// entries.
var aliases = [][2]string{
	{"sundae", "ice_cream"},
	{"info", "information_source"},
}

// Table maps shortcodes to Unicode code points. Immutable once built.
type Table struct {
	codepoints sets.Set[rune]
	byName     map[string]rune
}

// processed is the cache-file form of an already-built table.
type processed struct {
	Processed  bool            `json:"__processed"`
	Names      map[string]rune `json:"names"`
	Codepoints []rune          `json:"codepoints"`
}

// Load builds the table from the cache file at path, falling back to a
// remote fetch (and writing the fetched table back to path) when the file is
// unreadable. The rewritten cache stores the processed form so later runs
// skip URI parsing.
func Load(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		slog.Info("Emoji table not cached locally, downloading", "url", SourceURL)
		raw, err = fetch(SourceURL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch emoji table: %w", err)
		}
		if werr := os.WriteFile(path, raw, 0o644); werr != nil {
			slog.Warn("Could not cache emoji table", "path", path, "error", werr)
		}
	}

	var pre processed
	if err := json.Unmarshal(raw, &pre); err == nil && pre.Processed {
		return fromProcessed(pre), nil
	}

	var entries map[string]string
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse emoji table: %w", err)
	}
	t := build(entries)

	// Write back the processed form; the in-memory table is already usable,
	// so a write failure is not fatal.
	if out, err := json.MarshalIndent(t.toProcessed(), "", "    "); err == nil {
		if werr := os.WriteFile(path, out, 0o644); werr != nil {
			slog.Warn("Could not write processed emoji table", "path", path, "error", werr)
		}
	}
	return t, nil
}

func fetch(url string) ([]byte, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

func build(entries map[string]string) *Table {
	t := &Table{
		codepoints: sets.New[rune](),
		byName:     make(map[string]rune, len(entries)),
	}
	for name, uri := range entries {
		m := uriCodepointRe.FindStringSubmatch(uri)
		if m == nil {
			// Custom GitHub assets (octocat and friends) have no code point.
			continue
		}
		cp, err := strconv.ParseInt(m[1], 16, 32)
		if err != nil {
			continue
		}
		t.byName[strings.ToLower(name)] = rune(cp)
		t.codepoints.Add(rune(cp))
	}
	for _, alias := range aliases {
		if cp, ok := t.byName[alias[1]]; ok {
			t.byName[alias[0]] = cp
		}
	}
	return t
}

func fromProcessed(p processed) *Table {
	t := &Table{
		codepoints: sets.New(p.Codepoints...),
		byName:     p.Names,
	}
	if t.byName == nil {
		t.byName = map[string]rune{}
	}
	return t
}

func (t *Table) toProcessed() processed {
	return processed{
		Processed:  true,
		Names:      t.byName,
		Codepoints: sets.Sorted(t.codepoints),
	}
}

// FromEntries builds a table directly from shortcode→URI pairs. Used by
// tests.
func FromEntries(entries map[string]string) *Table { return build(entries) }

// Resolve maps a shortcode to a code point. Precedence: a literal hex or
// decimal code point present in the known set wins, then a case-insensitive
// name lookup. Unknown shortcodes resolve to nothing rather than an error.
func (t *Table) Resolve(shortcode string) (rune, bool) {
	shortcode = strings.ToLower(strings.TrimSpace(shortcode))
	if shortcode == "" {
		return 0, false
	}
	for _, base := range []int{16, 10} {
		if cp, err := strconv.ParseInt(shortcode, base, 32); err == nil {
			if t.codepoints.Has(rune(cp)) {
				return rune(cp), true
			}
		}
	}
	if cp, ok := t.byName[shortcode]; ok {
		return cp, true
	}
	return 0, false
}
