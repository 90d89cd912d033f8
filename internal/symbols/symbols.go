// Package symbols holds the pattern sets describing a project's namespaces,
// types, enum values, macros and literal suffixes, and classifies the token
// runs the upstream highlighter produced for rendered source code.
package symbols

import (
	"fmt"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/doxfix/internal/util/sets"
)

// Sets are the growable pattern collections populated from built-in
// defaults, configuration and the symbol-index XML. Compile freezes them;
// they must not be touched afterwards.
type Sets struct {
	Namespaces      sets.Set[string]
	Types           sets.Set[string]
	Enums           sets.Set[string]
	StringLiterals  sets.Set[string]
	NumericLiterals sets.Set[string]
	Macros          []string
}

// NewSets returns empty pattern collections.
func NewSets() *Sets {
	return &Sets{
		Namespaces:      sets.New[string](),
		Types:           sets.New[string](),
		Enums:           sets.New[string](),
		StringLiterals:  sets.New[string](),
		NumericLiterals: sets.New[string](),
	}
}

// flatten freezes a pattern set into one anchored alternation. A nil regexp
// stands in for an empty set and never matches.
func flatten(s sets.Set[string], prefix, suffix string) (*regexp.Regexp, error) {
	if len(s) == 0 {
		return nil, nil
	}
	alts := sets.Sorted(s)
	pattern := `\A` + prefix + `(?:` + strings.Join(alts, "|") + `)` + suffix + `\z`
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to compile symbol pattern set: %w", err)
	}
	return re, nil
}

func fullMatch(re *regexp.Regexp, s string) bool {
	return re != nil && re.MatchString(s)
}

// Compile freezes the sets into a Classifier. The classifier is immutable
// and safe for concurrent readers.
func (s *Sets) Compile() (*Classifier, error) {
	c := &Classifier{}
	var err error
	if c.namespaces, err = flatten(s.Namespaces, `(?:::)?`, `(?:::)?`); err != nil {
		return nil, fmt.Errorf("namespaces: %w", err)
	}
	if c.types, err = flatten(s.Types, `(?:::)?`, `(?:::)?`); err != nil {
		return nil, fmt.Errorf("types: %w", err)
	}
	if c.enums, err = flatten(s.Enums, `(?:::)?`, ``); err != nil {
		return nil, fmt.Errorf("enums: %w", err)
	}
	if c.stringLiterals, err = flatten(s.StringLiterals, ``, ``); err != nil {
		return nil, fmt.Errorf("string_literals: %w", err)
	}
	if c.numericLiterals, err = flatten(s.NumericLiterals, ``, ``); err != nil {
		return nil, fmt.Errorf("numeric_literals: %w", err)
	}
	for _, m := range s.Macros {
		re, err := regexp.Compile(`\A(?:` + m + `)\z`)
		if err != nil {
			return nil, fmt.Errorf("macros: %w", err)
		}
		c.macros = append(c.macros, re)
	}
	return c, nil
}
