// Package fixers contains the rewrite rules applied to each generated page.
// Every fixer implements one contract over the document model; some rewrite
// serialized subtrees through the regex engine, some mutate tree nodes
// directly, never both at once on the same node.
package fixers

import (
	"git.home.luguber.info/inful/doxfix/internal/config"
	"git.home.luguber.info/inful/doxfix/internal/docmodel"
	"git.home.luguber.info/inful/doxfix/internal/emoji"
	"git.home.luguber.info/inful/doxfix/internal/symbols"
)

// Fixer is one self-contained rewrite rule. Apply mutates the document tree
// and reports whether anything changed. Fixers hold only immutable state
// injected at construction, so one instance serves all workers.
type Fixer interface {
	Name() string
	Apply(dir, filename string, doc *docmodel.Document) (bool, error)
}

// Options carries the immutable context the fixers are built from: compiled
// symbol sets, the emoji table, auto-link patterns and front-page badges.
type Options struct {
	Classifier *symbols.Classifier
	Emoji      *emoji.Table
	AutoLinks  []config.AutoLink
	Badges     []config.Badge
}

// Defaults returns the fixer sequence in its fixed application order.
func Defaults(opts Options) ([]Fixer, error) {
	autoLinks, err := NewAutoLinkFixer(opts.AutoLinks)
	if err != nil {
		return nil, err
	}
	return []Fixer{
		NewDeadLinkFixer(),
		NewShortcodeFixer(opts.Emoji),
		NewCodeBlockFixer(opts.Classifier),
		NewFrontPageFixer(opts.Badges),
		NewModifierListFixer(),
		NewModifierDetailFixer(),
		autoLinks,
		NewLinkFixer(),
		NewTemplateLineFixer(),
	}, nil
}
