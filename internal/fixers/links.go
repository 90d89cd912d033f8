package fixers

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/doxfix/internal/docmodel"
)

var (
	externalHrefRe = regexp.MustCompile(`(?i)\A(?:https?|s?ftp|mailto):.+\z`)
	godboltHrefRe  = regexp.MustCompile(`(?i)\A\s*https://godbolt\.org/z/.+\z`)
	hexFragmentRe  = regexp.MustCompile(`\A#([a-fA-F0-9]+)\z`)
	hexIDRe        = regexp.MustCompile(`\A[a-fA-F0-9]+\z`)
)

// LinkFixer normalizes anchor behavior: external links open in a new tab,
// godbolt links become note blocks attached to the following code listing,
// and hash links whose target id no longer exists are retargeted at the
// nearest enclosing anchor-bearing element.
type LinkFixer struct{}

// NewLinkFixer returns the link normalization rule.
func NewLinkFixer() *LinkFixer { return &LinkFixer{} }

func (f *LinkFixer) Name() string { return "links" }

func (f *LinkFixer) Apply(dir, filename string, doc *docmodel.Document) (bool, error) {
	changed := false
	anchors := docmodel.FindAll(doc.Body, func(n *html.Node) bool {
		return docmodel.IsElement(n, "a") && docmodel.HasAttr(n, "href")
	})
	for _, anchor := range anchors {
		href := docmodel.Attr(anchor, "href")
		if externalHrefRe.MatchString(href) {
			if docmodel.Attr(anchor, "target") != "_blank" {
				docmodel.SetAttr(anchor, "target", "_blank")
				changed = true
			}
			changed = docmodel.AddClass(anchor, "dox-external") || changed
			if godboltHrefRe.MatchString(href) {
				changed = f.embedGodbolt(anchor) || changed
			}
			continue
		}
		changed = f.repairFragment(doc, anchor, href) || changed
	}
	return changed, nil
}

// embedGodbolt styles a compiler-explorer link and, when it sits alone in a
// paragraph directly before a code listing, pulls the paragraph inside the
// listing so the note renders attached to the code.
func (f *LinkFixer) embedGodbolt(anchor *html.Node) bool {
	changed := docmodel.AddClass(anchor, "godbolt")
	parent := anchor.Parent
	if parent == nil || !docmodel.IsElement(parent, "p") || !loneChild(parent, anchor) {
		return changed
	}
	changed = docmodel.AddClass(parent, "m-note") || changed
	changed = docmodel.AddClass(parent, "m-success") || changed
	changed = docmodel.AddClass(parent, "godbolt") || changed
	next := docmodel.NextElementSibling(parent)
	if next != nil && docmodel.IsElement(next, "pre") {
		parent.Parent.RemoveChild(parent)
		if first := next.FirstChild; first != nil {
			next.InsertBefore(parent, first)
		} else {
			next.AppendChild(parent)
		}
		changed = true
	}
	return changed
}

// repairFragment retargets hash links whose id vanished from the page. The
// replacement is the id of the nearest enclosing element that still carries
// an anchor id, or a bare "#" when none exists.
func (f *LinkFixer) repairFragment(doc *docmodel.Document, anchor *html.Node, href string) bool {
	if !docmodel.HasClass(anchor, "m-doc") {
		return false
	}
	m := hexFragmentRe.FindStringSubmatch(href)
	if m == nil {
		return false
	}
	if docmodel.FindByID(doc.Body, m[1]) != nil {
		return false
	}
	docmodel.RemoveClass(anchor, "m-doc")
	docmodel.AddClass(anchor, "m-doc-self")
	target := "#"
	for p := docmodel.ParentWithAttr(anchor, "id"); p != nil; p = docmodel.ParentWithAttr(p, "id") {
		if id := docmodel.Attr(p, "id"); hexIDRe.MatchString(id) {
			target = "#" + id
			break
		}
	}
	docmodel.SetAttr(anchor, "href", target)
	return true
}

// loneChild reports whether child is the only non-whitespace content of
// parent.
func loneChild(parent, child *html.Node) bool {
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c == child {
			continue
		}
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) == "" {
			continue
		}
		return false
	}
	return true
}
