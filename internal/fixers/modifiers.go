package fixers

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/doxfix/internal/docmodel"
	"git.home.luguber.info/inful/doxfix/internal/rewrite"
)

const modifierPattern = `defaulted|noexcept|constexpr|(?:pure )?virtual|protected|__(?:(?:vector|std|fast)call|cdecl)`

// modifierClass maps a declaration modifier to its badge color class.
func modifierClass(mod string) string {
	switch mod {
	case "defaulted":
		return "m-info"
	case "noexcept":
		return "m-success"
	case "constexpr":
		return "m-primary"
	case "pure virtual", "virtual", "protected":
		return "m-warning"
	default:
		return "m-special"
	}
}

var (
	listModifierRe   = regexp.MustCompile(`(\s+)(` + modifierPattern + `)(\s+)`)
	detailModifierRe = regexp.MustCompile(`\s+(` + modifierPattern + `)\s+`)
)

// listSectionIDs are the member list sections whose signatures carry inline
// modifier text.
var listSectionIDs = []string{"pub-static-methods", "pub-methods", "friends", "func-members"}

// ModifierListFixer wraps declaration modifiers in member list signatures
// into flat badge labels in place.
type ModifierListFixer struct{}

// NewModifierListFixer returns the member list modifier rule.
func NewModifierListFixer() *ModifierListFixer { return &ModifierListFixer{} }

func (f *ModifierListFixer) Name() string { return "modifier-lists" }

func (f *ModifierListFixer) Apply(dir, filename string, doc *docmodel.Document) (bool, error) {
	changed := false
	for _, id := range listSectionIDs {
		section := doc.SectionByID(id)
		if section == nil {
			continue
		}
		wraps := docmodel.FindAll(section, func(n *html.Node) bool {
			return docmodel.IsElement(n, "span") && docmodel.HasClass(n, "m-doc-wrap") &&
				docmodel.FindParent(n, section, "dt") != nil
		})
		for _, wrap := range wraps {
			did, err := f.badgeWrap(wrap)
			if err != nil {
				return changed, err
			}
			changed = changed || did
		}
	}
	return changed, nil
}

// badgeWrap rewrites one signature span, looping because adjacent modifiers
// share the whitespace the pattern anchors on.
func (f *ModifierListFixer) badgeWrap(wrap *html.Node) (bool, error) {
	markup, err := docmodel.Render(wrap)
	if err != nil {
		return false, err
	}
	current := markup
	for {
		next, did, _ := rewrite.Run(listModifierRe, func(m []string, _ *[]rewrite.Event) string {
			return fmt.Sprintf(`%s<span class="dox-injected m-label m-flat %s">%s</span>%s`,
				m[1], modifierClass(m[2]), m[2], m[3])
		}, current)
		if !did {
			break
		}
		current = next
	}
	if current == markup {
		return false, nil
	}
	if _, err := docmodel.ReplaceWithHTML(wrap, current); err != nil {
		return false, err
	}
	return true, nil
}

// ModifierDetailFixer moves declaration modifiers out of detailed function
// signatures into badge labels appended after the name, keeping the order
// they appeared in.
type ModifierDetailFixer struct{}

// NewModifierDetailFixer returns the detail signature modifier rule.
func NewModifierDetailFixer() *ModifierDetailFixer { return &ModifierDetailFixer{} }

func (f *ModifierDetailFixer) Name() string { return "modifier-details" }

func (f *ModifierDetailFixer) Apply(dir, filename string, doc *docmodel.Document) (bool, error) {
	changed := false
	sections := docmodel.FindAll(doc.Body, func(n *html.Node) bool {
		if !docmodel.IsElement(n, "section") {
			return false
		}
		h2 := docmodel.FirstElementChild(n, "h2")
		return h2 != nil && strings.TrimSpace(docmodel.Text(h2)) == "Function documentation"
	})
	for _, section := range sections {
		entries := docmodel.FindAll(section, func(n *html.Node) bool {
			return n.Type == html.ElementNode && docmodel.HasAttr(n, "id")
		})
		for _, entry := range entries {
			did, err := f.rewriteEntry(entry)
			if err != nil {
				return changed, err
			}
			changed = changed || did
		}
	}
	return changed, nil
}

func (f *ModifierDetailFixer) rewriteEntry(entry *html.Node) (bool, error) {
	heading := docmodel.FindElement(entry, "h3")
	if heading == nil {
		return false, nil
	}
	bumper := docmodel.FindAll(heading, func(n *html.Node) bool {
		return docmodel.IsElement(n, "span") && docmodel.HasClass(n, "m-doc-wrap-bumper")
	})
	if len(bumper) == 0 {
		return false, nil
	}
	markup, err := docmodel.Render(bumper[0])
	if err != nil {
		return false, err
	}
	var mods []string
	current := markup
	for {
		m := detailModifierRe.FindStringSubmatchIndex(current)
		if m == nil {
			break
		}
		mods = append(mods, current[m[2]:m[3]])
		current = current[:m[0]] + " " + current[m[1]:]
	}
	if len(mods) == 0 {
		return false, nil
	}
	if _, err := docmodel.ReplaceWithHTML(bumper[0], current); err != nil {
		return false, err
	}

	wrap := docmodel.FindAll(heading, func(n *html.Node) bool {
		return docmodel.IsElement(n, "span") && docmodel.HasClass(n, "m-doc-wrap") &&
			!docmodel.HasClass(n, "m-doc-wrap-bumper")
	})
	if len(wrap) == 0 {
		return true, nil
	}
	tail := wrap[0].LastChild
	if tail == nil {
		return true, nil
	}
	anchor := docmodel.FindElement(tail, "span")
	for _, mod := range mods {
		badge := docmodel.NewElement("span", html.Attribute{
			Key: "class",
			Val: "dox-injected m-label " + modifierClass(mod),
		})
		badge.AppendChild(docmodel.NewText(mod))
		if anchor != nil {
			anchor.Parent.InsertBefore(badge, anchor)
			anchor.Parent.InsertBefore(docmodel.NewText(" "), anchor)
		} else {
			tail.AppendChild(badge)
			tail.AppendChild(docmodel.NewText(" "))
		}
	}
	return true, nil
}
