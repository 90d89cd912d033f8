package fixers

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/doxfix/internal/docmodel"
	"git.home.luguber.info/inful/doxfix/internal/emoji"
	"git.home.luguber.info/inful/doxfix/internal/rewrite"
)

// shortcodeParents are the elements whose serialized content is scanned for
// square-bracket shortcodes.
var shortcodeParents = []string{"dd", "p", "h1", "h2", "h3", "h4", "h5", "h6", "li", "aside", "td"}

// pairedTagNames are the shortcodes that come as open/close pairs and map
// straight onto the element of the same name.
var pairedTagNames = []string{
	"span", "div", "aside", "code", "pre",
	"h1", "h2", "h3", "h4", "h5", "h6",
	"em", "strong", "b", "i", "u", "li", "ul", "ol",
}

type pairedTag struct {
	name string
	re   *regexp.Regexp
}

// pairedTags holds one compiled pattern per tag name. The engine has no
// backreferences, so the closing tag is baked into each pattern instead of
// referring back to the opening capture.
var pairedTags = func() []pairedTag {
	out := make([]pairedTag, 0, len(pairedTagNames))
	for _, name := range pairedTagNames {
		out = append(out, pairedTag{
			name: name,
			re:   regexp.MustCompile(`(?is)\[\s*` + name + `(.*?)\s*\](.*?)\[\s*/` + name + `\s*\]`),
		})
	}
	return out
}()

var singleTagRe = regexp.MustCompile(
	`(?is)\[\s*(/?(?:span|div|aside|code|pre|emoji|(?:parent_)?set_name|(?:parent_)?(?:add|remove|set)_class|br|li|ul|ol|(?:html)?entity))(\s+[^\]]+?)?\s*\]`)

// ShortcodeFixer expands square-bracket markup written in doc comments into
// real HTML. Paired tags become elements, single tags cover entities, emoji
// and class or name directives that retarget the surrounding element.
type ShortcodeFixer struct {
	emoji *emoji.Table
}

// NewShortcodeFixer returns the shortcode expansion rule backed by the given
// emoji table.
func NewShortcodeFixer(table *emoji.Table) *ShortcodeFixer {
	return &ShortcodeFixer{emoji: table}
}

func (f *ShortcodeFixer) Name() string { return "shortcodes" }

func (f *ShortcodeFixer) Apply(dir, filename string, doc *docmodel.Document) (bool, error) {
	changed := false
	for again := true; again; {
		again = false
		for _, name := range shortcodeParents {
			tags := docmodel.FindAll(doc.ArticleContent, func(n *html.Node) bool {
				return docmodel.IsElement(n, name)
			})
			for _, tag := range tags {
				if !docmodel.Attached(tag, doc.ArticleContent) || tag.FirstChild == nil {
					continue
				}
				if docmodel.FindParent(tag, doc.ArticleContent, "a") != nil {
					continue
				}
				did, err := f.expandTag(tag)
				if err != nil {
					return changed, err
				}
				again = again || did
			}
		}
		if again {
			changed = true
			doc.Coalesce()
		}
	}
	return changed, nil
}

// expandTag rewrites one candidate element through the serialized form.
// Paired shortcodes win over single ones; a tag is rewritten by at most one
// family per pass.
func (f *ShortcodeFixer) expandTag(tag *html.Node) (bool, error) {
	markup, err := docmodel.Render(tag)
	if err != nil {
		return false, err
	}

	paired := markup
	for _, pt := range pairedTags {
		paired, _, _ = rewrite.Run(pt.re, func(m []string, _ *[]rewrite.Event) string {
			return fmt.Sprintf("<%s%s>%s</%s>", pt.name, html.UnescapeString(m[1]), m[2], pt.name)
		}, paired)
	}
	if paired != markup {
		_, err := docmodel.ReplaceWithHTML(tag, paired)
		return true, err
	}

	out, did, events := rewrite.Run(singleTagRe, f.expandSingle, markup)
	if !did {
		return false, nil
	}
	parent := tag.Parent
	nodes, err := docmodel.ReplaceWithHTML(tag, out)
	if err != nil {
		return true, err
	}
	var target *html.Node
	if len(nodes) == 1 && nodes[0].Type == html.ElementNode {
		target = nodes[0]
	}
	for _, ev := range events {
		applyDirective(ev, target, parent)
	}
	return true, nil
}

// expandSingle substitutes one standalone shortcode. Directive shortcodes
// produce no markup and are queued as events instead.
func (f *ShortcodeFixer) expandSingle(m []string, events *[]rewrite.Event) string {
	name := strings.ToLower(m[1])
	content := strings.TrimSpace(m[2])
	switch name {
	case "entity", "htmlentity":
		if content == "" {
			return ""
		}
		if cp, err := strconv.ParseInt(content, 16, 64); err == nil && cp <= 0x10FFFF {
			return fmt.Sprintf("&#x%X;", cp)
		}
		return "&" + content + ";"
	case "emoji":
		content = strings.ToLower(content)
		if content == "" {
			return ""
		}
		if cp, ok := f.emoji.Resolve(content); ok {
			return fmt.Sprintf("&#x%X;&#xFE0F;", cp)
		}
		return ""
	case "add_class", "remove_class", "set_class",
		"parent_add_class", "parent_remove_class", "parent_set_class":
		if classes := strings.Fields(content); len(classes) > 0 {
			*events = append(*events, rewrite.Event{Name: name, Args: classes})
		}
		return ""
	case "set_name", "parent_set_name":
		if content != "" {
			*events = append(*events, rewrite.Event{Name: name, Args: []string{content}})
		}
		return ""
	default:
		if content != "" {
			return "<" + m[1] + " " + content + ">"
		}
		return "<" + m[1] + ">"
	}
}

// applyDirective mutates the rewritten element or its former parent
// according to one queued directive.
func applyDirective(ev rewrite.Event, target, parent *html.Node) {
	node := target
	name := ev.Name
	if strings.HasPrefix(name, "parent_") {
		node = parent
		name = strings.TrimPrefix(name, "parent_")
	}
	if node == nil {
		return
	}
	switch name {
	case "add_class":
		docmodel.AddClass(node, ev.Args...)
	case "remove_class":
		docmodel.RemoveClass(node, ev.Args...)
	case "set_class":
		docmodel.SetClass(node, ev.Args...)
	case "set_name":
		node.Data = ev.Args[0]
		node.DataAtom = atom.Lookup([]byte(ev.Args[0]))
	}
}
