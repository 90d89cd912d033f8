package fixers

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/doxfix/internal/config"
	"git.home.luguber.info/inful/doxfix/internal/docmodel"
	"git.home.luguber.info/inful/doxfix/internal/rewrite"
)

// compiledLink is one auto-link pattern ready for scanning. The engine has
// no lookaround, so the identifier boundary on either side is expressed as a
// capture that the substitution re-emits.
type compiledLink struct {
	re       *regexp.Regexp
	full     *regexp.Regexp
	uri      string
	external bool
}

// AutoLinkFixer injects cross-reference links for known symbol names found
// in plain text, and retargets existing reference links whose text matches a
// configured pattern but whose destination does not.
type AutoLinkFixer struct {
	links []compiledLink
}

// NewAutoLinkFixer compiles the configured auto-link table.
func NewAutoLinkFixer(links []config.AutoLink) (*AutoLinkFixer, error) {
	f := &AutoLinkFixer{links: make([]compiledLink, 0, len(links))}
	for _, l := range links {
		re, err := regexp.Compile(`(\A|[^a-zA-Z_])(` + l.Pattern + `)([^a-zA-Z_]|\z)`)
		if err != nil {
			return nil, fmt.Errorf("compiling auto-link pattern %q: %w", l.Pattern, err)
		}
		full, err := regexp.Compile(`\A(?:` + l.Pattern + `)\z`)
		if err != nil {
			return nil, fmt.Errorf("compiling auto-link pattern %q: %w", l.Pattern, err)
		}
		f.links = append(f.links, compiledLink{
			re:       re,
			full:     full,
			uri:      l.URI,
			external: strings.HasPrefix(l.URI, "http"),
		})
	}
	return f, nil
}

func (f *AutoLinkFixer) Name() string { return "auto-links" }

func (f *AutoLinkFixer) Apply(dir, filename string, doc *docmodel.Document) (bool, error) {
	changed := f.retargetExisting(doc)
	did, err := f.injectLinks(doc)
	return changed || did, err
}

// retargetExisting repoints reference links whose visible text matches a
// configured pattern but whose href disagrees with the configured
// destination.
func (f *AutoLinkFixer) retargetExisting(doc *docmodel.Document) bool {
	changed := false
	anchors := docmodel.FindAll(doc.ArticleContent, func(n *html.Node) bool {
		return docmodel.IsElement(n, "a") &&
			(docmodel.HasClass(n, "m-doc") || docmodel.HasClass(n, "m-doc-self"))
	})
	for _, anchor := range anchors {
		text := docmodel.Text(anchor)
		for _, link := range f.links {
			if docmodel.Attr(anchor, "href") == link.uri || !link.full.MatchString(text) {
				continue
			}
			docmodel.SetAttr(anchor, "href", link.uri)
			docmodel.SetClass(anchor, "m-doc", "dox-injected")
			if link.external {
				docmodel.AddClass(anchor, "dox-external")
			}
			changed = true
			break
		}
	}
	return changed
}

// injectLinks scans text content outside existing anchors and wraps matches
// in new reference links. Replacement output is parsed back into the tree
// and its fresh text re-queued, so several names in one text node all get
// linked in a single application.
func (f *AutoLinkFixer) injectLinks(doc *docmodel.Document) (bool, error) {
	hosts := docmodel.ShallowSearch(doc.ArticleContent,
		[]string{"dd", "p", "dt", "h3", "td", "div", "figcaption"},
		func(n *html.Node) bool {
			return docmodel.FindParent(n, doc.ArticleContent, "a") == nil
		})
	var texts []*html.Node
	for _, host := range hosts {
		texts = append(texts, docmodel.TextDescendants(host, func(n *html.Node) bool {
			return docmodel.FindParent(n, host, "a") == nil
		})...)
	}

	changed := false
	for _, link := range f.links {
		for i := 0; i < len(texts); {
			node := texts[i]
			parent := node.Parent
			out, did, _ := rewrite.Run(link.re, link.substitute, docmodel.EscapeText(node.Data))
			if !did {
				i++
				continue
			}
			leadingSpace := startsWithSpace(out)
			fresh, err := docmodel.ReplaceWithHTML(node, out)
			if err != nil {
				return changed, err
			}
			if leadingSpace && len(fresh) > 0 && fresh[0].Type == html.TextNode && !startsWithSpace(fresh[0].Data) {
				fresh[0].Parent.InsertBefore(docmodel.NewText(" "), fresh[0])
			}
			changed = true
			texts = append(texts[:i], texts[i+1:]...)
			for _, n := range fresh {
				texts = append(texts, docmodel.TextDescendants(n, func(t *html.Node) bool {
					return docmodel.FindParent(t, parent, "a") == nil
				})...)
			}
		}
	}
	return changed, nil
}

// substitute renders the replacement anchor. The boundary captures around
// the matched name are passed through unchanged.
func (l compiledLink) substitute(m []string, _ *[]rewrite.Event) string {
	classes := "m-doc dox-injected"
	target := ""
	if l.external {
		classes += " dox-external"
		target = ` target="_blank"`
	}
	return fmt.Sprintf(`%s<a href="%s" class="%s"%s>%s</a>%s`,
		m[1], l.uri, classes, target, m[2], m[len(m)-1])
}

func startsWithSpace(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && unicode.IsSpace(r)
}
