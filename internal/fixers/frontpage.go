package fixers

import (
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/doxfix/internal/config"
	"git.home.luguber.info/inful/doxfix/internal/docmodel"
)

// FrontPageFixer reshapes the landing page: the generated page title is
// replaced by the project banner image, and the configured badge row is
// injected right below it.
type FrontPageFixer struct {
	badges []config.Badge
}

// NewFrontPageFixer returns the landing page rule for the given badge row.
func NewFrontPageFixer(badges []config.Badge) *FrontPageFixer {
	return &FrontPageFixer{badges: badges}
}

func (f *FrontPageFixer) Name() string { return "front-page" }

func (f *FrontPageFixer) Apply(dir, filename string, doc *docmodel.Document) (bool, error) {
	if filename != "index.html" {
		return false, nil
	}
	heading := docmodel.FindElement(doc.ArticleContent, "h1")
	banner := docmodel.FindElement(doc.ArticleContent, "img")
	if heading == nil || banner == nil {
		return false, nil
	}
	docmodel.Destroy(banner)
	heading.Parent.InsertBefore(banner, heading)
	docmodel.Destroy(heading)
	// the banner is only styled when a badge row accompanies it
	if len(f.badges) > 0 {
		docmodel.AddClass(banner, "main_page_banner")
		row := docmodel.NewElement("div", html.Attribute{Key: "class", Val: "gh-badges"})
		for _, badge := range f.badges {
			if badge.IsBreak() {
				row.AppendChild(docmodel.NewElement("br"))
				continue
			}
			link := docmodel.NewElement("a",
				html.Attribute{Key: "href", Val: badge.Href},
				html.Attribute{Key: "target", Val: "_blank"},
			)
			link.AppendChild(docmodel.NewElement("img",
				html.Attribute{Key: "src", Val: badge.Src},
				html.Attribute{Key: "alt", Val: badge.Alt},
			))
			row.AppendChild(link)
		}
		docmodel.InsertAfter(banner, row)
	}
	return true, nil
}
