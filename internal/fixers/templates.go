package fixers

import (
	"regexp"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/doxfix/internal/docmodel"
)

// stackedTemplateRe finds two template parameter lists run together on one
// line inside a rendered template header.
var stackedTemplateRe = regexp.MustCompile(`(?s)(template&lt;.+?&gt;)\s+(template&lt;)`)

// TemplateLineFixer breaks nested template headers onto separate lines so
// member templates of class templates stay readable.
type TemplateLineFixer struct{}

// NewTemplateLineFixer returns the template header layout rule.
func NewTemplateLineFixer() *TemplateLineFixer { return &TemplateLineFixer{} }

func (f *TemplateLineFixer) Name() string { return "template-lines" }

func (f *TemplateLineFixer) Apply(dir, filename string, doc *docmodel.Document) (bool, error) {
	changed := false
	headers := docmodel.FindAll(doc.Body, func(n *html.Node) bool {
		return docmodel.IsElement(n, "div") && docmodel.HasClass(n, "m-doc-template")
	})
	for _, header := range headers {
		markup, err := docmodel.Render(header)
		if err != nil {
			return changed, err
		}
		replaced := stackedTemplateRe.ReplaceAllString(markup, "$1<br>\n$2")
		if replaced == markup {
			continue
		}
		if _, err := docmodel.ReplaceWithHTML(header, replaced); err != nil {
			return changed, err
		}
		changed = true
	}
	return changed, nil
}
