package fixers

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"regexp"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/doxfix/internal/docmodel"
)

// deadHrefRe matches file-relative anchors with an optional fragment.
var deadHrefRe = regexp.MustCompile(`\A([-_a-zA-Z0-9]+\.html?)(?:#(.*))?\z`)

// DeadLinkFixer repairs anchors pointing at local files absent from the
// output set: the cross-reference class is stripped and a stable fallback id
// takes the fragment's place.
type DeadLinkFixer struct{}

// NewDeadLinkFixer returns the dead-link repair rule.
func NewDeadLinkFixer() *DeadLinkFixer { return &DeadLinkFixer{} }

func (f *DeadLinkFixer) Name() string { return "dead-links" }

func (f *DeadLinkFixer) Apply(dir, filename string, doc *docmodel.Document) (bool, error) {
	changed := false
	anchors := docmodel.FindAll(doc.Body, func(n *html.Node) bool {
		return docmodel.IsElement(n, "a") && docmodel.HasAttr(n, "href")
	})
	for _, anchor := range anchors {
		m := deadHrefRe.FindStringSubmatch(docmodel.Attr(anchor, "href"))
		if m == nil {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, m[1])); err == nil {
			continue
		}
		anchorChanged := docmodel.RemoveClass(anchor, "m-doc")
		if parent := anchor.Parent; parent != nil && docmodel.IsElement(parent, "dt", "div") {
			anchorChanged = docmodel.AddClass(anchor, "m-doc-self") || anchorChanged
			id := docmodel.Attr(parent, "id")
			if id == "" {
				id = m[2]
				if id == "" {
					id = fallbackID(m[1], docmodel.Text(anchor))
				}
				docmodel.SetAttr(parent, "id", id)
				anchorChanged = true
			}
			if docmodel.Attr(anchor, "href") != "#"+id {
				docmodel.SetAttr(anchor, "href", "#"+id)
				anchorChanged = true
			}
		}
		changed = changed || anchorChanged
	}
	return changed, nil
}

// fallbackID derives a deterministic id from the dead target and the link
// text, so repeated runs over identical input agree.
func fallbackID(target, text string) string {
	h := sha256.New()
	h.Write([]byte(target))
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}
