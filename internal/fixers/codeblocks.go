package fixers

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/doxfix/internal/docmodel"
	"git.home.luguber.info/inful/doxfix/internal/symbols"
)

// CodeBlockFixer repairs the syntax highlighting inside rendered code
// listings: it reassembles multi-line comments the generator split apart,
// reclassifies compound names against the configured symbol sets, fixes
// literal suffixes, macros and misidentified keywords, and promotes code
// listings that got rendered as inline paragraphs back to block level.
type CodeBlockFixer struct {
	classifier *symbols.Classifier
}

// NewCodeBlockFixer returns the highlighting repair rule for the compiled
// symbol sets.
func NewCodeBlockFixer(classifier *symbols.Classifier) *CodeBlockFixer {
	return &CodeBlockFixer{classifier: classifier}
}

func (f *CodeBlockFixer) Name() string { return "code-blocks" }

func (f *CodeBlockFixer) Apply(dir, filename string, doc *docmodel.Document) (bool, error) {
	changed := false
	blocks := docmodel.FindAll(doc.Body, func(n *html.Node) bool {
		return docmodel.IsElement(n, "pre", "code") && docmodel.HasClass(n, "m-code")
	})
	for again := true; again; {
		again = false
		for _, block := range blocks {
			if !docmodel.Attached(block, doc.Body) {
				continue
			}
			if f.fixBlock(block) {
				docmodel.Coalesce(block)
				again = true
			}
		}
		changed = changed || again
	}
	changed = f.promoteInlineBlocks(doc) || changed
	return changed, nil
}

func (f *CodeBlockFixer) fixBlock(block *html.Node) bool {
	changed := f.stitchComments(block)
	changed = f.reclassifyCompounds(block) || changed
	changed = f.fixLiteralSuffixes(block) || changed
	changed = f.markMacros(block) || changed
	changed = f.fixKeywords(block) || changed
	return changed
}

// stitchComments merges the escaped comment delimiters the generator emits
// for C-style multi-line comments back into a single comment token.
func (f *CodeBlockFixer) stitchComments(block *html.Node) bool {
	changed := false
	open := findOperatorSpan(block, "/!*")
	for open != nil {
		closeTag := nextOperatorSibling(open, "*!/")
		if closeTag == nil {
			break
		}
		nextOpen := nextOperatorSibling(closeTag, "/!*")

		var middle strings.Builder
		for c := open.NextSibling; c != nil && c != closeTag; c = c.NextSibling {
			middle.WriteString(docmodel.Text(c))
		}
		for c := open.NextSibling; c != nil; {
			next := c.NextSibling
			stop := c == closeTag
			docmodel.Destroy(c)
			if stop {
				break
			}
			c = next
		}
		setText(open, "/*"+middle.String()+"*/")
		docmodel.SetClass(open, symbols.KindComment)
		changed = true
		open = nextOpen
	}
	return changed
}

// reclassifyCompounds gathers maximal runs of adjacent name and separator
// spans and recolors them against the configured namespaces, types and
// enum values.
func (f *CodeBlockFixer) reclassifyCompounds(block *html.Node) bool {
	seeds := findClassedSpans(block, symbols.KindName, symbols.KindLabel, symbols.KindBuiltinType)
	visited := make(map[*html.Node]bool, len(seeds))
	changed := false
	for _, seed := range seeds {
		if visited[seed] {
			continue
		}
		visited[seed] = true
		run := assembleRun(seed, visited)
		if run == nil {
			continue
		}
		tokens := make([]symbols.Token, len(run))
		for i, n := range run {
			tokens[i] = symbols.Token{Kind: docmodel.FirstClass(n), Text: docmodel.Text(n)}
		}
		res := f.classifier.ClassifyCompound(tokens)
		changed = applyClassification(run, res) || changed
	}
	return changed
}

// assembleRun extends a seed span left and right across directly adjacent
// sibling spans that look like parts of a qualified name. Returns nil when
// the assembled text is not a well-formed chain.
func assembleRun(seed *html.Node, visited map[*html.Node]bool) []*html.Node {
	run := []*html.Node{seed}
	for prev := run[0].PrevSibling; runnable(prev); prev = prev.PrevSibling {
		run = append([]*html.Node{prev}, run...)
		visited[prev] = true
	}
	for next := run[len(run)-1].NextSibling; runnable(next); next = next.NextSibling {
		run = append(run, next)
		visited[next] = true
	}
	var full strings.Builder
	for _, n := range run {
		full.WriteString(docmodel.Text(n))
	}
	if !symbols.IsQualifiedChain(full.String()) {
		return nil
	}
	for len(run) > 0 && docmodel.Text(run[0]) == "::" {
		run = run[1:]
	}
	for len(run) > 0 && docmodel.Text(run[len(run)-1]) == "::" {
		run = run[:len(run)-1]
	}
	if len(run) == 0 {
		return nil
	}
	return run
}

func runnable(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode || !singleTextChild(n) {
		return false
	}
	switch docmodel.FirstClass(n) {
	case symbols.KindName, symbols.KindLabel, symbols.KindBuiltinType, symbols.KindOperator:
		return symbols.IsQualifierToken(docmodel.Text(n))
	}
	return false
}

// applyClassification turns a classification result into tree edits and
// reports whether anything actually changed.
func applyClassification(run []*html.Node, res symbols.Result) bool {
	changed := false
	for _, mark := range res.Marks {
		node := run[mark.Index]
		if docmodel.FirstClass(node) != mark.Kind {
			docmodel.SetClass(node, mark.Kind)
			changed = true
		}
	}
	if res.Collapse != nil {
		first := run[0]
		for _, n := range run[1:res.Collapse.Count] {
			docmodel.Destroy(n)
			changed = true
		}
		if docmodel.Text(first) != res.Collapse.Text {
			setText(first, res.Collapse.Text)
			changed = true
		}
		if docmodel.RemoveClass(first, symbols.KindName, symbols.KindLabel, symbols.KindBuiltinType) {
			docmodel.AddClass(first, symbols.KindNamespace)
			changed = true
		}
	}
	return changed
}

// fixLiteralSuffixes recolors user-defined literal suffixes that the
// generator tags as plain names after a string or number token.
func (f *CodeBlockFixer) fixLiteralSuffixes(block *html.Node) bool {
	changed := false
	for _, span := range findClassedSpans(block, symbols.KindName) {
		prev := span.PrevSibling
		if prev == nil || prev.Type != html.ElementNode || !docmodel.HasAttr(prev, "class") {
			continue
		}
		text := docmodel.Text(span)
		if docmodel.HasClass(prev, "s") && f.classifier.IsStringLiteralSuffix(text) {
			docmodel.SetClass(span, symbols.KindStringAffix)
			changed = true
			continue
		}
		switch prevKind := docmodel.FirstClass(prev); prevKind {
		case "mf", "mi", "mb", "mh":
			if f.classifier.IsNumericLiteralSuffix(text) {
				docmodel.SetClass(span, prevKind)
				changed = true
			}
		}
	}
	return changed
}

func (f *CodeBlockFixer) markMacros(block *html.Node) bool {
	changed := false
	for _, span := range findClassedSpans(block, symbols.KindName, symbols.KindLabel, symbols.KindBuiltinType, "nc", "nf") {
		if f.classifier.IsMacro(docmodel.Text(span)) {
			docmodel.SetClass(span, symbols.KindMacro)
			changed = true
		}
	}
	return changed
}

func (f *CodeBlockFixer) fixKeywords(block *html.Node) bool {
	changed := false
	for _, span := range findClassedSpans(block, "nf", "nb", symbols.KindBuiltinType, symbols.KindType, "kr") {
		if symbols.IsKeyword(docmodel.Text(span)) {
			docmodel.SetClass(span, symbols.KindKeyword)
			changed = true
		}
	}
	return changed
}

// promoteInlineBlocks lifts code listings rendered as inline content of a
// paragraph back out to block level.
func (f *CodeBlockFixer) promoteInlineBlocks(doc *docmodel.Document) bool {
	changed := false
	blocks := docmodel.FindAll(doc.Body, func(n *html.Node) bool {
		return docmodel.IsElement(n, "code") &&
			(docmodel.HasClass(n, "m-code") || docmodel.HasClass(n, "m-console"))
	})
	for _, block := range blocks {
		parent := block.Parent
		if parent == nil || !docmodel.IsElement(parent, "p") {
			continue
		}
		if parent.Parent == nil || !docmodel.IsElement(parent.Parent, "div") {
			continue
		}
		block.Data = "pre"
		block.DataAtom = atom.Pre
		docmodel.Destroy(block)
		parent.Parent.InsertBefore(block, parent)
		docmodel.Coalesce(parent)
		if emptyOrBlank(parent) {
			docmodel.Destroy(parent)
		}
		changed = true
	}
	return changed
}

func emptyOrBlank(n *html.Node) bool {
	if n.FirstChild == nil {
		return true
	}
	only := n.FirstChild
	return only == n.LastChild && only.Type == html.TextNode && strings.TrimSpace(only.Data) == ""
}

// findClassedSpans returns the spans under block whose leading class is one
// of kinds and whose content is a single text node.
func findClassedSpans(block *html.Node, kinds ...string) []*html.Node {
	set := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return docmodel.FindAll(block, func(n *html.Node) bool {
		return docmodel.IsElement(n, "span") && singleTextChild(n) && set[docmodel.FirstClass(n)]
	})
}

func findOperatorSpan(block *html.Node, text string) *html.Node {
	found := docmodel.FindAll(block, func(n *html.Node) bool {
		return operatorSpan(n, text)
	})
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

func nextOperatorSibling(n *html.Node, text string) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if operatorSpan(s, text) {
			return s
		}
	}
	return nil
}

func operatorSpan(n *html.Node, text string) bool {
	return docmodel.IsElement(n, "span") && docmodel.HasClass(n, symbols.KindOperator) &&
		singleTextChild(n) && docmodel.Text(n) == text
}

func singleTextChild(n *html.Node) bool {
	return n.FirstChild != nil && n.FirstChild == n.LastChild && n.FirstChild.Type == html.TextNode
}

func setText(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
	n.AppendChild(docmodel.NewText(text))
}
