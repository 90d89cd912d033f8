// Package docmodel wraps one parsed documentation page and provides the
// structural navigation and mutation primitives the fixers operate on.
package docmodel

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// Document is one parsed output page. It is owned exclusively by the worker
// processing it and is never shared.
type Document struct {
	path string
	root *html.Node

	Head *html.Node
	Body *html.Node

	// ArticleContent is the innermost content container of the page body.
	ArticleContent *html.Node

	// TOC is the table-of-contents block, if the page has one.
	TOC *html.Node

	// Sections are the direct <section> children of ArticleContent.
	Sections []*html.Node
}

// Load parses the page at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	defer f.Close()

	root, err := html.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return FromNode(root, path)
}

// FromNode builds a Document around an already-parsed tree. Used by tests and
// by Load.
func FromNode(root *html.Node, path string) (*Document, error) {
	d := &Document{path: path, root: root}
	d.Head = findElement(root, "head")
	d.Body = findElement(root, "body")
	if d.Body == nil {
		return nil, fmt.Errorf("%s: page has no body", path)
	}
	if err := d.resolveStructure(); err != nil {
		return nil, err
	}
	return d, nil
}

// resolveStructure locates the article content container, the TOC block and
// the top-level sections. The generated pages nest the content three element
// levels below <article>.
func (d *Document) resolveStructure() error {
	main := firstElementChild(d.Body, "main")
	if main == nil {
		return fmt.Errorf("%s: page has no main element", d.path)
	}
	article := firstElementChild(main, "article")
	if article == nil {
		return fmt.Errorf("%s: page has no article element", d.path)
	}
	content := article
	for range 3 {
		div := firstElementChild(content, "div")
		if div == nil {
			return fmt.Errorf("%s: article content container not found", d.path)
		}
		content = div
	}
	d.ArticleContent = content

	d.TOC = nil
	for c := content.FirstChild; c != nil; c = c.NextSibling {
		if !isElement(c, "div") || !HasClass(c, "m-block") || !HasClass(c, "m-default") {
			continue
		}
		if h3 := findElement(c, "h3"); h3 != nil && strings.TrimSpace(Text(h3)) == "Contents" {
			d.TOC = c
			break
		}
	}

	d.Sections = nil
	for c := content.FirstChild; c != nil; c = c.NextSibling {
		if isElement(c, "section") {
			d.Sections = append(d.Sections, c)
		}
	}
	return nil
}

// Path returns the page's source path.
func (d *Document) Path() string { return d.path }

// Root returns the document node.
func (d *Document) Root() *html.Node { return d.root }

// SectionByID returns the top-level section with the given id, or nil.
func (d *Document) SectionByID(id string) *html.Node {
	for _, s := range d.Sections {
		if Attr(s, "id") == id {
			return s
		}
	}
	return nil
}

// Coalesce merges adjacent text nodes throughout the page. Fixers call this
// after string-level rewrites so later passes see normalized runs.
func (d *Document) Coalesce() { Coalesce(d.root) }

// Flush serializes the page back to its source path. It is called at most
// once, after all fixers completed without error.
func (d *Document) Flush() error {
	var sb strings.Builder
	if err := html.Render(&sb, d.root); err != nil {
		return fmt.Errorf("failed to render %s: %w", d.path, err)
	}
	if err := os.WriteFile(d.path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", d.path, err)
	}
	return nil
}
