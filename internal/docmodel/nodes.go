package docmodel

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// isElement reports whether n is an element with one of the given names.
// With no names it matches any element.
func isElement(n *html.Node, names ...string) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if len(names) == 0 {
		return true
	}
	for _, name := range names {
		if n.Data == name {
			return true
		}
	}
	return false
}

// IsElement reports whether n is an element with one of the given names.
func IsElement(n *html.Node, names ...string) bool { return isElement(n, names...) }

// IsText reports whether n is a text node.
func IsText(n *html.Node) bool { return n != nil && n.Type == html.TextNode }

func findElement(root *html.Node, name string) *html.Node {
	if root == nil {
		return nil
	}
	if isElement(root, name) {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, name); found != nil {
			return found
		}
	}
	return nil
}

// FindElement returns the first element with the given name in document
// order, or nil.
func FindElement(root *html.Node, name string) *html.Node { return findElement(root, name) }

func firstElementChild(n *html.Node, names ...string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isElement(c, names...) {
			return c
		}
	}
	return nil
}

// FirstElementChild returns the first direct element child matching one of
// names (any element when names is empty), or nil.
func FirstElementChild(n *html.Node, names ...string) *html.Node {
	return firstElementChild(n, names...)
}

// NextElementSibling returns the next sibling that is an element, or nil.
func NextElementSibling(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// Attr returns the value of the named attribute, or "".
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// HasAttr reports whether the named attribute is present.
func HasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

// SetAttr sets the named attribute, replacing any existing value.
func SetAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes the named attribute if present.
func RemoveAttr(n *html.Node, key string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// Classes returns the element's class list.
func Classes(n *html.Node) []string {
	raw := Attr(n, "class")
	if raw == "" {
		return nil
	}
	return strings.Fields(raw)
}

// FirstClass returns the element's first class, or "". Highlighted source
// tokens carry their kind as the first class.
func FirstClass(n *html.Node) string {
	classes := Classes(n)
	if len(classes) == 0 {
		return ""
	}
	return classes[0]
}

// HasClass reports whether the element carries the given class.
func HasClass(n *html.Node, class string) bool {
	for _, c := range Classes(n) {
		if c == class {
			return true
		}
	}
	return false
}

func writeClasses(n *html.Node, classes []string) {
	if len(classes) == 0 {
		RemoveAttr(n, "class")
		return
	}
	SetAttr(n, "class", strings.Join(classes, " "))
}

// AddClass appends any of the given classes not already present and reports
// whether the element changed.
func AddClass(n *html.Node, classes ...string) bool {
	existing := Classes(n)
	appended := false
	for _, class := range classes {
		found := false
		for _, c := range existing {
			if c == class {
				found = true
				break
			}
		}
		if !found {
			existing = append(existing, class)
			appended = true
		}
	}
	if appended {
		writeClasses(n, existing)
	}
	return appended
}

// RemoveClass removes any of the given classes and reports whether the
// element changed. An emptied class attribute is dropped entirely.
func RemoveClass(n *html.Node, classes ...string) bool {
	existing := Classes(n)
	removed := false
	kept := existing[:0]
	for _, c := range existing {
		drop := false
		for _, class := range classes {
			if c == class {
				drop = true
				break
			}
		}
		if drop {
			removed = true
		} else {
			kept = append(kept, c)
		}
	}
	if removed {
		writeClasses(n, kept)
	}
	return removed
}

// SetClass replaces the element's class list.
func SetClass(n *html.Node, classes ...string) {
	writeClasses(n, nil)
	AddClass(n, classes...)
}

// FindParent walks up from n looking for an ancestor element with one of the
// given names, stopping (and returning nil) at cutoff.
func FindParent(n *html.Node, cutoff *html.Node, names ...string) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if cutoff != nil && p == cutoff {
			return nil
		}
		if isElement(p, names...) {
			return p
		}
	}
	return nil
}

// ParentWithAttr walks up from n looking for an ancestor element carrying the
// named attribute.
func ParentWithAttr(n *html.Node, key string) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && HasAttr(p, key) {
			return p
		}
	}
	return nil
}

// Destroy detaches n from its parent. A destroyed node is not reachable from
// the document any more and must not be reused.
func Destroy(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Attached reports whether n is still reachable from root. Fixers collect
// nodes up front and later mutation may have detached some of them.
func Attached(n, root *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == root {
			return true
		}
	}
	return false
}

// InsertAfter inserts n directly after ref under ref's parent.
func InsertAfter(ref, n *html.Node) {
	ref.Parent.InsertBefore(n, ref.NextSibling)
}

// NewElement creates an unattached element node.
func NewElement(name string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     name,
		DataAtom: atom.Lookup([]byte(name)),
		Attr:     attrs,
	}
}

// NewText creates an unattached text node.
func NewText(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// Text returns the concatenated text of n's subtree.
func Text(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(Text(c))
	}
	return sb.String()
}

// Render serializes n to markup.
func Render(n *html.Node) (string, error) {
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return "", fmt.Errorf("failed to render node: %w", err)
	}
	return sb.String(), nil
}

// EscapeText escapes &, < and > but not quotes, matching how text nodes are
// serialized inside markup.
func EscapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// ParseFragment parses markup in the context of an element named like
// context (a plain div when context is nil) and returns the unattached nodes.
func ParseFragment(markup string, context *html.Node) ([]*html.Node, error) {
	ctxName := "div"
	if context != nil && context.Type == html.ElementNode {
		ctxName = context.Data
	}
	ctx := &html.Node{
		Type:     html.ElementNode,
		Data:     ctxName,
		DataAtom: atom.Lookup([]byte(ctxName)),
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fragment: %w", err)
	}
	return nodes, nil
}

// ReplaceWithHTML parses markup in n's parent context, inserts the resulting
// nodes in n's place and destroys n. The inserted nodes are returned. The
// subtree swap is atomic: nothing is mutated if parsing fails.
func ReplaceWithHTML(n *html.Node, markup string) ([]*html.Node, error) {
	if n.Parent == nil {
		return nil, fmt.Errorf("cannot replace a detached node")
	}
	nodes, err := ParseFragment(markup, n.Parent)
	if err != nil {
		return nil, err
	}
	for _, newNode := range nodes {
		n.Parent.InsertBefore(newNode, n)
	}
	Destroy(n)
	return nodes, nil
}

// FindAll returns every node in n's subtree satisfying pred, in document
// order.
func FindAll(n *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if pred(cur) {
			out = append(out, cur)
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

// FindByID returns the node with the given id in n's subtree, or nil.
func FindByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode && Attr(n, "id") == id {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := FindByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// ShallowSearch collects elements with one of the given names, descending
// into a subtree only while no match has been found on its path. A matched
// element's descendants are not searched again.
func ShallowSearch(start *html.Node, names []string, filter func(*html.Node) bool) []*html.Node {
	if start.Type == html.TextNode {
		return nil
	}
	if isElement(start, names...) {
		if filter == nil || filter(start) {
			return []*html.Node{start}
		}
	}
	var out []*html.Node
	for c := start.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			continue
		}
		if isElement(c, names...) {
			if filter == nil || filter(c) {
				out = append(out, c)
			}
		} else {
			out = append(out, ShallowSearch(c, names, filter)...)
		}
	}
	return out
}

// TextDescendants collects the text nodes of start's subtree satisfying
// filter, in document order.
func TextDescendants(start *html.Node, filter func(*html.Node) bool) []*html.Node {
	if start.Type == html.TextNode {
		if filter == nil || filter(start) {
			return []*html.Node{start}
		}
		return nil
	}
	var out []*html.Node
	for c := start.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			if filter == nil || filter(c) {
				out = append(out, c)
			}
		} else {
			out = append(out, TextDescendants(c, filter)...)
		}
	}
	return out
}

// Coalesce merges runs of adjacent text siblings into single nodes and drops
// empty text nodes, recursively.
func Coalesce(n *html.Node) {
	c := n.FirstChild
	for c != nil {
		next := c.NextSibling
		if c.Type == html.TextNode {
			for next != nil && next.Type == html.TextNode {
				c.Data += next.Data
				after := next.NextSibling
				n.RemoveChild(next)
				next = after
			}
			if c.Data == "" {
				n.RemoveChild(c)
			}
		} else {
			Coalesce(c)
		}
		c = next
	}
}
