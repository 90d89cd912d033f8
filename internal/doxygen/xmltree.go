package doxygen

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// XMLNode is one node of a document-order XML tree. Elements have a Name and
// ordered Children; character data nodes have an empty Name and Text set.
// encoding/xml's struct decoding cannot round-trip doxygen's mixed content,
// so the preprocessor works on this explicit tree instead.
type XMLNode struct {
	Name     string
	Attrs    []xml.Attr
	Children []*XMLNode
	Text     string
}

// IsElement reports whether n is an element node.
func (n *XMLNode) IsElement() bool { return n.Name != "" }

// ParseXML reads a whole document and returns its root element. Comments and
// processing instructions are dropped.
func ParseXML(r io.Reader) (*XMLNode, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false
	var stack []*XMLNode
	var root *XMLNode
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			node := &XMLNode{Name: t.Name.Local}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				node.Attrs = append(node.Attrs, xml.Attr{Name: xml.Name{Local: a.Name.Local}, Value: a.Value})
			}
			if len(stack) == 0 {
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, &XMLNode{Text: string(t)})
		}
	}
	if root == nil {
		return nil, fmt.Errorf("xml document has no root element")
	}
	return root, nil
}

// LoadXML parses the XML file at path.
func LoadXML(path string) (*XMLNode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	root, err := ParseXML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

// WriteXML serializes root (with an XML declaration) to path.
func WriteXML(path string, root *XMLNode) error {
	var sb strings.Builder
	sb.WriteString("<?xml version='1.0' encoding='UTF-8' standalone='no'?>\n")
	if err := renderXML(&sb, root); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func renderXML(sb *strings.Builder, n *XMLNode) error {
	if !n.IsElement() {
		return xml.EscapeText(sb, []byte(n.Text))
	}
	sb.WriteByte('<')
	sb.WriteString(n.Name)
	for _, a := range n.Attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.Name.Local)
		sb.WriteString(`="`)
		if err := xml.EscapeText(sb, []byte(a.Value)); err != nil {
			return err
		}
		sb.WriteByte('"')
	}
	if len(n.Children) == 0 {
		sb.WriteString("/>")
		return nil
	}
	sb.WriteByte('>')
	for _, c := range n.Children {
		if err := renderXML(sb, c); err != nil {
			return err
		}
	}
	sb.WriteString("</")
	sb.WriteString(n.Name)
	sb.WriteByte('>')
	return nil
}

// Attr returns the value of the named attribute, or "".
func (n *XMLNode) Attr(key string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == key {
			return a.Value
		}
	}
	return ""
}

// SetAttr sets the named attribute.
func (n *XMLNode) SetAttr(key, val string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name.Local == key {
			n.Attrs[i].Value = val
			return
		}
	}
	n.Attrs = append(n.Attrs, xml.Attr{Name: xml.Name{Local: key}, Value: val})
}

// Elements returns the direct element children named name (all elements when
// name is empty).
func (n *XMLNode) Elements(name string) []*XMLNode {
	var out []*XMLNode
	for _, c := range n.Children {
		if c.IsElement() && (name == "" || c.Name == name) {
			out = append(out, c)
		}
	}
	return out
}

// First returns the first direct element child named name, or nil.
func (n *XMLNode) First(name string) *XMLNode {
	for _, c := range n.Children {
		if c.IsElement() && c.Name == name {
			return c
		}
	}
	return nil
}

// CharData returns the concatenated character data of n's direct children.
func (n *XMLNode) CharData() string {
	var sb strings.Builder
	for _, c := range n.Children {
		if !c.IsElement() {
			sb.WriteString(c.Text)
		}
	}
	return sb.String()
}

// ChildText returns the character data of the first child element named
// name, or "".
func (n *XMLNode) ChildText(name string) string {
	if c := n.First(name); c != nil {
		return c.CharData()
	}
	return ""
}

// Remove detaches child from n and reports whether it was present.
func (n *XMLNode) Remove(child *XMLNode) bool {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return true
		}
	}
	return false
}

// Append attaches child as n's last child.
func (n *XMLNode) Append(child *XMLNode) {
	n.Children = append(n.Children, child)
}
