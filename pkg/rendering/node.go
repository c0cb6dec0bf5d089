package rendering

import (
	"html"
	"io"
	"strings"
)

// Attr is a single attribute on a rendered Node. Boolean attributes carry an
// empty Value and Bool set.
type Attr struct {
	Name  string
	Value string
	Bool  bool
}

// Node is an immutable description of rendered output. Widgets produce a Node
// tree from Build; hosts serialize it with WriteHTML.
type Node struct {
	Tag      string
	Attrs    []Attr
	Children []Node
}

// Attr returns the value of the named attribute and whether it is present.
func (n Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// HasAttr reports whether the named attribute is present.
func (n Node) HasAttr(name string) bool {
	_, ok := n.Attr(name)
	return ok
}

// FindAll returns every node in the tree (including n) with the given tag,
// in document order.
func (n Node) FindAll(tag string) []Node {
	var out []Node
	n.walk(func(node Node) {
		if node.Tag == tag {
			out = append(out, node)
		}
	})
	return out
}

func (n Node) walk(visit func(Node)) {
	visit(n)
	for _, child := range n.Children {
		child.walk(visit)
	}
}

// voidTags never carry children or a closing tag.
var voidTags = map[string]bool{
	"source": true,
	"img":    true,
	"br":     true,
}

// WriteHTML serializes the node tree as HTML.
func (n Node) WriteHTML(w io.Writer) error {
	var sb strings.Builder
	n.writeHTML(&sb)
	_, err := io.WriteString(w, sb.String())
	return err
}

// HTML returns the node tree serialized as HTML.
func (n Node) HTML() string {
	var sb strings.Builder
	n.writeHTML(&sb)
	return sb.String()
}

func (n Node) writeHTML(sb *strings.Builder) {
	if n.Tag == "" {
		return
	}
	sb.WriteByte('<')
	sb.WriteString(n.Tag)
	for _, a := range n.Attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.Name)
		if a.Bool {
			continue
		}
		sb.WriteString(`="`)
		sb.WriteString(html.EscapeString(a.Value))
		sb.WriteByte('"')
	}
	if voidTags[n.Tag] {
		sb.WriteString(" />")
		return
	}
	sb.WriteByte('>')
	for _, child := range n.Children {
		child.writeHTML(sb)
	}
	sb.WriteString("</")
	sb.WriteString(n.Tag)
	sb.WriteByte('>')
}
