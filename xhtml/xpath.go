package xhtml

import (
	"fmt"
	"strings"

	"github.com/antchfx/xpath"
	"github.com/beevik/etree"
)

// Namespaces known to XPath expressions.
var Namespaces = map[string]string{
	"xhtml": Namespace,
}

// navigator implements xpath.NodeNavigator over etree tokens. Document node
// is represented by the element embedded into etree.Document.
type navigator struct {
	root *etree.Element
	cur  etree.Token
	attr int // index into element attributes, -1 when positioned on a node
}

func newNavigator(doc *etree.Document) *navigator {
	return &navigator{root: &doc.Element, cur: &doc.Element, attr: -1}
}

func (n *navigator) element() (*etree.Element, bool) {
	el, ok := n.cur.(*etree.Element)
	return el, ok
}

func (n *navigator) NodeType() xpath.NodeType {
	if n.attr >= 0 {
		return xpath.AttributeNode
	}
	switch t := n.cur.(type) {
	case *etree.Element:
		if t == n.root {
			return xpath.RootNode
		}
		return xpath.ElementNode
	case *etree.CharData:
		return xpath.TextNode
	default:
		// comments, processing instructions and directives
		return xpath.CommentNode
	}
}

func (n *navigator) LocalName() string {
	el, ok := n.element()
	if !ok {
		return ""
	}
	if n.attr >= 0 {
		return el.Attr[n.attr].Key
	}
	return el.Tag
}

func (n *navigator) Prefix() string {
	el, ok := n.element()
	if !ok {
		return ""
	}
	if n.attr >= 0 {
		return el.Attr[n.attr].Space
	}
	return el.Space
}

// NamespaceURL lets prefixed expressions compiled with Namespaces match
// elements in default namespace.
func (n *navigator) NamespaceURL() string {
	el, ok := n.element()
	if !ok || n.attr >= 0 || el == n.root {
		return ""
	}
	return el.NamespaceURI()
}

func (n *navigator) Value() string {
	switch t := n.cur.(type) {
	case *etree.Element:
		if n.attr >= 0 {
			return t.Attr[n.attr].Value
		}
		return innerText(t)
	case *etree.CharData:
		return t.Data
	case *etree.Comment:
		return t.Data
	default:
		return ""
	}
}

func (n *navigator) Copy() xpath.NodeNavigator {
	cp := *n
	return &cp
}

func (n *navigator) MoveToRoot() {
	n.cur, n.attr = n.root, -1
}

func (n *navigator) MoveToParent() bool {
	if n.attr >= 0 {
		n.attr = -1
		return true
	}
	if n.cur == etree.Token(n.root) {
		return false
	}
	p := n.cur.Parent()
	if p == nil {
		return false
	}
	n.cur = p
	return true
}

func (n *navigator) MoveToNextAttribute() bool {
	el, ok := n.element()
	if !ok || el == n.root {
		return false
	}
	if n.attr+1 >= len(el.Attr) {
		return false
	}
	n.attr++
	return true
}

func (n *navigator) MoveToChild() bool {
	if n.attr >= 0 {
		return false
	}
	el, ok := n.element()
	if !ok || len(el.Child) == 0 {
		return false
	}
	n.cur = el.Child[0]
	return true
}

func (n *navigator) MoveToFirst() bool {
	if n.attr >= 0 || n.cur == etree.Token(n.root) {
		return false
	}
	p := n.cur.Parent()
	if p == nil {
		return false
	}
	n.cur = p.Child[0]
	return true
}

func (n *navigator) MoveToNext() bool {
	if n.attr >= 0 || n.cur == etree.Token(n.root) {
		return false
	}
	p := n.cur.Parent()
	if p == nil {
		return false
	}
	i := n.cur.Index() + 1
	if i >= len(p.Child) {
		return false
	}
	n.cur = p.Child[i]
	return true
}

func (n *navigator) MoveToPrevious() bool {
	if n.attr >= 0 || n.cur == etree.Token(n.root) {
		return false
	}
	p := n.cur.Parent()
	if p == nil {
		return false
	}
	i := n.cur.Index() - 1
	if i < 0 {
		return false
	}
	n.cur = p.Child[i]
	return true
}

func (n *navigator) MoveTo(other xpath.NodeNavigator) bool {
	o, ok := other.(*navigator)
	if !ok || o.root != n.root {
		return false
	}
	n.cur, n.attr = o.cur, o.attr
	return true
}

// innerText concatenates all character data under element.
func innerText(el *etree.Element) string {
	var sb strings.Builder
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, t := range e.Child {
			switch t := t.(type) {
			case *etree.CharData:
				sb.WriteString(t.Data)
			case *etree.Element:
				walk(t)
			}
		}
	}
	walk(el)
	return sb.String()
}

// Select evaluates XPath 1.0 expression against document and returns
// matching elements in document order. Prefix "xhtml" is bound to XHTML
// namespace, unprefixed names match elements in default namespace.
func Select(doc *etree.Document, expr string) ([]*etree.Element, error) {
	x, err := xpath.CompileWithNS(expr, Namespaces)
	if err != nil {
		return nil, fmt.Errorf("bad XPath expression %q: %w", expr, err)
	}

	var found []*etree.Element
	it := x.Select(newNavigator(doc))
	for it.MoveNext() {
		nav, ok := it.Current().(*navigator)
		if !ok || nav.attr >= 0 {
			continue
		}
		if el, ok := nav.cur.(*etree.Element); ok && el != nav.root {
			found = append(found, el)
		}
	}
	return found, nil
}
