package xhtml

import (
	"strings"

	"github.com/beevik/etree"

	"wordexport/utils/debug"
)

// Outline renders document structure as indented tree: elements with their
// attributes and non blank text nodes. Used for debug reports.
func Outline(doc *etree.Document) string {
	tw := debug.NewTreeWriter()
	if root := doc.Root(); root != nil {
		outlineElement(tw, root, 0)
	}
	return tw.String()
}

func outlineElement(tw *debug.TreeWriter, el *etree.Element, depth int) {
	var b strings.Builder
	b.WriteString(el.FullTag())
	for _, a := range el.Attr {
		b.WriteByte(' ')
		b.WriteString(a.FullKey())
		b.WriteString("=")
		b.WriteString(a.Value)
	}
	tw.Line(depth, "<%s>", b.String())

	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.Element:
			outlineElement(tw, t, depth+1)
		case *etree.CharData:
			if strings.TrimSpace(t.Data) != "" {
				tw.TextBlock(depth+1, "text", t.Data)
			}
		}
	}
}
