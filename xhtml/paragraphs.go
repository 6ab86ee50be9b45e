package xhtml

import (
	"slices"

	"github.com/beevik/etree"
)

// ChangeDivToP replaces every div element selected by XPath expression with
// p element having the same attributes and children at the same position.
// Selected elements other than div are left alone. Returns number of
// replaced elements.
func ChangeDivToP(doc *etree.Document, expr string) (int, error) {
	found, err := Select(doc, expr)
	if err != nil {
		return 0, err
	}

	var count int
	for _, div := range found {
		if div.Tag != "div" {
			continue
		}
		parent := div.Parent()
		if parent == nil {
			continue
		}

		p := etree.NewElement("p")
		p.Space = div.Space
		for _, a := range div.Attr {
			p.CreateAttr(a.FullKey(), a.Value)
		}
		parent.InsertChildAt(div.Index(), p)
		// AddChild detaches token from div, nested matches stay valid
		for _, t := range slices.Clone(div.Child) {
			p.AddChild(t)
		}
		parent.RemoveChild(div)
		count++
	}
	return count, nil
}
