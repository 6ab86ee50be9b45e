package xhtml

import (
	"github.com/beevik/etree"
	"go.uber.org/zap"

	"wordexport/css"
)

// SpanClasses returns resolver reporting whether the first element (in
// document order) having class attribute equal to class is a span. Answers
// are cached, resolver must not outlive document mutations.
func SpanClasses(doc *etree.Document) css.SpanResolver {
	cache := make(map[string]bool)
	return func(class string) bool {
		if span, ok := cache[class]; ok {
			return span
		}
		var first *etree.Element
		walkElements(doc.Root(), func(el *etree.Element) {
			if first == nil && el.SelectAttrValue("class", "") == class {
				first = el
			}
		})
		span := first != nil && first.Tag == "span"
		cache[class] = span
		return span
	}
}

// InsertStyles embeds filtered stylesheet into document head and removes
// external stylesheet link.
func InsertStyles(doc *etree.Document, data string, blocklist []string, log *zap.Logger) error {
	head := doc.FindElement("//head")
	if head == nil {
		return &MissingNodeError{Node: "head"}
	}

	style := head.CreateElement("style")
	style.Space = head.Space
	style.SetText(css.FilterStyles(data, SpanClasses(doc), blocklist))

	link := head.FindElement("link[@rel='stylesheet']")
	if link == nil {
		link = head.FindElement("link[@href]")
	}
	if link == nil {
		log.Warn("No stylesheet link found in document head, nothing to remove")
		return nil
	}
	log.Debug("Removing stylesheet link", zap.String("href", link.SelectAttrValue("href", "")))
	head.RemoveChild(link)
	return nil
}
