package xhtml

import (
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"wordexport/css"
)

// RuleStats summarizes content rules application.
type RuleStats struct {
	Elements   int // elements with non-empty class attribute
	Before     int
	Between    int
	After      int
	Collapsed  int // class lists reduced to single non-content class
	AllContent int // class lists consisting of content classes only, left untouched
}

// ApplyBeforeRule prepends rule text for class to the element own text.
func ApplyBeforeRule(rules css.Rules, class string, el *etree.Element) bool {
	text, ok := rules[class]
	if !ok {
		return false
	}
	el.SetText(text + el.Text())
	return true
}

// ApplyAfterRule appends rule text for class to the end of element content.
func ApplyAfterRule(rules css.Rules, class string, el *etree.Element) bool {
	text, ok := rules[class]
	if !ok {
		return false
	}
	appendText(el, text)
	return true
}

// ApplyBetweenRules inserts rule separator for class in front of the second
// and every following item child. Separator is only inserted when item
// directly follows another item, possibly with whitespace in between.
// Anything else in between (source provided punctuation, separator inserted
// earlier, comment) means items are already separated. Rule is reported as
// found regardless of number of insertions.
func ApplyBetweenRules(rules css.Rules, class string, el *etree.Element) bool {
	sep, ok := rules[class]
	if !ok {
		return false
	}
	first := true
	for _, child := range el.ChildElements() {
		if !isItem(child) {
			continue
		}
		if first {
			first = false
			continue
		}
		if prev, ok := previousSibling(child).(*etree.Element); !ok || !isItem(prev) {
			continue
		}
		el.InsertChildAt(child.Index(), etree.NewText(sep))
	}
	return true
}

// ApplyRules applies content rules to every element with class attribute in
// document order. Classes triggering rules are removed from multi-class
// lists, it is an error for more than one other class to remain.
func ApplyRules(doc *etree.Document, rs *css.RuleSet, log *zap.Logger) (RuleStats, error) {
	var stats RuleStats

	var elements []*etree.Element
	walkElements(doc.Root(), func(el *etree.Element) {
		if el.SelectAttr("class") != nil {
			elements = append(elements, el)
		}
	})

	for _, el := range elements {
		attr := el.SelectAttr("class")
		classes := strings.Fields(attr.Value)
		if len(classes) == 0 {
			continue
		}
		stats.Elements++

		var plain []string
		for _, class := range classes {
			found := false
			if ApplyBeforeRule(rs.Before, class, el) {
				stats.Before++
				found = true
			}
			if ApplyBetweenRules(rs.Between, class, el) {
				stats.Between++
				found = true
			}
			if ApplyAfterRule(rs.After, class, el) {
				stats.After++
				found = true
			}
			if !found {
				plain = append(plain, class)
			}
		}

		if len(classes) == 1 {
			continue
		}
		switch len(plain) {
		case 0:
			stats.AllContent++
			log.Debug("Element has only content classes, keeping class list", zap.String("element", el.FullTag()), zap.Strings("classes", classes))
		case 1:
			attr.Value = plain[0]
			stats.Collapsed++
		default:
			return stats, &ClassConflictError{Element: el.FullTag(), Classes: plain}
		}
	}
	return stats, nil
}

func isItem(el *etree.Element) bool {
	return el.SelectAttrValue("class", "") == css.ItemClass
}

// previousSibling returns token preceding el skipping whitespace only text.
// Comments and processing instructions are returned as is. Returns nil for
// the first child.
func previousSibling(el *etree.Element) etree.Token {
	p := el.Parent()
	if p == nil {
		return nil
	}
	for i := el.Index() - 1; i >= 0; i-- {
		if cd, ok := p.Child[i].(*etree.CharData); ok && cd.IsWhitespace() {
			continue
		}
		return p.Child[i]
	}
	return nil
}

// appendText adds text after the last child of element.
func appendText(el *etree.Element, text string) {
	if len(el.Child) > 0 {
		if cd, ok := el.Child[len(el.Child)-1].(*etree.CharData); ok {
			cd.Data += text
			return
		}
	}
	el.CreateText(text)
}

// walkElements visits element and its descendants in document order.
func walkElements(el *etree.Element, fn func(*etree.Element)) {
	if el == nil {
		return
	}
	fn(el)
	for _, child := range el.ChildElements() {
		walkElements(child, fn)
	}
}
