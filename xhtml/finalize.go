package xhtml

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
)

// LinkedFilesRootMeta is name of meta element holding base directory for
// linked files (images).
const LinkedFilesRootMeta = "linkedFilesRootDir"

// InsertTitle sets text of document title.
func InsertTitle(doc *etree.Document, title string) error {
	el := doc.FindElement("//head/title")
	if el == nil {
		return &MissingNodeError{Node: "head/title"}
	}
	el.SetText(title)
	return nil
}

// UpdateImgSrc rewrites relative image sources against linked files root
// directory and returns new values. Joined paths are cleaned and use OS
// separators. Document without relative sources does not need the meta
// element.
func UpdateImgSrc(doc *etree.Document) ([]string, error) {
	var relative []*etree.Attr
	for _, img := range doc.FindElements("//img[@src]") {
		if a := img.SelectAttr("src"); !isAbsoluteSrc(a.Value) {
			relative = append(relative, a)
		}
	}
	if len(relative) == 0 {
		return nil, nil
	}

	meta := doc.FindElement("//meta[@name='" + LinkedFilesRootMeta + "']")
	if meta == nil || meta.SelectAttr("content") == nil {
		return nil, &MissingNodeError{Node: "meta[@name='" + LinkedFilesRootMeta + "']"}
	}
	base := meta.SelectAttrValue("content", "")

	updated := make([]string, 0, len(relative))
	for _, a := range relative {
		a.Value = filepath.Join(base, a.Value)
		updated = append(updated, a.Value)
	}
	return updated, nil
}

// isAbsoluteSrc reports whether image source must be left as is: absolute
// paths (either flavor of separator) and anything with URL scheme,
// including data URIs and drive letters.
func isAbsoluteSrc(src string) bool {
	if src == "" {
		return true
	}
	if filepath.IsAbs(src) || strings.HasPrefix(src, "/") || strings.HasPrefix(src, `\`) {
		return true
	}
	u, err := url.Parse(src)
	return err == nil && u.Scheme != ""
}
