// Package xhtml transforms exported dictionary XHTML into a document Word
// can import: content rules become text, selected divs become paragraphs,
// stylesheet is embedded and linked files are made reachable.
package xhtml

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/beevik/etree"
	"go.uber.org/multierr"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Namespace is XHTML namespace URI, bound to "xhtml" prefix in XPath
// expressions.
const Namespace = "http://www.w3.org/1999/xhtml"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load reads and parses XHTML document. Input encoding is taken from XML
// declaration, HTML named entities are accepted. Leading UTF-8 byte order
// mark is skipped, so documents written by Write can be read back.
func Load(r io.Reader) (*etree.Document, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		Entity:        xml.HTMLEntity,
		ValidateInput: false,
		Permissive:    true,
	}
	doc.WriteSettings = etree.WriteSettings{
		CanonicalText:    true,
		CanonicalAttrVal: true,
	}

	if _, err := doc.ReadFrom(br); err != nil {
		return nil, fmt.Errorf("unable to parse XHTML: %w", err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("unable to parse XHTML: document has no root element")
	}
	return doc, nil
}

// LoadFile reads XHTML document from file.
func LoadFile(path string) (*etree.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}

// WriteOptions controls serialization.
type WriteOptions struct {
	// BOM prepends UTF-8 byte order mark, Word uses it to detect encoding
	// of files without XML declaration.
	BOM bool
	// Indent is number of spaces to indent nested elements with, 0 keeps
	// document whitespace as is.
	Indent int
}

// Write serializes document as UTF-8 without XML declaration.
func Write(w io.Writer, doc *etree.Document, opts WriteOptions) (err error) {
	var decls []etree.Token
	for _, t := range doc.Child {
		if pi, ok := t.(*etree.ProcInst); ok && pi.Target == "xml" {
			decls = append(decls, pi)
		}
	}
	for _, t := range decls {
		doc.RemoveChild(t)
	}
	if opts.Indent > 0 {
		doc.Indent(opts.Indent)
	}

	if !opts.BOM {
		_, err = doc.WriteTo(w)
		return err
	}

	tw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	defer func() {
		err = multierr.Append(err, tw.Close())
	}()
	_, err = doc.WriteTo(tw)
	return err
}

// WriteFile serializes document into file, overwriting it.
func WriteFile(path string, doc *etree.Document, opts WriteOptions) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	return Write(f, doc, opts)
}
