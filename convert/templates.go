package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/beevik/etree"
	sprig "github.com/go-task/slim-sprig/v3"

	"wordexport/config"
)

// OutputExt is extension of produced documents. Word opens HTML content
// saved under this extension as regular document.
const OutputExt = ".doc"

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context    string
	Title      string
	SourceFile string
	SourceDir  string
	Format     string
	Date       string
}

func buildValues(src string, doc *etree.Document) Values {
	v := Values{
		SourceFile: strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
		SourceDir:  filepath.Dir(src),
		Format:     OutputExt,
		Date:       time.Now().Format("2006-01-02"),
	}
	if doc != nil {
		if title := doc.FindElement("//head/title"); title != nil {
			v.Title = strings.TrimSpace(title.Text())
		}
	}
	return v
}

func expandTemplate(name config.TemplateFieldName, field string, values Values) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values.Context = string(name)

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
