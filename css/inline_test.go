package css_test

import (
	"strings"
	"testing"

	"wordexport/css"
)

const inlineCSS = `@charset "utf-8";
.number {
    padding-left: 2pt;
    font-weight: bold;
    border-bottom: 1px solid black;
}
.number:after { content: ") "; }
.entry {
    padding-left: 1em;
    text-indent: -1em;
}
.crossref:before {
    content: "see ";
    padding-left: 3pt;
}
.crossref {
    font-style: italic;
}
`

func spanClasses(classes ...string) css.SpanResolver {
	return func(class string) bool {
		for _, c := range classes {
			if c == class {
				return true
			}
		}
		return false
	}
}

func TestFilterStyles_SpanBlocklist(t *testing.T) {
	out := css.FilterStyles(inlineCSS, spanClasses("number"), css.DefaultSpanBlocklist)

	if strings.Contains(out, "padding-left: 2pt;") {
		t.Error("padding-left of span class must be dropped")
	}
	if strings.Contains(out, "border-bottom") {
		t.Error("border of span class must be dropped")
	}
	if !strings.Contains(out, "font-weight: bold;") {
		t.Error("font-weight of span class must be kept")
	}
	if !strings.Contains(out, "padding-left: 1em;") {
		t.Error("padding-left of non-span class must be kept")
	}
	if !strings.Contains(out, "text-indent: -1em;") {
		t.Error("text-indent of non-span class must be kept")
	}
}

func TestFilterStyles_SkipsPseudoRules(t *testing.T) {
	out := css.FilterStyles(inlineCSS, nil, css.DefaultSpanBlocklist)

	for _, banned := range []string{":after", ":before", "content:", "padding-left: 3pt;"} {
		if strings.Contains(out, banned) {
			t.Errorf("pseudo rule text %q leaked into output:\n%s", banned, out)
		}
	}
	if !strings.Contains(out, ".crossref {\n    font-style: italic;\n}\n") {
		t.Errorf("rule following multi-line pseudo block is damaged:\n%s", out)
	}
}

func TestFilterStyles_DropsPreamble(t *testing.T) {
	out := css.FilterStyles(inlineCSS, nil, nil)

	if !strings.HasPrefix(out, "\n.number {\n") {
		t.Errorf("output must start with newline and first class rule, got:\n%q", out[:min(len(out), 40)])
	}
	if strings.Contains(out, "@charset") {
		t.Error("text before the first class rule must be dropped")
	}
}

func TestFilterStyles_Verbatim(t *testing.T) {
	data := ".a {\n\tcolor: red;\n}\n"
	out := css.FilterStyles(data, nil, nil)
	// every source line is followed by newline, including the empty tail
	want := "\n.a {\n\tcolor: red;\n}\n\n"
	if out != want {
		t.Errorf("FilterStyles() = %q, want %q", out, want)
	}
}

func TestFilterStyles_SpanContextEndsWithNextRule(t *testing.T) {
	data := ".s {\n  margin-left: 1em;\n}\n.d {\n  margin-left: 2em;\n}\n"
	out := css.FilterStyles(data, spanClasses("s"), []string{"margin-left"})

	if strings.Contains(out, "margin-left: 1em;") {
		t.Error("span property must be dropped")
	}
	if !strings.Contains(out, "margin-left: 2em;") {
		t.Error("span context must end with the next rule")
	}
}
