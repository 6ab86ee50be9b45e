package css_test

import (
	"testing"

	"wordexport/css"
)

const dictionaryCSS = `@charset "utf-8";
/* exported by dictionary pipeline */
.entry {
    padding-left: 1em;
    text-indent: -1em;
}
.xsensenumber {
    font-weight: bold;
}
.xsensenumber:after { content: ") "; }
.headword:before { content: "*"; }
.lexref-targets>.xitem + .xitem:before { content: ", "; }
.sense-crossref {
    font-style: italic;
}
.sense-crossref::before {
    color: red;
    content: "see ";
}
.sense-crossref:after { content: "."; }
`

func TestCollectRules_After(t *testing.T) {
	rules := css.CollectRules(dictionaryCSS, css.AfterPattern)

	want := map[string]string{"xsensenumber": ") ", "sense-crossref": "."}
	if len(rules) != len(want) {
		t.Fatalf("expected %d after rules, got %d: %v", len(want), len(rules), rules)
	}
	for class, text := range want {
		if got, ok := rules[class]; !ok || got != text {
			t.Errorf("after rule for %q = %q (present %v), want %q", class, got, ok, text)
		}
	}
}

func TestCollectRules_Before(t *testing.T) {
	rules := css.CollectRules(dictionaryCSS, css.BeforePattern)

	if got := rules["headword"]; got != "*" {
		t.Errorf("before rule for headword = %q, want %q", got, "*")
	}
	// multi-line block, first content declaration wins
	if got := rules["sense-crossref"]; got != "see " {
		t.Errorf("before rule for sense-crossref = %q, want %q", got, "see ")
	}
	if rules.Has("lexref-targets") {
		t.Error("between rule must not be collected as before rule")
	}
	if len(rules) != 2 {
		t.Errorf("expected 2 before rules, got %v", rules.Classes())
	}
}

func TestCollectRules_Between(t *testing.T) {
	rules := css.CollectRules(dictionaryCSS, css.BetweenPattern)

	if len(rules) != 1 {
		t.Fatalf("expected 1 between rule, got %v", rules.Classes())
	}
	if got := rules["lexref-targets"]; got != ", " {
		t.Errorf("between rule = %q, want %q", got, ", ")
	}
}

func TestCollectRules_FirstLineAndSpacing(t *testing.T) {
	data := `.foo:after { content: ") "; }`
	rules := css.CollectRules(data, css.AfterPattern)
	if got := rules["foo"]; got != ") " {
		t.Fatalf("rule on first line = %q, want %q", got, ") ")
	}

	data = ".list > .xitem + .xitem:before {\n  content: \"; \";\n}\n"
	rules = css.CollectRules(data, css.BetweenPattern)
	if got := rules["list"]; got != "; " {
		t.Fatalf("spaced between rule = %q, want %q", got, "; ")
	}
}

func TestCollectRules_LastWins(t *testing.T) {
	data := ".num:after { content: \")\"; }\n.num:after { content: \"]\"; }\n"
	rules := css.CollectRules(data, css.AfterPattern)
	if got := rules["num"]; got != "]" {
		t.Errorf("duplicate rule = %q, want last declaration %q", got, "]")
	}
}

func TestCollectRules_NoMatches(t *testing.T) {
	rules := css.CollectRules(".a { color: red; }\n", css.BeforePattern)
	if rules == nil {
		t.Fatal("expected empty, non-nil mapping")
	}
	if len(rules) != 0 {
		t.Errorf("expected no rules, got %v", rules)
	}
}

func TestExtractRules(t *testing.T) {
	rs := css.ExtractRules(dictionaryCSS)

	if rs.Len() != 5 {
		t.Errorf("expected 5 rules in total, got %d", rs.Len())
	}

	tests := []struct {
		class   string
		content bool
		kinds   []css.RuleKind
	}{
		{"xsensenumber", true, []css.RuleKind{css.RuleAfter}},
		{"headword", true, []css.RuleKind{css.RuleBefore}},
		{"lexref-targets", true, []css.RuleKind{css.RuleBetween}},
		{"sense-crossref", true, []css.RuleKind{css.RuleBefore, css.RuleAfter}},
		{"entry", false, nil},
		{"xitem", false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			if got := rs.IsContent(tt.class); got != tt.content {
				t.Errorf("IsContent(%q) = %v, want %v", tt.class, got, tt.content)
			}
			kinds := rs.Kinds(tt.class)
			if len(kinds) != len(tt.kinds) {
				t.Fatalf("Kinds(%q) = %v, want %v", tt.class, kinds, tt.kinds)
			}
			for i := range kinds {
				if kinds[i] != tt.kinds[i] {
					t.Errorf("Kinds(%q)[%d] = %s, want %s", tt.class, i, kinds[i], tt.kinds[i])
				}
			}
		})
	}
}

func TestRuleKindString(t *testing.T) {
	if css.RuleBetween.String() != "between" {
		t.Errorf("unexpected name %q", css.RuleBetween.String())
	}
	if css.RuleKind(42).String() != "unknown" {
		t.Errorf("unexpected name for invalid kind %q", css.RuleKind(42).String())
	}
}
