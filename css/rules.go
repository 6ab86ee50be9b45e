// Package css extracts content rules from stylesheets produced by dictionary
// export and prepares the remaining declarations for embedding.
//
// Word does not render CSS generated content, so text coming from :before,
// :after and "between" (.list>.xitem + .xitem:before) rules has to be turned
// into literal document text. Rule files are regular enough that a small
// set of fixed patterns is sufficient, no general CSS grammar is involved.
package css

import (
	"regexp"
	"sort"
)

// ItemClass marks repeatable children which receive "between" separators.
const ItemClass = "xitem"

// Patterns used to scrape content rules. Every pattern captures class name
// and the literal text of the first content declaration inside the rule
// block.
var (
	BeforePattern  = regexp.MustCompile(`(?m)^\.([-a-zA-Z]+)\s*::?before\s*\{[^}]*?content:\s*"([^"]*)`)
	AfterPattern   = regexp.MustCompile(`(?m)^\.([-a-zA-Z]+)\s*::?after\s*\{[^}]*?content:\s*"([^"]*)`)
	BetweenPattern = regexp.MustCompile(`(?m)^\.([-a-zA-Z]+)\s*>\s*\.` + ItemClass + `\s*\+\s*\.` + ItemClass + `\s*::?before\s*\{[^}]*?content:\s*"([^"]*)`)
)

// Rules maps class name to literal content text.
type Rules map[string]string

// Has reports whether class triggers a rule.
func (r Rules) Has(class string) bool {
	_, ok := r[class]
	return ok
}

// Classes returns sorted class names, mostly useful for logging.
func (r Rules) Classes() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RuleKind identifies which content rule a class triggers.
type RuleKind int

const (
	RuleBefore RuleKind = iota
	RuleBetween
	RuleAfter
)

func (k RuleKind) String() string {
	switch k {
	case RuleBefore:
		return "before"
	case RuleBetween:
		return "between"
	case RuleAfter:
		return "after"
	default:
		return "unknown"
	}
}

// RuleSet holds all three content rule mappings of a stylesheet.
type RuleSet struct {
	Before  Rules
	Between Rules
	After   Rules
}

// CollectRules runs pattern over the whole stylesheet text. When the same
// class is declared more than once the last declaration wins.
func CollectRules(data string, pattern *regexp.Regexp) Rules {
	rules := make(Rules)
	for _, m := range pattern.FindAllStringSubmatch(data, -1) {
		rules[m[1]] = m[2]
	}
	return rules
}

// ExtractRules scrapes before, between and after rules from stylesheet text.
func ExtractRules(data string) *RuleSet {
	return &RuleSet{
		Before:  CollectRules(data, BeforePattern),
		Between: CollectRules(data, BetweenPattern),
		After:   CollectRules(data, AfterPattern),
	}
}

// IsContent reports whether class triggers any content rule.
func (rs *RuleSet) IsContent(class string) bool {
	return rs.Before.Has(class) || rs.Between.Has(class) || rs.After.Has(class)
}

// Kinds lists rule kinds triggered by class in application order.
func (rs *RuleSet) Kinds(class string) []RuleKind {
	var kinds []RuleKind
	if rs.Before.Has(class) {
		kinds = append(kinds, RuleBefore)
	}
	if rs.Between.Has(class) {
		kinds = append(kinds, RuleBetween)
	}
	if rs.After.Has(class) {
		kinds = append(kinds, RuleAfter)
	}
	return kinds
}

// Len returns total number of rules.
func (rs *RuleSet) Len() int {
	return len(rs.Before) + len(rs.Between) + len(rs.After)
}
