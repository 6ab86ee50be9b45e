package css

import (
	"regexp"
	"slices"
	"strings"
)

// DefaultSpanBlocklist lists properties dropped from rules targeting span
// elements. Word applies paragraph spacing and borders of character styles
// to the whole paragraph.
var DefaultSpanBlocklist = []string{
	"padding-left",
	"text-indent",
	"margin-left",
	"padding-bottom",
	"padding-top",
	"border",
	"border-top",
	"border-bottom",
	"border-left",
	"border-right",
}

var (
	declPattern = regexp.MustCompile(`\.([-a-zA-Z]+)\s*\{`)
	propPattern = regexp.MustCompile(`\s+([-a-zA-Z]+)\s*:`)
)

// SpanResolver reports whether class is used by a span element of the
// document being processed.
type SpanResolver func(class string) bool

func isPseudoLine(line string) bool {
	return strings.Contains(line, ":before") || strings.Contains(line, ":after")
}

// FilterStyles returns stylesheet text suitable for embedding. It works on
// lines: pseudo-element rules are skipped, rules of span classes lose
// blocklisted properties, everything before the first class rule is dropped
// and the rest is copied verbatim. The result always starts with a newline.
func FilterStyles(data string, isSpan SpanResolver, blocklist []string) string {
	var (
		sb        strings.Builder
		span      bool
		firstDecl bool
		inPseudo  bool
	)

	sb.WriteString("\n")
	for line := range strings.SplitSeq(data, "\n") {
		if inPseudo {
			if strings.Contains(line, "}") {
				inPseudo = false
			}
			continue
		}
		if isPseudoLine(line) {
			// multi-line pseudo rule, skip up to the closing brace
			if strings.Count(line, "{") > strings.Count(line, "}") {
				inPseudo = true
			}
			continue
		}

		if m := declPattern.FindStringSubmatch(line); m != nil {
			firstDecl = true
			span = isSpan != nil && isSpan(m[1])
		} else if span {
			if m := propPattern.FindStringSubmatch(line); m != nil && slices.Contains(blocklist, m[1]) {
				continue
			}
		}
		if firstDecl {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
