package css

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Summary describes stylesheet as seen by a real CSS tokenizer. Content rules
// are scraped with fixed patterns, so it is used to catch rule files the
// patterns would silently misread.
type Summary struct {
	Selectors   int      // number of selectors, grouped selectors count separately
	PseudoRules int      // selectors with :before or :after
	Warnings    []string // malformed input
}

// Checker tokenizes stylesheets for diagnostics.
type Checker struct {
	log *zap.Logger
}

// NewChecker creates a new stylesheet checker.
func NewChecker(log *zap.Logger) *Checker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Checker{log: log.Named("css-check")}
}

// Check parses data and reports what it found. It never fails, parse errors
// end up in Summary.Warnings.
func (c *Checker) Check(data []byte, source string) *Summary {
	sum := &Summary{}

	c.log.Debug("Checking CSS", zap.String("source", source), zap.Int("bytes", len(data)))

	p := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)
	for {
		gt, _, tok := p.Next()
		switch gt {
		case css.ErrorGrammar:
			err := p.Err()
			if err == nil {
				// recoverable, parser skips the offending tokens
				sum.Warnings = append(sum.Warnings, fmt.Sprintf("malformed CSS near %q", strings.TrimSpace(string(tok))))
				continue
			}
			if !errors.Is(err, io.EOF) {
				sum.Warnings = append(sum.Warnings, err.Error())
			}
			c.log.Debug("CSS checked", zap.String("source", source),
				zap.Int("selectors", sum.Selectors), zap.Int("pseudo", sum.PseudoRules), zap.Int("warnings", len(sum.Warnings)))
			return sum

		case css.BeginRulesetGrammar, css.QualifiedRuleGrammar:
			sum.Selectors++
			if isPseudoLine(selectorText(tok, p.Values())) {
				sum.PseudoRules++
			}
		}
	}
}

func selectorText(data []byte, values []css.Token) string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}
	return sb.String()
}
