package xhtml

import (
	"context"
	"fmt"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"wordexport/css"
)

// DefaultParagraphXPaths select divs Word should see as paragraphs.
var DefaultParagraphXPaths = []string{
	"//div[span]",
	"//div[@class='letter']",
}

// Options controls document transformation.
type Options struct {
	Title           string
	ParagraphXPaths []string
	SpanBlocklist   []string
}

// Result describes what transformation did.
type Result struct {
	Rules      RuleStats
	Paragraphs int
	Images     []string // rewritten image sources
}

// Transform runs all transformation stages on document in place: content
// rules, div to p conversion, stylesheet embedding, title and image sources.
// Context is checked between stages.
func Transform(ctx context.Context, doc *etree.Document, cssData string, opts Options, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	res := &Result{}

	rs := css.ExtractRules(cssData)
	log.Debug("Content rules extracted",
		zap.Int("before", len(rs.Before)), zap.Int("between", len(rs.Between)), zap.Int("after", len(rs.After)))

	stats, err := ApplyRules(doc, rs, log)
	if err != nil {
		return nil, fmt.Errorf("unable to apply content rules: %w", err)
	}
	res.Rules = stats
	log.Debug("Content rules applied",
		zap.Int("elements", stats.Elements), zap.Int("before", stats.Before), zap.Int("between", stats.Between),
		zap.Int("after", stats.After), zap.Int("collapsed", stats.Collapsed), zap.Int("all-content", stats.AllContent))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	paths := opts.ParagraphXPaths
	if paths == nil {
		paths = DefaultParagraphXPaths
	}
	for _, expr := range paths {
		n, err := ChangeDivToP(doc, expr)
		if err != nil {
			return nil, fmt.Errorf("unable to convert divs to paragraphs: %w", err)
		}
		log.Debug("Divs converted to paragraphs", zap.String("xpath", expr), zap.Int("count", n))
		res.Paragraphs += n
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	blocklist := opts.SpanBlocklist
	if blocklist == nil {
		blocklist = css.DefaultSpanBlocklist
	}
	if err := InsertStyles(doc, cssData, blocklist, log); err != nil {
		return nil, fmt.Errorf("unable to embed stylesheet: %w", err)
	}
	if err := InsertTitle(doc, opts.Title); err != nil {
		return nil, fmt.Errorf("unable to set title: %w", err)
	}

	images, err := UpdateImgSrc(doc)
	if err != nil {
		return nil, fmt.Errorf("unable to update image sources: %w", err)
	}
	res.Images = images
	log.Debug("Image sources updated", zap.Int("count", len(images)))

	return res, nil
}
