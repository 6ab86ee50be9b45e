// Package convert drives conversion of a single exported XHTML document.
package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"wordexport/config"
	"wordexport/css"
	"wordexport/state"
	"wordexport/xhtml"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input XHTML file has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many inputs", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	env.Output, env.Title, env.NoOpen = cmd.String("output"), cmd.String("title"), cmd.Bool("no-open")

	log.Info("Processing starting", zap.String("source", src))
	defer func(start time.Time) {
		if err == nil {
			log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
		}
	}(time.Now())

	out, err := process(ctx, src, env, log)
	if err != nil {
		return err
	}

	if env.Cfg.Document.Output.Open && !env.NoOpen {
		if err := openResult(out); err != nil {
			log.Warn("Unable to open result", zap.String("file", out), zap.Error(err))
		}
	}
	return nil
}

// companionStylesheet returns path of the stylesheet exported together with
// document: same directory and name, ".css" extension.
func companionStylesheet(src string) string {
	return strings.TrimSuffix(src, filepath.Ext(src)) + ".css"
}

// process converts single document and returns path of the written result.
func process(ctx context.Context, src string, env *state.LocalEnv, log *zap.Logger) (string, error) {
	cssPath := companionStylesheet(src)
	cssData, err := os.ReadFile(cssPath)
	if err != nil {
		return "", fmt.Errorf("unable to read companion stylesheet: %w", err)
	}

	env.Rpt.Store("input/"+filepath.Base(src), src)
	env.Rpt.Store("input/"+filepath.Base(cssPath), cssPath)

	sum := css.NewChecker(log).Check(cssData, cssPath)
	for _, w := range sum.Warnings {
		log.Warn("Stylesheet problem, content rules may be incomplete", zap.String("file", cssPath), zap.String("problem", w))
	}
	if sum.PseudoRules == 0 {
		log.Debug("Stylesheet has no pseudo-element rules", zap.String("file", cssPath))
	}

	doc, err := xhtml.LoadFile(src)
	if err != nil {
		return "", fmt.Errorf("unable to load document (%s): %w", src, err)
	}

	values := buildValues(src, doc)

	title := env.Title
	if len(title) == 0 {
		if title, err = expandTemplate(config.TitleTemplateFieldName, env.Cfg.Document.TitleTemplate, values); err != nil {
			log.Warn("Unable to prepare document title, keeping original", zap.Error(err))
			title = values.Title
		}
	}

	out := buildOutputPath(src, values, env, log)
	if same, err := sameFile(src, out); err != nil {
		return "", err
	} else if same {
		return "", fmt.Errorf("output would overwrite input document: %s", out)
	}

	res, err := xhtml.Transform(ctx, doc, string(cssData), xhtml.Options{
		Title:           title,
		ParagraphXPaths: env.Cfg.Document.ParagraphXPaths,
		SpanBlocklist:   env.Cfg.Document.SpanBlocklist,
	}, log)
	if err != nil {
		return "", fmt.Errorf("unable to transform document (%s): %w", src, err)
	}

	if env.Cfg.Document.CheckImages && len(res.Images) > 0 {
		if n := checkImages(res.Images, filepath.Dir(src), log); n > 0 {
			log.Warn("Some linked images will not be shown", zap.Int("count", n))
		}
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return "", fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := xhtml.WriteFile(out, doc, xhtml.WriteOptions{
		BOM:    env.Cfg.Document.Output.BOM,
		Indent: env.Cfg.Document.Output.Indent,
	}); err != nil {
		return "", fmt.Errorf("unable to write result: %w", err)
	}

	// Store conversion result for debugging
	env.Rpt.Store("output/"+filepath.Base(out), out)
	env.Rpt.StoreData("output/outline.txt", []byte(xhtml.Outline(doc)))

	log.Info("Conversion completed", zap.String("to", out), zap.String("title", title),
		zap.Int("paragraphs", res.Paragraphs), zap.Int("images", len(res.Images)))
	return out, nil
}

func sameFile(a, b string) (bool, error) {
	aa, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	bb, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	if aa == bb {
		return true, nil
	}
	ai, err := os.Stat(aa)
	if err != nil {
		return false, nil
	}
	bi, err := os.Stat(bb)
	if err != nil {
		return false, nil
	}
	return os.SameFile(ai, bi), nil
}
