package convert

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"wordexport/config"
	"wordexport/state"
)

// buildOutputPath returns output file path. Explicitly requested name is
// used as is, except that bare file name is placed next to the source.
// Otherwise name is produced by user-defined template, cleaned up and if
// requested transliterated, relative to the source directory.
func buildOutputPath(src string, values Values, env *state.LocalEnv, log *zap.Logger) string {
	srcDir := filepath.Dir(src)

	if len(env.Output) > 0 {
		if filepath.Base(env.Output) == env.Output {
			return filepath.Join(srcDir, env.Output)
		}
		return env.Output
	}

	defaultName := buildDefaultFileName(src, env)

	expandedName, err := expandTemplate(config.OutputNameTemplateFieldName, env.Cfg.Document.Output.NameTemplate, values)
	if err != nil {
		log.Warn("Unable to prepare output filename", zap.Error(err))
		return filepath.Join(srcDir, defaultName)
	}
	expandedName = strings.TrimSpace(filepath.FromSlash(expandedName))
	if expandedName == "" {
		// fallback to default name if template produced nothing
		return filepath.Join(srcDir, defaultName)
	}
	return assemblePathWithSubdirs(srcDir, expandedName, env)
}

func buildDefaultFileName(src string, env *state.LocalEnv) string {
	baseName := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return cleanPathSegment(baseName, env) + OutputExt
}

// assemblePathWithSubdirs takes an expanded template name (which may contain
// path separators for subdirectories) and assembles it into a full output path,
// cleaning and transliterating segments as needed. File name keeps extension
// produced by template, OutputExt is added when there is none.
func assemblePathWithSubdirs(outDir, expandedName string, env *state.LocalEnv) string {
	pathSegments := splitAndCleanPath(expandedName)
	if len(pathSegments) == 0 {
		return filepath.Join(outDir, cleanPathSegment("", env)+OutputExt)
	}

	last := pathSegments[len(pathSegments)-1]
	ext := filepath.Ext(last)
	if ext == "" || ext == last {
		ext = OutputExt
	} else {
		last = strings.TrimSuffix(last, ext)
	}
	fileName := cleanPathSegment(last, env) + ext

	dirParts := make([]string, 0, len(pathSegments)+1)
	dirParts = append(dirParts, outDir)
	for _, segment := range pathSegments[:len(pathSegments)-1] {
		if segment == "." || segment == ".." {
			// template is not allowed to escape source directory
			continue
		}
		dirParts = append(dirParts, cleanPathSegment(segment, env))
	}
	dirParts = append(dirParts, fileName)
	return filepath.Join(dirParts...)
}

func splitAndCleanPath(path string) []string {
	path = strings.TrimSuffix(path, string(os.PathSeparator))
	segments := make([]string, 0, 8)

	for head, tail := filepath.Split(path); tail != ""; head, tail = filepath.Split(head) {
		segments = slices.Insert(segments, 0, tail)
		head = strings.TrimSuffix(head, string(os.PathSeparator))
		if head == "" {
			break
		}
	}
	return segments
}

func cleanPathSegment(segment string, env *state.LocalEnv) string {
	if env.Cfg.Document.Output.FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}
