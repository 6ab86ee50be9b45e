package convert

import (
	"io"
	"os"
	"path/filepath"

	"github.com/h2non/filetype"
	"go.uber.org/zap"
)

// header size needed to recognize all supported image types
const imageHeaderSize = 261

// checkImages verifies that rewritten image sources point to readable image
// files. Relative sources are resolved against directory of the source
// document. Problems are reported, never fatal: Word shows placeholder for
// broken image. Returns number of problems found.
func checkImages(images []string, srcDir string, log *zap.Logger) int {
	var problems int
	for _, img := range images {
		path := img
		if !filepath.IsAbs(path) {
			path = filepath.Join(srcDir, path)
		}

		header, err := readHeader(path)
		if err != nil {
			log.Warn("Linked image is not accessible", zap.String("src", img), zap.Error(err))
			problems++
			continue
		}
		if !filetype.IsImage(header) {
			kind, _ := filetype.Match(header)
			log.Warn("Linked file is not a recognized image", zap.String("src", img), zap.String("type", kind.MIME.Value))
			problems++
			continue
		}
		kind, _ := filetype.Match(header)
		log.Debug("Linked image", zap.String("src", img), zap.String("type", kind.MIME.Value))
	}
	return problems
}

func readHeader(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, imageHeaderSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	return buf[:n], nil
}
