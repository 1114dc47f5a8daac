package renderer

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
)

// SaveImage writes the buffer to path. The format follows the extension:
// .bmp or .png.
func (s *Screen) SaveImage(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".png" && ext != ".bmp" {
		return errors.Errorf("unsupported image format %q", ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating image file")
	}
	defer f.Close()

	img := s.Image()
	switch ext {
	case ".bmp":
		err = bmp.Encode(f, img)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		return errors.Wrapf(err, "encoding %s", path)
	}
	return f.Close()
}
