package search

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	// Register WebP so imaging.Open can decode .webp patterns alongside
	// the formats imaging registers itself (PNG, JPEG, GIF, TIFF, BMP).
	_ "golang.org/x/image/webp"
)

// Loader decodes a pattern identifier into an image. Implementations may
// fail for unsupported or corrupt content; the coordinator absorbs such
// failures per pattern.
type Loader interface {
	Load(path string) (image.Image, error)
}

// FileLoader loads patterns from the filesystem. PreW/PreH optionally
// pre-size the decoded image before any scale sweep: a value of -1 derives
// that dimension from the other one, preserving aspect ratio; zero for both
// leaves the image untouched.
type FileLoader struct {
	PreW, PreH int
}

// Load decodes path and applies the optional pre-sizing. Errors carry
// CodeBadImage for unrecognized formats and CodeLoadFailed otherwise.
func (l FileLoader) Load(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		code := CodeLoadFailed
		if errors.Is(err, imaging.ErrUnsupportedFormat) {
			code = CodeBadImage
		}
		return nil, code.Err(fmt.Errorf("open pattern %q: %w", path, err))
	}
	if l.PreW == 0 && l.PreH == 0 {
		return img, nil
	}
	b := img.Bounds()
	w, h := l.PreW, l.PreH
	switch {
	case w == -1 && h > 0:
		w = 0 // imaging derives width from height
	case h == -1 && w > 0:
		h = 0
	case w <= 0 || h <= 0:
		return img, nil
	}
	if w == b.Dx() && h == b.Dy() {
		return img, nil
	}
	return imaging.Resize(img, w, h, imaging.Lanczos), nil
}

// Resizer produces a resampled copy of img at exactly w x h. A failure is
// local to one scale factor and never aborts the surrounding sweep.
type Resizer func(img image.Image, w, h int) (image.Image, error)

// LanczosResize is the default Resizer, backed by the imaging package's
// Lanczos filter.
func LanczosResize(img image.Image, w, h int) (image.Image, error) {
	if w < 1 || h < 1 {
		return nil, CodeInvalidScale.Err(fmt.Errorf("resize to %dx%d", w, h))
	}
	return imaging.Resize(img, w, h, imaging.Lanczos), nil
}
