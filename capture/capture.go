// Package capture acquires screen pixels as pixel.Buffers. It is the
// haystack collaborator of the search engine; capture either fully succeeds
// or reports an error and produces no buffer.
package capture

import (
	"errors"
	"fmt"
	"image"

	"github.com/vova616/screenshot"

	"github.com/soocke/image-search-go/domain/pixel"
)

// Screen captures from the active display via the screenshot library.
// The zero value is ready to use.
type Screen struct{}

// Bounds returns the full display rectangle.
func (Screen) Bounds() (image.Rectangle, error) {
	r, err := screenshot.ScreenRect()
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("screen bounds: %w", err)
	}
	return r, nil
}

// Grab captures the given display region into a fresh buffer. The region
// must have positive extent and lie within Bounds; callers clip it first.
func (Screen) Grab(r image.Rectangle) (*pixel.Buffer, error) {
	img, err := screenshot.CaptureRect(r)
	if err != nil {
		return nil, fmt.Errorf("capture %v: %w", r, err)
	}
	buf := pixel.FromImage(img)
	if buf == nil {
		return nil, errors.New("capture produced no pixels")
	}
	return buf, nil
}

// GrabFull captures the whole display.
func (s Screen) GrabFull() (*pixel.Buffer, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, fmt.Errorf("capture screen: %w", err)
	}
	buf := pixel.FromImage(img)
	if buf == nil {
		return nil, errors.New("capture produced no pixels")
	}
	return buf, nil
}
