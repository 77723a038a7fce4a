package pixel

import (
	"fmt"
	"image"
)

// Buffer is an immutable rectangular grid of packed Color samples stored in
// row-major order, top to bottom, left to right. It is the in-memory
// representation shared by the capture, decode and matching layers.
type Buffer struct {
	samples []Color
	w, h    int
}

// New wraps samples into a Buffer. The slice length must equal w*h.
func New(w, h int, samples []Color) (*Buffer, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("pixel: invalid buffer size %dx%d", w, h)
	}
	if len(samples) != w*h {
		return nil, fmt.Errorf("pixel: sample count %d does not match %dx%d", len(samples), w, h)
	}
	return &Buffer{samples: samples, w: w, h: h}, nil
}

// FromImage converts a decoded image into a Buffer, normalizing every sample
// to the internal BGR packing exactly once. RGBA and NRGBA images take a
// fast path over their backing slice; anything else goes through At.
func FromImage(img image.Image) *Buffer {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}
	samples := make([]Color, w*h)
	switch src := img.(type) {
	case *image.RGBA:
		fromPix(samples, src.Pix, src.Stride, w, h)
	case *image.NRGBA:
		fromPix(samples, src.Pix, src.Stride, w, h)
	default:
		i := 0
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
				samples[i] = Pack(uint8(r>>8), uint8(g>>8), uint8(bl>>8))
				i++
			}
		}
	}
	return &Buffer{samples: samples, w: w, h: h}
}

func fromPix(dst []Color, pix []byte, stride, w, h int) {
	i := 0
	for y := 0; y < h; y++ {
		row := pix[y*stride : y*stride+w*4]
		for x := 0; x < w; x++ {
			dst[i] = Pack(row[x*4], row[x*4+1], row[x*4+2])
			i++
		}
	}
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.w }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.h }

// At returns the sample at (x, y). Callers are responsible for staying in
// bounds; the matching layer derives its scan limits from Width and Height.
func (b *Buffer) At(x, y int) Color { return b.samples[y*b.w+x] }

// Row returns the samples of row y as a shared read-only slice.
func (b *Buffer) Row(y int) []Color { return b.samples[y*b.w : (y+1)*b.w] }
