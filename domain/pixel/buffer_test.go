package pixel

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackRoundTrip(t *testing.T) {
	c := Pack(0x11, 0x22, 0x33)
	assert.Equal(t, Color(0x332211), c)
	r, g, b := c.RGB()
	assert.Equal(t, uint8(0x11), r)
	assert.Equal(t, uint8(0x22), g)
	assert.Equal(t, uint8(0x33), b)
}

func TestFromRGBSwapsChannels(t *testing.T) {
	assert.Equal(t, Pack(0x11, 0x22, 0x33), FromRGB(0x112233))
	assert.Equal(t, Pack(0xFF, 0, 0), FromRGB(0xFF0000))
}

func TestParseKey(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Color
	}{
		{"none", None},
		{"", None},
		{"  NONE ", None},
		{"#ff0000", Pack(255, 0, 0)},
		{"00ff00", Pack(0, 255, 0)},
		{"0x0000FF", Pack(0, 0, 255)},
	} {
		got, err := ParseKey(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}

	_, err := ParseKey("not-a-color")
	require.Error(t, err)
}

func TestNewValidatesSampleCount(t *testing.T) {
	_, err := New(3, 2, make([]Color, 5))
	require.Error(t, err)

	b, err := New(3, 2, make([]Color, 6))
	require.NoError(t, err)
	assert.Equal(t, 3, b.Width())
	assert.Equal(t, 2, b.Height())
}

func TestFromImageNormalizesOnce(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	b := FromImage(img)
	require.NotNil(t, b)
	assert.Equal(t, Pack(10, 20, 30), b.At(0, 0))
	assert.Equal(t, Pack(200, 100, 50), b.At(1, 1))
	assert.Equal(t, Pack(0, 0, 0), b.At(1, 0))
}

func TestFromImageSubImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(2, 2, color.NRGBA{R: 9, G: 8, B: 7, A: 255})

	sub := img.SubImage(image.Rect(1, 1, 4, 4)).(*image.NRGBA)
	b := FromImage(sub)
	require.NotNil(t, b)
	assert.Equal(t, 3, b.Width())
	assert.Equal(t, Pack(9, 8, 7), b.At(1, 1))
}

func TestRowIsRowMajor(t *testing.T) {
	samples := make([]Color, 6)
	for i := range samples {
		samples[i] = Color(i)
	}
	b, err := New(3, 2, samples)
	require.NoError(t, err)
	assert.Equal(t, []Color{3, 4, 5}, b.Row(1))
	assert.Equal(t, Color(5), b.At(2, 1))
}
