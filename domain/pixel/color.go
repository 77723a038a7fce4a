package pixel

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a packed pixel sample. The low 24 bits hold the three color
// channels in BGR order (blue in bits 16-23, green in 8-15, red in 0-7),
// matching the byte order screen captures arrive in. The top byte is unused
// and always zero for buffer samples.
type Color uint32

// None is the sentinel for "no transparency key". It cannot collide with a
// buffer sample because samples are masked to 24 bits at ingestion.
const None Color = 0xFFFFFFFF

const channelMask = 0x00FFFFFF

// Pack builds a Color from its red, green and blue channels.
func Pack(r, g, b uint8) Color {
	return Color(uint32(b)<<16 | uint32(g)<<8 | uint32(r))
}

// RGB splits a Color back into its channels.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16)
}

// FromRGB converts a 0xRRGGBB value (the order callers usually write colors
// in) to the internal BGR packing. Channel normalization happens here, once,
// so comparisons never need to reorder bytes.
func FromRGB(rgb uint32) Color {
	return Color((rgb&0xFF0000)>>16 | rgb&0x00FF00 | (rgb&0x0000FF)<<16)
}

// ParseKey parses a transparency key given as text. Accepted forms are
// "none" (or the empty string) for no key, and a hex color such as
// "#00ff00", "00ff00" or "0x00FF00".
func ParseKey(s string) (Color, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	if t == "" || t == "none" {
		return None, nil
	}
	if strings.HasPrefix(t, "0x") {
		t = "#" + t[2:]
	} else if !strings.HasPrefix(t, "#") {
		t = "#" + t
	}
	c, err := colorful.Hex(t)
	if err != nil {
		return None, fmt.Errorf("parse transparency key %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Pack(r, g, b), nil
}

func (c Color) String() string {
	if c == None {
		return "none"
	}
	r, g, b := c.RGB()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
