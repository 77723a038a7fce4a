package match

import "github.com/soocke/image-search-go/domain/pixel"

// The matcher decides whether a needle buffer matches a haystack buffer at a
// given top-left offset. Needle pixels equal to the transparency key are
// exempt from comparison at every occurrence. Tolerance is a per-channel
// bound: a pixel matches iff |nc - hc| <= tol holds independently for the
// red, green and blue channels. The unused top byte never participates.

// matchExactScalar is the reference exact comparison (tolerance 0).
func matchExactScalar(hay, needle *pixel.Buffer, ox, oy int, key pixel.Color) bool {
	w := needle.Width()
	for y := 0; y < needle.Height(); y++ {
		nr := needle.Row(y)
		hr := hay.Row(oy + y)[ox : ox+w]
		for x := 0; x < w; x++ {
			n := nr[x]
			if n == key {
				continue
			}
			if n != hr[x] {
				return false
			}
		}
	}
	return true
}

// matchApproxScalar is the reference approximate comparison. Channel
// differences are computed in int space, so they never wrap.
func matchApproxScalar(hay, needle *pixel.Buffer, ox, oy int, key pixel.Color, tol uint8) bool {
	w := needle.Width()
	for y := 0; y < needle.Height(); y++ {
		nr := needle.Row(y)
		hr := hay.Row(oy + y)[ox : ox+w]
		for x := 0; x < w; x++ {
			n := nr[x]
			if n == key {
				continue
			}
			if !channelsWithin(n, hr[x], tol) {
				return false
			}
		}
	}
	return true
}

// channelsWithin reports whether every color channel of a and b differs by
// at most tol.
func channelsWithin(a, b pixel.Color, tol uint8) bool {
	t := int(tol)
	ar, ag, ab := a.RGB()
	br, bg, bb := b.RGB()
	if d := int(ar) - int(br); d > t || -d > t {
		return false
	}
	if d := int(ag) - int(bg); d > t || -d > t {
		return false
	}
	if d := int(ab) - int(bb); d > t || -d > t {
		return false
	}
	return true
}
