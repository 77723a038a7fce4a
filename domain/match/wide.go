package match

import "github.com/soocke/image-search-go/domain/pixel"

// Wide kernels compare two packed pixels per step by fusing them into a
// single 64-bit word. A word-level equality screen resolves identical pixel
// pairs in one comparison; pairs that touch the transparency key or differ
// anywhere fall back to the per-pixel rule for exactly those two pixels, so
// the outcome is identical to the scalar kernels for every input.

func pair(a, b pixel.Color) uint64 {
	return uint64(a) | uint64(b)<<32
}

func matchExactWide(hay, needle *pixel.Buffer, ox, oy int, key pixel.Color) bool {
	w := needle.Width()
	for y := 0; y < needle.Height(); y++ {
		nr := needle.Row(y)
		hr := hay.Row(oy + y)[ox : ox+w]
		x := 0
		for ; x+1 < w; x += 2 {
			n0, n1 := nr[x], nr[x+1]
			if n0 == key || n1 == key {
				if n0 != key && n0 != hr[x] {
					return false
				}
				if n1 != key && n1 != hr[x+1] {
					return false
				}
				continue
			}
			if pair(n0, n1) != pair(hr[x], hr[x+1]) {
				return false
			}
		}
		if x < w {
			if n := nr[x]; n != key && n != hr[x] {
				return false
			}
		}
	}
	return true
}

func matchApproxWide(hay, needle *pixel.Buffer, ox, oy int, key pixel.Color, tol uint8) bool {
	w := needle.Width()
	for y := 0; y < needle.Height(); y++ {
		nr := needle.Row(y)
		hr := hay.Row(oy + y)[ox : ox+w]
		x := 0
		for ; x+1 < w; x += 2 {
			n0, n1 := nr[x], nr[x+1]
			h0, h1 := hr[x], hr[x+1]
			if n0 != key && n1 != key && pair(n0, n1) == pair(h0, h1) {
				continue
			}
			if n0 != key && !channelsWithin(n0, h0, tol) {
				return false
			}
			if n1 != key && !channelsWithin(n1, h1, tol) {
				return false
			}
		}
		if x < w {
			if n := nr[x]; n != key && !channelsWithin(n, hr[x], tol) {
				return false
			}
		}
	}
	return true
}
