package match

import "github.com/soocke/image-search-go/domain/pixel"

// Options configures a single-needle, single-scale search.
type Options struct {
	// Tolerance is the maximum allowed per-channel difference (0-255).
	// Zero selects the exact comparison.
	Tolerance uint8
	// Key is the transparency key; needle pixels of this color match
	// anything. Use pixel.None to disable.
	Key pixel.Color
	// FindAll scans the whole haystack and collects every hit. When false
	// the search stops at the first hit.
	FindAll bool
}

// Candidate is one successful match: the top-left offset in the haystack's
// own coordinate space plus the needle dimensions that produced it.
type Candidate struct {
	X, Y, W, H int
}

// Search tests every legal top-left offset of needle against hay in raster
// order (row-major, lowest y first, then lowest x). Candidates come back in
// that order; "first match" therefore always means lowest y, then lowest x.
// A needle larger than the haystack is a legitimate no-match outcome and
// yields an empty result.
func Search(hay, needle *pixel.Buffer, opts Options) []Candidate {
	return searchWith(hay, needle, opts, activeKernel())
}

// searchWith is the kernel-explicit scan. Tests use it to drive both
// kernels over identical inputs.
func searchWith(hay, needle *pixel.Buffer, opts Options, k Kernel) []Candidate {
	if hay == nil || needle == nil {
		return nil
	}
	w, h := needle.Width(), needle.Height()
	if w > hay.Width() || h > hay.Height() {
		return nil
	}
	maxX := hay.Width() - w
	maxY := hay.Height() - h

	var out []Candidate
	for y := 0; y <= maxY; y++ {
		for x := 0; x <= maxX; x++ {
			if matchAt(hay, needle, x, y, opts, k) {
				out = append(out, Candidate{X: x, Y: y, W: w, H: h})
				if !opts.FindAll {
					return out
				}
			}
		}
	}
	return out
}

func matchAt(hay, needle *pixel.Buffer, x, y int, opts Options, k Kernel) bool {
	if opts.Tolerance == 0 {
		if k == KernelWide {
			return matchExactWide(hay, needle, x, y, opts.Key)
		}
		return matchExactScalar(hay, needle, x, y, opts.Key)
	}
	if k == KernelWide {
		return matchApproxWide(hay, needle, x, y, opts.Key, opts.Tolerance)
	}
	return matchApproxScalar(hay, needle, x, y, opts.Key, opts.Tolerance)
}
