package match

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soocke/image-search-go/domain/pixel"
)

// solid builds a w x h buffer filled with one color.
func solid(t *testing.T, w, h int, c pixel.Color) *pixel.Buffer {
	t.Helper()
	samples := make([]pixel.Color, w*h)
	for i := range samples {
		samples[i] = c
	}
	b, err := pixel.New(w, h, samples)
	require.NoError(t, err)
	return b
}

// indexed builds a buffer whose every sample is distinct, which makes any
// sub-patch occur at exactly one offset.
func indexed(t *testing.T, w, h int) *pixel.Buffer {
	t.Helper()
	samples := make([]pixel.Color, w*h)
	for i := range samples {
		samples[i] = pixel.Color(i)
	}
	b, err := pixel.New(w, h, samples)
	require.NoError(t, err)
	return b
}

// patchOf copies the w x h sub-region of src at (ox, oy) into a new buffer.
func patchOf(t *testing.T, src *pixel.Buffer, ox, oy, w, h int) *pixel.Buffer {
	t.Helper()
	samples := make([]pixel.Color, 0, w*h)
	for y := 0; y < h; y++ {
		samples = append(samples, src.Row(oy+y)[ox:ox+w]...)
	}
	b, err := pixel.New(w, h, samples)
	require.NoError(t, err)
	return b
}

func kernels() []Kernel { return []Kernel{KernelScalar, KernelWide} }

func TestExactMatchesIdenticalSubRegion(t *testing.T) {
	hay := indexed(t, 12, 9)
	needle := patchOf(t, hay, 4, 3, 3, 3)

	for _, k := range kernels() {
		cands := searchWith(hay, needle, Options{Key: pixel.None, FindAll: true}, k)
		require.Len(t, cands, 1, "kernel %s", k)
		assert.Equal(t, Candidate{X: 4, Y: 3, W: 3, H: 3}, cands[0])
	}
}

func TestExactFailsOnSingleDifferingPixel(t *testing.T) {
	hay := indexed(t, 12, 9)
	for _, k := range kernels() {
		for i := 0; i < 9; i++ {
			needle := patchOf(t, hay, 4, 3, 3, 3)
			// Corrupt exactly one needle pixel. Rebuild with one sample off.
			samples := make([]pixel.Color, 0, 9)
			for y := 0; y < 3; y++ {
				samples = append(samples, needle.Row(y)...)
			}
			samples[i] ^= 1
			corrupted, err := pixel.New(3, 3, samples)
			require.NoError(t, err)

			cands := searchWith(hay, corrupted, Options{Key: pixel.None, FindAll: true}, k)
			assert.Empty(t, cands, "kernel %s, pixel %d", k, i)
		}
	}
}

func TestToleranceIsPerChannelChebyshev(t *testing.T) {
	hay := solid(t, 4, 4, pixel.Pack(100, 100, 100))
	// One channel 11 off, the others inside the bound. A combined-distance
	// metric would accept this at tolerance 10; the per-channel bound must
	// reject it.
	needle := solid(t, 2, 2, pixel.Pack(111, 100, 100))

	for _, k := range kernels() {
		assert.Empty(t, searchWith(hay, needle, Options{Tolerance: 10, Key: pixel.None, FindAll: true}, k), "kernel %s", k)
		assert.NotEmpty(t, searchWith(hay, needle, Options{Tolerance: 11, Key: pixel.None, FindAll: true}, k), "kernel %s", k)
	}
}

func TestToleranceSaturatesAtFullRange(t *testing.T) {
	hay := solid(t, 3, 3, pixel.Pack(0, 0, 0))
	needle := solid(t, 1, 1, pixel.Pack(255, 255, 255))

	for _, k := range kernels() {
		assert.Empty(t, searchWith(hay, needle, Options{Tolerance: 254, Key: pixel.None, FindAll: true}, k), "kernel %s", k)
		got := searchWith(hay, needle, Options{Tolerance: 255, Key: pixel.None, FindAll: true}, k)
		assert.Len(t, got, 9, "kernel %s", k)
	}
}

func TestToleranceMonotonicity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	hay := randomBuffer(t, rng, 10, 8, 4)
	needle := randomBuffer(t, rng, 3, 3, 4)

	prev := -1
	for tol := 0; tol <= 16; tol++ {
		cands := searchWith(hay, needle, Options{Tolerance: uint8(tol), Key: pixel.None, FindAll: true}, KernelScalar)
		assert.GreaterOrEqual(t, len(cands), prev, "tolerance %d", tol)
		prev = len(cands)
	}
	// Everything matches once the bound covers the full channel range.
	full := searchWith(hay, needle, Options{Tolerance: 255, Key: pixel.None, FindAll: true}, KernelScalar)
	assert.Len(t, full, (10-3+1)*(8-3+1))
}

func TestTransparencyAbsorption(t *testing.T) {
	key := pixel.Pack(255, 0, 255)
	hay := indexed(t, 10, 10)
	base := patchOf(t, hay, 2, 5, 3, 2)

	for _, k := range kernels() {
		require.Len(t, searchWith(hay, base, Options{Key: key, FindAll: true}, k), 1, "kernel %s", k)

		// Replacing any subset of needle pixels with the key never turns a
		// matching offset into a non-matching one.
		for mask := 1; mask < 1<<6; mask++ {
			samples := make([]pixel.Color, 0, 6)
			for y := 0; y < 2; y++ {
				samples = append(samples, base.Row(y)...)
			}
			for i := 0; i < 6; i++ {
				if mask&(1<<i) != 0 {
					samples[i] = key
				}
			}
			masked, err := pixel.New(3, 2, samples)
			require.NoError(t, err)
			cands := searchWith(hay, masked, Options{Key: key, FindAll: true}, k)
			assert.NotEmpty(t, cands, "kernel %s mask %b", k, mask)
			assert.Contains(t, cands, Candidate{X: 2, Y: 5, W: 3, H: 2}, "kernel %s mask %b", k, mask)
		}
	}
}

func TestAllTransparentNeedleMatchesEverywhere(t *testing.T) {
	key := pixel.Pack(1, 2, 3)
	hay := indexed(t, 10, 10)
	needle := solid(t, 2, 2, key)

	for _, k := range kernels() {
		cands := searchWith(hay, needle, Options{Key: key, FindAll: true}, k)
		assert.Len(t, cands, 81, "kernel %s", k)
	}
}

func randomBuffer(t *testing.T, rng *rand.Rand, w, h int, spread int) *pixel.Buffer {
	t.Helper()
	samples := make([]pixel.Color, w*h)
	for i := range samples {
		r := uint8(100 + rng.Intn(spread))
		g := uint8(100 + rng.Intn(spread))
		b := uint8(100 + rng.Intn(spread))
		samples[i] = pixel.Pack(r, g, b)
	}
	buf, err := pixel.New(w, h, samples)
	require.NoError(t, err)
	return buf
}

// TestKernelEquivalence drives both kernels over randomized buffers,
// tolerances and transparency keys; outcomes must be identical at every
// offset.
func TestKernelEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	key := pixel.Pack(100, 100, 100) // occurs naturally in the random data

	for round := 0; round < 200; round++ {
		w := 4 + rng.Intn(12)
		h := 4 + rng.Intn(8)
		nw := 1 + rng.Intn(4)
		nh := 1 + rng.Intn(4)
		hay := randomBuffer(t, rng, w, h, 3)
		needle := randomBuffer(t, rng, nw, nh, 3)

		opts := Options{
			Tolerance: uint8(rng.Intn(4)),
			Key:       pixel.None,
			FindAll:   true,
		}
		if rng.Intn(2) == 0 {
			opts.Key = key
		}

		scalar := searchWith(hay, needle, opts, KernelScalar)
		wide := searchWith(hay, needle, opts, KernelWide)
		require.Equal(t, scalar, wide,
			"round %d: hay %dx%d needle %dx%d tol %d key %s",
			round, w, h, nw, nh, opts.Tolerance, opts.Key)
	}
}

func TestActiveKernelIsStable(t *testing.T) {
	first := ActiveKernel()
	for i := 0; i < 8; i++ {
		assert.Equal(t, first, ActiveKernel())
	}
}
