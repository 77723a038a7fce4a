package match

import "math"

// scaleEpsilon absorbs float accumulation at the inclusive upper bound.
// A range whose arithmetic lands within this distance of Max still yields
// the boundary factor; this imprecision is accepted, not corrected.
const scaleEpsilon = 1e-9

// maxSweepSteps bounds how many factors one sweep enumerates. A tiny step
// over a wide range would otherwise turn into thousands of resample-and-scan
// passes per pattern; beyond the cap the range is simply cut off.
const maxSweepSteps = 200

// ScaleRange describes a sweep of needle resize factors from Min to Max
// (inclusive) in increments of Step.
type ScaleRange struct {
	Min  float64
	Max  float64
	Step float64
}

// Normalize clamps a range the same way the search entry point normalizes
// caller parameters: non-positive minimum becomes 0.1, a maximum below the
// minimum collapses to it, and a non-positive step becomes 0.1.
func (r ScaleRange) Normalize() ScaleRange {
	if r.Min <= 0 {
		r.Min = 0.1
	}
	if r.Max < r.Min {
		r.Max = r.Min
	}
	if r.Step <= 0 {
		r.Step = 0.1
	}
	return r
}

// ScaleStep is one enumerated target size for a needle.
type ScaleStep struct {
	Factor float64
	W, H   int
	// Native is set when the factor is 1.0; the needle's own pixels are
	// used directly instead of going through a resample.
	Native bool
}

// ScaleSweep lazily enumerates the target sizes of one needle across a
// ScaleRange, smallest factor first. Factors that round either dimension
// below one pixel are skipped. The sweep is finite and restartable; each
// needle runs its own independent enumeration.
type ScaleSweep struct {
	r      ScaleRange
	w0, h0 int
	i      int
}

// NewSweep creates a sweep over r for a needle of native size w0 x h0.
// The range is normalized first.
func NewSweep(r ScaleRange, w0, h0 int) *ScaleSweep {
	return &ScaleSweep{r: r.Normalize(), w0: w0, h0: h0}
}

// Reset rewinds the sweep to its first factor.
func (s *ScaleSweep) Reset() { s.i = 0 }

// Next returns the next valid target size, or ok=false when the range is
// exhausted or the step cap is reached. Min itself is always yielded when
// Min == Max.
func (s *ScaleSweep) Next() (ScaleStep, bool) {
	for {
		if s.i >= maxSweepSteps {
			return ScaleStep{}, false
		}
		f := s.r.Min + float64(s.i)*s.r.Step
		if f > s.r.Max+scaleEpsilon {
			return ScaleStep{}, false
		}
		s.i++
		w := int(math.Round(float64(s.w0) * f))
		h := int(math.Round(float64(s.h0) * f))
		if w < 1 || h < 1 {
			continue
		}
		return ScaleStep{Factor: f, W: w, H: h, Native: math.Abs(f-1) < scaleEpsilon}, true
	}
}
