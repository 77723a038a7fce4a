package search

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"runtime"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/soocke/image-search-go/domain/match"
	"github.com/soocke/image-search-go/domain/pixel"
)

// Request describes one search across an already-captured haystack.
type Request struct {
	// Patterns are the pattern file identifiers, in caller order.
	Patterns []string
	// Tolerance is the per-channel bound, clamped to 0..255. Zero means
	// exact matching.
	Tolerance int
	// Transparent is the transparency key, pixel.None to disable.
	Transparent pixel.Color
	// Scale is the resize sweep applied to every pattern.
	Scale match.ScaleRange
	// FindAll collects every occurrence of every pattern. When false the
	// result holds one group: the first occurrence of the earliest-submitted
	// pattern that matches; patterns submitted after it stop early.
	FindAll bool
	// MaxResults caps the merged result list; 0 means unlimited.
	MaxResults int
}

// SplitPatternList splits the pipe-separated pattern form ("a.png|b.png")
// used by callers that pass a single string. Empty entries are dropped.
func SplitPatternList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, "|") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Grabber acquires the haystack. Bounds reports the full capturable area;
// Grab captures one region of it.
type Grabber interface {
	Bounds() (image.Rectangle, error)
	Grab(r image.Rectangle) (*pixel.Buffer, error)
}

// Engine coordinates multi-pattern, multi-scale searches against a shared
// read-only haystack. Pattern sweeps run concurrently on a bounded worker
// group; each worker owns its pattern's buffers and result slot, and the
// merge happens single-threaded after all workers finish.
type Engine struct {
	Loader  Loader
	Resize  Resizer
	Workers int
	logger  *slog.Logger
}

// NewEngine returns an Engine with the file loader, the Lanczos resizer and
// one worker per CPU. logger may be nil.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{
		Loader:  FileLoader{},
		Resize:  LanczosResize,
		Workers: runtime.NumCPU(),
		logger:  logger,
	}
}

// Run searches hay for every requested pattern. origin is the absolute
// screen position of the haystack's top-left pixel; all emitted coordinates
// are translated by it. Pattern-local failures (load, resize, decode) are
// absorbed: the pattern or scale factor is skipped and siblings continue.
func (e *Engine) Run(ctx context.Context, hay *pixel.Buffer, origin image.Point, req Request) (*Report, error) {
	if hay == nil {
		return nil, CodeExtractFailed.Err(nil)
	}
	req = normalize(req)

	perPattern := make([][]Match, len(req.Patterns))

	// winner is the lowest submission index that has matched so far, when
	// FindAll is off. A worker aborts only when a lower-indexed pattern has
	// already won, so the lowest-indexed pattern that can hit always
	// completes its sweep and the merged group never depends on worker
	// scheduling. len(Patterns) means no winner yet.
	var winner atomic.Int64
	winner.Store(int64(len(req.Patterns)))

	g, _ := errgroup.WithContext(ctx)
	workers := e.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	g.SetLimit(workers)

	for i, path := range req.Patterns {
		i, path := i, path
		g.Go(func() error {
			if !req.FindAll && winner.Load() < int64(i) {
				return nil
			}
			perPattern[i] = e.sweepPattern(hay, origin, path, i, req, &winner)
			return nil
		})
	}
	// Workers never return errors; Wait is the join barrier.
	_ = g.Wait()

	report := &Report{}
	if !req.FindAll {
		// First-match semantics: exactly one group survives, from the
		// lowest-indexed pattern that produced a hit.
		for _, group := range perPattern {
			if len(group) > 0 {
				report.Matches = append(report.Matches, group...)
				break
			}
		}
	} else {
		for _, group := range perPattern {
			report.Matches = append(report.Matches, group...)
		}
	}
	if req.MaxResults > 0 && len(report.Matches) > req.MaxResults {
		report.Matches = report.Matches[:req.MaxResults]
		report.Truncated = true
	}
	return report, nil
}

// sweepPattern runs one pattern's full scale sweep against the shared
// haystack. Scales go smallest to largest; the first factor that yields any
// hit ends the sweep for this pattern.
func (e *Engine) sweepPattern(hay *pixel.Buffer, origin image.Point, path string, idx int, req Request, winner *atomic.Int64) []Match {
	img, err := e.Loader.Load(path)
	if err != nil {
		e.warn("pattern skipped", "path", path, "error", err)
		return nil
	}
	b := img.Bounds()
	opts := match.Options{
		Tolerance: uint8(req.Tolerance),
		Key:       req.Transparent,
		FindAll:   req.FindAll,
	}

	var native *pixel.Buffer // lazily converted once, reused across factors
	sweep := match.NewSweep(req.Scale, b.Dx(), b.Dy())
	for {
		step, ok := sweep.Next()
		if !ok {
			return nil
		}
		if !req.FindAll && winner.Load() < int64(idx) {
			return nil
		}

		var needle *pixel.Buffer
		if step.Native {
			if native == nil {
				native = pixel.FromImage(img)
			}
			needle = native
		} else {
			resized, err := e.Resize(img, step.W, step.H)
			if err != nil {
				e.warn("scale skipped", "path", path, "factor", step.Factor, "error", err)
				continue
			}
			needle = pixel.FromImage(resized)
		}
		if needle == nil {
			continue
		}

		cands := match.Search(hay, needle, opts)
		if len(cands) == 0 {
			continue
		}
		if !req.FindAll {
			// CAS-min: record this index unless a lower one already won.
			for {
				cur := winner.Load()
				if int64(idx) >= cur || winner.CompareAndSwap(cur, int64(idx)) {
					break
				}
			}
		}
		out := make([]Match, len(cands))
		for j, c := range cands {
			out[j] = Match{X: origin.X + c.X, Y: origin.Y + c.Y, W: c.W, H: c.H}
		}
		return out
	}
}

// ScreenRequest extends Request with the absolute screen region to search.
// Zero or oversized Right/Bottom fall back to the display bounds; negative
// Left/Top clamp to the display origin.
type ScreenRequest struct {
	Request
	Left, Top, Right, Bottom int
}

// SearchScreen validates the region, captures it once through grab and runs
// the request against the captured haystack. Only region validation and
// haystack acquisition failures propagate; everything else is absorbed per
// pattern or per scale.
func (e *Engine) SearchScreen(ctx context.Context, grab Grabber, req ScreenRequest) (*Report, error) {
	bounds, err := grab.Bounds()
	if err != nil {
		return nil, CodeCaptureFailed.Err(err)
	}
	region, err := NormalizeRegion(req.Left, req.Top, req.Right, req.Bottom, bounds)
	if err != nil {
		return nil, err
	}
	hay, err := grab.Grab(region)
	if err != nil {
		return nil, CodeCaptureFailed.Err(err)
	}
	if hay == nil {
		return nil, CodeExtractFailed.Err(nil)
	}
	return e.Run(ctx, hay, region.Min, req.Request)
}

// NormalizeRegion clamps a caller-supplied region to the display bounds.
// A region that ends up without positive extent is a configuration error;
// no capture is attempted for it.
func NormalizeRegion(left, top, right, bottom int, bounds image.Rectangle) (image.Rectangle, error) {
	if left < bounds.Min.X {
		left = bounds.Min.X
	}
	if top < bounds.Min.Y {
		top = bounds.Min.Y
	}
	if right <= 0 || right > bounds.Max.X {
		right = bounds.Max.X
	}
	if bottom <= 0 || bottom > bounds.Max.Y {
		bottom = bounds.Max.Y
	}
	if left >= right || top >= bottom {
		return image.Rectangle{}, CodeInvalidRegion.Err(
			fmt.Errorf("region (%d,%d)-(%d,%d)", left, top, right, bottom))
	}
	return image.Rect(left, top, right, bottom), nil
}

// DebugSummary renders the request parameters for the optional diagnostic
// suffix of the encoded result.
func (req ScreenRequest) DebugSummary(centerPos bool) string {
	return fmt.Sprintf("File=%s, Rect=(%d,%d,%d,%d), Tol=%d, Trans=%s, Multi=%d, Center=%t, FindAll=%t, Kernel=%s, Scale=(%.2f,%.2f,%.2f)",
		strings.Join(req.Patterns, "|"), req.Left, req.Top, req.Right, req.Bottom,
		req.Tolerance, req.Transparent, req.MaxResults, centerPos, req.FindAll,
		match.ActiveKernel(), req.Scale.Min, req.Scale.Max, req.Scale.Step)
}

func normalize(req Request) Request {
	if req.Tolerance < 0 {
		req.Tolerance = 0
	}
	if req.Tolerance > 255 {
		req.Tolerance = 255
	}
	req.Scale = req.Scale.Normalize()
	if req.MaxResults < 0 {
		req.MaxResults = 0
	}
	return req
}

func (e *Engine) warn(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Warn(msg, args...)
	}
}
