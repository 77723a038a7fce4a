package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/soocke/image-search-go/capture"
	"github.com/soocke/image-search-go/config"
	"github.com/soocke/image-search-go/debug"
	"github.com/soocke/image-search-go/domain/match"
	"github.com/soocke/image-search-go/domain/pixel"
	"github.com/soocke/image-search-go/domain/search"
)

func main() {
	var (
		cfgPath     = flag.String("config", "", "optional JSON config file")
		patterns    = flag.String("image", "", "pattern file path(s), pipe-separated")
		left        = flag.Int("left", 0, "search region left edge")
		top         = flag.Int("top", 0, "search region top edge")
		right       = flag.Int("right", 0, "search region right edge (0 = display edge)")
		bottom      = flag.Int("bottom", 0, "search region bottom edge (0 = display edge)")
		tolerance   = flag.Int("tolerance", -1, "per-channel color tolerance 0-255")
		transparent = flag.String("transparent", "", "transparency key (hex color or 'none')")
		minScale    = flag.Float64("scale-min", 0, "minimum pattern scale factor")
		maxScale    = flag.Float64("scale-max", 0, "maximum pattern scale factor")
		scaleStep   = flag.Float64("scale-step", 0, "scale sweep increment")
		findAll     = flag.Bool("find-all", false, "collect every occurrence of every pattern")
		multi       = flag.Int("multi", -1, "cap on total results (0 = unlimited)")
		center      = flag.Bool("center", true, "report match centers instead of top-left corners")
		debugFlag   = flag.Bool("debug", false, "verbose logging plus a DEBUG suffix on the result")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
	}
	applyFlags(cfg, *tolerance, *transparent, *minScale, *maxScale, *scaleStep, *multi)
	if *debugFlag {
		cfg.Debug = true
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if cfg.Debug {
		debug.StartRuntimeLogger(0, logger)
		debug.StartWorkingSetLogger(0, logger)
	}

	if *patterns == "" {
		fmt.Fprintln(os.Stderr, "usage: image-search -image pattern.png[|more.png] [flags]")
		os.Exit(2)
	}

	key, err := pixel.ParseKey(cfg.Transparent)
	if err != nil {
		logger.Error("transparency key", "error", err)
		fmt.Println(search.EncodeFailure(search.CodeBadImage.Err(err)))
		os.Exit(1)
	}

	req := search.ScreenRequest{
		Request: search.Request{
			Patterns:    search.SplitPatternList(*patterns),
			Tolerance:   cfg.Tolerance,
			Transparent: key,
			Scale: match.ScaleRange{
				Min:  cfg.MinScale,
				Max:  cfg.MaxScale,
				Step: cfg.ScaleStep,
			},
			FindAll:    *findAll || cfg.FindAll,
			MaxResults: cfg.MaxResults,
		},
		Left:   pick(*left, cfg.Left),
		Top:    pick(*top, cfg.Top),
		Right:  pick(*right, cfg.Right),
		Bottom: pick(*bottom, cfg.Bottom),
	}

	engine := search.NewEngine(logger)
	report, err := engine.SearchScreen(context.Background(), capture.Screen{}, req)
	if err != nil {
		logger.Error("search failed", "error", err)
		fmt.Println(search.EncodeFailure(err))
		os.Exit(1)
	}

	opts := search.EncodeOptions{
		CenterPos: *center && cfg.CenterPos,
		MaxBytes:  cfg.MaxAnswerBytes,
	}
	if cfg.Debug {
		opts.Debug = req.DebugSummary(opts.CenterPos)
	}
	out, err := report.Encode(opts)
	if err != nil {
		logger.Error("encode failed", "error", err)
		fmt.Println(search.EncodeFailure(err))
		os.Exit(1)
	}
	fmt.Println(out)
}

// applyFlags copies explicitly set flag values over the config defaults.
func applyFlags(cfg *config.Config, tol int, trans string, minS, maxS, step float64, multi int) {
	if tol >= 0 {
		cfg.Tolerance = tol
	}
	if trans != "" {
		cfg.Transparent = trans
	}
	if minS > 0 {
		cfg.MinScale = minS
	}
	if maxS > 0 {
		cfg.MaxScale = maxS
	}
	if step > 0 {
		cfg.ScaleStep = step
	}
	if multi >= 0 {
		cfg.MaxResults = multi
	}
	_ = cfg.Validate()
}

func pick(flagVal, cfgVal int) int {
	if flagVal != 0 {
		return flagVal
	}
	return cfgVal
}
