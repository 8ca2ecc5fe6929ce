// Package pipeline fans a quantization run out across every image
// found under a directory. Each goroutine owns its own decode,
// quantize.Options, and encoder registry; nothing is shared across
// goroutine boundaries, matching the single-invocation "no shared
// mutable state" contract at batch scale too.
package pipeline

import (
	"context"
	"fmt"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/arlojansen/imgquant/internal/analyze"
	"github.com/arlojansen/imgquant/internal/encoder"
	"github.com/arlojansen/imgquant/internal/loader"
	"github.com/arlojansen/imgquant/internal/quantize"
	"github.com/arlojansen/imgquant/internal/report"
)

// Config holds all parameters for a batch quantization run.
type Config struct {
	InputDir  string
	OutputDir string
	Options   quantize.Options
	Format    string
	Workers   int
	// RateLimit throttles output writes to this many files per
	// second. Zero disables throttling.
	RateLimit float64
	Verbose   bool
}

// Result is the outcome of quantizing one source image.
type Result struct {
	Source Source
	Report report.Report
	Err    error
}

// Run discovers images under cfg.InputDir and quantizes each
// concurrently up to cfg.Workers at a time, writing outputs and
// per-image reports into cfg.OutputDir.
func Run(ctx context.Context, cfg Config) ([]Result, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}

	sources, err := ScanImages(cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("pipeline: scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("pipeline: no images found in %s", cfg.InputDir)
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	results := make([]Result, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			if cfg.Verbose {
				fmt.Fprintf(os.Stderr, "[imgquant] processing: %s\n", src.RelPath)
			}
			results[i] = quantizeOne(gctx, src, cfg, limiter)
			return nil // one image's failure doesn't cancel the group
		})
	}
	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("pipeline: %w", err)
	}
	return results, nil
}

func quantizeOne(ctx context.Context, src Source, cfg Config, limiter *rate.Limiter) Result {
	res := Result{Source: src}

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	f, err := os.Open(src.AbsPath)
	if err != nil {
		res.Err = fmt.Errorf("open %s: %w", src.RelPath, err)
		return res
	}
	img, err := loader.Load(f)
	f.Close()
	if err != nil {
		res.Err = fmt.Errorf("decode %s: %w", src.RelPath, err)
		return res
	}

	start := time.Now()
	palette, indices, err := quantize.Quantize(img.Pixels, img.Width, img.Height, cfg.Options)
	if err != nil {
		res.Err = fmt.Errorf("quantize %s: %w", src.RelPath, err)
		return res
	}
	elapsed := time.Since(start)

	registry := encoder.NewRegistry()
	enc := registry.Get(cfg.Format)
	if enc == nil {
		res.Err = fmt.Errorf("format %q unavailable for %s", cfg.Format, src.RelPath)
		return res
	}

	outImg := quantize.ToImage(palette, indices, img.Width, img.Height)
	data, err := enc.Encode(outImg, 0)
	if err != nil {
		res.Err = fmt.Errorf("encode %s: %w", src.RelPath, err)
		return res
	}

	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			res.Err = err
			return res
		}
	}

	stem := filepath.Base(src.Key)
	dir := filepath.Join(cfg.OutputDir, filepath.Dir(src.Key))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		res.Err = fmt.Errorf("mkdir for %s: %w", src.RelPath, err)
		return res
	}

	outName := fmt.Sprintf("%s-%squant%d.%s", stem, cfg.Options.Algorithm.String(), cfg.Options.K, enc.Extension())
	outPath := filepath.Join(dir, outName)
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		res.Err = fmt.Errorf("write %s: %w", outPath, err)
		return res
	}

	deltaE := quantize.SampleDeltaE(img.Pixels, palette, indices, 256)
	res.Report = report.New(
		cfg.Options.Algorithm.String(), cfg.Options.K, cfg.Options.Dither, cfg.Options.Seed,
		len(palette), analyze.UniqueColors(img.Pixels), elapsed, data, outPath, deltaE,
	)
	reportPath := filepath.Join(dir, stem+".imgquant.json")
	if err := report.WriteJSON(res.Report, reportPath); err != nil {
		res.Err = fmt.Errorf("write report for %s: %w", src.RelPath, err)
	}
	return res
}
