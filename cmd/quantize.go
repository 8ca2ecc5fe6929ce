package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/arlojansen/imgquant/internal/analyze"
	"github.com/arlojansen/imgquant/internal/dither"
	"github.com/arlojansen/imgquant/internal/encoder"
	"github.com/arlojansen/imgquant/internal/loader"
	"github.com/arlojansen/imgquant/internal/quantize"
	"github.com/arlojansen/imgquant/internal/report"
)

var (
	quantizeOutDir    string
	quantizeAlgorithm string
	quantizeK         int
	quantizeDither    bool
	quantizeSeed      int64
	quantizeDecFactor int
	quantizeNumBits   int
	quantizeMaxIters  int
	quantizeFormat    string
)

var quantizeCmd = &cobra.Command{
	Use:   "quantize <input>",
	Short: "Quantize one image to a reduced color palette",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuantize,
}

func init() {
	quantizeCmd.Flags().StringVarP(&quantizeOutDir, "out", "o", ".", "output directory")
	quantizeCmd.Flags().StringVar(&quantizeAlgorithm, "algorithm", "div", "quantization engine: div or neu")
	quantizeCmd.Flags().IntVarP(&quantizeK, "colors", "m", 16, "target palette size, clamped to [2, 65536]")
	quantizeCmd.Flags().BoolVar(&quantizeDither, "dither", false, "apply Floyd-Steinberg error diffusion")
	quantizeCmd.Flags().Int64Var(&quantizeSeed, "seed", 1, "RNG seed for NEU's randomized nearest-color tie-breaking")
	quantizeCmd.Flags().IntVar(&quantizeDecFactor, "dec-factor", 1, "DIV subsampling stride")
	quantizeCmd.Flags().IntVar(&quantizeNumBits, "num-bits", 8, "DIV output precision per channel, 1..8")
	quantizeCmd.Flags().IntVar(&quantizeMaxIters, "max-iters", 0, "DIV local K-means refinement iterations")
	quantizeCmd.Flags().StringVar(&quantizeFormat, "format", "png", "output format: png or webp")
	rootCmd.AddCommand(quantizeCmd)
}

func clampK(k int) int {
	if k < 2 {
		return 2
	}
	if k > 65536 {
		return 65536
	}
	return k
}

func runQuantize(_ *cobra.Command, args []string) error {
	inputPath := args[0]
	start := time.Now()

	algo, err := quantize.ParseAlgorithm(quantizeAlgorithm)
	if err != nil {
		return fmt.Errorf("quantize: %w", err)
	}

	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", inputPath, err)
	}
	img, err := loader.Load(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("decode %s: %w", inputPath, err)
	}

	opts := quantize.Options{
		Algorithm: algo,
		K:         clampK(quantizeK),
		Dither:    quantizeDither,
		Seed:      quantizeSeed,
		NumBits:   quantizeNumBits,
		DecFactor: quantizeDecFactor,
		MaxIters:  quantizeMaxIters,
	}
	if opts.Dither {
		opts.DitherFn = dither.FloydSteinberg
	}

	logVerbose("input:     %s (%dx%d)", inputPath, img.Width, img.Height)
	logVerbose("algorithm: %s  K=%d  dither=%v  seed=%d", opts.Algorithm, opts.K, opts.Dither, opts.Seed)

	palette, indices, err := quantize.Quantize(img.Pixels, img.Width, img.Height, opts)
	if err != nil {
		return fmt.Errorf("quantize: %w", err)
	}
	elapsed := time.Since(start)

	registry := encoder.NewRegistry()
	enc := registry.Get(quantizeFormat)
	if enc == nil {
		return fmt.Errorf("quantize: format %q unavailable (%s)", quantizeFormat, registry.String())
	}

	outImg := quantize.ToImage(palette, indices, img.Width, img.Height)
	data, err := enc.Encode(outImg, 0)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	if err := os.MkdirAll(quantizeOutDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	stem := stemOf(inputPath)
	outPath := filepath.Join(quantizeOutDir, fmt.Sprintf("%s-%squant%d.%s", stem, opts.Algorithm, opts.K, enc.Extension()))
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	deltaE := quantize.SampleDeltaE(img.Pixels, palette, indices, 256)
	r := report.New(opts.Algorithm.String(), opts.K, opts.Dither, opts.Seed, len(palette), analyze.UniqueColors(img.Pixels), elapsed, data, outPath, deltaE)
	reportPath := filepath.Join(quantizeOutDir, stem+".imgquant.json")
	if err := report.WriteJSON(r, reportPath); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	printQuantizeReport(r, outPath, reportPath)
	return nil
}

func printQuantizeReport(r report.Report, outPath, reportPath string) {
	fmt.Printf("  algorithm:      %s\n", r.Algorithm)
	fmt.Printf("  palette size:   %d\n", r.PaletteSize)
	fmt.Printf("  source colors:  %d\n", r.SourceColors)
	fmt.Printf("  dither:         %v\n", r.Dither)
	fmt.Printf("  delta-e (avg):  %.3f\n", r.DeltaE)
	fmt.Printf("  elapsed:        %s\n", r.Elapsed.Round(time.Microsecond))
	fmt.Printf("  output:         %s\n", outPath)
	fmt.Printf("  report:         %s\n", reportPath)
}

func stemOf(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
