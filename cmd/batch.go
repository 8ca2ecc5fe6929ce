package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arlojansen/imgquant/internal/dither"
	"github.com/arlojansen/imgquant/internal/pipeline"
	"github.com/arlojansen/imgquant/internal/quantize"
)

var (
	batchOutDir    string
	batchAlgorithm string
	batchK         int
	batchDither    bool
	batchSeed      int64
	batchWorkers   int
	batchRate      float64
	batchFormat    string
)

var batchCmd = &cobra.Command{
	Use:   "batch <input_dir>",
	Short: "Quantize every image found under a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchOutDir, "out", "o", "./imgquant_out", "output directory")
	batchCmd.Flags().StringVar(&batchAlgorithm, "algorithm", "div", "quantization engine: div or neu")
	batchCmd.Flags().IntVarP(&batchK, "colors", "m", 16, "target palette size, clamped to [2, 65536]")
	batchCmd.Flags().BoolVar(&batchDither, "dither", false, "apply Floyd-Steinberg error diffusion")
	batchCmd.Flags().Int64Var(&batchSeed, "seed", 1, "RNG seed shared by every image in the batch")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	batchCmd.Flags().Float64Var(&batchRate, "rate", 0, "max output writes per second (0 = unlimited)")
	batchCmd.Flags().StringVar(&batchFormat, "format", "png", "output format: png or webp")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	inputDir := args[0]

	absInput, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(batchOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	algo, err := quantize.ParseAlgorithm(batchAlgorithm)
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}

	opts := quantize.Options{
		Algorithm: algo,
		K:         clampK(batchK),
		Dither:    batchDither,
		Seed:      batchSeed,
	}
	if opts.Dither {
		opts.DitherFn = dither.FloydSteinberg
	}

	cfg := pipeline.Config{
		InputDir:  absInput,
		OutputDir: absOutput,
		Options:   opts,
		Format:    batchFormat,
		Workers:   batchWorkers,
		RateLimit: batchRate,
		Verbose:   verbose,
	}

	logVerbose("input:   %s", absInput)
	logVerbose("output:  %s", absOutput)
	logVerbose("algorithm: %s  K=%d  dither=%v", opts.Algorithm, opts.K, opts.Dither)

	results, err := pipeline.Run(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	printBatchReport(results)
	for _, r := range results {
		if r.Err == nil {
			return nil
		}
	}
	return fmt.Errorf("batch: all %d images failed", len(results))
}

func printBatchReport(results []pipeline.Result) {
	var ok, failed int
	var totalOut int64
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Printf("  error: %s: %v\n", r.Source.RelPath, r.Err)
			continue
		}
		ok++
		if info, err := os.Stat(r.Report.OutputPath); err == nil {
			totalOut += info.Size()
		}
	}

	fmt.Println()
	fmt.Printf("  processed: %d\n", len(results))
	fmt.Printf("  succeeded: %d\n", ok)
	fmt.Printf("  failed:    %d\n", failed)
	fmt.Printf("  output:    %s\n", formatBytes(totalOut))
	fmt.Println()
}
