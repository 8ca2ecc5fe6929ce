package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arlojansen/imgquant/internal/analyze"
	"github.com/arlojansen/imgquant/internal/loader"
	"github.com/arlojansen/imgquant/internal/preview"
)

var inspectK int

var inspectCmd = &cobra.Command{
	Use:   "inspect <input>",
	Short: "Print source image diagnostics without quantizing",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().IntVarP(&inspectK, "colors", "m", 8, "number of dominant colors to preview")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(_ *cobra.Command, args []string) error {
	inputPath := args[0]

	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", inputPath, err)
	}
	img, err := loader.Load(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("decode %s: %w", inputPath, err)
	}

	stats := analyze.ChannelStats(img.Pixels)
	unique := analyze.UniqueColors(img.Pixels)
	dominant := preview.DominantColors(img.Pixels, img.Width, img.Height, inspectK)
	suggestedK := preview.SuggestK(img.Pixels, 4096)

	fmt.Printf("  dimensions:      %dx%d\n", img.Width, img.Height)
	fmt.Printf("  has alpha:       %v\n", img.HasAlpha)
	fmt.Printf("  source colors:   %d\n", unique)
	fmt.Println()
	fmt.Println("  channel statistics (mean / variance):")
	fmt.Printf("    A: %.1f / %.1f\n", stats.Alpha.Mean, stats.Alpha.Variance)
	fmt.Printf("    R: %.1f / %.1f\n", stats.Red.Mean, stats.Red.Variance)
	fmt.Printf("    G: %.1f / %.1f\n", stats.Green.Mean, stats.Green.Variance)
	fmt.Printf("    B: %.1f / %.1f\n", stats.Blue.Mean, stats.Blue.Variance)
	fmt.Println()
	fmt.Printf("  suggested -m:    %d\n", suggestedK)
	fmt.Printf("  dominant colors (%d requested):\n", inspectK)
	for _, c := range dominant {
		fmt.Printf("    rgba(%d, %d, %d, %d)\n", c.R, c.G, c.B, c.A)
	}
	fmt.Println()
	return nil
}
