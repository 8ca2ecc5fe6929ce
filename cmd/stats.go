package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arlojansen/imgquant/internal/report"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir>",
	Short: "Aggregate run reports found under a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, args []string) error {
	dir := args[0]

	var reports []report.Report
	var missing []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".imgquant.json") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		var r report.Report
		if err := json.Unmarshal(data, &r); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		if r.OutputPath != "" {
			if _, err := os.Stat(r.OutputPath); err != nil {
				missing = append(missing, r.OutputPath)
			}
		}
		reports = append(reports, r)
		return nil
	})
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	if len(reports) == 0 {
		return fmt.Errorf("stats: no *.imgquant.json reports found under %s", dir)
	}

	printAggregateStats(reports, missing)
	return nil
}

func printAggregateStats(reports []report.Report, missing []string) {
	byAlgorithm := map[string]int{}
	var totalPalette, totalSourceColors int
	var totalElapsed int64

	for _, r := range reports {
		byAlgorithm[r.Algorithm]++
		totalPalette += r.PaletteSize
		totalSourceColors += r.SourceColors
		totalElapsed += int64(r.Elapsed)
	}

	fmt.Println()
	fmt.Printf("  reports:          %d\n", len(reports))
	fmt.Printf("  avg palette size: %.1f\n", float64(totalPalette)/float64(len(reports)))
	fmt.Printf("  avg source colors:%.1f\n", float64(totalSourceColors)/float64(len(reports)))
	fmt.Println()

	fmt.Println("  algorithm breakdown:")
	algos := make([]string, 0, len(byAlgorithm))
	for a := range byAlgorithm {
		algos = append(algos, a)
	}
	sort.Strings(algos)
	for _, a := range algos {
		fmt.Printf("    %-6s %4d runs\n", a, byAlgorithm[a])
	}
	fmt.Println()

	if len(missing) > 0 {
		fmt.Printf("  warnings (%d):\n", len(missing))
		for _, m := range missing {
			fmt.Printf("    output referenced by a report is missing: %s\n", m)
		}
		fmt.Println()
	}
}
