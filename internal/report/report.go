// Package report writes the JSON summary of one quantization run,
// the tgimg.manifest.json pattern narrowed to a single asset.
package report

import (
	"encoding/json"
	"os"
	"time"

	"github.com/arlojansen/imgquant/internal/hasher"
)

// SupportedReportVersion is the current schema version.
const SupportedReportVersion = 1

// Report is the top-level output of one imgquant run.
type Report struct {
	Version      int           `json:"version"`
	GeneratedAt  string        `json:"generated_at"`
	Algorithm    string        `json:"algorithm"`
	K            int           `json:"k"`
	Dither       bool          `json:"dither"`
	Seed         int64         `json:"seed"`
	PaletteSize  int           `json:"palette_size"`
	SourceColors int           `json:"source_colors"`
	Elapsed      time.Duration `json:"elapsed_ns"`
	ContentHash  string        `json:"content_hash"`
	OutputPath   string        `json:"output_path"`
	DeltaE       float64       `json:"delta_e,omitempty"`
}

// New builds a report from the encoded output and run parameters.
// encoded is hashed with xxHash64 and truncated to 16 hex chars.
// deltaE is the sampled average CIE94 distance between source pixels
// and their mapped palette color (see quantize.SampleDeltaE); pass 0
// when the caller has no reference pixels to sample against.
func New(algorithm string, k int, dither bool, seed int64, paletteSize, sourceColors int, elapsed time.Duration, encoded []byte, outputPath string, deltaE float64) Report {
	return Report{
		Version:      SupportedReportVersion,
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		Algorithm:    algorithm,
		K:            k,
		Dither:       dither,
		Seed:         seed,
		PaletteSize:  paletteSize,
		SourceColors: sourceColors,
		Elapsed:      elapsed,
		ContentHash:  hasher.ContentHash(encoded, 16),
		OutputPath:   outputPath,
		DeltaE:       deltaE,
	}
}

// WriteJSON serializes the report next to the output image as
// <stem>.imgquant.json.
func WriteJSON(r Report, path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}
