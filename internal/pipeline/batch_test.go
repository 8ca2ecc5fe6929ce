package pipeline

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/arlojansen/imgquant/internal/quantize"
)

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.NRGBA{R: 200, G: 20, B: 20, A: 255})
			} else {
				img.Set(x, y, color.NRGBA{R: 20, G: 20, B: 200, A: 255})
			}
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func TestRunQuantizesEveryDiscoveredImage(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	writeTestPNG(t, filepath.Join(inDir, "a.png"))
	writeTestPNG(t, filepath.Join(inDir, "b.png"))

	cfg := Config{
		InputDir:  inDir,
		OutputDir: outDir,
		Options:   quantize.Options{Algorithm: quantize.AlgorithmDIV, K: 2, Seed: 1},
		Format:    "png",
		Workers:   2,
	}

	results, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("%s: unexpected error: %v", r.Source.RelPath, r.Err)
		}
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("read out dir: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected output files, found none")
	}
}

func TestRunErrorsOnEmptyDirectory(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	cfg := Config{
		InputDir:  inDir,
		OutputDir: outDir,
		Options:   quantize.Options{Algorithm: quantize.AlgorithmDIV, K: 2},
		Format:    "png",
	}
	if _, err := Run(context.Background(), cfg); err == nil {
		t.Fatal("expected error for empty input directory")
	}
}
