package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestReportRoundtrip(t *testing.T) {
	r := New("div", 16, true, 42, 16, 512, 250*time.Millisecond, []byte("fake-encoded-bytes"), "out/photo-DIVquant16.png", 1.75)

	dir := t.TempDir()
	path := filepath.Join(dir, "photo.imgquant.json")
	if err := WriteJSON(r, path); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var r2 Report
	if err := json.Unmarshal(data, &r2); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if r2.Version != SupportedReportVersion {
		t.Errorf("version: got %d, want %d", r2.Version, SupportedReportVersion)
	}
	if r2.Algorithm != "div" {
		t.Errorf("algorithm: got %q", r2.Algorithm)
	}
	if r2.K != 16 {
		t.Errorf("k: got %d", r2.K)
	}
	if !r2.Dither {
		t.Error("dither: got false")
	}
	if r2.Seed != 42 {
		t.Errorf("seed: got %d", r2.Seed)
	}
	if r2.ContentHash == "" || len(r2.ContentHash) != 16 {
		t.Errorf("content_hash: got %q", r2.ContentHash)
	}
	if r2.DeltaE != 1.75 {
		t.Errorf("delta_e: got %v, want 1.75", r2.DeltaE)
	}
}

func TestReportIgnoresUnknownFields(t *testing.T) {
	raw := `{
		"version": 1,
		"algorithm": "neu",
		"k": 8,
		"future_field": "should be ignored",
		"content_hash": "abcd1234abcd1234"
	}`

	var r Report
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("unmarshal with unknown fields: %v", err)
	}
	if r.Algorithm != "neu" {
		t.Errorf("algorithm: got %q", r.Algorithm)
	}
	if r.K != 8 {
		t.Errorf("k: got %d", r.K)
	}
}

func TestReportContentHashDeterministic(t *testing.T) {
	r1 := New("div", 4, false, 0, 4, 4, 0, []byte("same bytes"), "a.png", 0)
	r2 := New("div", 4, false, 0, 4, 4, 0, []byte("same bytes"), "b.png", 0)
	if r1.ContentHash != r2.ContentHash {
		t.Errorf("expected identical content hash for identical bytes, got %q vs %q", r1.ContentHash, r2.ContentHash)
	}
}
