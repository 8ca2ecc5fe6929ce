package colortable

import (
	"testing"

	"github.com/arlojansen/imgquant/internal/pixel"
)

func TestCalcColorTableInvalidDecFactor(t *testing.T) {
	_, err := CalcColorTable(nil, 1, 1, 0, false)
	if err != ErrInvalidArgument {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestCalcColorTableDedupAndWeights(t *testing.T) {
	// 2x2 square, num_rows == num_cols so the addressing quirk is a
	// no-op and this behaves like ordinary row-major addressing.
	px := []pixel.ARGB{
		pixel.New(255, 0, 0, 0),
		pixel.New(255, 0, 0, 0),
		pixel.New(255, 255, 255, 255),
		pixel.New(255, 0, 0, 0),
	}
	tbl, err := CalcColorTable(px, 2, 2, 1, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(tbl.Colors) != 2 {
		t.Fatalf("expected 2 unique colors, got %d", len(tbl.Colors))
	}
	sum := 0.0
	for _, w := range tbl.Weights {
		sum += w
	}
	if diff := sum - 1.0; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("weights must sum to 1, got %v", sum)
	}
}

func TestCalcColorTableDecFactorSubsamples(t *testing.T) {
	px := make([]pixel.ARGB, 16)
	for i := range px {
		px[i] = pixel.New(255, uint8(i), 0, 0)
	}
	tbl, err := CalcColorTable(px, 4, 4, 2, false)
	if err != nil {
		t.Fatal(err)
	}
	// stride-2 over a 4x4 grid visits rows {0,2} and cols {0,2}: 4 samples.
	total := 0.0
	for _, w := range tbl.Weights {
		total += w
	}
	if diff := total - 1.0; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected weights to sum to 1 over sampled pixels, got %v", total)
	}
}

func TestCutBitsIdentityAtEightBits(t *testing.T) {
	px := []pixel.ARGB{pixel.New(0xFF, 0xAB, 0xCD, 0xEF)}
	before := px[0]
	CutBits(px, 8, 8, 8, 8)
	if px[0] != before {
		t.Fatalf("CutBits(8,8,8,8) must be identity, got %08x want %08x", uint32(px[0]), uint32(before))
	}
}

func TestCutBitsOutOfRangeIsNoOp(t *testing.T) {
	px := []pixel.ARGB{pixel.New(0xFF, 0xAB, 0xCD, 0xEF)}
	before := px[0]
	CutBits(px, 0, 8, 8, 8)
	if px[0] != before {
		t.Fatal("out-of-range num_bits must leave pixels untouched")
	}
}

func TestCutBitsFiveBits(t *testing.T) {
	px := []pixel.ARGB{pixel.New(0xFF, 0xAB, 0xCD, 0xEF)}
	CutBits(px, 8, 5, 5, 5)
	// 0xAB >> 3 = 0x15; only the R channel is checked here.
	if px[0].R() != 0xAB>>3 {
		t.Fatalf("R channel mismatch: got %02x want %02x", px[0].R(), 0xAB>>3)
	}
}
