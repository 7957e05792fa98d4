package brush

import (
	"math"
	"testing"

	"github.com/gogpu/paintcore/pixfmt"
	"github.com/gogpu/paintcore/tile"
)

func tileAlpha(t *testing.T, mgr *tile.Manager, x, y int) uint32 {
	t.Helper()
	pb, ok, err := mgr.GetTile(x, y, false)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		return 0
	}
	ox, oy := pb.Origin()
	color, err := pb.GetPixel(x-ox, y-oy)
	if err != nil {
		t.Fatal(err)
	}
	return color[3]
}

func TestDrawDabFalloffBoundaries(t *testing.T) {
	b, mgr := newTestBrush()
	b.params.Hardness = 0.5

	// Center the dab on pixel (31,31)'s own center so that pixel sits at
	// rr=0 (full opacity) and pixel (33,31) sits exactly at rr=1 (zero).
	area := newRectAccum()
	if err := b.drawDabSolid(area, 31.5, 31.5, 2, 1, b.params.Hardness, 1, 1, 1, 0, [3]float64{1, 1, 0}); err != nil {
		t.Fatal(err)
	}

	if got := tileAlpha(t, mgr, 31, 31); got != pixfmt.Scale15 {
		t.Errorf("alpha at dab center = %d, want %d (opa(rr=0) == opacity)", got, pixfmt.Scale15)
	}
	if got := tileAlpha(t, mgr, 33, 31); got != 0 {
		t.Errorf("alpha at rr=1 = %d, want 0 (opa(rr=1) == 0)", got)
	}
	if got := tileAlpha(t, mgr, 35, 31); got != 0 {
		t.Errorf("alpha outside the ellipse = %d, want untouched 0", got)
	}
}

func TestDrawDabHardEdgeIdempotent(t *testing.T) {
	// Two identical full-opacity hard dabs: the second must not change any
	// pixel the first already saturated.
	b, mgr := newTestBrush()

	draw := func() {
		area := newRectAccum()
		if err := b.drawDabSolid(area, 32, 32, 2, 1, 1.0, 1, 1, 1, 0, [3]float64{1, 1, 0}); err != nil {
			t.Fatal(err)
		}
	}

	draw()
	var before [8][8][4]uint32
	pb, ok, _ := mgr.GetTile(32, 32, false)
	if !ok {
		t.Fatal("expected the dab to have created a tile")
	}
	for y := 28; y < 36; y++ {
		for x := 28; x < 36; x++ {
			c, err := pb.GetPixel(x, y)
			if err != nil {
				t.Fatal(err)
			}
			copy(before[y-28][x-28][:], c)
		}
	}

	draw()
	for y := 28; y < 36; y++ {
		for x := 28; x < 36; x++ {
			c, _ := pb.GetPixel(x, y)
			for i := 0; i < 4; i++ {
				if c[i] != before[y-28][x-28][i] {
					t.Fatalf("pixel (%d,%d) channel %d changed on the second identical dab: %d -> %d",
						x, y, i, before[y-28][x-28][i], c[i])
				}
			}
		}
	}
}

func TestDrawDabSetsDamagedFlag(t *testing.T) {
	b, mgr := newTestBrush()
	area := newRectAccum()
	if err := b.drawDabSolid(area, 32, 32, 2, 1, 1.0, 1, 1, 1, 0, [3]float64{1, 0, 0}); err != nil {
		t.Fatal(err)
	}
	pb, ok, _ := mgr.GetTile(32, 32, false)
	if !ok || !pb.Damaged() {
		t.Fatal("expected the painted tile to carry the damaged flag")
	}
}

func TestDrawDabDamagedAreaContainsDab(t *testing.T) {
	b, _ := newTestBrush()
	area := newRectAccum()
	if err := b.drawDabSolid(area, 100, 100, 3, 1, 1.0, 1, 1, 1, 0, [3]float64{1, 0, 0}); err != nil {
		t.Fatal(err)
	}
	if !area.touched {
		t.Fatal("expected a damaged area")
	}
	r := area.rect()
	if r.X > 96 || r.Y > 96 || r.X+r.W < 104 || r.Y+r.H < 104 {
		t.Errorf("damaged rect %+v does not contain the dab's radius-3 disc at (100,100)", r)
	}
}

func TestGetDabColorReadsCanvas(t *testing.T) {
	b, mgr := newTestBrush()

	// Paint an opaque red square directly, then sample it.
	for y := 30; y < 35; y++ {
		for x := 30; x < 35; x++ {
			pb, err := mgr.GetPixbuf(x, y)
			if err != nil {
				t.Fatal(err)
			}
			ox, oy := pb.Origin()
			if err := pb.SetPixel(x-ox, y-oy, []uint32{pixfmt.Scale15, 0, 0, pixfmt.Scale15}); err != nil {
				t.Fatal(err)
			}
		}
	}

	color, ok, err := b.getDabColor(32.5, 32.5, 2, 1, 1.0, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected a pickup over an opaque area")
	}
	if math.Abs(color[0]-1.0) > 1e-6 || color[1] > 1e-6 || color[2] > 1e-6 {
		t.Errorf("sampled color = %v, want pure red", color)
	}
	if math.Abs(color[3]-1.0) > 1e-6 {
		t.Errorf("sampled alpha = %v, want 1", color[3])
	}
}

func TestDrawDabAlphaLockPreservesCoverage(t *testing.T) {
	b, mgr := newTestBrush()

	// First, paint a normal dab to establish coverage.
	area := newRectAccum()
	if err := b.drawDabSolid(area, 32, 32, 2, 1, 1.0, 1, 1, 1, 0, [3]float64{1, 0, 0}); err != nil {
		t.Fatal(err)
	}
	before := tileAlpha(t, mgr, 32, 32)
	outside := tileAlpha(t, mgr, 40, 40)

	// Then an alpha-locked green dab over a wider area: color changes
	// where coverage exists, coverage itself never grows or shrinks.
	b.params.AlphaLock = true
	area = newRectAccum()
	if err := b.drawDabSolid(area, 32, 32, 6, 1, 1.0, 1, 1, 1, 0, [3]float64{0, 1, 0}); err != nil {
		t.Fatal(err)
	}

	if got := tileAlpha(t, mgr, 32, 32); got != before {
		t.Errorf("alpha at (32,32) changed under alpha-lock: %d -> %d", before, got)
	}
	if got := tileAlpha(t, mgr, 40, 40); got != outside {
		t.Errorf("alpha outside the original dab changed under alpha-lock: %d -> %d", outside, got)
	}
}
