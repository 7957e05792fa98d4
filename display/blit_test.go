package display

import (
	"testing"

	"github.com/gogpu/paintcore/pixbuf"
	"github.com/gogpu/paintcore/pixfmt"
	"github.com/gogpu/paintcore/tile"
)

// paintSquare fills a w x h device-pixel rectangle of mgr with an opaque
// color, creating tiles as needed.
func paintSquare(t *testing.T, mgr *tile.Manager, x0, y0, w, h int, color []uint32) {
	t.Helper()
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			pb, err := mgr.GetPixbuf(x, y)
			if err != nil {
				t.Fatal(err)
			}
			ox, oy := pb.Origin()
			if err := pb.SetPixel(x-ox, y-oy, color); err != nil {
				t.Fatal(err)
			}
		}
	}
}

func TestBlitIdentityNearestCopiesPixels(t *testing.T) {
	mgr := tile.NewManager(tile.WithFormat(pixfmt.ARGB15X))
	red := []uint32{pixfmt.Scale15, 0, 0, pixfmt.Scale15}
	paintSquare(t, mgr, 0, 0, 8, 8, red)

	dst, _ := pixbuf.New(pixfmt.ARGB15X, 8, 8)
	r := New(mgr)
	if err := r.Blit(dst, Identity(), Nearest); err != nil {
		t.Fatal(err)
	}

	got, _ := dst.GetPixel(3, 3)
	if got[0] != pixfmt.Scale15 || got[3] != pixfmt.Scale15 {
		t.Errorf("pixel (3,3) = %v, want opaque red", got)
	}
}

func TestBlitTranslateShiftsSample(t *testing.T) {
	mgr := tile.NewManager(tile.WithFormat(pixfmt.ARGB15X))
	red := []uint32{pixfmt.Scale15, 0, 0, pixfmt.Scale15}
	paintSquare(t, mgr, 10, 10, 4, 4, red)

	dst, _ := pixbuf.New(pixfmt.ARGB15X, 4, 4)
	r := New(mgr)
	// Destination pixel (0,0) samples canvas (10,10).
	if err := r.Blit(dst, Translate(10, 10), Nearest); err != nil {
		t.Fatal(err)
	}
	got, _ := dst.GetPixel(0, 0)
	if got[3] != pixfmt.Scale15 {
		t.Errorf("translated sample missed the painted square: %v", got)
	}
}

func TestBlitCrossesTileBoundary(t *testing.T) {
	mgr := tile.NewManager(tile.WithFormat(pixfmt.ARGB15X))
	red := []uint32{pixfmt.Scale15, 0, 0, pixfmt.Scale15}
	// Straddle the boundary between tile (0,0) and tile (1,0).
	paintSquare(t, mgr, tile.Size-2, 0, 4, 2, red)

	dst, _ := pixbuf.New(pixfmt.ARGB15X, 4, 2)
	r := New(mgr)
	if err := r.Blit(dst, Translate(float64(tile.Size-2), 0), Nearest); err != nil {
		t.Fatal(err)
	}
	for x := 0; x < 4; x++ {
		got, _ := dst.GetPixel(x, 0)
		if got[3] != pixfmt.Scale15 {
			t.Errorf("pixel %d across the tile seam = %v, want opaque", x, got)
		}
	}
}

func TestBlitBilinearBlendsNeighbours(t *testing.T) {
	mgr := tile.NewManager(tile.WithFormat(pixfmt.ARGB15X))
	red := []uint32{pixfmt.Scale15, 0, 0, pixfmt.Scale15}
	green := []uint32{0, pixfmt.Scale15, 0, pixfmt.Scale15}
	paintSquare(t, mgr, 0, 0, 1, 1, red)
	paintSquare(t, mgr, 1, 0, 1, 1, green)

	dst, _ := pixbuf.New(pixfmt.ARGB15X, 1, 1)
	r := New(mgr)
	// Sample halfway between the two pixels: expect an even red/green mix.
	if err := r.Blit(dst, Translate(0.5, 0), Bilinear); err != nil {
		t.Fatal(err)
	}
	got, _ := dst.GetPixel(0, 0)
	if got[0] == 0 || got[1] == 0 {
		t.Errorf("bilinear midpoint = %v, want both red and green contributions", got)
	}
	diff := int(got[0]) - int(got[1])
	if diff < -(pixfmt.Scale15/16) || diff > pixfmt.Scale15/16 {
		t.Errorf("bilinear midpoint = %v, want near-equal red and green", got)
	}
}

func TestBlitIntoDisplayOnlyFormat(t *testing.T) {
	mgr := tile.NewManager(tile.WithFormat(pixfmt.ARGB15X))
	red := []uint32{pixfmt.Scale15, 0, 0, pixfmt.Scale15}
	paintSquare(t, mgr, 0, 0, 2, 2, red)

	dst, _ := pixbuf.New(pixfmt.BGRA8, 2, 2)
	r := New(mgr)
	if err := r.Blit(dst, Identity(), Nearest); err != nil {
		t.Fatal(err)
	}
	got, _ := dst.GetPixel(0, 0)
	if got[0] != 255 || got[3] != 255 {
		t.Errorf("BGRA8 readback = %v, want opaque red (RGBA order)", got)
	}
}
