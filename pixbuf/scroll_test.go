package pixbuf

import (
	"testing"

	"github.com/gogpu/paintcore/pixfmt"
)

func TestScrollTranslatesContents(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy int
	}{
		{"down-right", 2, 1},
		{"up-left", -2, -1},
		{"right only", 3, 0},
		{"up only", 0, -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pb, _ := New(pixfmt.ARGB15X, 8, 8)
			pb.SetPixel(4, 4, []uint32{pixfmt.Scale15, 0, 0, pixfmt.Scale15})

			pb.Scroll(tt.dx, tt.dy)

			got, err := pb.GetPixel(4+tt.dx, 4+tt.dy)
			if err != nil {
				t.Fatal(err)
			}
			if got[3] != pixfmt.Scale15 {
				t.Errorf("pixel did not move to (%d,%d): %v", 4+tt.dx, 4+tt.dy, got)
			}
			old, _ := pb.GetPixel(4, 4)
			if old[3] != 0 {
				t.Errorf("source position still carries alpha after scroll: %v", old)
			}
		})
	}
}

func TestScrollZeroesUncoveredEdges(t *testing.T) {
	pb, _ := New(pixfmt.ARGB15X, 4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			pb.SetPixel(x, y, []uint32{pixfmt.Scale15, pixfmt.Scale15, pixfmt.Scale15, pixfmt.Scale15})
		}
	}
	pb.Scroll(2, 0)
	for y := 0; y < 4; y++ {
		for x := 0; x < 2; x++ {
			got, _ := pb.GetPixel(x, y)
			if got[3] != 0 {
				t.Errorf("uncovered pixel (%d,%d) not zeroed: %v", x, y, got)
			}
		}
		for x := 2; x < 4; x++ {
			got, _ := pb.GetPixel(x, y)
			if got[3] != pixfmt.Scale15 {
				t.Errorf("shifted pixel (%d,%d) lost its value: %v", x, y, got)
			}
		}
	}
}

func TestScrollNoopWhenZero(t *testing.T) {
	pb, _ := New(pixfmt.ARGB15X, 4, 4)
	pb.SetPixel(1, 1, []uint32{pixfmt.Scale15, 0, 0, pixfmt.Scale15})
	pb.Scroll(0, 0)
	got, _ := pb.GetPixel(1, 1)
	if got[3] != pixfmt.Scale15 {
		t.Errorf("Scroll(0,0) disturbed the buffer: %v", got)
	}
}
