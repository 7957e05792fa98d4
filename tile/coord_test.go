package tile

import "testing"

func TestCoordOfFloorsTowardNegativeInfinity(t *testing.T) {
	tests := []struct {
		x, y int
		want Coord
	}{
		{0, 0, Coord{0, 0}},
		{Size - 1, Size - 1, Coord{0, 0}},
		{Size, Size, Coord{1, 1}},
		{-1, -1, Coord{-1, -1}},
		{-Size, -Size, Coord{-1, -1}},
		{-Size - 1, 0, Coord{-2, 0}},
	}
	for _, tt := range tests {
		if got := CoordOf(tt.x, tt.y); got != tt.want {
			t.Errorf("CoordOf(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestCoordOriginRoundTrip(t *testing.T) {
	c := Coord{-3, 5}
	x, y := c.Origin()
	if CoordOf(x, y) != c {
		t.Errorf("origin (%d,%d) maps back to %v, want %v", x, y, CoordOf(x, y), c)
	}
}
