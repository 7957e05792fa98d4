package brush

import (
	"testing"

	"github.com/gogpu/paintcore/mathx"
)

func TestDrawSegmentDabConservation(t *testing.T) {
	// A straight 10px segment with uniform Catmull-Rom tangents, radius 2,
	// spacing 0.25: dab centres sit 0.5px apart, so the segment must produce
	// 20 dabs give or take the carry. With only radius jitter enabled, each
	// dab consumes exactly one rand2 sample, which makes the dab count
	// observable through the stream's deterministic sequence.
	b, _ := newTestBrush()
	b.params.Spacing = 0.25
	b.params.Hardness = 1.0
	b.params.DabRadiusJitter = 1e-12

	mk := func(x, y float64) point {
		return point{sx: x, sy: y, sxo: x, syo: y, pressure: 1, radius: 2, opacity: 1, ytilt: -0.5, xtilt: 0.5}
	}
	p0 := mk(-10, 0)
	p1 := mk(0, 0)
	p2 := mk(10, 0)
	p3 := mk(20, 0)
	pt := [4]*point{&p0, &p1, &p2, &p3}

	area := newRectAccum()
	if err := b.drawSegment(pt, area); err != nil {
		t.Fatalf("drawSegment: %v", err)
	}
	if !area.touched {
		t.Fatal("segment painted nothing")
	}

	// Replay the same seed and find how far the stroke advanced rand2.
	ref := mathx.NewStream(2)
	var seq [24]float64
	for i := range seq {
		seq[i] = ref.Float64()
	}
	next := b.rand2.Float64()
	dabs := -1
	for i, v := range seq {
		if v == next {
			dabs = i
			break
		}
	}
	if dabs < 0 {
		t.Fatal("could not locate the stream position after the segment")
	}
	if dabs < 19 || dabs > 21 {
		t.Fatalf("segment produced %d dabs, want 20 +/- 1 (length 10 / (radius 2 * spacing 0.25))", dabs)
	}
	if b.remainSteps < 0 || b.remainSteps >= 1 {
		t.Fatalf("remainSteps = %v, want a carry in [0, 1)", b.remainSteps)
	}
}

func TestDrawSegmentCarriesRemainderAcrossSegments(t *testing.T) {
	// A segment shorter than one dab spacing paints nothing but banks its
	// fraction, so a run of short segments still stamps dabs at the
	// configured density instead of dropping them all.
	b, _ := newTestBrush()
	b.params.Spacing = 0.25
	b.params.Hardness = 1.0

	mk := func(x float64) point {
		return point{sx: x, sy: 0, sxo: x, syo: 0, pressure: 1, radius: 2, opacity: 1, ytilt: -0.5, xtilt: 0.5}
	}

	painted := false
	for i := 0; i < 10; i++ {
		// 0.2px steps: one dab every 0.5px means a dab roughly every third
		// segment once the carry accumulates.
		x := float64(i) * 0.2
		p0 := mk(x - 0.4)
		p1 := mk(x - 0.2)
		p2 := mk(x)
		p3 := mk(x + 0.2)
		pt := [4]*point{&p0, &p1, &p2, &p3}
		area := newRectAccum()
		if err := b.drawSegment(pt, area); err != nil {
			t.Fatalf("drawSegment(%d): %v", i, err)
		}
		if area.touched {
			painted = true
		}
	}
	if !painted {
		t.Fatal("ten 0.2px segments with 0.5px dab spacing never painted a dab")
	}
}
