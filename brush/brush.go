package brush

import (
	"math"

	"github.com/gogpu/paintcore"
	"github.com/gogpu/paintcore/internal/cache"
	"github.com/gogpu/paintcore/mathx"
	"github.com/gogpu/paintcore/pixbuf"
	"github.com/gogpu/paintcore/tile"
)

// pixbufCacheSize is the soft limit on the brush's tile hint cache, chosen
// to comfortably cover every tile a single dab's bounding box can straddle.
const pixbufCacheSize = 15

// maxDabsPerSegment is the hard cap on dabs drawn for a single DrawStroke
// call, guarding against runaway spacing/pressure combinations producing an
// unbounded loop.
const maxDabsPerSegment = 500

// Brush is the stroke state machine: it owns the four-slot point ring
// buffer, the per-stroke smudge accumulator, the two independent PRNG
// streams used for jitter, and a small hint cache of recently touched
// tiles. A Brush is not safe for concurrent use — exactly one stroke runs
// at a time, matching the core's single-writer model.
type Brush struct {
	surface Surface
	cache   *cache.Cache[tile.Coord, *pixbuf.Pixbuf]

	params Params

	// rgb/hsv mirror the brush's current stroke color in both
	// representations; SetColor keeps them in sync.
	rgb [3]float64
	hsv [3]float64

	// strokeColor is the live, per-dab-drifting color written during a
	// stroke; it starts from rgb at StrokeStart and is never written back.
	strokeColor [3]float64

	// smudgeColor is the accumulator process_smudge reads from and updates;
	// smudgeColor[3] is its alpha.
	smudgeColor [4]float64

	points       [4]point
	pointIndex   int
	neededPoints int
	remainSteps  float64

	// cs, sn are the last computed direction cosine/sine, carried across
	// DrawStroke calls.
	cs, sn float64

	rand1, rand2 mathx.Stream
}

// New creates a Brush painting onto surface, with seed1 and seed2 used to
// construct its two independent jitter PRNG streams.
func New(surface Surface, seed1, seed2 uint64) *Brush {
	return &Brush{
		surface: surface,
		cache:   cache.New[tile.Coord, *pixbuf.Pixbuf](pixbufCacheSize),
		params:  DefaultParams(),
		rand1:   mathx.NewStream(seed1),
		rand2:   mathx.NewStream(seed2),
		cs:      1,
		sn:      0,
	}
}

// SetSurface replaces the Surface the brush paints through and invalidates
// the tile hint cache, since cached tiles belonged to the old surface.
func (b *Brush) SetSurface(surface Surface) {
	b.surface = surface
	b.InvalidateCache()
}

// InvalidateCache drops every cached tile reference. Callers must invoke
// this whenever tiles may have moved or been replaced behind the brush's
// back (e.g. after an undo restores a snapshot).
func (b *Brush) InvalidateCache() {
	n := b.cache.Len()
	b.cache.Clear()
	if n > 0 {
		paintcore.Logger().Debug("brush: cache invalidated", "dropped", n)
	}
}

// Params returns the brush's current configuration.
func (b *Brush) Params() Params { return b.params }

// SetParams replaces the brush's configuration wholesale.
func (b *Brush) SetParams(p Params) { b.params = p }

// Color returns the brush's current RGB stroke color, each channel in
// [0, 1].
func (b *Brush) Color() (r, g, b2 float64) { return b.rgb[0], b.rgb[1], b.rgb[2] }

// SetColor sets the brush's RGB stroke color and refreshes its HSV mirror,
// so a stroke's HSV color-drift parameters act on a value consistent with
// the color the caller just set.
func (b *Brush) SetColor(r, g, bl float64) {
	b.rgb = [3]float64{r, g, bl}
	h, s, v := mathx.RGBToHSV(r, g, bl)
	b.hsv = [3]float64{h, s, v}
}

// ringIndex returns the live index into b.points the four-slot window
// [pt0, pt1, pt2, pt3] starts at: once at least two points have been seen,
// that's pointIndex; before that, it's offset so the window still lands on
// slots already populated by StrokeStart.
func (b *Brush) ringIndex() int {
	if b.neededPoints > 0 {
		return 5 - b.neededPoints
	}
	return b.pointIndex
}

func (b *Brush) ringWindow(j int) [4]*point {
	var pt [4]*point
	for i := 0; i < 4; i++ {
		pt[i] = &b.points[(i+j)%4]
	}
	return pt
}

// StrokeStart begins a new stroke at ev, resetting the point ring buffer,
// the remaining-dab carry, the smudge accumulator, and the tile hint cache.
func (b *Brush) StrokeStart(ev Event) error {
	if b.surface == nil {
		return ErrNoSurface
	}

	b.remainSteps = 0
	b.pointIndex = 0
	b.neededPoints = 2

	p0 := newPoint(ev, b.params)
	b.points[0] = p0
	b.points[1] = p0 // duplicate: gives the Hermite spline a tangent at the first point

	b.InvalidateCache()

	b.smudgeColor = [4]float64{}
	b.strokeColor = b.rgb

	angle := directionAngle(p0.xtilt, p0.ytilt, b.params.Angle)
	cs, sn := math.Cos(angle), math.Sin(angle)

	_, _, err := b.processSmudge(p0.sx, p0.sy, p0.radius, b.params.YRatio, cs, sn, b.params.Hardness, b.strokeColor)
	paintcore.Logger().Debug("brush: stroke start", "x", p0.sx, "y", p0.sy, "pressure", p0.pressure)
	return err
}

// DrawStroke feeds one more input event into the in-progress stroke. Once
// enough points have accumulated to interpolate a segment, it draws every
// dab along that segment and returns the damaged rectangle. drawn is false
// when the event was absorbed (no movement, or still buffering the first
// points) without painting anything.
func (b *Brush) DrawStroke(ev Event) (rect tile.Rect, drawn bool, err error) {
	if b.surface == nil {
		return tile.Rect{}, false, ErrNoSurface
	}

	pt := b.ringWindow(b.ringIndex())

	sx, sy := ev.SX, ev.SY
	dx := sx - pt[2].sx
	dy := sy - pt[2].sy
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return tile.Rect{}, false, nil
	}

	tiltx := resolveTilt(ev.XTilt, defaultXTilt)
	tilty := resolveTilt(ev.YTilt, defaultYTilt)
	pressure := clamp01(ev.Pressure)
	radius := getRadiusFromPressure(b.params, pressure)

	dtime := ev.Time - pt[2].time

	pt[3].ix, pt[3].iy = ev.VX, ev.VY
	pt[3].sxo, pt[3].syo = sx, sy
	pt[3].xtilt, pt[3].ytilt = tiltx, tilty
	pt[3].time = ev.Time
	pt[3].pressure = pressure
	pt[3].radius = radius
	pt[3].opacity = getOpacityFromPressure(b.params, pressure)

	speed := math.Hypot(float64(ev.VX-pt[2].ix), float64(ev.VY-pt[2].iy)) / dtime
	hiFac := decay(1e3/speed, b.params.HiSpeedTrack)
	sx -= dx * hiFac
	sy -= dy * hiFac
	loFac := decay(b.params.MotionTrack, 1.0)
	sx = sx*loFac + pt[2].sx*(1-loFac)
	sy = sy*loFac + pt[2].sy*(1-loFac)

	pt[3].sx = sx
	pt[3].sy = sy

	if b.neededPoints > 0 {
		b.neededPoints--
		return tile.Rect{}, false, nil
	}

	b.pointIndex = (b.pointIndex + 1) % 4

	area := newRectAccum()
	if err := b.drawSegment(pt, area); err != nil {
		return tile.Rect{}, false, err
	}
	if !area.touched {
		return tile.Rect{}, false, nil
	}
	return area.rect(), true, nil
}

// StrokeEnd flushes the stroke's final segment, re-running the
// interpolator twice with the last raw device point standing in for a
// point that was never delivered: once to reach the true last position,
// once more so the spline's tangent settles.
func (b *Brush) StrokeEnd() (rect tile.Rect, drawn bool, err error) {
	if b.surface == nil {
		return tile.Rect{}, false, ErrNoSurface
	}
	if b.neededPoints != 0 {
		return tile.Rect{}, false, nil
	}

	area := newRectAccum()

	pt := b.ringWindow(b.pointIndex)
	*pt[3] = *pt[2]
	pt[3].sx = pt[3].sxo
	pt[3].sy = pt[3].syo
	if err := b.drawSegment(pt, area); err != nil {
		return tile.Rect{}, false, err
	}

	pt2 := b.ringWindow(b.pointIndex + 1)
	*pt2[3] = *pt2[2]
	if err := b.drawSegment(pt2, area); err != nil {
		return tile.Rect{}, false, err
	}

	if !area.touched {
		return tile.Rect{}, false, nil
	}
	r := area.rect()
	paintcore.Logger().Debug("brush: stroke end", "x", r.X, "y", r.Y, "w", r.W, "h", r.H)
	return r, true, nil
}
