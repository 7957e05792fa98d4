package display

import (
	"math"

	"github.com/gogpu/paintcore/pixbuf"
	"github.com/gogpu/paintcore/pixfmt"
	"github.com/gogpu/paintcore/tile"
)

// Source is the tile-backed canvas a Renderer reads from. tile.Manager
// satisfies it directly.
type Source interface {
	// ReadPixbuf returns the tile covering canvas pixel (x, y), or
	// (nil, nil) if no tile exists there — sampled as fully transparent.
	// Unlike the brush's Surface, a display read never creates tiles.
	ReadPixbuf(x, y int) (*pixbuf.Pixbuf, error)
}

// Mode selects how a source canvas coordinate that falls between pixels is
// sampled.
type Mode uint8

const (
	// Nearest floors the sampled coordinate to the containing pixel.
	Nearest Mode = iota
	// Bilinear blends the four pixels surrounding the sampled coordinate.
	Bilinear
)

// Renderer reads a tile-backed Source through an affine transform into a
// destination Pixbuf, compositing src-over. It keeps a single last-tile
// hint, dropped at the end of every Blit call, since consecutive
// destination pixels usually land in the same source tile.
type Renderer struct {
	src Source

	lastCoord tile.Coord
	lastTile  *pixbuf.Pixbuf
	hasLast   bool
}

// New creates a Renderer reading from src.
func New(src Source) *Renderer {
	return &Renderer{src: src}
}

// Blit paints dst's full extent by sampling src through xform, mapping each
// destination pixel (ix, iy) to xform.Apply(ix, iy) in source canvas space.
// Out-of-bounds or absent-tile samples are treated as fully transparent and
// contribute nothing.
func (r *Renderer) Blit(dst *pixbuf.Pixbuf, xform Matrix, mode Mode) error {
	// Drop the tile hint when the call ends so the Renderer never holds a
	// tile reference between display passes.
	defer func() {
		r.hasLast = false
		r.lastTile = nil
	}()

	w, h := dst.Width(), dst.Height()
	writer := dst.Format().Write()
	fromFloat := dst.Format().FromFloat()
	native := make([]uint32, 4)

	for iy := 0; iy < h; iy++ {
		for ix := 0; ix < w; ix++ {
			sx, sy := xform.Apply(float64(ix), float64(iy))

			var color [4]float64
			var ok bool
			var err error
			switch mode {
			case Bilinear:
				color, ok, err = r.sampleBilinear(sx, sy)
			default:
				color, ok, err = r.sampleNearest(sx, sy)
			}
			if err != nil {
				return err
			}
			if !ok || color[3] <= 0 {
				continue
			}

			if writer != nil {
				// The sampled color is premultiplied; the writer expects
				// straight color and applies opacity itself.
				for i := 0; i < 3; i++ {
					v := color[i] / color[3]
					if v > 1 {
						v = 1
					}
					native[i] = fromFloat(float32(v))
				}
				dst.Paint(ix, iy, writer, float32(color[3]), 1.0, native)
				continue
			}
			// Display-only destinations (BGRA8, ABGR8) carry no blending
			// writer; src-over is done here in float and stamped back.
			blendStamp(dst, ix, iy, color)
		}
	}
	return nil
}

// blendStamp src-over composites color (premultiplied RGBA in [0,1]) onto
// dst's pixel at (ix, iy), for destination formats without a blending
// writer of their own.
func blendStamp(dst *pixbuf.Pixbuf, ix, iy int, color [4]float64) {
	f := dst.Format()
	read := f.Read()
	toFloat := f.ToFloat()
	fromFloat := f.FromFloat()

	var under [pixfmt.MaxChannels]uint32
	dst.ReadNative(ix, iy, read, under[:])

	oneMinus := 1.0 - color[3]
	var out [4]uint32
	for i := 0; i < 4; i++ {
		v := color[i] + float64(toFloat(under[i]))*oneMinus
		if v > 1 {
			v = 1
		}
		out[i] = fromFloat(float32(v))
	}
	dst.Stamp(ix, iy, f.Write2(), out[:])
}

// sampleNearest floors (sx, sy) to the containing source pixel.
func (r *Renderer) sampleNearest(sx, sy float64) (color [4]float64, ok bool, err error) {
	return r.readPixel(int(math.Floor(sx)), int(math.Floor(sy)))
}

// sampleBilinear blends the four pixels surrounding (sx, sy) with weights
// (1-fx)(1-fy), fx(1-fy), (1-fx)fy, fx*fy. A corner with no tile beneath it
// contributes zero weight to the result rather than being treated as black,
// so sampling near the edge of painted canvas fades rather than darkens.
func (r *Renderer) sampleBilinear(sx, sy float64) (color [4]float64, ok bool, err error) {
	x0 := int(math.Floor(sx))
	y0 := int(math.Floor(sy))
	fx := sx - float64(x0)
	fy := sy - float64(y0)

	type corner struct {
		x, y int
		wght float64
	}
	corners := [4]corner{
		{x0, y0, (1 - fx) * (1 - fy)},
		{x0 + 1, y0, fx * (1 - fy)},
		{x0, y0 + 1, (1 - fx) * fy},
		{x0 + 1, y0 + 1, fx * fy},
	}

	var sum [4]float64
	var weightSum float64
	for _, c := range corners {
		cc, cok, cerr := r.readPixel(c.x, c.y)
		if cerr != nil {
			return color, false, cerr
		}
		if !cok {
			continue
		}
		for i := 0; i < 4; i++ {
			sum[i] += cc[i] * c.wght
		}
		weightSum += c.wght
	}
	if weightSum <= 0 {
		return color, false, nil
	}
	for i := 0; i < 4; i++ {
		color[i] = sum[i] / weightSum
	}
	return color, true, nil
}

// readPixel returns the source canvas pixel at integer coordinate (x, y) as
// RGBA in [0,1], going through the single-slot tile cache first.
func (r *Renderer) readPixel(x, y int) (color [4]float64, ok bool, err error) {
	c := tile.CoordOf(x, y)

	var pb *pixbuf.Pixbuf
	if r.hasLast && r.lastCoord == c {
		pb = r.lastTile
	} else {
		pb, err = r.src.ReadPixbuf(x, y)
		if err != nil {
			return color, false, err
		}
		r.lastCoord = c
		r.lastTile = pb
		r.hasLast = true
	}
	if pb == nil {
		return color, false, nil
	}

	ox, oy := pb.Origin()
	bx, by := x-ox, y-oy
	if bx < 0 || by < 0 || bx >= pb.Width() || by >= pb.Height() {
		return color, false, nil
	}

	var native [pixfmt.MaxChannels]uint32
	pb.ReadNative(bx, by, pb.Format().Read(), native[:])
	toFloat := pb.Format().ToFloat()
	for i := 0; i < 4; i++ {
		color[i] = float64(toFloat(native[i]))
	}
	return color, true, nil
}
