package brush

import (
	"math"

	"github.com/gogpu/paintcore/mathx"
	"github.com/gogpu/paintcore/pixbuf"
	"github.com/gogpu/paintcore/pixfmt"
	"github.com/gogpu/paintcore/tile"
)

// rectAccum tracks the union of every bounding box passed to expand
// (inclusive min/max corners), so the dab-by-dab loop can grow one shared
// damaged rectangle across many dabs.
type rectAccum struct {
	x1, y1  int
	x2, y2  int
	touched bool
}

func newRectAccum() *rectAccum {
	return &rectAccum{x1: math.MaxInt, y1: math.MaxInt, x2: math.MinInt, y2: math.MinInt}
}

func (a *rectAccum) expand(minx, miny, maxx, maxy int) {
	a.touched = true
	if minx < a.x1 {
		a.x1 = minx
	}
	if miny < a.y1 {
		a.y1 = miny
	}
	if maxx > a.x2 {
		a.x2 = maxx
	}
	if maxy > a.y2 {
		a.y2 = maxy
	}
}

func (a *rectAccum) rect() tile.Rect {
	return tile.Rect{X: a.x1, Y: a.y1, W: a.x2 - a.x1 + 1, H: a.y2 - a.y1 + 1}
}

// cachedPixbuf resolves the tile covering device pixel (x, y), through the
// brush's small LRU hint cache before falling back to the Surface. Only
// non-nil tiles are cached — the "no tile here" sentinel is never memoized,
// so a later request for the same coordinate always re-asks the surface.
func (b *Brush) cachedPixbuf(x, y int) (*pixbuf.Pixbuf, error) {
	c := tile.CoordOf(x, y)
	if pb, ok := b.cache.Get(c); ok {
		return pb, nil
	}
	pb, err := b.surface.GetPixbuf(x, y)
	if err != nil {
		return nil, err
	}
	if pb == nil {
		return nil, nil
	}
	b.cache.Set(c, pb)
	return pb, nil
}

// drawDabSolid rasterises one elliptical dab into every tile its bounding
// box intersects, via the brush's Surface/cache. color is the dab's RGB
// color in [0,1] (alpha is carried separately via the alpha parameter).
// area accumulates this dab's bounding box, and every earlier dab's in the
// same call to DrawStroke/StrokeEnd, into the reported damaged rectangle.
func (b *Brush) drawDabSolid(area *rectAccum, sx, sy, radius, yratio, hardness, alpha, opacity, cs, sn float64, color [3]float64) error {
	if hardness <= 0 || yratio <= 0 || radius <= 0 {
		return nil
	}

	radBox := radius + 0.5
	minx := int(math.Floor(sx - radBox))
	maxx := int(math.Ceil(sx + radBox))
	miny := int(math.Floor(sy - radBox))
	maxy := int(math.Ceil(sy + radBox))
	area.expand(minx, miny, maxx, maxy)

	grain := b.params.Grain * radius
	cs /= radius
	sn /= radius
	rxdx := cs
	rydx := -sn * yratio
	rxdy := sn
	rydy := cs * yratio

	needColor := true
	var nativeColor []uint32

	y := miny
	for y <= maxy {
		x := minx
		for x <= maxx {
			pb, err := b.cachedPixbuf(x, y)
			if err != nil {
				return err
			}
			if pb == nil {
				x++
				if x > maxx {
					y++
				}
				continue
			}
			ox, oy := pb.Origin()
			pw, ph := pb.Width(), pb.Height()

			writer := pb.Format().Write()
			if b.params.AlphaLock {
				if locked := pb.Format().WriteAlphaLocked(); locked != nil {
					writer = locked
				}
			}

			if needColor {
				fromFloat := pb.Format().FromFloat()
				nc := pb.Format().NC()
				nativeColor = make([]uint32, pixfmt.MaxChannels)
				for j := 0; j < nc && j < len(color); j++ {
					nativeColor[j] = fromFloat(float32(color[j]))
				}
				needColor = false
			}

			bxLeft := x - ox
			bxRight := min(bxLeft+(maxx-x), pw-1)
			byTop := y - oy
			byBottom := min(byTop+(maxy-y), ph-1)

			xx0 := float64(x) - sx + 0.5
			yy0 := float64(y) - sy + 0.5
			rxy := xx0*rxdx + yy0*rxdy
			ryy := xx0*rydx + yy0*rydy

			touched := false
			for by := byTop; by <= byBottom; by++ {
				rx := rxy
				ry := ryy
				for bx := bxLeft; bx <= bxRight; bx++ {
					rr := rx*rx + ry*ry
					if rr <= 1.0 {
						opa := opacity
						if hardness < 1.0 {
							if rr < hardness {
								opa *= rr + 1.0 - rr/hardness
							} else {
								opa *= hardness / (1.0 - hardness) * (1.0 - rr)
							}
						}
						if grain > 0 {
							noise := mathx.Noise2D01(sx+rx*grain, sy+ry*grain)
							opa = math.Min(opa*noise, 1.0)
						}
						pb.Paint(bx, by, writer, float32(opa), float32(alpha), nativeColor)
						touched = true
					}
					rx += rxdx
					ry += rydx
				}
				rxy += rxdy
				ryy += rydy
			}
			if touched {
				pb.SetDamaged(true)
			}

			x += bxRight - bxLeft + 1
			if x > maxx {
				y += byBottom - byTop + 1
			}
		}
	}
	return nil
}

// getDabColor samples the average color under the same elliptical region
// drawDabSolid would paint, weighted by the same falloff. ok is false when
// the accumulated alpha falls below 1/32768 ("no pickup"); the returned
// color is then the zero value with R forced to 1, a visually distinctive
// marker for any caller that inspects the value on a no-pickup result.
func (b *Brush) getDabColor(sx, sy, radius, yratio, hardness, cs, sn float64) (color [4]float64, ok bool, err error) {
	if radius <= 0 || yratio <= 0 {
		return color, false, nil
	}

	radBox := radius + 0.5
	minx := int(math.Floor(sx - radBox))
	maxx := int(math.Ceil(sx + radBox))
	miny := int(math.Floor(sy - radBox))
	maxy := int(math.Ceil(sy + radBox))

	cs /= radius
	sn /= radius
	rxdx := cs
	rydx := -sn * yratio
	rxdy := sn
	rydy := cs * yratio

	var sums [4]float64
	sumWeight := 0.0

	y := miny
	for y <= maxy {
		x := minx
		for x <= maxx {
			pb, ferr := b.cachedPixbuf(x, y)
			if ferr != nil {
				return color, false, ferr
			}
			if pb == nil {
				x++
				if x > maxx {
					y++
				}
				continue
			}
			ox, oy := pb.Origin()
			pw, ph := pb.Width(), pb.Height()
			read := pb.Format().Read()
			toFloat := pb.Format().ToFloat()

			bxLeft := x - ox
			bxRight := min(bxLeft+(maxx-x), pw-1)
			byTop := y - oy
			byBottom := min(byTop+(maxy-y), ph-1)

			xx0 := float64(x) - sx + 0.5
			yy0 := float64(y) - sy + 0.5
			rxy := xx0*rxdx + yy0*rxdy
			ryy := xx0*rydx + yy0*rydy

			tmp := make([]uint32, pixfmt.MaxChannels)
			for by := byTop; by <= byBottom; by++ {
				rx := rxy
				ry := ryy
				for bx := bxLeft; bx <= bxRight; bx++ {
					rr := rx*rx + ry*ry
					if rr <= 1.0 {
						opa := 1.0
						if hardness < 1.0 {
							if rr < hardness {
								opa *= rr + 1.0 - rr/hardness
							} else {
								opa *= hardness / (1.0 - hardness) * (1.0 - rr)
							}
						}
						sumWeight += opa
						pb.ReadNative(bx, by, read, tmp)
						for i := 0; i < 4; i++ {
							sums[i] += opa * float64(toFloat(tmp[i]))
						}
					}
					rx += rxdx
					ry += rydx
				}
				rxy += rxdy
				ryy += rydy
			}

			x += bxRight - bxLeft + 1
			if x > maxx {
				y += byBottom - byTop + 1
			}
		}
	}

	if sumWeight == 0 {
		return color, false, nil
	}

	alphaSum := sums[3]
	color[3] = alphaSum / sumWeight
	if color[3] >= 1.0/32768 {
		for i := 0; i < 3; i++ {
			color[i] = clamp01(sums[i] / alphaSum)
		}
		return color, true, nil
	}

	return [4]float64{1, 0, 0, 0}, false, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
