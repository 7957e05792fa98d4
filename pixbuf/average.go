package pixbuf

import (
	"math"

	"github.com/gogpu/paintcore/pixfmt"
)

// maxAverageRadius caps the disc radius accepted by GetAveragePixel.
const maxAverageRadius = 300.0

// GetAveragePixel computes the weighted-average color inside a disc of the
// given radius centered at (sx, sy), in float [0,1] channels with alpha
// always last. Weight is 1 for pixels inside the disc, 0 outside; color
// channels are un-premultiplied by the summed alpha before being returned.
// It returns ok=false when the disc covers only fully-transparent pixels
// (alpha sum rounds to zero) — the brush engine's "no pickup" sentinel — or when
// (sx, sy) lies outside the buffer.
func (pb *Pixbuf) GetAveragePixel(radius float64, sx, sy int) (color []float64, ok bool) {
	if !pb.inBounds(sx, sy) {
		return nil, false
	}
	if radius <= 0 {
		radius = 0
	}
	if radius > maxAverageRadius {
		radius = maxAverageRadius
	}
	if radius == 0 {
		radius = 1e-6 // avoid division by zero; disc collapses to the single center pixel
	}

	radBox := radius + 0.5
	minX := int(math.Floor(float64(sx) - radBox))
	maxX := int(math.Ceil(float64(sx) + radBox))
	minY := int(math.Floor(float64(sy) - radBox))
	maxY := int(math.Ceil(float64(sy) + radBox))

	rc := pb.format.ReadChannels()
	sums := make([]float64, rc)
	weight := 0
	rd := 1.0 / radius
	toFloat := pb.format.ToFloat()
	reader := pb.format.Read()
	tmp := make([]uint32, pixfmt.MaxChannels)

	y0 := float64(minY-sy) + 0.5
	for y := minY; y <= maxY; y++ {
		if y < 0 || y >= pb.height {
			y0++
			continue
		}
		ry := y0 * rd
		x0 := float64(minX-sx) + 0.5
		for x := minX; x <= maxX; x++ {
			if x < 0 || x >= pb.width {
				x0++
				continue
			}
			rx := x0 * rd
			if rx*rx+ry*ry <= 1.0 {
				weight++
				reader(pb.pixelAt(x, y), tmp)
				for i := 0; i < rc; i++ {
					sums[i] += float64(toFloat(tmp[i]))
				}
			}
			x0++
		}
		y0++
	}

	if weight == 0 {
		return nil, false
	}

	alphaSum := sums[rc-1]
	alpha := clamp(alphaSum/float64(weight), 0, 1)
	if alpha < 1.0/(1<<15) {
		return nil, false
	}

	color = make([]float64, rc)
	for i := 0; i < rc-1; i++ {
		color[i] = clamp(sums[i]/alphaSum, 0, 1)
	}
	color[rc-1] = alpha
	return color, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
