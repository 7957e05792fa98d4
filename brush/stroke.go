package brush

import (
	"math"

	"github.com/gogpu/paintcore/mathx"
)

// drawSegment draws every dab falling between pt[1] and pt[2], using pt[0]
// and pt[3] as the Catmull-Rom tangent neighbours. Dab count is determined
// dynamically from the segment's device-pixel length, spacing, and the
// carried-over remainSteps fraction, capped at maxDabsPerSegment as a hard
// backstop against runaway parameter combinations.
func (b *Brush) drawSegment(pt [4]*point, area *rectAccum) error {
	yratio := b.params.YRatio
	hardness := b.params.Hardness
	if hardness < 0.01 {
		hardness = 0.01
	} else if hardness > 1.0 {
		hardness = 1.0
	}
	spacing := b.params.Spacing
	if spacing < 0.01 {
		spacing = 0.01
	}

	color := b.strokeColor

	dx := pt[2].sx - pt[1].sx
	dy := pt[2].sy - pt[1].sy
	dist := math.Hypot(dx, dy)

	radius := pt[2].radius
	radPerSp := radius * spacing

	fac := b.params.OpacityCompensation / spacing
	opa0 := math.Pow(pt[1].opacity, fac)
	opa1 := math.Pow(pt[2].opacity, fac)

	xtilt := (pt[1].xtilt + pt[2].xtilt) * 0.5
	ytilt := (pt[1].ytilt + pt[2].ytilt) * 0.5

	angle := directionAngle(xtilt, ytilt, b.params.Angle)
	dirAngle := int(angle * 1024 / (2 * math.Pi))
	if dirAngle == 1024 {
		dirAngle = 0
	}
	b.cs = math.Cos(angle)
	b.sn = math.Sin(angle)

	m0x := (pt[2].sx - pt[0].sx) / 2
	m0y := (pt[2].sy - pt[0].sy) / 2
	m1x := (pt[3].sx - pt[1].sx) / 2
	m1y := (pt[3].sy - pt[1].sy) / 2

	dabsFrac := b.remainSteps
	dabsTodo := dist / radPerSp

	t := 0.0
	p := pt[1].pressure
	r := pt[1].radius
	opa := opa0
	x := pt[1].sx
	y := pt[1].sy

	dabCount := 0
	for dabsFrac+dabsTodo >= 1.0 && dabCount < maxDabsPerSegment {
		dabCount++

		var frac float64
		if dabsFrac > 0.0 {
			frac = (1 - dabsFrac) / dabsTodo
			dabsFrac = 0.0
		} else {
			frac = 1.0 / dabsTodo
		}

		t += frac * (1 - t)
		t2 := t * t
		t3 := t2 * t

		h00 := 2*t3 - 3*t2 + 1
		h10 := t3 - 2*t2 + t
		h01 := -2*t3 + 3*t2
		h11 := t3 - t2

		x = h00*pt[1].sx + h10*m0x + h01*pt[2].sx + h11*m1x
		y = h00*pt[1].sy + h10*m0y + h01*pt[2].sy + h11*m1y

		p += frac * (pt[2].pressure - p)
		r += frac * (radius - r)
		opa += frac * (opa1 - opa)

		dabX, dabY, dabR := x, y, r

		if jitter := b.params.DabRadiusJitter; jitter > 0.0 {
			dabR *= 1.0 - b.rand2.Float64()*jitter
		}

		if jitter := b.params.DabPosJitter; jitter > 0.0 {
			jitter *= dabR
			dabX += (b.rand1.Float64()*2 - 1) * jitter
			dabY += (b.rand2.Float64()*2 - 1) * jitter
		}

		if jitter := b.params.DirectionJitter; jitter > 0.0 {
			da := dirAngle + int(b.rand1.Float64()*jitter*512) - 256
			b.cs = mathx.Cos(da)
			b.sn = mathx.Sin(da)
		}

		var alpha float64
		var err error
		color, alpha, err = b.processSmudge(dabX, dabY, dabR, yratio, b.cs, b.sn, hardness, color)
		if err != nil {
			return err
		}

		h, s, v := mathx.RGBToHSV(color[0], color[1], color[2])
		h += b.params.ColorShiftH
		s += b.params.ColorShiftS
		v += b.params.ColorShiftV
		r2, g2, b2 := mathx.HSVToRGB(h, s, v)
		color = [3]float64{r2, g2, b2}

		b.strokeColor = color

		if b.params.Erase < 1.0 {
			alpha *= b.params.Erase
		}

		if err := b.drawDabSolid(area, dabX, dabY, dabR, yratio, hardness, alpha, opa, b.cs, b.sn, color); err != nil {
			return err
		}

		ndx := pt[2].sx - x
		ndy := pt[2].sy - y
		d := math.Hypot(ndx, ndy) / radPerSp

		if math.Abs(d-dabsTodo) < 1e-4 {
			break
		}
		dabsTodo = d
	}

	b.remainSteps = dabsFrac + dabsTodo
	return nil
}
