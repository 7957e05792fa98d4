package mathx

import "math"

// RGBToHSV converts rgb (each channel in [0,1]) to hsv using the standard
// six-sextant formulation.
func RGBToHSV(r, g, b float64) (h, s, v float64) {
	maxc := math.Max(r, math.Max(g, b))
	minc := math.Min(r, math.Min(g, b))
	v = maxc

	if minc == maxc {
		return 0, 0, v
	}

	delta := maxc - minc
	s = delta / maxc

	rc := (maxc-r)/delta + 3.0
	gc := (maxc-g)/delta + 3.0
	bc := (maxc-b)/delta + 3.0

	switch maxc {
	case r:
		h = bc - gc
	case g:
		h = 2.0 + rc - bc
	default:
		h = 4.0 + gc - rc
	}
	h /= 6.0

	if h < 0 {
		h += 1.0
	}
	if h > 1 {
		h -= 1.0
	}
	return h, s, v
}

// HSVToRGB converts hsv to rgb, each channel in [0,1]. h is taken modulo 1
// before conversion; s and v are clamped to [0,1].
func HSVToRGB(h, s, v float64) (r, g, b float64) {
	h = h - math.Floor(h)
	s = clamp01(s)
	v = clamp01(v)

	if s == 0 {
		return v, v, v
	}

	f := h * 6.0
	i := int(math.Floor(f))
	f -= float64(i)
	p := v * (1.0 - s)
	q := v * (1.0 - s*f)
	t := v * (1.0 - s*(1.0-f))

	switch i % 6 {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
