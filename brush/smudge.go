package brush

// processSmudge blends the brush's smudge accumulator into color (the
// stroke's current dab color) and returns the dab's alpha multiplier. When
// Smudge is 0 the accumulator is bypassed entirely: alpha is 1 and color
// passes through unchanged.
//
// If the canvas sample under the dab comes back as "no pickup" (getDabColor
// reports ok=false), the accumulator is left untouched — it should only
// ever converge toward colors it actually sampled.
func (b *Brush) processSmudge(x, y, radius, yratio, cs, sn, hardness float64, color [3]float64) (outColor [3]float64, alpha float64, err error) {
	fac := b.params.Smudge
	if fac == 0 {
		return color, 1.0, nil
	}

	alpha = 1.0*(1.0-fac) + b.smudgeColor[3]*fac
	if alpha > 0 {
		for i := 0; i < 3; i++ {
			outColor[i] = (color[i]*(1.0-fac) + b.smudgeColor[i]*fac) / alpha
		}
	} else {
		// A fully transparent accumulator blend paints visually
		// distinctive red so the condition is easy to spot.
		outColor = [3]float64{1, 0, 0}
	}

	avg, ok, err := b.getDabColor(x, y, radius, yratio, hardness, cs, sn)
	if err != nil {
		return outColor, alpha, err
	}
	if !ok {
		return outColor, alpha, nil
	}

	varFac := b.params.SmudgeVar
	if varFac > 0 {
		b.smudgeColor[3] = b.smudgeColor[3]*(1.0-varFac) + avg[3]*varFac
		for i := 0; i < 3; i++ {
			b.smudgeColor[i] = b.smudgeColor[i]*(1.0-varFac) + avg[i]*avg[3]*varFac
		}
	}

	return outColor, alpha, nil
}
