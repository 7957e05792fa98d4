package pixfmt

// Compose returns the Porter-Duff src-over kernel for compositing a source
// rectangle onto a destination rectangle of the same topology:
// premultiplied 15-scaled ARGB over same, and straight 8-bit over same
// straight 8-bit (either channel order). Any other pair falls back through
// Blit, which simply overwrites rather than composites — callers that need
// src-over for an unsupported pair must convert to one of these topologies
// first.
func Compose(srcFmt, dstFmt Format) Kernel {
	switch {
	case srcFmt == ARGB15X && dstFmt == ARGB15X:
		return composeARGB15X
	case srcFmt == ARGB8NOA && dstFmt == ARGB8NOA:
		return composeStraight8(0)
	case srcFmt == RGBA8NOA && dstFmt == RGBA8NOA:
		return composeStraight8(3)
	default:
		return Blit(srcFmt, dstFmt)
	}
}

// composeARGB15X src-over composites premultiplied 15-scaled ARGB: since
// both operands are already alpha-premultiplied, this is the textbook
// dst' = src + dst*(1-srcAlpha).
func composeARGB15X(src, dst []uint16, width, height, srcStride, dstStride int) {
	for y := 0; y < height; y++ {
		srcRow := src[y*srcStride*4:]
		dstRow := dst[y*dstStride*4:]
		for x := 0; x < width; x++ {
			s := srcRow[x*4:]
			d := dstRow[x*4:]
			oneMinus := Scale15 - uint32(s[0])
			d[0] = uint16(uint32(s[0]) + (uint32(d[0])*oneMinus)>>15)
			d[1] = uint16(uint32(s[1]) + (uint32(d[1])*oneMinus)>>15)
			d[2] = uint16(uint32(s[2]) + (uint32(d[2])*oneMinus)>>15)
			d[3] = uint16(uint32(s[3]) + (uint32(d[3])*oneMinus)>>15)
		}
	}
}

// composeStraight8 builds the src-over kernel for straight
// (non-premultiplied) 8-bit formats, with the alpha channel at alphaIdx in
// native word order (0 for ARGB, 3 for RGBA): channels must be
// premultiplied before the blend and unpremultiplied after, since the
// straight-alpha representation has no premultiplied intermediate to add
// directly.
func composeStraight8(alphaIdx int) Kernel {
	return func(src, dst []uint16, width, height, srcStride, dstStride int) {
		for y := 0; y < height; y++ {
			srcRow := src[y*srcStride*4:]
			dstRow := dst[y*dstStride*4:]
			for x := 0; x < width; x++ {
				s := srcRow[x*4:]
				d := dstRow[x*4:]
				srcA := uint32(s[alphaIdx])
				dstA := uint32(d[alphaIdx])
				outA := srcA + (dstA*(255-srcA))/255
				if outA == 0 {
					d[0], d[1], d[2], d[3] = 0, 0, 0, 0
					continue
				}
				for i := 0; i < 4; i++ {
					if i == alphaIdx {
						continue
					}
					srcPremul := uint32(s[i]) * srcA
					dstPremul := uint32(d[i]) * dstA
					outPremul := srcPremul + (dstPremul*(255-srcA))/255
					d[i] = uint16(outPremul / outA)
				}
				d[alphaIdx] = uint16(outA)
			}
		}
	}
}
