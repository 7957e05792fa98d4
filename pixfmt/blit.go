package pixfmt

// Kernel copies a width x height rectangle of pixels from src to dst,
// translating between formats as needed. src and dst are uint16 word
// buffers (see writer.go); srcStride and dstStride are row lengths in
// pixels, not words — callers multiply by NC() to find a row's word width.
// Kernels never allocate per pixel and never touch pixels outside the
// given rectangle.
type Kernel func(src, dst []uint16, width, height, srcStride, dstStride int)

// Blit returns the kernel that copies src (in srcFmt) into dst (in dstFmt).
// When no specialized kernel is registered for the pair, genericBlit is
// used: it reads each pixel into canonical channel order, converts bit
// depth with the fixed To8/To15 rounding, and stamps the result — correct
// for any pair sharing a color space, just slower than the specialized
// paths.
func Blit(srcFmt, dstFmt Format) Kernel {
	if k, ok := blitTable[blitKey{srcFmt, dstFmt}]; ok {
		return k
	}
	return genericBlit(srcFmt, dstFmt)
}

type blitKey struct {
	src, dst Format
}

var blitTable map[blitKey]Kernel

func init() {
	blitTable = map[blitKey]Kernel{
		// 15-scaled premul -> 8-bit premul (display path, endian-aware).
		{ARGB15X, ARGB8}: premulBlit(argb15xRead, argb8Write2),
		{ARGB15X, BGRA8}: premulBlit(argb15xRead, bgra8Write2),
		{ARGB15X, ABGR8}: premulBlit(argb15xRead, abgr8Write2),
		{ARGB15X, RGBA8}: premulBlit(argb15xRead, rgba8Write2),
		{RGBA15X, ARGB8}: premulBlit(rgba15xRead, argb8Write2),
		{RGBA15X, BGRA8}: premulBlit(rgba15xRead, bgra8Write2),
		{RGBA15X, ABGR8}: premulBlit(rgba15xRead, abgr8Write2),
		{RGBA15X, RGBA8}: premulBlit(rgba15xRead, rgba8Write2),
		// 15-scaled premul -> straight 8-bit (alpha division).
		{ARGB15X, ARGB8NOA}: unpremulBlit(argb15xRead, argb8noaWrite2, 4),
		{ARGB15X, RGBA8NOA}: unpremulBlit(argb15xRead, rgba8noaWrite2, 4),
		{ARGB15X, RGB8}:     unpremulBlit(argb15xRead, rgb8Write2, 3),
		{RGBA15X, ARGB8NOA}: unpremulBlit(rgba15xRead, argb8noaWrite2, 4),
		{RGBA15X, RGBA8NOA}: unpremulBlit(rgba15xRead, rgba8noaWrite2, 4),
		{RGBA15X, RGB8}:     unpremulBlit(rgba15xRead, rgb8Write2, 3),
		// Straight 8-bit -> 15-scaled premul (alpha multiplication).
		{ARGB8NOA, ARGB15X}: premultiplyBlit(argb8noaRead, argb15xWrite2),
		{ARGB8NOA, RGBA15X}: premultiplyBlit(argb8noaRead, rgba15xWrite2),
		{RGBA8NOA, ARGB15X}: premultiplyBlit(rgba8noaRead, argb15xWrite2),
		{RGBA8NOA, RGBA15X}: premultiplyBlit(rgba8noaRead, rgba15xWrite2),
		// Identity moves.
		{RGB8, RGB8}:         identityBlit(3),
		{ARGB8, ARGB8}:       identityBlit(4),
		{RGBA8, RGBA8}:       identityBlit(4),
		{ARGB8NOA, ARGB8NOA}: identityBlit(4),
		{RGBA8NOA, RGBA8NOA}: identityBlit(4),
		{CMYK8, CMYK8}:       identityBlit(4),
		{ARGB15X, ARGB15X}:   identityBlit(4),
		{RGBA15X, RGBA15X}:   identityBlit(4),
		{CMYKA15X, CMYKA15X}: identityBlit(5),
		{BGRA8, BGRA8}:       identityBlit(4),
		{ABGR8, ABGR8}:       identityBlit(4),
	}
}

// genericBlit builds a kernel out of the formats' own Read/Write2 pairs
// for combinations with no specialized path. Channels travel in canonical
// read order (alpha last), with bit depth converted through the fixed
// To8/To15 rounding; channels the destination has and the source lacks
// are zeroed.
func genericBlit(srcFmt, dstFmt Format) Kernel {
	read := srcFmt.Read()
	write2 := dstFmt.Write2()
	srcNC := srcFmt.NC()
	dstNC := dstFmt.NC()
	srcRC := srcFmt.ReadChannels()
	dstRC := dstFmt.ReadChannels()

	conv := func(v uint32) uint32 { return v }
	switch {
	case !srcFmt.Is15Scaled() && dstFmt.Is15Scaled():
		conv = To15
	case srcFmt.Is15Scaled() && !dstFmt.Is15Scaled():
		conv = To8
	}

	return func(src, dst []uint16, width, height, srcStride, dstStride int) {
		var in, out [MaxChannels]uint32
		for y := 0; y < height; y++ {
			srcRow := src[y*srcStride*srcNC:]
			dstRow := dst[y*dstStride*dstNC:]
			for x := 0; x < width; x++ {
				read(srcRow[x*srcNC:], in[:])
				for c := 0; c < dstRC-1; c++ {
					if c < srcRC-1 {
						out[c] = conv(in[c])
					} else {
						out[c] = 0
					}
				}
				out[dstRC-1] = conv(in[srcRC-1])
				write2(dstRow[x*dstNC:], out[:])
			}
		}
	}
}

// identityBlit returns a same-format copy kernel for a format with nc
// channels per pixel.
func identityBlit(nc int) Kernel {
	return func(src, dst []uint16, width, height, srcStride, dstStride int) {
		rowWords := width * nc
		for y := 0; y < height; y++ {
			srcRow := src[y*srcStride*nc:]
			dstRow := dst[y*dstStride*nc:]
			copy(dstRow[:rowWords], srcRow[:rowWords])
		}
	}
}

// premulBlit builds a kernel for premultiplied-15x -> premultiplied-8bit:
// alpha is preserved, color channels are rounded 15->8 directly (no
// unpremultiply needed, since both sides stay premultiplied).
func premulBlit(read Reader, write2 Write2) Kernel {
	return func(src, dst []uint16, width, height, srcStride, dstStride int) {
		color := make([]uint32, 4)
		out := make([]uint32, 4)
		for y := 0; y < height; y++ {
			srcRow := src[y*srcStride*4:]
			dstRow := dst[y*dstStride*4:]
			for x := 0; x < width; x++ {
				read(srcRow[x*4:], color)
				out[0] = To8(color[0])
				out[1] = To8(color[1])
				out[2] = To8(color[2])
				out[3] = To8(color[3])
				write2(dstRow[x*4:], out)
			}
		}
	}
}

// unpremulBlit builds a kernel for premultiplied-15x -> straight-8bit:
// color channels are divided by alpha (zero alpha writes zero, never
// dividing by zero). dstNC is the destination's channel count — RGB8 packs
// 3 words per pixel where the alpha-carrying destinations pack 4.
func unpremulBlit(read Reader, write2 Write2, dstNC int) Kernel {
	return func(src, dst []uint16, width, height, srcStride, dstStride int) {
		color := make([]uint32, 4)
		out := make([]uint32, 4)
		for y := 0; y < height; y++ {
			srcRow := src[y*srcStride*4:]
			dstRow := dst[y*dstStride*dstNC:]
			for x := 0; x < width; x++ {
				read(srcRow[x*4:], color)
				alpha := color[3]
				if alpha == 0 {
					out[0], out[1], out[2] = 0, 0, 0
				} else {
					out[0] = To8((color[0] << 15) / alpha)
					out[1] = To8((color[1] << 15) / alpha)
					out[2] = To8((color[2] << 15) / alpha)
				}
				out[3] = To8(alpha)
				write2(dstRow[x*dstNC:], out)
			}
		}
	}
}

// premultiplyBlit builds a kernel for straight-8bit -> premultiplied-15x:
// color channels are scaled up to 15-scaled then multiplied by alpha.
func premultiplyBlit(read Reader, write2 Write2) Kernel {
	return func(src, dst []uint16, width, height, srcStride, dstStride int) {
		color := make([]uint32, 4)
		out := make([]uint32, 4)
		for y := 0; y < height; y++ {
			srcRow := src[y*srcStride*4:]
			dstRow := dst[y*dstStride*4:]
			for x := 0; x < width; x++ {
				read(srcRow[x*4:], color)
				alpha15 := To15(color[3])
				out[0] = (To15(color[0]) * alpha15) >> 15
				out[1] = (To15(color[1]) * alpha15) >> 15
				out[2] = (To15(color[2]) * alpha15) >> 15
				out[3] = alpha15
				write2(dstRow[x*4:], out)
			}
		}
	}
}
