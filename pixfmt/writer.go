package pixfmt

// Pixel storage. Every format, 8-bit or 15-scaled, is stored as a slice of
// uint16 words (one word per channel, in the format's native channel order).
// 8-bit formats simply use the low 8 bits of their range (0..255); 15-scaled
// formats use the full 0..32768 range. One word per channel buys a single
// writer signature across every format; the arithmetic each writer performs
// keeps each format's own rounding quirks.

// Writer blends color into pixel (one pixel's worth of native-storage
// channels) at the given opacity and erase factor. opacity and erase are in
// [0,1]; erase < 1 partially reveals/removes rather than paints (see the
// brush engine's eraser mode). color holds the dab's channel values in the
// format's own native range: 0..255 for every 8-bit format except CMYK8,
// which (like the 15-scaled formats) expects 0..32768, since CMYK color
// reaches it 15-scaled.
type Writer func(pixel []uint16, opacity, erase float32, color []uint32)

// Write2 stamps color (canonical channel order, native range) into pixel
// verbatim, with no blending. The format-converting blit kernels and the
// display path's stamp use it; identity blits copy words directly instead.
type Write2 func(pixel []uint16, color []uint32)

// Reader unpacks pixel into color in canonical channel order regardless of
// the format's native storage order: R,G,B,A for RGB-space formats (4
// slots) and C,M,Y,K,A for CMYK-space formats (5 slots), alpha always
// last. Formats without a stored alpha channel report fully opaque alpha
// in their native range. color must hold at least Format.ReadChannels
// slots; MaxChannels always suffices.
type Reader func(pixel []uint16, color []uint32)

// FromFloat converts a float channel value in [0,1] to the format's native
// range. No clamping is applied.
type FromFloat func(v float32) uint32

// ToFloat converts a native-range channel value back to [0,1].
type ToFloat func(v uint32) float32

// writeDelta8 nudges opacity before the 8-bit integer truncation below, so
// that e.g. opacity=1.0 rounds to alpha=255 rather than 254.
const writeDelta8 = 1.0 / 510

// writeDelta15 is the 15-scaled equivalent of writeDelta8.
const writeDelta15 = 1.0 / (1 << 16)

func rgb8Write(pixel []uint16, opacity, erase float32, color []uint32) {
	opacity += writeDelta8
	alpha := uint32(opacity * erase * 255)
	oneMinus := 255 - uint32(opacity*255)

	pixel[0] = uint16((alpha*color[0] + oneMinus*uint32(pixel[0])) / 255)
	pixel[1] = uint16((alpha*color[1] + oneMinus*uint32(pixel[1])) / 255)
	pixel[2] = uint16((alpha*color[2] + oneMinus*uint32(pixel[2])) / 255)
}

func rgba8Write(pixel []uint16, opacity, erase float32, color []uint32) {
	opacity += writeDelta8
	alpha := uint32(opacity * erase * 255)
	oneMinus := 255 - uint32(opacity*255)

	pixel[0] = uint16((alpha*color[0] + oneMinus*uint32(pixel[0])) / 255)
	pixel[1] = uint16((alpha*color[1] + oneMinus*uint32(pixel[1])) / 255)
	pixel[2] = uint16((alpha*color[2] + oneMinus*uint32(pixel[2])) / 255)
	pixel[3] = uint16(alpha + oneMinus*uint32(pixel[3])/255)
}

func argb8Write(pixel []uint16, opacity, erase float32, color []uint32) {
	opacity += writeDelta8
	alpha := uint32(opacity * erase * 255)
	oneMinus := 255 - uint32(opacity*255)

	pixel[0] = uint16(alpha + oneMinus*uint32(pixel[0])/255)
	pixel[1] = uint16((alpha*color[0] + oneMinus*uint32(pixel[1])) / 255)
	pixel[2] = uint16((alpha*color[1] + oneMinus*uint32(pixel[2])) / 255)
	pixel[3] = uint16((alpha*color[2] + oneMinus*uint32(pixel[3])) / 255)
}

func argb8noaWrite(pixel []uint16, opacity, erase float32, color []uint32) {
	opacity += writeDelta8
	alpha := uint32(opacity * erase * 255)
	oneMinus := 255 - uint32(opacity*255)

	pixel[0] = uint16(alpha + oneMinus*uint32(pixel[0])/255)
	pixel[1] = uint16(color[0] + oneMinus*uint32(pixel[1])/255)
	pixel[2] = uint16(color[1] + oneMinus*uint32(pixel[2])/255)
	pixel[3] = uint16(color[2] + oneMinus*uint32(pixel[3])/255)
}

func rgba8noaWrite(pixel []uint16, opacity, erase float32, color []uint32) {
	opacity += writeDelta8
	alpha := uint32(opacity * erase * 255)
	oneMinus := 255 - uint32(opacity*255)

	pixel[0] = uint16(color[0] + oneMinus*uint32(pixel[0])/255)
	pixel[1] = uint16(color[1] + oneMinus*uint32(pixel[1])/255)
	pixel[2] = uint16(color[2] + oneMinus*uint32(pixel[2])/255)
	pixel[3] = uint16(alpha + oneMinus*uint32(pixel[3])/255)
}

// cmyk8Write premultiplies by alpha with an extra >>15, because its color[]
// arrives 15-scaled even though the destination is 8-bit native (CMYK has
// no 8-bit-native color path upstream).
func cmyk8Write(pixel []uint16, opacity, erase float32, color []uint32) {
	opacity += writeDelta8
	alpha := uint32(opacity * erase * 255)
	oneMinus := 255 - uint32(opacity*255)

	pixel[0] = uint16((((alpha*color[0]*255)>>15)+oneMinus*uint32(pixel[0]))/255)
	pixel[1] = uint16((((alpha*color[1]*255)>>15)+oneMinus*uint32(pixel[1]))/255)
	pixel[2] = uint16((((alpha*color[2]*255)>>15)+oneMinus*uint32(pixel[2]))/255)
	pixel[3] = uint16((((alpha*color[3]*255)>>15)+oneMinus*uint32(pixel[3]))/255)
}

func rgba15xWrite(pixel []uint16, opacity, erase float32, color []uint32) {
	opacity += writeDelta15
	alpha := uint32(opacity * erase * Scale15)
	oneMinus := uint32(Scale15) - uint32(opacity*Scale15)

	pixel[0] = uint16((alpha*color[0] + oneMinus*uint32(pixel[0])) / Scale15)
	pixel[1] = uint16((alpha*color[1] + oneMinus*uint32(pixel[1])) / Scale15)
	pixel[2] = uint16((alpha*color[2] + oneMinus*uint32(pixel[2])) / Scale15)
	pixel[3] = uint16(alpha + oneMinus*uint32(pixel[3])/Scale15)
}

func argb15xWrite(pixel []uint16, opacity, erase float32, color []uint32) {
	opacity += writeDelta15
	alpha := uint32(opacity * erase * Scale15)
	oneMinus := uint32(Scale15) - uint32(opacity*Scale15)

	pixel[0] = uint16(alpha + oneMinus*uint32(pixel[0])/Scale15)
	pixel[1] = uint16((alpha*color[0] + oneMinus*uint32(pixel[1])) / Scale15)
	pixel[2] = uint16((alpha*color[1] + oneMinus*uint32(pixel[2])) / Scale15)
	pixel[3] = uint16((alpha*color[2] + oneMinus*uint32(pixel[3])) / Scale15)
}

// argb15xWriteAlphaLocked is argb15xWrite with the alpha channel write
// skipped, selected when the brush's alpha-lock parameter is set.
func argb15xWriteAlphaLocked(pixel []uint16, opacity, erase float32, color []uint32) {
	opacity += writeDelta15
	alpha := uint32(opacity * erase * Scale15)
	oneMinus := uint32(Scale15) - uint32(opacity*Scale15)

	pixel[1] = uint16((alpha*color[0] + oneMinus*uint32(pixel[1])) / Scale15)
	pixel[2] = uint16((alpha*color[1] + oneMinus*uint32(pixel[2])) / Scale15)
	pixel[3] = uint16((alpha*color[2] + oneMinus*uint32(pixel[3])) / Scale15)
}

func cmyka15xWrite(pixel []uint16, opacity, erase float32, color []uint32) {
	opacity += writeDelta15
	alpha := uint32(opacity * erase * Scale15)
	oneMinus := uint32(Scale15) - uint32(opacity*Scale15)

	pixel[0] = uint16((alpha*color[0] + oneMinus*uint32(pixel[0])) / Scale15)
	pixel[1] = uint16((alpha*color[1] + oneMinus*uint32(pixel[1])) / Scale15)
	pixel[2] = uint16((alpha*color[2] + oneMinus*uint32(pixel[2])) / Scale15)
	pixel[3] = uint16((alpha*color[3] + oneMinus*uint32(pixel[3])) / Scale15)
	pixel[4] = uint16(alpha + oneMinus*uint32(pixel[4])/Scale15)
}

// dummyWrite2 and dummyRead back the accessors for invalid Format values
// only; every registered format carries real functions.
func dummyWrite2(pixel []uint16, color []uint32) {}

func dummyRead(pixel []uint16, color []uint32) {
	color[0], color[1], color[2], color[3] = 0, 0, 0, 0
}

func rgb8Write2(pixel []uint16, color []uint32) {
	pixel[0] = uint16(color[0])
	pixel[1] = uint16(color[1])
	pixel[2] = uint16(color[2])
}

func rgba8Write2(pixel []uint16, color []uint32) {
	pixel[0] = uint16(color[0])
	pixel[1] = uint16(color[1])
	pixel[2] = uint16(color[2])
	pixel[3] = uint16(color[3])
}

func argb8Write2(pixel []uint16, color []uint32) {
	pixel[0] = uint16(color[3])
	pixel[1] = uint16(color[0])
	pixel[2] = uint16(color[1])
	pixel[3] = uint16(color[2])
}

func argb8noaWrite2(pixel []uint16, color []uint32) {
	pixel[0] = uint16(color[3])
	pixel[1] = uint16(color[0])
	pixel[2] = uint16(color[1])
	pixel[3] = uint16(color[2])
}

func rgba8noaWrite2(pixel []uint16, color []uint32) {
	pixel[0] = uint16(color[0])
	pixel[1] = uint16(color[1])
	pixel[2] = uint16(color[2])
	pixel[3] = uint16(color[3])
}

func cmyk8Write2(pixel []uint16, color []uint32) {
	pixel[0] = uint16(color[0])
	pixel[1] = uint16(color[1])
	pixel[2] = uint16(color[2])
	pixel[3] = uint16(color[3])
}

func rgba15xWrite2(pixel []uint16, color []uint32) {
	pixel[0] = uint16(color[0])
	pixel[1] = uint16(color[1])
	pixel[2] = uint16(color[2])
	pixel[3] = uint16(color[3])
}

func argb15xWrite2(pixel []uint16, color []uint32) {
	pixel[0] = uint16(color[3])
	pixel[1] = uint16(color[0])
	pixel[2] = uint16(color[1])
	pixel[3] = uint16(color[2])
}

func cmyka15xWrite2(pixel []uint16, color []uint32) {
	pixel[0] = uint16(color[0])
	pixel[1] = uint16(color[1])
	pixel[2] = uint16(color[2])
	pixel[3] = uint16(color[3])
	pixel[4] = uint16(color[4])
}

func rgb8Read(pixel []uint16, color []uint32) {
	color[0] = uint32(pixel[0])
	color[1] = uint32(pixel[1])
	color[2] = uint32(pixel[2])
	color[3] = 255
}

func argb8noaRead(pixel []uint16, color []uint32) {
	color[0] = uint32(pixel[1])
	color[1] = uint32(pixel[2])
	color[2] = uint32(pixel[3])
	color[3] = uint32(pixel[0])
}

func rgba8noaRead(pixel []uint16, color []uint32) {
	color[0] = uint32(pixel[0])
	color[1] = uint32(pixel[1])
	color[2] = uint32(pixel[2])
	color[3] = uint32(pixel[3])
}

func cmyk8Read(pixel []uint16, color []uint32) {
	color[0] = uint32(pixel[0])
	color[1] = uint32(pixel[1])
	color[2] = uint32(pixel[2])
	color[3] = uint32(pixel[3])
	color[4] = 255
}

func cmyka15xRead(pixel []uint16, color []uint32) {
	color[0] = uint32(pixel[0])
	color[1] = uint32(pixel[1])
	color[2] = uint32(pixel[2])
	color[3] = uint32(pixel[3])
	color[4] = uint32(pixel[4])
}

func argb15xRead(pixel []uint16, color []uint32) {
	alpha := pixel[0]
	color[0] = uint32(pixel[1])
	color[1] = uint32(pixel[2])
	color[2] = uint32(pixel[3])
	color[3] = uint32(alpha)
}

func rgba15xRead(pixel []uint16, color []uint32) {
	color[0] = uint32(pixel[0])
	color[1] = uint32(pixel[1])
	color[2] = uint32(pixel[2])
	color[3] = uint32(pixel[3])
}

func rgba8Read(pixel []uint16, color []uint32) {
	color[0] = uint32(pixel[0])
	color[1] = uint32(pixel[1])
	color[2] = uint32(pixel[2])
	color[3] = uint32(pixel[3])
}

func argb8Read(pixel []uint16, color []uint32) {
	alpha := pixel[0]
	color[0] = uint32(pixel[1])
	color[1] = uint32(pixel[2])
	color[2] = uint32(pixel[3])
	color[3] = uint32(alpha)
}

// bgra8Write2/bgra8Read and abgr8Write2/abgr8Read handle the endian-swapped
// display variants: same channel set as RGBA8/ARGB8, red and blue swapped
// in native storage order.

func bgra8Write2(pixel []uint16, color []uint32) {
	pixel[0] = uint16(color[2])
	pixel[1] = uint16(color[1])
	pixel[2] = uint16(color[0])
	pixel[3] = uint16(color[3])
}

func bgra8Read(pixel []uint16, color []uint32) {
	color[0] = uint32(pixel[2])
	color[1] = uint32(pixel[1])
	color[2] = uint32(pixel[0])
	color[3] = uint32(pixel[3])
}

func abgr8Write2(pixel []uint16, color []uint32) {
	pixel[0] = uint16(color[3])
	pixel[1] = uint16(color[2])
	pixel[2] = uint16(color[1])
	pixel[3] = uint16(color[0])
}

func abgr8Read(pixel []uint16, color []uint32) {
	alpha := pixel[0]
	color[0] = uint32(pixel[3])
	color[1] = uint32(pixel[2])
	color[2] = uint32(pixel[1])
	color[3] = uint32(alpha)
}

func rgb8FromFloat(v float32) uint32    { return uint32(v * 255) }
func rgba15xFromFloat(v float32) uint32 { return uint32(v * Scale15) }

// rgb8ToFloat assumes no round error pushes the result above 1.0.
func rgb8ToFloat(v uint32) float32    { return float32(v) / 255 }
func rgba15xToFloat(v uint32) float32 { return float32(v) / Scale15 }

type writerSet struct {
	write       Writer
	writeLocked Writer // nil if the format has no alpha-locked variant
	write2      Write2
	read        Reader
	fromFloat   FromFloat
	toFloat     ToFloat
}

var writerTable = [formatCount]writerSet{
	RGB8:     {write: rgb8Write, write2: rgb8Write2, read: rgb8Read, fromFloat: rgb8FromFloat, toFloat: rgb8ToFloat},
	ARGB8:    {write: argb8Write, write2: argb8Write2, read: argb8Read, fromFloat: rgb8FromFloat, toFloat: rgb8ToFloat},
	RGBA8:    {write: rgba8Write, write2: rgba8Write2, read: rgba8Read, fromFloat: rgb8FromFloat, toFloat: rgb8ToFloat},
	ARGB8NOA: {write: argb8noaWrite, write2: argb8noaWrite2, read: argb8noaRead, fromFloat: rgb8FromFloat, toFloat: rgb8ToFloat},
	RGBA8NOA: {write: rgba8noaWrite, write2: rgba8noaWrite2, read: rgba8noaRead, fromFloat: rgb8FromFloat, toFloat: rgb8ToFloat},
	CMYK8:    {write: cmyk8Write, write2: cmyk8Write2, read: cmyk8Read, fromFloat: rgb8FromFloat, toFloat: rgb8ToFloat},
	RGBA15X:  {write: rgba15xWrite, write2: rgba15xWrite2, read: rgba15xRead, fromFloat: rgba15xFromFloat, toFloat: rgba15xToFloat},
	ARGB15X:  {write: argb15xWrite, writeLocked: argb15xWriteAlphaLocked, write2: argb15xWrite2, read: argb15xRead, fromFloat: rgba15xFromFloat, toFloat: rgba15xToFloat},
	CMYKA15X: {write: cmyka15xWrite, write2: cmyka15xWrite2, read: cmyka15xRead, fromFloat: rgba15xFromFloat, toFloat: rgba15xToFloat},
	// BGRA8 and ABGR8 are display-only: no blending writer, but they still
	// need a read/write2 pair so the blit kernels below can target and
	// sample them.
	BGRA8: {write2: bgra8Write2, read: bgra8Read, fromFloat: rgb8FromFloat, toFloat: rgb8ToFloat},
	ABGR8: {write2: abgr8Write2, read: abgr8Read, fromFloat: rgb8FromFloat, toFloat: rgb8ToFloat},
}

// Write returns the format's blending writer, or nil if the format cannot
// be written to directly (see Format.CanWrite).
func (f Format) Write() Writer {
	if !f.IsValid() {
		return nil
	}
	return writerTable[f].write
}

// WriteAlphaLocked returns the format's alpha-locked writer, or nil if the
// format has none (every format except ARGB15X).
func (f Format) WriteAlphaLocked() Writer {
	if !f.IsValid() {
		return nil
	}
	return writerTable[f].writeLocked
}

// Write2 returns the format's blend-free stamp writer.
func (f Format) Write2() Write2 {
	if !f.IsValid() {
		return dummyWrite2
	}
	if w := writerTable[f].write2; w != nil {
		return w
	}
	return dummyWrite2
}

// Read returns the format's pixel reader (always in RGBA/CMYKA order).
func (f Format) Read() Reader {
	if !f.IsValid() {
		return dummyRead
	}
	if r := writerTable[f].read; r != nil {
		return r
	}
	return dummyRead
}

// FromFloat returns the format's float-to-native channel converter.
func (f Format) FromFloat() FromFloat {
	if !f.IsValid() {
		return nil
	}
	return writerTable[f].fromFloat
}

// ToFloat returns the format's native-to-float channel converter.
func (f Format) ToFloat() ToFloat {
	if !f.IsValid() {
		return nil
	}
	return writerTable[f].toFloat
}
