// Package pixfmt implements the closed set of pixel formats the paint core
// reads, writes, converts, and composes: a table-driven registry (one Info
// entry per format, looked up by enum) with per-format function-value
// writers, readers, and fixed-point conversions.
package pixfmt

import "errors"

// ErrUnknownFormat is returned when a Format value outside the registered
// set is used to construct a Pixbuf or select a kernel.
var ErrUnknownFormat = errors.New("pixfmt: unknown format")

// ErrBadColor names a color slice whose channel count does not match the
// format. The writers and readers do not check slice lengths and never
// return it.
var ErrBadColor = errors.New("pixfmt: wrong channel count for format")

// ColorSpace distinguishes the channel semantics of a format.
type ColorSpace uint8

const (
	RGB ColorSpace = iota
	CMYK
)

// AlphaPos records where the alpha channel sits in the pixel's byte layout.
type AlphaPos uint8

const (
	AlphaNone AlphaPos = iota
	AlphaFirst
	AlphaLast
)

// Format is an identifier for one member of the closed pixel-format set.
// It is deliberately a flat enum dispatched through formatTable rather than
// an interface: the format set is closed and the hot path (brush rasterizer,
// display blit) calls through these function pointers per pixel, so runtime
// inheritance would only add indirection without buying extensibility.
type Format uint8

const (
	// RGB8 is 3 channels, 8 bits each, no alpha.
	RGB8 Format = iota
	// ARGB8 is 4 channels, 8 bits each, alpha first, premultiplied.
	ARGB8
	// RGBA8 is 4 channels, 8 bits each, alpha last, premultiplied.
	RGBA8
	// ARGB8NOA is ARGB8 with straight (non-premultiplied) alpha.
	ARGB8NOA
	// RGBA8NOA is RGBA8 with straight (non-premultiplied) alpha.
	RGBA8NOA
	// CMYK8 is 4 channels (C, M, Y, K), 8 bits each, no separate alpha.
	CMYK8
	// RGBA15X is 4 channels, 15-scaled fixed point, alpha last, premultiplied.
	RGBA15X
	// ARGB15X is 4 channels, 15-scaled fixed point, alpha first, premultiplied.
	ARGB15X
	// CMYKA15X is 5 channels (C, M, Y, K, A), 15-scaled fixed point, premultiplied.
	CMYKA15X
	// BGRA8 is RGBA8 with red/blue swapped; a display-only blit destination
	// for little-endian native framebuffers. It has no writer: nothing
	// paints onto a BGRA8 canvas directly.
	BGRA8
	// ABGR8 is ARGB8 with red/blue swapped; a display-only blit destination.
	ABGR8

	formatCount
)

// MaxChannels is the widest canonical channel set any reader produces
// (C,M,Y,K,A). A color buffer of this length is safe to pass to every
// format's Reader.
const MaxChannels = 5

// Info describes the fixed properties of one pixel format.
type Info struct {
	Space    ColorSpace
	NC       int // channel count, including alpha if present (3..5)
	BPC      int // bits per channel (8 or 16; 15-scaled values live in 16-bit words)
	BPP      int // bytes per pixel
	Alpha    AlphaPos
	Premul   bool
	Swapped  bool // red/blue channels swapped (endian-aware display variants)
	hasWrite bool // whether this format can be a paint destination
}

var formatTable = [formatCount]Info{
	RGB8:      {Space: RGB, NC: 3, BPC: 8, BPP: 3, Alpha: AlphaNone, hasWrite: true},
	ARGB8:     {Space: RGB, NC: 4, BPC: 8, BPP: 4, Alpha: AlphaFirst, Premul: true, hasWrite: true},
	RGBA8:     {Space: RGB, NC: 4, BPC: 8, BPP: 4, Alpha: AlphaLast, Premul: true, hasWrite: true},
	ARGB8NOA:  {Space: RGB, NC: 4, BPC: 8, BPP: 4, Alpha: AlphaFirst, Premul: false, hasWrite: true},
	RGBA8NOA:  {Space: RGB, NC: 4, BPC: 8, BPP: 4, Alpha: AlphaLast, Premul: false, hasWrite: true},
	CMYK8:     {Space: CMYK, NC: 4, BPC: 8, BPP: 4, Alpha: AlphaNone, hasWrite: true},
	RGBA15X:   {Space: RGB, NC: 4, BPC: 16, BPP: 8, Alpha: AlphaLast, Premul: true, hasWrite: true},
	ARGB15X:   {Space: RGB, NC: 4, BPC: 16, BPP: 8, Alpha: AlphaFirst, Premul: true, hasWrite: true},
	CMYKA15X:  {Space: CMYK, NC: 5, BPC: 16, BPP: 10, Alpha: AlphaLast, Premul: true, hasWrite: true},
	BGRA8:     {Space: RGB, NC: 4, BPC: 8, BPP: 4, Alpha: AlphaLast, Premul: true, Swapped: true},
	ABGR8:     {Space: RGB, NC: 4, BPC: 8, BPP: 4, Alpha: AlphaFirst, Premul: true, Swapped: true},
}

// Info returns the Info for f, or the zero Info if f is not registered.
func (f Format) Info() Info {
	if f >= formatCount {
		return Info{}
	}
	return formatTable[f]
}

// IsValid reports whether f is one of the registered formats.
func (f Format) IsValid() bool { return f < formatCount }

// NC returns the channel count (3..5).
func (f Format) NC() int { return f.Info().NC }

// BPC returns bits per channel (8 or 16).
func (f Format) BPC() int { return f.Info().BPC }

// BPP returns bytes per pixel.
func (f Format) BPP() int { return f.Info().BPP }

// HasAlpha reports whether the format stores an alpha channel.
func (f Format) HasAlpha() bool { return f.Info().Alpha != AlphaNone }

// IsPremultiplied reports whether color channels are alpha-premultiplied.
func (f Format) IsPremultiplied() bool { return f.Info().Premul }

// Is15Scaled reports whether the format uses 15-scaled fixed-point storage.
func (f Format) Is15Scaled() bool { return f.Info().BPC == 16 }

// CanWrite reports whether the format supports writepixel (i.e. can be a
// brush's paint destination). BGRA8 and ABGR8 are display-only.
func (f Format) CanWrite() bool { return f.Info().hasWrite }

// ReadChannels returns the number of canonical channel slots the format's
// Reader fills: 4 (R,G,B,A) for RGB-space formats, 5 (C,M,Y,K,A) for
// CMYK-space formats. Alpha is always the last slot; formats without a
// stored alpha channel read back fully opaque.
func (f Format) ReadChannels() int {
	if f.Info().Space == CMYK {
		return 5
	}
	return 4
}

// RowBytes returns the number of bytes a row of width pixels occupies.
func (f Format) RowBytes(width int) int { return width * f.BPP() }

func (f Format) String() string {
	switch f {
	case RGB8:
		return "RGB8"
	case ARGB8:
		return "ARGB8"
	case RGBA8:
		return "RGBA8"
	case ARGB8NOA:
		return "ARGB8-NOA"
	case RGBA8NOA:
		return "RGBA8-NOA"
	case CMYK8:
		return "CMYK8"
	case RGBA15X:
		return "RGBA-15X"
	case ARGB15X:
		return "ARGB-15X"
	case CMYKA15X:
		return "CMYKA-15X"
	case BGRA8:
		return "BGRA8"
	case ABGR8:
		return "ABGR8"
	default:
		return "Unknown"
	}
}
