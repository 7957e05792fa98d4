// Package pixbuf implements a single fixed-size pixel buffer: the unit of
// storage the tile manager and the brush engine both operate on. Pixels
// live in one contiguous stride-addressed word buffer in a single
// pixfmt.Format; every format already states whether it is premultiplied,
// so there is no format-agnostic conversion cache to maintain.
package pixbuf

import (
	"errors"
	"fmt"

	"github.com/gogpu/paintcore/pixfmt"
)

// ErrOutOfBounds is returned when a coordinate lies outside the buffer.
var ErrOutOfBounds = errors.New("pixbuf: coordinates out of bounds")

// ErrFormatMismatch names a format or size disagreement between two
// buffers. No function in this package returns it: a wrong-size
// WithSource buffer is reported as ErrBadArgument.
var ErrFormatMismatch = errors.New("pixbuf: format mismatch")

// ErrBadArgument is returned for invalid construction parameters (zero or
// negative width/height, wrong-size source data).
var ErrBadArgument = errors.New("pixbuf: bad argument")

// ErrAllocFailed is returned when a Pixbuf's backing buffer cannot be
// allocated. Go's allocator reports exhaustion by panicking rather than by
// an error value, so nothing in this package can construct this error
// today; it exists so callers can errors.Is against it uniformly with the
// other ResourceExhausted-kind failures if a future allocation path (e.g. a
// pooled or memory-mapped buffer) needs to report it.
var ErrAllocFailed = errors.New("pixbuf: allocation failed")

// Pixbuf is a width x height grid of pixels in a single pixfmt.Format,
// stored in one contiguous []uint16 slice of NC() words per pixel, rows
// stride pixels apart.
type Pixbuf struct {
	format   pixfmt.Format
	originX  int
	originY  int
	width    int
	height   int
	stride   int // row length in pixels
	pix      []uint16
	readOnly bool
	damaged  bool
}

// Option configures a Pixbuf at construction time.
type Option func(*options)

type options struct {
	source   []uint16
	readOnly bool
}

// WithSource pre-seeds the buffer with src, which must hold exactly
// width*height*NC() words. New copies src rather than retaining it.
func WithSource(src []uint16) Option {
	return func(o *options) { o.source = src }
}

// WithReadOnly marks the buffer read-only; the tile manager uses this to
// flag snapshot tiles that must be cloned before any write (copy-on-write).
func WithReadOnly() Option {
	return func(o *options) { o.readOnly = true }
}

// New allocates a width x height Pixbuf in the given format. With
// WithSource, the buffer is initialized from that data instead of zeroed;
// the source must match width*height*NC() exactly or New returns
// ErrBadArgument.
func New(format pixfmt.Format, width, height int, opts ...Option) (*Pixbuf, error) {
	if !format.IsValid() {
		return nil, fmt.Errorf("pixbuf: %w: %v", pixfmt.ErrUnknownFormat, format)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("pixbuf: %w: non-positive dimensions %dx%d", ErrBadArgument, width, height)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	nc := format.NC()
	pb := &Pixbuf{
		format:   format,
		width:    width,
		height:   height,
		stride:   width,
		readOnly: o.readOnly,
	}

	if o.source != nil {
		if len(o.source) != width*height*nc {
			return nil, fmt.Errorf("pixbuf: %w: source has %d words, want %d", ErrBadArgument, len(o.source), width*height*nc)
		}
		pb.pix = append([]uint16(nil), o.source...)
	} else {
		pb.pix = make([]uint16, width*height*nc)
	}
	return pb, nil
}

// Format reports the buffer's pixel format.
func (pb *Pixbuf) Format() pixfmt.Format { return pb.format }

// Width reports the buffer's width in pixels.
func (pb *Pixbuf) Width() int { return pb.width }

// Height reports the buffer's height in pixels.
func (pb *Pixbuf) Height() int { return pb.height }

// Stride reports the row length in pixels (equal to Width for buffers
// constructed by New; tiles carved from a larger buffer may differ, but
// this package never does that — stride tracking exists so blit/scroll
// share one addressing scheme with any future windowed view).
func (pb *Pixbuf) Stride() int { return pb.stride }

// ReadOnly reports whether this buffer is flagged read-only (a
// copy-on-write snapshot source; see the tile package).
func (pb *Pixbuf) ReadOnly() bool { return pb.readOnly }

// Origin reports the buffer's top-left corner in whatever coordinate space
// its owner assigns (canvas/device pixels for tiles; see tile.Manager,
// which sets this on every tile it creates or clones). Freestanding
// Pixbufs built directly via New default to (0, 0).
func (pb *Pixbuf) Origin() (x, y int) { return pb.originX, pb.originY }

// SetOrigin records where this buffer sits in its owner's coordinate
// space. The tile manager calls this on every tile it allocates or clones
// so the brush engine's Pixbuf cache can test containment without a
// separate coordinate lookup.
func (pb *Pixbuf) SetOrigin(x, y int) { pb.originX, pb.originY = x, y }

// Damaged reports whether the damaged flag is set. The brush rasterizer
// (drawDabSolid) sets it on every tile a dab writes pixels into. Nothing in
// this module clears it; only SetDamaged(false) does, and the display
// package does not call it.
func (pb *Pixbuf) Damaged() bool { return pb.damaged }

// SetDamaged sets or clears the damaged flag directly.
func (pb *Pixbuf) SetDamaged(v bool) { pb.damaged = v }

// Clone returns a deep, writable copy of pb, preserving its origin but not
// its damaged flag (a clone starts undamaged; the caller just took a fresh
// snapshot of it).
func (pb *Pixbuf) Clone() *Pixbuf {
	clone := &Pixbuf{
		format:  pb.format,
		originX: pb.originX,
		originY: pb.originY,
		width:   pb.width,
		height:  pb.height,
		stride:  pb.stride,
		pix:     append([]uint16(nil), pb.pix...),
	}
	return clone
}

// ReadOnlyClone returns a deep copy of pb flagged read-only. The tile
// manager uses this to snapshot a tile for undo without sharing storage
// with the live canvas; any later write to the live tile goes through
// GetTiles' copy-on-write path instead of touching the snapshot.
func (pb *Pixbuf) ReadOnlyClone() *Pixbuf {
	clone := pb.Clone()
	clone.readOnly = true
	return clone
}

func (pb *Pixbuf) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < pb.width && y < pb.height
}

func (pb *Pixbuf) pixelAt(x, y int) []uint16 {
	nc := pb.format.NC()
	offset := (y*pb.stride + x) * nc
	return pb.pix[offset : offset+nc]
}

// Paint blends color into the pixel at (x, y) using writer w, the same
// contract as SetPixel but taking the writer directly so a hot per-pixel
// caller (the brush rasteriser) can pick an alpha-locked or format-specific
// writer once per tile instead of re-resolving it per pixel. The caller
// must guarantee (x, y) is in bounds; unlike SetPixel/GetPixel, Paint does
// no bounds check, since the dab rasteriser already clips to the tile
// before calling it.
func (pb *Pixbuf) Paint(x, y int, w pixfmt.Writer, opacity, erase float32, color []uint32) {
	w(pb.pixelAt(x, y), opacity, erase, color)
}

// ReadNative reads the pixel at (x, y) with reader r into color, without a
// bounds check — see Paint for why the brush rasteriser needs this
// unchecked variant.
func (pb *Pixbuf) ReadNative(x, y int, r pixfmt.Reader, color []uint32) {
	r(pb.pixelAt(x, y), color)
}

// Stamp writes color into the pixel at (x, y) verbatim with the blend-free
// writer w, without a bounds check. The display path uses it to target
// formats that carry no blending writer (BGRA8, ABGR8).
func (pb *Pixbuf) Stamp(x, y int, w pixfmt.Write2, color []uint32) {
	w(pb.pixelAt(x, y), color)
}

// GetPixel reads the pixel at (x, y) in canonical channel order (as
// Format.Read returns it: R,G,B,A for RGB formats, C,M,Y,K,A for CMYK).
// It returns ErrOutOfBounds for coordinates outside the buffer.
func (pb *Pixbuf) GetPixel(x, y int) ([]uint32, error) {
	if !pb.inBounds(x, y) {
		return nil, fmt.Errorf("pixbuf: GetPixel(%d,%d): %w", x, y, ErrOutOfBounds)
	}
	color := make([]uint32, pixfmt.MaxChannels)
	pb.format.Read()(pb.pixelAt(x, y), color)
	return color[:pb.format.ReadChannels()], nil
}

// SetPixel blends color into the pixel at (x, y) at full opacity, replacing
// it outright. It returns ErrOutOfBounds for coordinates outside the
// buffer.
func (pb *Pixbuf) SetPixel(x, y int, color []uint32) error {
	if !pb.inBounds(x, y) {
		return fmt.Errorf("pixbuf: SetPixel(%d,%d): %w", x, y, ErrOutOfBounds)
	}
	writer := pb.format.Write()
	if writer == nil {
		return fmt.Errorf("pixbuf: SetPixel: format %v has no writer", pb.format)
	}
	writer(pb.pixelAt(x, y), 1.0, 1.0, color)
	return nil
}

// Clear zeroes every pixel.
func (pb *Pixbuf) Clear() {
	for i := range pb.pix {
		pb.pix[i] = 0
	}
}

// ClearArea zeroes every pixel inside the given rectangle, clipped to the
// buffer's bounds.
func (pb *Pixbuf) ClearArea(x, y, w, h int) {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > pb.width {
		w = pb.width - x
	}
	if y+h > pb.height {
		h = pb.height - y
	}
	if w <= 0 || h <= 0 {
		return
	}
	nc := pb.format.NC()
	for row := y; row < y+h; row++ {
		off := (row*pb.stride + x) * nc
		for i := off; i < off+w*nc; i++ {
			pb.pix[i] = 0
		}
	}
}

// ClearValue writes v into every pixel's color channels, leaving alpha (if
// any) untouched — unlike ClearAlpha, which targets only alpha.
func (pb *Pixbuf) ClearValue(v uint32) {
	nc := pb.format.NC()
	alphaIdx := pb.alphaIndex()
	for i := 0; i < len(pb.pix); i += nc {
		for c := 0; c < nc; c++ {
			if c == alphaIdx {
				continue
			}
			pb.pix[i+c] = uint16(v)
		}
	}
}

// ClearAlpha writes a into every pixel's alpha channel, for formats that
// have one. It is a no-op for formats without alpha.
func (pb *Pixbuf) ClearAlpha(a uint32) {
	idx := pb.alphaIndex()
	if idx < 0 {
		return
	}
	nc := pb.format.NC()
	for i := 0; i < len(pb.pix); i += nc {
		pb.pix[i+idx] = uint16(a)
	}
}

func (pb *Pixbuf) alphaIndex() int {
	info := pb.format.Info()
	switch info.Alpha {
	case pixfmt.AlphaFirst:
		return 0
	case pixfmt.AlphaLast:
		return info.NC - 1
	default:
		return -1
	}
}

// Empty reports whether every pixel's alpha channel is zero. Formats
// without alpha are never empty.
func (pb *Pixbuf) Empty() bool {
	idx := pb.alphaIndex()
	if idx < 0 {
		return false
	}
	nc := pb.format.NC()
	for i := idx; i < len(pb.pix); i += nc {
		if pb.pix[i] != 0 {
			return false
		}
	}
	return true
}
