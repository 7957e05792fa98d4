package pixbuf

import (
	"fmt"

	"github.com/gogpu/paintcore/pixfmt"
)

// clipRect clips a (dx, dy, sx, sy, w, h) rectangle so that neither the
// source rectangle (within src bounds) nor the destination rectangle
// (within dst bounds) falls outside either buffer. It returns the adjusted
// geometry and false if nothing remains to copy.
func clipRect(dst, src *Pixbuf, dx, dy, sx, sy, w, h int) (ddx, ddy, ssx, ssy, ww, hh int, ok bool) {
	if sx < 0 {
		w += sx
		dx -= sx
		sx = 0
	}
	if sy < 0 {
		h += sy
		dy -= sy
		sy = 0
	}
	if dx < 0 {
		w += dx
		sx -= dx
		dx = 0
	}
	if dy < 0 {
		h += dy
		sy -= dy
		dy = 0
	}
	if sx+w > src.width {
		w = src.width - sx
	}
	if sy+h > src.height {
		h = src.height - sy
	}
	if dx+w > dst.width {
		w = dst.width - dx
	}
	if dy+h > dst.height {
		h = dst.height - dy
	}
	if w <= 0 || h <= 0 {
		return 0, 0, 0, 0, 0, 0, false
	}
	return dx, dy, sx, sy, w, h, true
}

// Blit writes a w x h rectangle of src, read from (sx, sy), into dst at
// (dx, dy), translating pixel formats via pixfmt.Blit. Both rectangles are
// clipped against their own buffer's bounds before the kernel runs.
func (dst *Pixbuf) Blit(src *Pixbuf, dx, dy, sx, sy, w, h int) error {
	if dst.readOnly {
		return fmt.Errorf("pixbuf: Blit: %w: destination is read-only", ErrBadArgument)
	}
	ddx, ddy, ssx, ssy, ww, hh, ok := clipRect(dst, src, dx, dy, sx, sy, w, h)
	if !ok {
		return nil
	}
	k := pixfmt.Blit(src.format, dst.format)
	srcNC := src.format.NC()
	dstNC := dst.format.NC()
	srcOff := (ssy*src.stride + ssx) * srcNC
	dstOff := (ddy*dst.stride + ddx) * dstNC
	k(src.pix[srcOff:], dst.pix[dstOff:], ww, hh, src.stride, dst.stride)
	return nil
}

// Compose is the same geometry as Blit but uses the Porter-Duff src-over
// compose kernel instead of an overwrite.
func (dst *Pixbuf) Compose(src *Pixbuf, dx, dy, sx, sy, w, h int) error {
	if dst.readOnly {
		return fmt.Errorf("pixbuf: Compose: %w: destination is read-only", ErrBadArgument)
	}
	ddx, ddy, ssx, ssy, ww, hh, ok := clipRect(dst, src, dx, dy, sx, sy, w, h)
	if !ok {
		return nil
	}
	k := pixfmt.Compose(src.format, dst.format)
	srcNC := src.format.NC()
	dstNC := dst.format.NC()
	srcOff := (ssy*src.stride + ssx) * srcNC
	dstOff := (ddy*dst.stride + ddx) * dstNC
	k(src.pix[srcOff:], dst.pix[dstOff:], ww, hh, src.stride, dst.stride)
	return nil
}

// FromBuffer ingests a foreign-format rectangle at device coordinates
// (sx, sy, sw, sh) into this Pixbuf, clipping to its bounds. data holds
// srcFmt-encoded pixel words for a buffer stride pixels wide, at whatever
// height len(data) implies — the full buffer, not just the sub-rectangle —
// so that negative sx/sy (a requested rectangle that starts before the
// buffer's own origin) clips correctly against real bounds rather than a
// guessed width.
func (dst *Pixbuf) FromBuffer(srcFmt pixfmt.Format, data []uint16, stride, sx, sy, sw, sh int) error {
	if dst.readOnly {
		return fmt.Errorf("pixbuf: FromBuffer: %w: destination is read-only", ErrBadArgument)
	}
	nc := srcFmt.NC()
	if stride <= 0 || len(data)%(stride*nc) != 0 {
		return fmt.Errorf("pixbuf: FromBuffer: %w: stride %d inconsistent with data length %d", ErrBadArgument, stride, len(data))
	}
	height := len(data) / (stride * nc)
	src := &Pixbuf{format: srcFmt, width: stride, height: height, stride: stride, pix: data}
	return dst.Blit(src, 0, 0, sx, sy, sw, sh)
}
