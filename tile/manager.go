package tile

import (
	"errors"
	"fmt"

	"github.com/gogpu/paintcore"
	"github.com/gogpu/paintcore/pixbuf"
	"github.com/gogpu/paintcore/pixfmt"
)

// ErrCallbackFailed wraps a Foreach callback's own error as it propagates
// out of the traversal.
var ErrCallbackFailed = errors.New("tile: callback failed")

// Manager owns a sparse map from tile coordinate to Pixbuf, all in one
// pixfmt.Format. It is not safe for concurrent use: the brush engine and
// any display/io goroutines must share one external lock (a host-owned
// sync.RWMutex), a single-writer/multiple-reader model the core itself
// does not enforce.
type Manager struct {
	format pixfmt.Format
	tiles  map[Coord]*pixbuf.Pixbuf
}

// Option configures a Manager at construction time.
type Option func(*options)

type options struct {
	format pixfmt.Format
}

// WithFormat sets the format new tiles are allocated in. Defaults to
// pixfmt.ARGB15X, the brush engine's working format.
func WithFormat(f pixfmt.Format) Option {
	return func(o *options) { o.format = f }
}

// NewManager creates an empty tile manager.
func NewManager(opts ...Option) *Manager {
	o := options{format: pixfmt.ARGB15X}
	for _, opt := range opts {
		opt(&o)
	}
	return &Manager{format: o.format, tiles: make(map[Coord]*pixbuf.Pixbuf)}
}

// Format reports the format tiles are allocated in.
func (m *Manager) Format() pixfmt.Format { return m.format }

// GetTile translates device (x, y) to a tile coordinate and returns the
// tile covering it. If absent and create is true, a zero-filled tile is
// allocated and inserted. It returns ok=false if absent and create is
// false.
func (m *Manager) GetTile(x, y int, create bool) (pb *pixbuf.Pixbuf, ok bool, err error) {
	c := CoordOf(x, y)
	if t, found := m.tiles[c]; found {
		return t, true, nil
	}
	if !create {
		return nil, false, nil
	}
	t, err := pixbuf.New(m.format, Size, Size)
	if err != nil {
		return nil, false, fmt.Errorf("tile: allocating tile at %v: %w", c, err)
	}
	ox, oy := c.Origin()
	t.SetOrigin(ox, oy)
	m.tiles[c] = t
	paintcore.Logger().Debug("tile: created", "coord", c, "origin_x", ox, "origin_y", oy)
	return t, true, nil
}

// SetTile inserts tile at the coordinate covering device (x, y), replacing
// any tile already there. tile's origin is stamped to match the
// coordinate's device-pixel position.
func (m *Manager) SetTile(t *pixbuf.Pixbuf, x, y int) {
	c := CoordOf(x, y)
	ox, oy := c.Origin()
	t.SetOrigin(ox, oy)
	m.tiles[c] = t
}

// GetPixbuf implements the brush engine's Surface contract: translate
// device (x, y) to a tile, creating it if absent, so a stroke that wanders
// onto unpainted canvas always has somewhere to write. It never returns
// (nil, non-nil) for "no tile here" — that case returns (nil, nil), the
// brush's "treat as zero" sentinel — only an allocation failure returns an
// error.
func (m *Manager) GetPixbuf(x, y int) (*pixbuf.Pixbuf, error) {
	t, ok, err := m.GetTile(x, y, true)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return t, nil
}

// ReadPixbuf returns the tile covering device (x, y) without creating one:
// the display path's read-only counterpart to GetPixbuf. A (nil, nil)
// result means "no tile here, sample as fully transparent".
func (m *Manager) ReadPixbuf(x, y int) (*pixbuf.Pixbuf, error) {
	t, ok, err := m.GetTile(x, y, false)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return t, nil
}

// Entry pairs a tile with its coordinate, as returned by GetTiles.
type Entry struct {
	Coord Coord
	Tile  *pixbuf.Pixbuf
}

// GetTiles returns every tile intersecting rect (in device pixel
// coordinates). A tile flagged read-only is cloned first, the clone
// replaces it in the map, and the clone is what's returned — the
// copy-on-write point snapshot-based undo relies on. If create is true,
// tiles covering rect but absent from the map are allocated.
func (m *Manager) GetTiles(rect Rect, create bool) ([]Entry, error) {
	minC := CoordOf(rect.X, rect.Y)
	maxC := CoordOf(rect.X+rect.W-1, rect.Y+rect.H-1)

	var out []Entry
	for ty := minC.Y; ty <= maxC.Y; ty++ {
		for tx := minC.X; tx <= maxC.X; tx++ {
			c := Coord{tx, ty}
			t, found := m.tiles[c]
			if !found {
				if !create {
					continue
				}
				nt, err := pixbuf.New(m.format, Size, Size)
				if err != nil {
					return out, fmt.Errorf("tile: allocating tile at %v: %w", c, err)
				}
				ox, oy := c.Origin()
				nt.SetOrigin(ox, oy)
				m.tiles[c] = nt
				t = nt
				paintcore.Logger().Debug("tile: created", "coord", c, "origin_x", ox, "origin_y", oy)
			}
			if t.ReadOnly() {
				clone := t.Clone()
				m.tiles[c] = clone
				t = clone
			}
			out = append(out, Entry{Coord: c, Tile: t})
		}
	}
	return out, nil
}

// Rect is an axis-aligned rectangle in device pixel coordinates.
type Rect struct {
	X, Y, W, H int
}

// CallbackOptions is passed through to every Foreach callback unchanged;
// its fields are set by the caller (e.g. opacity/erase for a bulk paint
// operation) and are opaque to the manager.
type CallbackOptions any

// Callback is invoked once per tile during Foreach, receiving the tile's
// coordinate so it can compute device offsets, the tile itself, and the
// caller's options.
type Callback func(c Coord, t *pixbuf.Pixbuf, opts CallbackOptions) error

// Foreach iterates every tile intersecting rect, or the manager's overall
// bounding box when rect is nil, invoking cb for each. Iteration order is
// unspecified. A failing callback or tile
// allocation propagates immediately and aborts the traversal; tiles
// already created during this call are not rolled back.
func (m *Manager) Foreach(rect *Rect, cb Callback, opts CallbackOptions, create bool) error {
	if rect == nil {
		bb, ok := m.BBox()
		if !ok {
			return nil
		}
		rect = &bb
	}
	entries, err := m.GetTiles(*rect, create)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := cb(e.Coord, e.Tile, opts); err != nil {
			paintcore.Logger().Warn("tile: Foreach callback failed", "coord", e.Coord, "err", err)
			return fmt.Errorf("tile: Foreach: %w: %v", ErrCallbackFailed, err)
		}
	}
	return nil
}

// FromBuffer wipes the map, then ingests an external rectangle by creating
// tiles covering it and delegating to Pixbuf.FromBuffer per tile.
func (m *Manager) FromBuffer(srcFmt pixfmt.Format, data []uint16, stride, sx, sy, sw, sh int) error {
	m.tiles = make(map[Coord]*pixbuf.Pixbuf)
	rect := Rect{X: sx, Y: sy, W: sw, H: sh}
	entries, err := m.GetTiles(rect, true)
	if err != nil {
		return err
	}
	for _, e := range entries {
		ox, oy := e.Coord.Origin()
		if err := e.Tile.FromBuffer(srcFmt, data, stride, ox-sx, oy-sy, Size, Size); err != nil {
			return fmt.Errorf("tile: FromBuffer: %w", err)
		}
	}
	return nil
}

// BBox returns the axis-aligned bounding box, in tile units converted to
// device pixels, of every tile currently in the map. ok is false when the
// map is empty.
func (m *Manager) BBox() (Rect, bool) {
	if len(m.tiles) == 0 {
		return Rect{}, false
	}
	first := true
	var minX, minY, maxX, maxY int
	for c := range m.tiles {
		ox, oy := c.Origin()
		if first {
			minX, minY = ox, oy
			maxX, maxY = ox+Size, oy+Size
			first = false
			continue
		}
		if ox < minX {
			minX = ox
		}
		if oy < minY {
			minY = oy
		}
		if ox+Size > maxX {
			maxX = ox + Size
		}
		if oy+Size > maxY {
			maxY = oy + Size
		}
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}, true
}
