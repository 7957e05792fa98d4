package brush

import "github.com/gogpu/paintcore/pixbuf"

// Surface is the non-owning collaborator the brush paints through. A
// tile.Manager satisfies it directly; tests substitute smaller fakes.
//
// Cyclic references are avoided deliberately: the brush holds only a
// reference to its Surface for the stroke's duration, and the Surface never
// calls back into the brush.
type Surface interface {
	// GetPixbuf returns the tile covering canvas pixel (x, y). A nil,nil
	// result means "no tile here" — the brush skips that pixel's
	// contribution entirely. Only an allocation or host-callback failure
	// returns a non-nil error.
	GetPixbuf(x, y int) (*pixbuf.Pixbuf, error)
}
