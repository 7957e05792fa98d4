package pixbuf

// Scroll translates the buffer's contents in place by (dx, dy) pixels.
// Iteration direction is chosen so that, for overlapping source and
// destination regions, already-written pixels are never read again.
// Pixels uncovered at the edges are zeroed.
func (pb *Pixbuf) Scroll(dx, dy int) {
	if dx == 0 && dy == 0 {
		return
	}
	nc := pb.format.NC()
	w, h := pb.width, pb.height

	yStart, yEnd, yStep := 0, h, 1
	if dy > 0 {
		yStart, yEnd, yStep = h-1, -1, -1
	}
	xStart, xEnd, xStep := 0, w, 1
	if dx > 0 {
		xStart, xEnd, xStep = w-1, -1, -1
	}

	for y := yStart; y != yEnd; y += yStep {
		sy := y - dy
		for x := xStart; x != xEnd; x += xStep {
			sx := x - dx
			dstPix := pb.pixelAt(x, y)
			if sx < 0 || sx >= w || sy < 0 || sy >= h {
				for c := 0; c < nc; c++ {
					dstPix[c] = 0
				}
				continue
			}
			srcPix := pb.pixelAt(sx, sy)
			copy(dstPix, srcPix)
		}
	}
}
