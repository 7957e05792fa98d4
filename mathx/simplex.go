// Package mathx implements the brush engine's numeric support: classical
// 2D simplex noise, doubled trigonometric lookup tables, HSV<->RGB
// conversion, and the two independent PRNG streams the brush samples
// jitter from.
package mathx

// perm256 is Ken Perlin's reference permutation table.
var perm256 = [256]byte{
	151, 160, 137, 91, 90, 15,
	131, 13, 201, 95, 96, 53, 194, 233, 7, 225, 140, 36, 103, 30, 69, 142, 8, 99, 37, 240, 21, 10, 23,
	190, 6, 148, 247, 120, 234, 75, 0, 26, 197, 62, 94, 252, 219, 203, 117, 35, 11, 32, 57, 177, 33,
	88, 237, 149, 56, 87, 174, 20, 125, 136, 171, 168, 68, 175, 74, 165, 71, 134, 139, 48, 27, 166,
	77, 146, 158, 231, 83, 111, 229, 122, 60, 211, 133, 230, 220, 105, 92, 41, 55, 46, 245, 40, 244,
	102, 143, 54, 65, 25, 63, 161, 1, 216, 80, 73, 209, 76, 132, 187, 208, 89, 18, 169, 200, 196,
	135, 130, 116, 188, 159, 86, 164, 100, 109, 198, 173, 186, 3, 64, 52, 217, 226, 250, 124, 123,
	5, 202, 38, 147, 118, 126, 255, 82, 85, 212, 207, 206, 59, 227, 47, 16, 58, 17, 182, 189, 28, 42,
	223, 183, 170, 213, 119, 248, 152, 2, 44, 154, 163, 70, 221, 153, 101, 155, 167, 43, 172, 9,
	129, 22, 39, 253, 19, 98, 108, 110, 79, 113, 224, 232, 178, 185, 112, 104, 218, 246, 97, 228,
	251, 34, 242, 193, 238, 210, 144, 12, 191, 179, 162, 241, 81, 51, 145, 235, 249, 14, 239, 107,
	49, 192, 214, 31, 181, 199, 106, 157, 184, 84, 204, 176, 115, 121, 50, 45, 127, 4, 150, 254,
	138, 236, 205, 93, 222, 114, 67, 29, 24, 72, 243, 141, 128, 195, 78, 66, 215, 61, 156, 180,
}

// perm is perm256 duplicated to 512 entries, so perm[ii+perm[jj]] never
// needs an extra modulo when ii, jj are already masked to 0..255.
var perm [512]byte

func init() {
	for i := range perm {
		perm[i] = perm256[i%256]
	}
}

// grad3 holds the 12 canonical simplex gradient vectors (z is unused in the
// 2D case but kept for fidelity with the reference table).
var grad3 = [12][3]int{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

const (
	simplexF2 = 0.366025403 // 0.5*(sqrt(3)-1)
	simplexG2 = 0.211324865 // (3-sqrt(3))/6
)

func dot2(g [3]int, x, y float64) float64 {
	return float64(g[0])*x + float64(g[1])*y
}

func fastFloor(x float64) int {
	if x >= 0 {
		return int(x)
	}
	return int(x) - 1
}

// Noise2D returns classical 2D simplex noise at (x, y), approximately in
// [-1, 1].
func Noise2D(x, y float64) float64 {
	s := (x + y) * simplexF2
	xs := x + s
	ys := y + s
	i := fastFloor(xs)
	j := fastFloor(ys)

	t := float64(i+j) * simplexG2
	x0Origin := float64(i) - t
	y0Origin := float64(j) - t
	x0 := x - x0Origin
	y0 := y - y0Origin

	var i1, j1 int
	if x0 > y0 {
		i1, j1 = 1, 0
	} else {
		i1, j1 = 0, 1
	}

	x1 := x0 - float64(i1) + simplexG2
	y1 := y0 - float64(j1) + simplexG2
	x2 := x0 - 1.0 + 2.0*simplexG2
	y2 := y0 - 1.0 + 2.0*simplexG2

	ii := i & 0xff
	jj := j & 0xff

	var n0, n1, n2 float64

	t0 := 0.5 - x0*x0 - y0*y0
	if t0 >= 0 {
		gi0 := perm[ii+int(perm[jj])] % 12
		t0 *= t0
		n0 = t0 * t0 * dot2(grad3[gi0], x0, y0)
	}

	t1 := 0.5 - x1*x1 - y1*y1
	if t1 >= 0 {
		gi1 := perm[ii+i1+int(perm[jj+j1])] % 12
		t1 *= t1
		n1 = t1 * t1 * dot2(grad3[gi1], x1, y1)
	}

	t2 := 0.5 - x2*x2 - y2*y2
	if t2 >= 0 {
		gi2 := perm[ii+1+int(perm[jj+1])] % 12
		t2 *= t2
		n2 = t2 * t2 * dot2(grad3[gi2], x2, y2)
	}

	return 40.0 * (n0 + n1 + n2)
}

// Noise2D01 rescales Noise2D's approximately [-1,1] output to [0,1], the
// form the brush's grain modulation consumes.
func Noise2D01(x, y float64) float64 {
	return (Noise2D(x, y) + 1) / 2
}
