package mathx

import "math"

// trigTableSize is the sampling resolution: index i maps to angle
// 2*pi*i/1024.
const trigTableSize = 1024

// TrigTableLen is the full length of cosTable/sinTable: the table is
// doubled so that a negative direction-jitter index can be made
// non-negative with a single addition of TrigTableLen, rather than a
// modulo on every lookup.
const TrigTableLen = trigTableSize * 2

var cosTable [TrigTableLen]float64
var sinTable [TrigTableLen]float64

func init() {
	for i := 0; i < TrigTableLen; i++ {
		angle := 2 * math.Pi * float64(i%trigTableSize) / trigTableSize
		cosTable[i] = math.Cos(angle)
		sinTable[i] = math.Sin(angle)
	}
}

// Cos looks up cos(2*pi*i/1024) for any i in [-TrigTableLen, TrigTableLen).
// Negative indices are brought into range by one addition of TrigTableLen,
// never a modulo.
func Cos(i int) float64 {
	if i < 0 {
		i += TrigTableLen
	}
	return cosTable[i]
}

// Sin looks up sin(2*pi*i/1024) with the same indexing contract as Cos.
func Sin(i int) float64 {
	if i < 0 {
		i += TrigTableLen
	}
	return sinTable[i]
}
