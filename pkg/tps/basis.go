package tps

import "math"

// machEps is the double-precision machine epsilon.
var machEps = math.Nextafter(1, 2) - 1

// basis is the thin-plate radial basis r²·ln(r). Distances below machine
// epsilon map to exactly zero, the continuous limit of r²·ln(r) as r→0;
// this keeps the kernel diagonal free of log(0). The argument is a
// Euclidean norm and therefore never negative.
func basis(r float64) float64 {
	if r < machEps {
		return 0
	}
	return r * r * math.Log(r)
}
