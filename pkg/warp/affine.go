package warp

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"tps-warp/pkg/geometry"
)

// AffineLeastSquares fits the best affine transform sending src onto dst in
// the least-squares sense. It is the purely affine companion of a warp
// field: a field whose landmarks are reproduced exactly by this transform
// has bending energy zero.
func AffineLeastSquares(src, dst []geometry.Point2D) (geometry.AffineTransform, error) {
	n := len(src)
	if n != len(dst) {
		return geometry.AffineTransform{}, fmt.Errorf("warp: point count mismatch: %d vs %d", n, len(dst))
	}
	if n < 3 {
		return geometry.AffineTransform{}, fmt.Errorf("warp: need at least 3 points, got %d", n)
	}

	// Two rows per correspondence: x' = a*x + b*y + tx, y' = c*x + d*y + ty.
	a := mat.NewDense(n*2, 6, nil)
	b := mat.NewVecDense(n*2, nil)
	for i := 0; i < n; i++ {
		x, y := src[i].X, src[i].Y

		a.Set(i*2, 0, x)
		a.Set(i*2, 1, y)
		a.Set(i*2, 2, 1)
		b.SetVec(i*2, dst[i].X)

		a.Set(i*2+1, 3, x)
		a.Set(i*2+1, 4, y)
		a.Set(i*2+1, 5, 1)
		b.SetVec(i*2+1, dst[i].Y)
	}

	var qr mat.QR
	qr.Factorize(a)

	var params mat.VecDense
	if err := qr.SolveVecTo(&params, false, b); err != nil {
		return geometry.AffineTransform{}, fmt.Errorf("warp: affine fit: %w", err)
	}

	return geometry.AffineTransform{
		A:  params.AtVec(0),
		B:  params.AtVec(1),
		TX: params.AtVec(2),
		C:  params.AtVec(3),
		D:  params.AtVec(4),
		TY: params.AtVec(5),
	}, nil
}

// affineFromTriple computes the affine transform determined exactly by three
// correspondences.
func affineFromTriple(src, dst []geometry.Point2D) (geometry.AffineTransform, error) {
	a := mat.NewDense(6, 6, nil)
	b := mat.NewVecDense(6, nil)
	for i := 0; i < 3; i++ {
		x, y := src[i].X, src[i].Y

		a.Set(i*2, 0, x)
		a.Set(i*2, 1, y)
		a.Set(i*2, 2, 1)
		b.SetVec(i*2, dst[i].X)

		a.Set(i*2+1, 3, x)
		a.Set(i*2+1, 4, y)
		a.Set(i*2+1, 5, 1)
		b.SetVec(i*2+1, dst[i].Y)
	}

	var params mat.VecDense
	if err := params.SolveVec(a, b); err != nil {
		return geometry.AffineTransform{}, err
	}

	return geometry.AffineTransform{
		A:  params.AtVec(0),
		B:  params.AtVec(1),
		TX: params.AtVec(2),
		C:  params.AtVec(3),
		D:  params.AtVec(4),
		TY: params.AtVec(5),
	}, nil
}
