package tps

import (
	"gonum.org/v1/gonum/mat"
)

// Deform evaluates the map at the M×D query matrix q, one point per row, and
// returns the M×D matrix of their images. The affine term and the
// basis-weighted contribution of every control point are accumulated in
// homogeneous space; the leading homogeneous coordinate is dropped from the
// result.
//
// Deform returns ErrNoAffine when the map was solved with computeAffine
// false, and a DimensionMismatchError when the query dimensionality differs
// from the control points'.
func (d *Deformation) Deform(q mat.Matrix) (*mat.Dense, error) {
	if d.affine == nil {
		return nil, ErrNoAffine
	}
	m, qd := q.Dims()
	k, dim := d.control.Dims()
	if qd != dim {
		return nil, DimensionMismatchError{Op: "deform", AR: m, AC: qd, BR: k, BC: dim}
	}

	query := mat.DenseCopyOf(q)
	qh := homogeneous(query)

	// [1, q]·D_aff + Σ_k basis(‖q − x_k‖)·C[k,:], vectorized over queries.
	var out mat.Dense
	out.Mul(qh, d.affine)
	var warp mat.Dense
	warp.Mul(crossKernel(query, d.control), d.coeff)
	out.Add(&out, &warp)

	return mat.DenseCopyOf(out.Slice(0, m, 1, dim+1)), nil
}

// Deform solves the thin-plate spline sending x onto y and evaluates it at q
// in one call; it is equivalent to Solve followed by Deformation.Deform.
// Evaluation needs the affine component, so computeAffine should be true.
func Deform(x, q, y mat.Matrix, stiffness float64, computeAffine bool) (*mat.Dense, error) {
	d, err := Solve(x, y, stiffness, computeAffine)
	if err != nil {
		return nil, err
	}
	return d.Deform(q)
}
