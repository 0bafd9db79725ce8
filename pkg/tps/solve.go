package tps

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Deformation holds the coefficients of a solved thin-plate-spline map.
// It is built once by Solve and never mutated afterwards, so it is safe to
// share across goroutines.
type Deformation struct {
	stiffness float64
	control   *mat.Dense // K×D control points
	targets   *mat.Dense // K×(D+1) homogeneous target coordinates
	kernel    *mat.Dense // K×K thin-plate kernel over the control points
	affine    *mat.Dense // (D+1)×(D+1) affine coefficients, nil if not computed
	coeff     *mat.Dense // K×(D+1) non-affine (warping) coefficients
}

// Solve derives the thin-plate-spline map sending the control points x onto
// their targets y. Both are K×D matrices with one point per row and must
// satisfy K ≥ D+1. Stiffness 0 interpolates the correspondences exactly when
// the configuration permits; larger values relax interpolation in favor of
// smoother, lower-energy maps.
//
// The warping coefficients are solved in the orthogonal complement of the
// affine function space, obtained from a full QR factorization of the
// homogeneous control coordinates. That projection makes the affine and
// non-affine parts of the map identifiable: the warp carries no affine
// component.
//
// With computeAffine false the affine back-substitution is skipped. The
// result still supports BendingEnergy and introspection, but Deform returns
// ErrNoAffine until the map is re-solved with computeAffine true.
func Solve(x, y mat.Matrix, stiffness float64, computeAffine bool) (*Deformation, error) {
	k, d := x.Dims()
	yr, yc := y.Dims()
	if k != yr || d != yc {
		return nil, DimensionMismatchError{Op: "solve", AR: k, AC: d, BR: yr, BC: yc}
	}
	if stiffness < 0 {
		return nil, fmt.Errorf("%w: got %v", ErrNegativeStiffness, stiffness)
	}
	if k < d+1 {
		return nil, fmt.Errorf("%w: %d points in %d dimensions, need at least %d", ErrInsufficientPoints, k, d, d+1)
	}

	control := mat.DenseCopyOf(x)
	xh := homogeneous(x)
	yh := homogeneous(y)
	phi := kernelMatrix(control)

	// Full factorization: Q1 spans the affine functions over the control
	// points, Q2 their orthogonal complement.
	var qr mat.QR
	qr.Factorize(xh)
	var q, r mat.Dense
	qr.QTo(&q)
	qr.RTo(&r)
	q1 := q.Slice(0, k, 0, d+1).(*mat.Dense)

	// C = Q2 (λI + Q2ᵗ Φ Q2)⁻¹ Q2ᵗ Yh. With K == D+1 the complement is
	// empty and the map is exactly affine.
	coeff := mat.NewDense(k, d+1, nil)
	if k > d+1 {
		q2 := q.Slice(0, k, d+1, k).(*mat.Dense)
		p := k - d - 1

		var phiQ2 mat.Dense
		phiQ2.Mul(phi, q2)
		lhs := mat.NewDense(p, p, nil)
		lhs.Mul(q2.T(), &phiQ2)
		for i := 0; i < p; i++ {
			lhs.Set(i, i, lhs.At(i, i)+stiffness)
		}

		var rhs mat.Dense
		rhs.Mul(q2.T(), yh)

		var w mat.Dense
		if err := w.Solve(lhs, &rhs); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSingularSystem, err)
		}
		coeff.Mul(q2, &w)
	}

	var affine *mat.Dense
	if computeAffine {
		// Back-substitute against the triangular factor:
		// D_aff = R1⁻¹ Q1ᵗ (Yh − Φ C).
		var resid mat.Dense
		resid.Mul(phi, coeff)
		resid.Sub(yh, &resid)
		var proj mat.Dense
		proj.Mul(q1.T(), &resid)

		affine = mat.NewDense(d+1, d+1, nil)
		if err := affine.Solve(r.Slice(0, d+1, 0, d+1), &proj); err != nil {
			return nil, fmt.Errorf("%w: affine back-substitution: %v", ErrSingularSystem, err)
		}
	}

	return &Deformation{
		stiffness: stiffness,
		control:   control,
		targets:   yh,
		kernel:    phi,
		affine:    affine,
		coeff:     coeff,
	}, nil
}

// Stiffness returns the regularization weight the map was solved with.
func (d *Deformation) Stiffness() float64 { return d.stiffness }

// Dims returns the number of control points K and the spatial dimension D.
func (d *Deformation) Dims() (k, dim int) {
	k, dim = d.control.Dims()
	return k, dim
}

// HasAffine reports whether the affine component was computed; Deform
// requires it.
func (d *Deformation) HasAffine() bool { return d.affine != nil }

// Affine returns a copy of the (D+1)×(D+1) affine coefficients, or false if
// the map was solved without them.
func (d *Deformation) Affine() (*mat.Dense, bool) {
	if d.affine == nil {
		return nil, false
	}
	return mat.DenseCopyOf(d.affine), true
}

// Coefficients returns a copy of the K×(D+1) warping coefficients, one row
// per control point in homogeneous output space.
func (d *Deformation) Coefficients() *mat.Dense { return mat.DenseCopyOf(d.coeff) }

// Kernel returns a copy of the K×K thin-plate kernel over the control
// points. It is symmetric with a zero diagonal.
func (d *Deformation) Kernel() *mat.Dense { return mat.DenseCopyOf(d.kernel) }

// ControlPoints returns a copy of the K×D control point matrix.
func (d *Deformation) ControlPoints() *mat.Dense { return mat.DenseCopyOf(d.control) }

// Targets returns a copy of the K×(D+1) homogeneous target coordinates.
func (d *Deformation) Targets() *mat.Dense { return mat.DenseCopyOf(d.targets) }
