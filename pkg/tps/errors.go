package tps

import (
	"errors"
	"fmt"
)

var (
	// ErrNegativeStiffness is returned by Solve when stiffness < 0. Negative
	// stiffness inverts the regularization and has no meaningful solution.
	ErrNegativeStiffness = errors.New("tps: stiffness must be non-negative")

	// ErrInsufficientPoints is returned by Solve when fewer than D+1 control
	// points are supplied; the affine part of the map is then rank-deficient.
	ErrInsufficientPoints = errors.New("tps: not enough control points")

	// ErrNoAffine is returned by Deform when the Deformation was built
	// without its affine component; re-solve with computeAffine set to true.
	ErrNoAffine = errors.New("tps: affine component not available; re-solve with computeAffine=true")

	// ErrSingularSystem is returned when the projected linear system cannot
	// be solved, e.g. at stiffness 0 with a degenerate control configuration.
	ErrSingularSystem = errors.New("tps: projected system is singular or badly conditioned")
)

// DimensionMismatchError reports matrices whose shapes cannot be combined.
type DimensionMismatchError struct {
	Op             string
	AR, AC, BR, BC int
}

func (e DimensionMismatchError) Error() string {
	return fmt.Sprintf("tps: %s: dimension mismatch: %d×%d vs %d×%d", e.Op, e.AR, e.AC, e.BR, e.BC)
}
