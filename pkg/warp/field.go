// Package warp wraps the thin-plate-spline core in point-typed warp fields.
// It stacks geometry points into coordinate matrices on the way in and
// unstacks the results on the way out; all numerical work happens in
// package tps.
package warp

import (
	"tps-warp/pkg/geometry"
	"tps-warp/pkg/tps"
)

// Field2D is a solved 2D warp field mapping source landmarks onto target
// landmarks. It is immutable and safe for concurrent use.
type Field2D struct {
	def *tps.Deformation
}

// Solve2D derives the warp field sending src onto dst. The slices must have
// equal length of at least 3 points.
func Solve2D(src, dst []geometry.Point2D, stiffness float64) (*Field2D, error) {
	def, err := tps.Solve(geometry.StackPoints2D(src), geometry.StackPoints2D(dst), stiffness, true)
	if err != nil {
		return nil, err
	}
	return &Field2D{def: def}, nil
}

// Apply maps a single point through the field.
func (f *Field2D) Apply(p geometry.Point2D) geometry.Point2D {
	return f.ApplyAll([]geometry.Point2D{p})[0]
}

// ApplyAll maps every point in the slice through the field.
func (f *Field2D) ApplyAll(points []geometry.Point2D) []geometry.Point2D {
	if len(points) == 0 {
		return nil
	}
	out, err := f.def.Deform(geometry.StackPoints2D(points))
	if err != nil {
		// Fields are always solved with their affine component and queries
		// are stacked here with matching dimensionality.
		panic(err)
	}
	res, _ := geometry.UnstackPoints2D(out)
	return res
}

// BendingEnergy returns the bending energy of the field; zero for a purely
// affine deformation.
func (f *Field2D) BendingEnergy() float64 { return f.def.BendingEnergy() }

// Deformation exposes the underlying coefficient aggregate for inspection.
func (f *Field2D) Deformation() *tps.Deformation { return f.def }

// Field3D is a solved 3D warp field. It is immutable and safe for
// concurrent use.
type Field3D struct {
	def *tps.Deformation
}

// Solve3D derives the warp field sending src onto dst. The slices must have
// equal length of at least 4 points.
func Solve3D(src, dst []geometry.Point3D, stiffness float64) (*Field3D, error) {
	def, err := tps.Solve(geometry.StackPoints3D(src), geometry.StackPoints3D(dst), stiffness, true)
	if err != nil {
		return nil, err
	}
	return &Field3D{def: def}, nil
}

// Apply maps a single point through the field.
func (f *Field3D) Apply(p geometry.Point3D) geometry.Point3D {
	return f.ApplyAll([]geometry.Point3D{p})[0]
}

// ApplyAll maps every point in the slice through the field.
func (f *Field3D) ApplyAll(points []geometry.Point3D) []geometry.Point3D {
	if len(points) == 0 {
		return nil
	}
	out, err := f.def.Deform(geometry.StackPoints3D(points))
	if err != nil {
		panic(err)
	}
	res, _ := geometry.UnstackPoints3D(out)
	return res
}

// BendingEnergy returns the bending energy of the field.
func (f *Field3D) BendingEnergy() float64 { return f.def.BendingEnergy() }

// Deformation exposes the underlying coefficient aggregate for inspection.
func (f *Field3D) Deformation() *tps.Deformation { return f.def }
