package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// StackPoints2D stacks a point slice into an n×2 coordinate matrix, one
// point per row. It is a representation conversion only.
func StackPoints2D(points []Point2D) *mat.Dense {
	m := mat.NewDense(len(points), 2, nil)
	for i, p := range points {
		m.Set(i, 0, p.X)
		m.Set(i, 1, p.Y)
	}
	return m
}

// UnstackPoints2D converts an n×2 coordinate matrix back into a point slice.
func UnstackPoints2D(m mat.Matrix) ([]Point2D, error) {
	n, c := m.Dims()
	if c != 2 {
		return nil, fmt.Errorf("geometry: cannot unstack %d×%d matrix into 2D points", n, c)
	}
	points := make([]Point2D, n)
	for i := range points {
		points[i] = Point2D{X: m.At(i, 0), Y: m.At(i, 1)}
	}
	return points, nil
}

// StackPoints3D stacks a point slice into an n×3 coordinate matrix, one
// point per row.
func StackPoints3D(points []Point3D) *mat.Dense {
	m := mat.NewDense(len(points), 3, nil)
	for i, p := range points {
		m.Set(i, 0, p.X)
		m.Set(i, 1, p.Y)
		m.Set(i, 2, p.Z)
	}
	return m
}

// UnstackPoints3D converts an n×3 coordinate matrix back into a point slice.
func UnstackPoints3D(m mat.Matrix) ([]Point3D, error) {
	n, c := m.Dims()
	if c != 3 {
		return nil, fmt.Errorf("geometry: cannot unstack %d×%d matrix into 3D points", n, c)
	}
	points := make([]Point3D, n)
	for i := range points {
		points[i] = Point3D{X: m.At(i, 0), Y: m.At(i, 1), Z: m.At(i, 2)}
	}
	return points, nil
}
