package geometry_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"tps-warp/pkg/geometry"
)

func TestPointArithmetic(t *testing.T) {
	a := geometry.NewPoint2D(1, 2)
	b := geometry.NewPoint2D(4, 6)

	require.Equal(t, geometry.Point2D{X: 5, Y: 8}, a.Add(b))
	require.Equal(t, geometry.Point2D{X: 3, Y: 4}, b.Sub(a))
	require.Equal(t, geometry.Point2D{X: 2, Y: 4}, a.Scale(2))
	require.InDelta(t, 5.0, a.Distance(b), 1e-15)

	p := geometry.NewPoint3D(1, 2, 2)
	q := geometry.NewPoint3D(1, 2, 5)
	require.InDelta(t, 3.0, p.Distance(q), 1e-15)
}

func TestAffineTransform(t *testing.T) {
	rot := geometry.Rotation(math.Pi / 2)
	p := rot.Apply(geometry.NewPoint2D(1, 0))
	require.InDelta(t, 0.0, p.X, 1e-15)
	require.InDelta(t, 1.0, p.Y, 1e-15)

	move := geometry.Translation(3, -2)
	composed := move.Compose(rot)
	p = composed.Apply(geometry.NewPoint2D(1, 0))
	require.InDelta(t, 3.0, p.X, 1e-15)
	require.InDelta(t, -1.0, p.Y, 1e-15)

	inv, ok := composed.Inverse()
	require.True(t, ok)
	back := inv.Apply(p)
	require.InDelta(t, 1.0, back.X, 1e-12)
	require.InDelta(t, 0.0, back.Y, 1e-12)

	_, ok = geometry.Scale(0, 1).Inverse()
	require.False(t, ok, "singular transform has no inverse")
}

func TestStackUnstackRoundTrip(t *testing.T) {
	points := []geometry.Point2D{
		{X: 0, Y: 1},
		{X: -2.5, Y: 3},
		{X: 7, Y: 7},
	}
	m := geometry.StackPoints2D(points)
	r, c := m.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 2, c)

	back, err := geometry.UnstackPoints2D(m)
	require.NoError(t, err)
	require.Equal(t, points, back)

	points3 := []geometry.Point3D{
		{X: 1, Y: 2, Z: 3},
		{X: -1, Y: 0, Z: 0.5},
	}
	back3, err := geometry.UnstackPoints3D(geometry.StackPoints3D(points3))
	require.NoError(t, err)
	require.Equal(t, points3, back3)

	_, err = geometry.UnstackPoints2D(geometry.StackPoints3D(points3))
	require.Error(t, err, "column count must match the point type")
}

func TestGenerateGridPoints(t *testing.T) {
	bounds := geometry.NewRect(0, 0, 4, 2)
	grid := geometry.GenerateGridPoints(bounds, 3, 2)
	require.Len(t, grid, 6)
	require.Equal(t, geometry.Point2D{X: 0, Y: 0}, grid[0])
	require.Equal(t, geometry.Point2D{X: 2, Y: 0}, grid[1])
	require.Equal(t, geometry.Point2D{X: 4, Y: 2}, grid[5])

	for _, p := range grid {
		require.True(t, bounds.Contains(p))
	}
}

func TestCentroidAndBoundingBox(t *testing.T) {
	points := geometry.GenerateCirclePoints(2, 3, 1, 8)
	c := geometry.Centroid(points)
	require.InDelta(t, 2.0, c.X, 1e-12)
	require.InDelta(t, 3.0, c.Y, 1e-12)

	box := geometry.BoundingBox(points)
	require.InDelta(t, 1.0, box.X, 1e-12)
	require.InDelta(t, 2.0, box.Y, 1e-12)
	require.InDelta(t, 2.0, box.Width, 1e-12)
	require.InDelta(t, 2.0, box.Height, 1e-12)
}
