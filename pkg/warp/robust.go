package warp

import (
	"fmt"
	"math/rand"

	"tps-warp/pkg/geometry"
)

// RANSACConfig controls the outlier screening performed by Solve2DRobust.
// Thresholds are in the same units as the input coordinates.
type RANSACConfig struct {
	Iterations int        // Number of random triples to try
	Threshold  float64    // Maximum residual for a correspondence to count as an inlier
	RNG        *rand.Rand // Source of randomness; nil uses the global source
}

// DefaultRANSACConfig returns the screening defaults.
func DefaultRANSACConfig() RANSACConfig {
	return RANSACConfig{
		Iterations: 2000,
		Threshold:  3.0,
	}
}

// Solve2DRobust screens the landmark correspondences for outliers before
// solving the warp field. A RANSAC affine fit over random triples selects
// the largest consensus set; the field is then solved over those inliers
// only. The returned indices identify the inliers within the input slices.
//
// Screening against an affine model deliberately rejects pairs a smooth map
// cannot reconcile with the bulk of the correspondences; a genuine local
// deformation larger than Threshold should be kept by raising the threshold
// instead.
func Solve2DRobust(src, dst []geometry.Point2D, stiffness float64, cfg RANSACConfig) (*Field2D, []int, error) {
	n := len(src)
	if n != len(dst) {
		return nil, nil, fmt.Errorf("warp: point count mismatch: %d vs %d", n, len(dst))
	}
	if n < 3 {
		return nil, nil, fmt.Errorf("warp: need at least 3 points, got %d", n)
	}
	if cfg.Iterations <= 0 {
		cfg.Iterations = DefaultRANSACConfig().Iterations
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultRANSACConfig().Threshold
	}
	perm := rand.Perm
	if cfg.RNG != nil {
		perm = cfg.RNG.Perm
	}

	var bestInliers []int
	sample := make([]geometry.Point2D, 3)
	target := make([]geometry.Point2D, 3)
	for iter := 0; iter < cfg.Iterations; iter++ {
		indices := perm(n)[:3]
		for i, idx := range indices {
			sample[i] = src[idx]
			target[i] = dst[idx]
		}

		transform, err := affineFromTriple(sample, target)
		if err != nil {
			continue
		}

		var inliers []int
		for i := range src {
			if transform.Apply(src[i]).Distance(dst[i]) < cfg.Threshold {
				inliers = append(inliers, i)
			}
		}
		if len(inliers) > len(bestInliers) {
			bestInliers = inliers
		}
	}

	if len(bestInliers) < 3 {
		return nil, nil, fmt.Errorf("warp: RANSAC failed to find enough inliers")
	}

	inlierSrc := make([]geometry.Point2D, len(bestInliers))
	inlierDst := make([]geometry.Point2D, len(bestInliers))
	for i, idx := range bestInliers {
		inlierSrc[i] = src[idx]
		inlierDst[i] = dst[idx]
	}

	field, err := Solve2D(inlierSrc, inlierDst, stiffness)
	if err != nil {
		return nil, nil, err
	}
	return field, bestInliers, nil
}
