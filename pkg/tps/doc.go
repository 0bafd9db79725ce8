// Package tps computes and applies thin-plate-spline deformations.
//
// Given K control points in D dimensions and their displaced counterparts,
// Solve derives the smooth map interpolating the correspondences while
// minimizing bending energy. The resulting Deformation is immutable and can
// be evaluated at arbitrary query points with Deform, any number of times and
// from any number of goroutines.
//
// Point sets are represented as n×m matrices with one point per row, the
// same convention gonum's transform estimators use. The stiffness parameter
// trades exact interpolation at the control points (stiffness 0) against
// smoother, lower-energy maps (stiffness > 0).
package tps
