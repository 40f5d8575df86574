// Package hull computes 3D convex hulls of point sets and provides the
// ConvexHull type used throughout the collision pipeline. Degenerate point
// sets (fewer than four affinely independent points) produce no hull rather
// than an error.
package hull
