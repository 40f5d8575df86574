// Package kernel defines the boundaries to the host geometry collaborators.
// The collision engine never edits polygons itself: mesh simplification is
// delegated through the Simplifier interface, and solid primitives used to
// synthesize fixture meshes come from a Kernel implementation (sdfx by
// default). Both are swappable without touching the pipeline.
package kernel

import (
	"github.com/theanine3d/collidegen/pkg/geom"
)

// Solid is an opaque handle to a kernel solid.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel builds and meshes solid primitives. It exists for fixture and
// example content; production meshes arrive from the host application
// already simplified.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64, segments int) Solid

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// Mesh output
	ToMesh(s Solid) (*geom.Mesh, error)
}
