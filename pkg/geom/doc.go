// Package geom defines the working mesh representation for collision
// generation: an indexed vertex/face mesh with derived edge adjacency,
// welding, bounding volumes, and signed-volume measures.
package geom
