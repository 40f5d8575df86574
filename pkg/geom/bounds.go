package geom

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max v3.Vec
}

// BoundsOf computes the bounding box of a point set. An empty set yields a
// zero box at the origin.
func BoundsOf(pts []v3.Vec) AABB {
	if len(pts) == 0 {
		return AABB{}
	}
	bb := AABB{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		bb.Min = bb.Min.Min(p)
		bb.Max = bb.Max.Max(p)
	}
	return bb
}

// Bounds returns the mesh's bounding box.
func (m *Mesh) Bounds() AABB {
	return BoundsOf(m.Verts)
}

// Size returns the box extents per axis.
func (bb AABB) Size() v3.Vec {
	return bb.Max.Sub(bb.Min)
}

// LongestDim returns the largest extent across the three axes.
func (bb AABB) LongestDim() float64 {
	return bb.Size().MaxComponent()
}

// Center returns the box center.
func (bb AABB) Center() v3.Vec {
	return bb.Min.Add(bb.Max).MulScalar(0.5)
}

// Contains reports whether other lies strictly inside bb on every axis.
func (bb AABB) Contains(other AABB) bool {
	return other.Min.X > bb.Min.X && other.Min.Y > bb.Min.Y && other.Min.Z > bb.Min.Z &&
		other.Max.X < bb.Max.X && other.Max.Y < bb.Max.Y && other.Max.Z < bb.Max.Z
}

// ContainsPoint reports whether p lies inside or on bb.
func (bb AABB) ContainsPoint(p v3.Vec) bool {
	return p.X >= bb.Min.X && p.Y >= bb.Min.Y && p.Z >= bb.Min.Z &&
		p.X <= bb.Max.X && p.Y <= bb.Max.Y && p.Z <= bb.Max.Z
}

// Intersects reports whether the two boxes overlap.
func (bb AABB) Intersects(other AABB) bool {
	return bb.Min.X <= other.Max.X && bb.Max.X >= other.Min.X &&
		bb.Min.Y <= other.Max.Y && bb.Max.Y >= other.Min.Y &&
		bb.Min.Z <= other.Max.Z && bb.Max.Z >= other.Min.Z
}
