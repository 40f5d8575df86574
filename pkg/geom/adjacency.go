package geom

import "sort"

// edgeKey is an unordered pair of vertex indices. Edges are derived from
// faces and never persisted on the mesh itself.
type edgeKey struct {
	a, b int
}

func newEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// Adjacency returns the vertex-to-vertex adjacency lists implied by the
// mesh's face edges. Isolated vertices get an empty (nil) list.
func (m *Mesh) Adjacency() [][]int {
	adj := make([][]int, len(m.Verts))
	seen := make(map[edgeKey]struct{})
	for _, f := range m.Faces {
		for i := range f {
			a := f[i]
			b := f[(i+1)%len(f)]
			if a == b {
				continue
			}
			k := newEdgeKey(a, b)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			adj[a] = append(adj[a], b)
			adj[b] = append(adj[b], a)
		}
	}
	return adj
}

// EdgeUseCounts returns, for each derived edge, the number of faces using
// it. Manifold interior edges are used exactly twice.
func (m *Mesh) EdgeUseCounts() map[[2]int]int {
	counts := make(map[[2]int]int)
	for _, f := range m.Faces {
		for i := range f {
			k := newEdgeKey(f[i], f[(i+1)%len(f)])
			counts[[2]int{k.a, k.b}]++
		}
	}
	return counts
}

// Components partitions the mesh's vertices into maximal connected
// components under edge adjacency. Each component is a sorted list of vertex
// indices; every vertex appears in exactly one component and isolated
// vertices form single-vertex components. The walk uses an explicit
// worklist, so meshes with tens of thousands of vertices cannot exhaust the
// call stack.
func (m *Mesh) Components() [][]int {
	adj := m.Adjacency()
	visited := make([]bool, len(m.Verts))
	var comps [][]int

	for start := range m.Verts {
		if visited[start] {
			continue
		}
		visited[start] = true
		comp := []int{start}
		stack := []int{start}
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, n := range adj[v] {
				if visited[n] {
					continue
				}
				visited[n] = true
				comp = append(comp, n)
				stack = append(stack, n)
			}
		}
		sort.Ints(comp)
		comps = append(comps, comp)
	}
	return comps
}

// SubMesh extracts the faces whose vertices all belong to the given vertex
// set, reindexed into a standalone mesh. The vertex set is a list of indices
// into m.Verts, typically one component from Components.
func (m *Mesh) SubMesh(verts []int) *Mesh {
	remap := make(map[int]int, len(verts))
	sub := NewMesh(m.Name)
	for _, vi := range verts {
		remap[vi] = sub.AddVert(m.Verts[vi])
	}
	for _, f := range m.Faces {
		inside := true
		for _, vi := range f {
			if _, ok := remap[vi]; !ok {
				inside = false
				break
			}
		}
		if !inside {
			continue
		}
		nf := make([]int, len(f))
		for i, vi := range f {
			nf[i] = remap[vi]
		}
		sub.Faces = append(sub.Faces, nf)
	}
	return sub
}
