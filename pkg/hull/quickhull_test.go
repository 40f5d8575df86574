package hull

import (
	"math"
	"math/rand"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cubeCorners() []v3.Vec {
	var pts []v3.Vec
	for x := 0.0; x <= 1; x++ {
		for y := 0.0; y <= 1; y++ {
			for z := 0.0; z <= 1; z++ {
				pts = append(pts, v3.Vec{X: x, Y: y, Z: z})
			}
		}
	}
	return pts
}

func TestBuildCube(t *testing.T) {
	h := Build(cubeCorners(), 0)
	require.NotNil(t, h)

	assert.Equal(t, 8, h.VertexCount())
	assert.Equal(t, 12, h.FaceCount()) // triangulated box
	assert.Empty(t, h.Interior)
	assert.InDelta(t, 1.0, h.Volume(), 1e-9)

	c := h.Centroid()
	assert.InDelta(t, 0.5, c.X, 1e-9)
	assert.InDelta(t, 0.5, c.Y, 1e-9)
	assert.InDelta(t, 0.5, c.Z, 1e-9)
}

func TestBuildDiscardsInteriorPoints(t *testing.T) {
	pts := cubeCorners()
	pts = append(pts,
		v3.Vec{X: 0.5, Y: 0.5, Z: 0.5},
		v3.Vec{X: 0.2, Y: 0.8, Z: 0.4},
		v3.Vec{X: 0.9, Y: 0.1, Z: 0.9},
	)
	h := Build(pts, 0)
	require.NotNil(t, h)

	assert.Equal(t, 8, h.VertexCount())
	assert.ElementsMatch(t, []int{8, 9, 10}, h.Interior)
}

func TestBuildDegenerateInputs(t *testing.T) {
	tests := []struct {
		name string
		pts  []v3.Vec
	}{
		{"empty", nil},
		{"single point", []v3.Vec{{X: 1}}},
		{"three points", []v3.Vec{{}, {X: 1}, {Y: 1}}},
		{"coincident", []v3.Vec{{X: 1}, {X: 1}, {X: 1}, {X: 1}, {X: 1}}},
		{"collinear", []v3.Vec{{}, {X: 1}, {X: 2}, {X: 3}, {X: 4}}},
		{"coplanar", []v3.Vec{{}, {X: 1}, {Y: 1}, {X: 1, Y: 1}, {X: 0.5, Y: 0.5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, Build(tt.pts, 0), "degenerate input must yield no hull, not an error")
		})
	}
}

func TestBuildTetrahedron(t *testing.T) {
	pts := []v3.Vec{{}, {X: 1}, {Y: 1}, {Z: 1}}
	h := Build(pts, 0)
	require.NotNil(t, h)

	assert.Equal(t, 4, h.VertexCount())
	assert.Equal(t, 4, h.FaceCount())
	assert.InDelta(t, 1.0/6.0, h.Volume(), 1e-9)
}

func TestBuildRandomPointsEnclosed(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pts := make([]v3.Vec, 200)
	for i := range pts {
		pts[i] = v3.Vec{
			X: rng.Float64()*10 - 5,
			Y: rng.Float64()*10 - 5,
			Z: rng.Float64()*10 - 5,
		}
	}
	h := Build(pts, 0)
	require.NotNil(t, h)

	// Closed 2-manifold triangulation: E = 3F/2, V - E + F = 2.
	v, f := h.VertexCount(), h.FaceCount()
	assert.Equal(t, 2, v-3*f/2+f, "Euler characteristic")

	// Every input point lies inside or on the hull.
	for i, p := range pts {
		assert.True(t, h.Encloses(p, 1e-7), "point %d must be enclosed", i)
	}
	assert.Equal(t, len(pts), v+len(h.Interior))

	// Hull volume dominates the volume of any inscribed tetrahedron.
	for trial := 0; trial < 50; trial++ {
		a := pts[rng.Intn(len(pts))]
		b := pts[rng.Intn(len(pts))]
		c := pts[rng.Intn(len(pts))]
		d := pts[rng.Intn(len(pts))]
		tv := math.Abs(b.Sub(a).Dot(c.Sub(a).Cross(d.Sub(a)))) / 6
		assert.LessOrEqual(t, tv, h.Volume()+1e-9)
	}
}

func TestBuildNearCoplanarStability(t *testing.T) {
	// A decimated-mesh pattern: a planar grid with tiny jitter plus two
	// out-of-plane points. A naive builder oscillates on the jitter.
	rng := rand.New(rand.NewSource(7))
	var pts []v3.Vec
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			pts = append(pts, v3.Vec{
				X: float64(x),
				Y: float64(y),
				Z: rng.Float64() * 1e-12,
			})
		}
	}
	pts = append(pts, v3.Vec{X: 4.5, Y: 4.5, Z: 3}, v3.Vec{X: 4.5, Y: 4.5, Z: -3})

	h := Build(pts, 1e-9)
	require.NotNil(t, h)
	for i, p := range pts {
		assert.True(t, h.Encloses(p, 1e-6), "point %d must be enclosed", i)
	}
}

func TestFacesToward(t *testing.T) {
	h := Build(cubeCorners(), 0)
	require.NotNil(t, h)

	inside := v3.Vec{X: 0.5, Y: 0.5, Z: 0.5}
	assert.Equal(t, 0, h.FacesToward(inside), "no facet faces an interior point")

	outside := v3.Vec{X: 5, Y: 0.5, Z: 0.5}
	assert.Greater(t, h.FacesToward(outside), 0, "some facet faces an exterior point")
}

func TestEncloses(t *testing.T) {
	h := Build(cubeCorners(), 0)
	require.NotNil(t, h)

	assert.True(t, h.Encloses(v3.Vec{X: 0.5, Y: 0.5, Z: 0.5}, 1e-9))
	assert.True(t, h.Encloses(v3.Vec{X: 1, Y: 1, Z: 1}, 1e-9), "surface point counts as inside")
	assert.False(t, h.Encloses(v3.Vec{X: 1.1, Y: 0.5, Z: 0.5}, 1e-9))
}

func TestMeshRoundTrip(t *testing.T) {
	h := Build(cubeCorners(), 0)
	require.NotNil(t, h)

	m := h.Mesh("cube_phys")
	assert.Equal(t, "cube_phys", m.Name)
	assert.Equal(t, h.VertexCount(), m.VertexCount())
	assert.InDelta(t, h.Volume(), m.Volume(), 1e-9)
}
