package export

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/theanine3d/collidegen/pkg/collide"
	"github.com/theanine3d/collidegen/pkg/geom"
)

// SaveSTL writes the mesh as a binary STL file.
func SaveSTL(path string, m *geom.Mesh) error {
	tris := make([]*sdf.Triangle3, 0, len(m.Faces))
	for _, t := range m.Triangles() {
		tris = append(tris, &sdf.Triangle3{
			m.Verts[t[0]], m.Verts[t[1]], m.Verts[t[2]],
		})
	}
	if err := render.SaveSTL(path, tris); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// WriteGroupSTL dumps one STL per part group into dir and returns the paths.
func WriteGroupSTL(dir string, groups []collide.Group) ([]string, error) {
	if err := CheckDir(dir); err != nil {
		return nil, err
	}
	var paths []string
	for _, g := range groups {
		path := filepath.Join(dir, g.Name+".stl")
		if err := SaveSTL(path, g.Mesh()); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

type stlTriangle struct {
	Normal [3]float32
	Vertex [3][3]float32
	Attr   uint16
}

// LoadSTL reads a binary STL file into an indexed mesh. The triangle soup is
// welded at tol (0 for the default) so shared corners become shared
// vertices; connectivity matters downstream, hull extraction walks it.
func LoadSTL(path string, tol float64) (*geom.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	defer f.Close()

	m, err := readSTL(bufio.NewReader(f), tol)
	if err != nil {
		return nil, fmt.Errorf("export: %s: %w", path, err)
	}
	m.Name = stem(path)
	return m, nil
}

func readSTL(r io.Reader, tol float64) (*geom.Mesh, error) {
	var header [80]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("stl header: %w", err)
	}
	if bytes.HasPrefix(bytes.TrimLeft(header[:], " \t"), []byte("solid ")) {
		return nil, fmt.Errorf("stl: ascii format not supported")
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("stl count: %w", err)
	}

	m := geom.NewMesh("")
	index := make(map[geom.WeldKey]int)
	var tri stlTriangle
	for i := uint32(0); i < count; i++ {
		if err := binary.Read(r, binary.LittleEndian, &tri); err != nil {
			return nil, fmt.Errorf("stl triangle %d: %w", i, err)
		}
		var face [3]int
		for j := 0; j < 3; j++ {
			v := v3.Vec{
				X: float64(tri.Vertex[j][0]),
				Y: float64(tri.Vertex[j][1]),
				Z: float64(tri.Vertex[j][2]),
			}
			key := geom.Weld(v, tol)
			vi, ok := index[key]
			if !ok {
				vi = m.AddVert(v)
				index[key] = vi
			}
			face[j] = vi
		}
		if face[0] == face[1] || face[1] == face[2] || face[2] == face[0] {
			continue
		}
		m.AddFace(face[0], face[1], face[2])
	}
	return m, nil
}

func stem(path string) string {
	name := filepath.Base(path)
	return name[:len(name)-len(filepath.Ext(name))]
}
