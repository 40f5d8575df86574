package export

import (
	"bufio"
	"fmt"
	"os"

	"github.com/theanine3d/collidegen/pkg/geom"
)

// smdHeader is the single-bone skeleton every emitted SMD shares.
const smdHeader = `version 1
nodes
0 "root" -1
end
skeleton
time 0
0 0.000000 0.000000 0.000000 0.000000 0.000000 0.000000
end
`

// physMaterial is the material name stamped on collision triangles.
const physMaterial = "phys"

// WriteSMD writes the mesh as a studiomdl triangle list bound to a single
// root bone. Faces are fan-triangulated; texture coordinates are zeroed
// since collision geometry is never drawn.
func WriteSMD(path string, m *geom.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	w := bufio.NewWriter(f)

	fmt.Fprint(w, smdHeader)
	fmt.Fprintln(w, "triangles")
	for _, tri := range m.Triangles() {
		n := m.FaceNormal([]int{tri[0], tri[1], tri[2]})
		fmt.Fprintln(w, physMaterial)
		for _, vi := range tri {
			v := m.Verts[vi]
			fmt.Fprintf(w, "0 %f %f %f %f %f %f 0.000000 0.000000\n",
				v.X, v.Y, v.Z, n.X, n.Y, n.Z)
		}
	}
	fmt.Fprintln(w, "end")

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("export: %w", err)
	}
	return f.Close()
}

// WritePlaceholderSMD writes a triangle-free SMD usable as the idle
// sequence the compiler insists on.
func WritePlaceholderSMD(path string) error {
	if err := os.WriteFile(path, []byte(smdHeader), 0o644); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
