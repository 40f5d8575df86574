package engine

import (
	"fmt"
	"sort"

	"github.com/theanine3d/collidegen/pkg/collide"
	"github.com/theanine3d/collidegen/pkg/geom"
	"github.com/theanine3d/collidegen/pkg/hull"
	"github.com/theanine3d/collidegen/pkg/kernel"
	"github.com/theanine3d/collidegen/pkg/kernel/sdfx"
)

// Session is the mutable workspace a console operates on: named meshes,
// the hull sets generated from them, and the part groups split from hull
// sets. One session maps to one editing scene.
type Session struct {
	Meshes map[string]*geom.Mesh
	Hulls  map[string][]*hull.ConvexHull
	Groups map[string][]collide.Group

	Kernel kernel.Kernel
	Opts   collide.Options
}

// NewSession returns an empty session with default options and the sdfx
// fixture kernel.
func NewSession() *Session {
	return &Session{
		Meshes: make(map[string]*geom.Mesh),
		Hulls:  make(map[string][]*hull.ConvexHull),
		Groups: make(map[string][]collide.Group),
		Kernel: sdfx.New(),
		Opts:   collide.DefaultOptions(),
	}
}

// PutMesh registers a mesh under its name, replacing any previous one.
func (s *Session) PutMesh(m *geom.Mesh) {
	s.Meshes[m.Name] = m
}

// Mesh looks up a mesh by name.
func (s *Session) Mesh(name string) (*geom.Mesh, error) {
	m, ok := s.Meshes[name]
	if !ok {
		return nil, fmt.Errorf("no mesh named %q (have %v)", name, s.MeshNames())
	}
	return m, nil
}

// HullSet looks up a hull set by name.
func (s *Session) HullSet(name string) ([]*hull.ConvexHull, error) {
	h, ok := s.Hulls[name]
	if !ok {
		return nil, fmt.Errorf("no hull set named %q (have %v)", name, s.HullSetNames())
	}
	return h, nil
}

// GroupSet looks up the part groups split from a hull set.
func (s *Session) GroupSet(name string) ([]collide.Group, error) {
	g, ok := s.Groups[name]
	if !ok {
		return nil, fmt.Errorf("hull set %q has not been split", name)
	}
	return g, nil
}

// MeshNames lists registered mesh names, sorted.
func (s *Session) MeshNames() []string {
	return sortedKeys(s.Meshes)
}

// HullSetNames lists registered hull set names, sorted.
func (s *Session) HullSetNames() []string {
	return sortedKeys(s.Hulls)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
