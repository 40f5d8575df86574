package engine

import (
	"fmt"
	"os"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/theanine3d/collidegen/pkg/collide"
	"github.com/theanine3d/collidegen/pkg/export"
	"github.com/theanine3d/collidegen/pkg/geom"
	"github.com/theanine3d/collidegen/pkg/kernel"
	"github.com/theanine3d/collidegen/pkg/vmf"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms console source before it reaches zygomys:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal), so
//     keywords need no global symbol registration.
//
//  2. Kebab-case to underscore: merge-similars -> merge_similars. zygomys
//     reads a bare hyphen as subtraction.
//
//  3. ; line comments become // comments.
//
// All three transformations respect string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// ; line comments.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// :keyword -> "__kw_keyword", leaving := alone.
		if b[i] == ':' && i+1 < len(b) {
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Kebab-case: hyphen between identifier characters is part of the
		// name, not a minus.
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isLetter(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a 3D vector literal.
type sexpVec3 struct {
	vec v3.Vec
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpMesh references a session mesh.
type sexpMesh struct {
	mesh *geom.Mesh
}

func (m *sexpMesh) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(mesh %q verts %d faces %d)",
		m.mesh.Name, m.mesh.VertexCount(), m.mesh.FaceCount())
}
func (m *sexpMesh) Type() *zygo.RegisteredType { return nil }

// sexpHulls references a session hull set.
type sexpHulls struct {
	name  string
	count int
}

func (h *sexpHulls) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(hulls %q count %d)", h.name, h.count)
}
func (h *sexpHulls) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string. Returns the
// keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an int from a SexpInt.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toBool extracts a bool from a SexpBool.
func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected bool, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a vector from a sexpVec3.
func toVec3(s zygo.Sexp) (v3.Vec, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return v3.Vec{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// kwFloat overwrites *dst when the keyword was given.
func kwFloat(pa kwArgs, name string, dst *float64) error {
	v, ok := pa.kw[name]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = f
	return nil
}

// kwBool overwrites *dst when the keyword was given.
func kwBool(pa kwArgs, name string, dst *bool) error {
	v, ok := pa.kw[name]
	if !ok {
		return nil
	}
	b, err := toBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = b
	return nil
}

// needString fetches positional argument i as a string.
func needString(pa kwArgs, i int, what string) (string, error) {
	if i >= len(pa.positional) {
		return "", fmt.Errorf("missing %s argument", what)
	}
	s, err := toString(pa.positional[i])
	if err != nil {
		return "", fmt.Errorf("%s: %w", what, err)
	}
	return s, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the collision console operators into a zygomys
// environment. The builtins read and mutate the provided session.
//
// Source code must be preprocessed with preprocessSource() before evaluation
// so that :keyword tokens arrive as recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, s *Session) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3: want 3 numbers, got %d args", len(args))
		}
		var vec v3.Vec
		for i, dst := range []*float64{&vec.X, &vec.Y, &vec.Z} {
			f, err := toFloat64(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %w", err)
			}
			*dst = f
		}
		return &sexpVec3{vec: vec}, nil
	})

	// -----------------------------------------------------------------------
	// (box "crate" :at (vec3 0 0 0) :size (vec3 1 1 1))
	// -----------------------------------------------------------------------
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		meshName, err := needString(pa, 0, "name")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("box: %w", err)
		}
		min := v3.Vec{}
		size := v3.Vec{X: 1, Y: 1, Z: 1}
		if v, ok := pa.kw["at"]; ok {
			if min, err = toVec3(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("box: at: %w", err)
			}
		}
		if v, ok := pa.kw["size"]; ok {
			if size, err = toVec3(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("box: size: %w", err)
			}
		}
		m := geom.Box(min, size)
		m.Name = meshName
		s.PutMesh(m)
		return &sexpMesh{mesh: m}, nil
	})

	// -----------------------------------------------------------------------
	// (cylinder "drum" :radius 0.5 :height 2)
	//
	// Meshed through the solid kernel, so the fixture exercises the same
	// marching-cubes path host meshes come from.
	// -----------------------------------------------------------------------
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		meshName, err := needString(pa, 0, "name")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		radius, height := 0.5, 1.0
		if err := kwFloat(pa, "radius", &radius); err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		if err := kwFloat(pa, "height", &height); err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		m, err := s.Kernel.ToMesh(s.Kernel.Cylinder(height, radius, 0))
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		m.Name = meshName
		s.PutMesh(m)
		return &sexpMesh{mesh: m}, nil
	})

	// -----------------------------------------------------------------------
	// (load-stl "models/crate.stl" :tol 0.01)
	// -----------------------------------------------------------------------
	env.AddFunction("load_stl", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		path, err := needString(pa, 0, "path")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("load-stl: %w", err)
		}
		tol := 0.0
		if err := kwFloat(pa, "tol", &tol); err != nil {
			return zygo.SexpNull, fmt.Errorf("load-stl: %w", err)
		}
		m, err := export.LoadSTL(path, tol)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("load-stl: %w", err)
		}
		s.PutMesh(m)
		return &sexpMesh{mesh: m}, nil
	})

	// -----------------------------------------------------------------------
	// (save-stl "crate_phys" "out/crate_phys.stl")
	// -----------------------------------------------------------------------
	env.AddFunction("save_stl", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		meshName, err := needString(pa, 0, "mesh name")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("save-stl: %w", err)
		}
		path, err := needString(pa, 1, "path")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("save-stl: %w", err)
		}
		m, err := s.Mesh(meshName)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("save-stl: %w", err)
		}
		if err := export.SaveSTL(path, m); err != nil {
			return zygo.SexpNull, fmt.Errorf("save-stl: %w", err)
		}
		return &zygo.SexpStr{S: path}, nil
	})

	// -----------------------------------------------------------------------
	// (options :threshold 0.9 :weld 0.01 :thin-ratio 0.1 :scale 1)
	// -----------------------------------------------------------------------
	env.AddFunction("options", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		opts := s.Opts
		for kw, dst := range map[string]*float64{
			"threshold":  &opts.SimilarThreshold,
			"weld":       &opts.WeldTolerance,
			"epsilon":    &opts.Epsilon,
			"thin-ratio": &opts.ThinRatio,
			"decimate":   &opts.DecimateRatio,
			"extrude":    &opts.ExtrudeModifier,
		} {
			if err := kwFloat(pa, kw, dst); err != nil {
				return zygo.SexpNull, fmt.Errorf("options: %w", err)
			}
		}
		if err := kwBool(pa, "thin-linked", &opts.ThinLinked); err != nil {
			return zygo.SexpNull, fmt.Errorf("options: %w", err)
		}
		if v, ok := pa.kw["max-per-group"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("options: max-per-group: %w", err)
			}
			opts.MaxPerGroup = n
		}
		if v, ok := pa.kw["scale"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("options: scale: %w", err)
			}
			opts.ScaleModifier = n
		}
		if err := opts.Validate(); err != nil {
			return zygo.SexpNull, fmt.Errorf("options: %w", err)
		}
		s.Opts = opts
		return &zygo.SexpStr{S: fmt.Sprintf("threshold %g weld %g", opts.SimilarThreshold, opts.WeldTolerance)}, nil
	})

	// -----------------------------------------------------------------------
	// (generate "crate" :merge true :cull true)
	// -----------------------------------------------------------------------
	env.AddFunction("generate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		meshName, err := needString(pa, 0, "mesh name")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("generate: %w", err)
		}
		m, err := s.Mesh(meshName)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("generate: %w", err)
		}
		p := &collide.Pipeline{Simplifier: kernel.WeldSimplifier{}, Opts: s.Opts}
		if err := kwBool(pa, "merge", &p.MergePass); err != nil {
			return zygo.SexpNull, fmt.Errorf("generate: %w", err)
		}
		if err := kwBool(pa, "cull", &p.CullPass); err != nil {
			return zygo.SexpNull, fmt.Errorf("generate: %w", err)
		}
		out, hulls, sum, err := p.Run(m)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("generate: %w", err)
		}
		s.PutMesh(out)
		s.Hulls[out.Name] = hulls
		delete(s.Groups, out.Name)
		return &zygo.SexpStr{S: fmt.Sprintf("%s: %s", out.Name, sum)}, nil
	})

	// -----------------------------------------------------------------------
	// (merge-similars "crate_phys" :threshold 0.9)
	// -----------------------------------------------------------------------
	env.AddFunction("merge_similars", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		setName, err := needString(pa, 0, "hull set name")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("merge-similars: %w", err)
		}
		hulls, err := s.HullSet(setName)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("merge-similars: %w", err)
		}
		opts := s.Opts
		if err := kwFloat(pa, "threshold", &opts.SimilarThreshold); err != nil {
			return zygo.SexpNull, fmt.Errorf("merge-similars: %w", err)
		}
		if err := opts.Validate(); err != nil {
			return zygo.SexpNull, fmt.Errorf("merge-similars: %w", err)
		}
		merged, res := collide.MergeSimilar(hulls, opts)
		s.Hulls[setName] = merged
		delete(s.Groups, setName)
		return &sexpHulls{name: setName, count: res.Input - res.Merged}, nil
	})

	// -----------------------------------------------------------------------
	// (cull-contained "crate_phys")
	// -----------------------------------------------------------------------
	env.AddFunction("cull_contained", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		setName, err := needString(pa, 0, "hull set name")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cull-contained: %w", err)
		}
		hulls, err := s.HullSet(setName)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cull-contained: %w", err)
		}
		kept, _ := collide.CullContained(hulls)
		s.Hulls[setName] = kept
		delete(s.Groups, setName)
		return &sexpHulls{name: setName, count: len(kept)}, nil
	})

	// -----------------------------------------------------------------------
	// (remove-thin "crate" :ratio 0.1 :linked true)
	// -----------------------------------------------------------------------
	env.AddFunction("remove_thin", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		meshName, err := needString(pa, 0, "mesh name")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("remove-thin: %w", err)
		}
		m, err := s.Mesh(meshName)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("remove-thin: %w", err)
		}
		ratio := s.Opts.ThinRatio
		linked := s.Opts.ThinLinked
		if err := kwFloat(pa, "ratio", &ratio); err != nil {
			return zygo.SexpNull, fmt.Errorf("remove-thin: %w", err)
		}
		if err := kwBool(pa, "linked", &linked); err != nil {
			return zygo.SexpNull, fmt.Errorf("remove-thin: %w", err)
		}
		faces, verts := collide.RemoveThinFaces(m, ratio, linked)
		return &zygo.SexpStr{S: fmt.Sprintf("removed %d faces, %d verts", faces, verts)}, nil
	})

	// -----------------------------------------------------------------------
	// (split "crate_phys")
	// -----------------------------------------------------------------------
	env.AddFunction("split", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		setName, err := needString(pa, 0, "hull set name")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("split: %w", err)
		}
		hulls, err := s.HullSet(setName)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("split: %w", err)
		}
		base := strings.TrimSuffix(setName, collide.CollisionSuffix)
		groups := collide.Partition(hulls, base, s.Opts.MaxPerGroup)
		s.Groups[setName] = groups
		names := make([]string, len(groups))
		for i, g := range groups {
			names[i] = g.Name
		}
		return &zygo.SexpStr{S: strings.Join(names, " ")}, nil
	})

	// -----------------------------------------------------------------------
	// (write-qc "crate_phys" "outdir" :surfaceprop "metal" :static true)
	// -----------------------------------------------------------------------
	env.AddFunction("write_qc", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		setName, err := needString(pa, 0, "hull set name")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("write-qc: %w", err)
		}
		dir, err := needString(pa, 1, "output directory")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("write-qc: %w", err)
		}
		groups, err := s.splitIfNeeded(setName)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("write-qc: %w", err)
		}
		var opts export.QCOptions
		for kw, dst := range map[string]*string{
			"surfaceprop": &opts.SurfaceProp,
			"materials":   &opts.Materials,
			"modeldir":    &opts.ModelDir,
		} {
			if v, ok := pa.kw[kw]; ok {
				if *dst, err = toString(v); err != nil {
					return zygo.SexpNull, fmt.Errorf("write-qc: %s: %w", kw, err)
				}
			}
		}
		if err := kwBool(pa, "static", &opts.StaticProp); err != nil {
			return zygo.SexpNull, fmt.Errorf("write-qc: %w", err)
		}
		paths, err := export.WriteQC(dir, groups, opts)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("write-qc: %w", err)
		}
		return &zygo.SexpStr{S: fmt.Sprintf("wrote %d QC files to %s", len(paths), dir)}, nil
	})

	// -----------------------------------------------------------------------
	// (patch-vmf "map.vmf" "crate" :parts 3)
	// -----------------------------------------------------------------------
	env.AddFunction("patch_vmf", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		path, err := needString(pa, 0, "vmf path")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("patch-vmf: %w", err)
		}
		base, err := needString(pa, 1, "base name")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("patch-vmf: %w", err)
		}
		parts := 0
		if v, ok := pa.kw["parts"]; ok {
			if parts, err = toInt(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("patch-vmf: parts: %w", err)
			}
		} else if groups, ok := s.Groups[base+collide.CollisionSuffix]; ok {
			parts = len(groups)
		} else {
			return zygo.SexpNull, fmt.Errorf("patch-vmf: no :parts given and %q has not been split", base)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("patch-vmf: %w", err)
		}
		patched, err := vmf.Patch(data, base, parts)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("patch-vmf: %w", err)
		}
		if err := os.WriteFile(path, patched, 0o644); err != nil {
			return zygo.SexpNull, fmt.Errorf("patch-vmf: %w", err)
		}
		return &zygo.SexpStr{S: fmt.Sprintf("patched %s for %d parts", path, parts)}, nil
	})

	// -----------------------------------------------------------------------
	// (strip-vmf "map.vmf" "crate")
	// -----------------------------------------------------------------------
	env.AddFunction("strip_vmf", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		path, err := needString(pa, 0, "vmf path")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("strip-vmf: %w", err)
		}
		base, err := needString(pa, 1, "base name")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("strip-vmf: %w", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("strip-vmf: %w", err)
		}
		stripped, removed, err := vmf.Strip(data, base)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("strip-vmf: %w", err)
		}
		if err := os.WriteFile(path, stripped, 0o644); err != nil {
			return zygo.SexpNull, fmt.Errorf("strip-vmf: %w", err)
		}
		return &zygo.SexpStr{S: fmt.Sprintf("removed %d entries from %s", removed, path)}, nil
	})

	// -----------------------------------------------------------------------
	// (stats "crate")  or  (stats "crate_phys")
	// -----------------------------------------------------------------------
	env.AddFunction("stats", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		target, err := needString(pa, 0, "name")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("stats: %w", err)
		}
		if hulls, ok := s.Hulls[target]; ok {
			var vol float64
			for _, h := range hulls {
				vol += h.Volume()
			}
			return &zygo.SexpStr{S: fmt.Sprintf("%s: %d hulls, total volume %g", target, len(hulls), vol)}, nil
		}
		m, err := s.Mesh(target)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("stats: %w", err)
		}
		bb := m.Bounds()
		return &zygo.SexpStr{S: fmt.Sprintf("%s: %d verts, %d faces, %d components, extent %g",
			m.Name, m.VertexCount(), m.FaceCount(), len(m.Components()), bb.LongestDim())}, nil
	})
}

// splitIfNeeded returns the groups for a hull set, partitioning with the
// session cap when the set has not been split yet.
func (s *Session) splitIfNeeded(setName string) ([]collide.Group, error) {
	if groups, ok := s.Groups[setName]; ok {
		return groups, nil
	}
	hulls, err := s.HullSet(setName)
	if err != nil {
		return nil, err
	}
	base := strings.TrimSuffix(setName, collide.CollisionSuffix)
	groups := collide.Partition(hulls, base, s.Opts.MaxPerGroup)
	s.Groups[setName] = groups
	return groups, nil
}
