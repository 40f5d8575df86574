// Package export writes the compile artifacts for a generated hull set: one
// QC descriptor plus reference, collision, and idle SMD files per part
// group, and STL dumps of the group meshes.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/theanine3d/collidegen/pkg/collide"
)

// ErrBadPath reports an output directory that does not exist or is not a
// directory. Checked before any file is written so a run never leaves a
// partial artifact set behind a typo.
var ErrBadPath = errors.New("export: bad output directory")

// QCOptions parameterizes the emitted descriptors. Zero values fall back to
// the Source compiler's conventional defaults.
type QCOptions struct {
	ModelDir    string // mdl install subdirectory, e.g. "props"
	SurfaceProp string // $surfaceprop, default "default"
	Materials   string // $cdmaterials, default "models/"
	StaticProp  bool   // emit $staticprop
}

func (o QCOptions) withDefaults() QCOptions {
	if o.SurfaceProp == "" {
		o.SurfaceProp = "default"
	}
	if o.Materials == "" {
		o.Materials = "models/"
	}
	return o
}

var qcTemplate = template.Must(template.New("qc").Parse(
	`$modelname "{{.ModelPath}}.mdl"
$body {{.Name}} "{{.Name}}.smd"
$surfaceprop "{{.SurfaceProp}}"
{{if .StaticProp}}$staticprop
{{end}}$cdmaterials "{{.Materials}}"
$sequence idle "{{.Name}}_idle.smd" fps 1
$collisionmodel "{{.Name}}.smd"
{
	$concave
}
`))

type qcData struct {
	Name        string
	ModelPath   string
	SurfaceProp string
	Materials   string
	StaticProp  bool
}

// QCText renders the descriptor for one part model.
func QCText(name string, opts QCOptions) (string, error) {
	opts = opts.withDefaults()
	d := qcData{
		Name:        name,
		ModelPath:   name,
		SurfaceProp: opts.SurfaceProp,
		Materials:   opts.Materials,
		StaticProp:  opts.StaticProp,
	}
	if opts.ModelDir != "" {
		d.ModelPath = strings.TrimRight(opts.ModelDir, "/") + "/" + name
	}
	var sb strings.Builder
	if err := qcTemplate.Execute(&sb, d); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// WriteQC emits one QC file and its SMD companions per group: the group
// mesh as both reference and collision body, and a placeholder idle
// animation. Returns the QC paths written.
func WriteQC(dir string, groups []collide.Group, opts QCOptions) ([]string, error) {
	if err := CheckDir(dir); err != nil {
		return nil, err
	}
	var paths []string
	for _, g := range groups {
		qc, err := QCText(g.Name, opts)
		if err != nil {
			return paths, err
		}
		path := filepath.Join(dir, g.Name+".qc")
		if err := os.WriteFile(path, []byte(qc), 0o644); err != nil {
			return paths, fmt.Errorf("export: %w", err)
		}
		if err := WriteSMD(filepath.Join(dir, g.Name+".smd"), g.Mesh()); err != nil {
			return paths, err
		}
		if err := WritePlaceholderSMD(filepath.Join(dir, g.Name+"_idle.smd")); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// CheckDir validates an output directory before anything is written.
func CheckDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("%w: empty path", ErrBadPath)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrBadPath, dir)
	}
	return nil
}
