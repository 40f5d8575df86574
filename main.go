// Command collidegen generates convex collision hulls for Source engine
// props. It either runs a console script against the operator engine or
// performs a one-shot pipeline run over an STL file, writing part STLs, QC
// descriptors, and optional VMF patches.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/theanine3d/collidegen/pkg/collide"
	"github.com/theanine3d/collidegen/pkg/export"
	"github.com/theanine3d/collidegen/pkg/kernel"
	"github.com/theanine3d/collidegen/pkg/vmf"
)

func main() {
	var (
		script    = flag.String("script", "", "console script to evaluate (skips one-shot flags)")
		jsonOut   = flag.Bool("json", false, "with -script, print the result as JSON")
		in        = flag.String("in", "", "input STL mesh")
		out       = flag.String("out", ".", "output directory for generated artifacts")
		merge     = flag.Bool("merge", false, "run the similarity merge pass")
		cull      = flag.Bool("cull", false, "remove hulls fully enclosed by others")
		writeQC   = flag.Bool("qc", false, "emit QC and SMD files per part group")
		static    = flag.Bool("static", false, "mark QC models $staticprop")
		vmfPath   = flag.String("vmf", "", "VMF file to patch with the generated part count")
		threshold = flag.Float64("threshold", collide.DefaultOptions().SimilarThreshold, "similarity threshold for merging")
		scale     = flag.Int("scale", collide.DefaultOptions().ScaleModifier, "scale modifier exponent (mesh is sized by 10^n during processing)")
		thin      = flag.Float64("thin", 0, "remove faces thinner than this ratio of the average before decomposition")
	)
	flag.Parse()
	log.SetFlags(0)

	if *script != "" {
		if err := runScript(*script, *jsonOut); err != nil {
			log.Fatal(err)
		}
		return
	}
	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}
	if err := runOneShot(*in, *out, oneShotConfig{
		merge:     *merge,
		cull:      *cull,
		writeQC:   *writeQC,
		static:    *static,
		vmfPath:   *vmfPath,
		threshold: *threshold,
		scale:     *scale,
		thin:      *thin,
	}); err != nil {
		log.Fatal(err)
	}
}

func runScript(path string, jsonOut bool) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	app := NewApp()
	result := app.Evaluate(string(source))

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	for _, e := range result.Errors {
		if e.Line > 0 {
			log.Printf("error: line %d: %s", e.Line, e.Message)
		} else {
			log.Printf("error: %s", e.Message)
		}
	}
	if result.Output != "" {
		fmt.Println(result.Output)
	}
	if len(result.Errors) > 0 {
		return fmt.Errorf("%d errors", len(result.Errors))
	}
	return nil
}

type oneShotConfig struct {
	merge, cull, writeQC, static bool
	vmfPath                      string
	threshold, thin              float64
	scale                        int
}

func runOneShot(in, out string, cfg oneShotConfig) error {
	if err := export.CheckDir(out); err != nil {
		return err
	}

	m, err := export.LoadSTL(in, 0)
	if err != nil {
		return err
	}
	log.Printf("loaded %s: %d verts, %d faces", m.Name, m.VertexCount(), m.FaceCount())

	opts := collide.DefaultOptions()
	opts.SimilarThreshold = cfg.threshold
	opts.ScaleModifier = cfg.scale

	if cfg.thin > 0 {
		faces, verts := collide.RemoveThinFaces(m, cfg.thin, opts.ThinLinked)
		log.Printf("thin-face pass removed %d faces, %d verts", faces, verts)
	}

	p := &collide.Pipeline{
		Simplifier: kernel.WeldSimplifier{},
		Opts:       opts,
		MergePass:  cfg.merge,
		CullPass:   cfg.cull,
	}
	_, hulls, sum, err := p.Run(m)
	if err != nil {
		return err
	}
	log.Printf("%s", sum)

	groups := collide.Partition(hulls, m.Name, opts.MaxPerGroup)
	paths, err := export.WriteGroupSTL(out, groups)
	if err != nil {
		return err
	}
	for _, p := range paths {
		log.Printf("wrote %s", p)
	}

	if cfg.writeQC {
		qcPaths, err := export.WriteQC(out, groups, export.QCOptions{StaticProp: cfg.static})
		if err != nil {
			return err
		}
		log.Printf("wrote %d QC files", len(qcPaths))
	}

	if cfg.vmfPath != "" {
		data, err := os.ReadFile(cfg.vmfPath)
		if err != nil {
			return err
		}
		patched, err := vmf.Patch(data, m.Name, len(groups))
		if err != nil {
			return err
		}
		if err := os.WriteFile(cfg.vmfPath, patched, 0o644); err != nil {
			return err
		}
		log.Printf("patched %s for %d parts", cfg.vmfPath, len(groups))
	}
	return nil
}
