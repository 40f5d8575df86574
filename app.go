package main

import (
	"log"

	"github.com/theanine3d/collidegen/pkg/engine"
	"github.com/theanine3d/collidegen/pkg/hull"
)

// colorPalette assigns distinct colors to hulls in viewer output.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App binds an engine session to host-facing calls. The result types are
// JSON-serializable so a frontend or external tool can consume them as is.
type App struct {
	engine *engine.Engine
}

// HullData is the JSON-serializable hull format sent to viewers.
type HullData struct {
	Vertices []float32 `json:"vertices"`
	Indices  []uint32  `json:"indices"`
	SetName  string    `json:"setName"`
	Color    string    `json:"color"`
	Volume   float64   `json:"volume"`
}

// EvalErrorData is a JSON-serializable eval error.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result of one console evaluation.
type EvalResult struct {
	Output string          `json:"output"`
	Hulls  []HullData      `json:"hulls"`
	Errors []EvalErrorData `json:"errors"`
}

// NewApp creates an App over a fresh engine session.
func NewApp() *App {
	return &App{engine: engine.NewEngine()}
}

// Session exposes the underlying workspace.
func (a *App) Session() *engine.Session {
	return a.engine.Session()
}

// Evaluate runs console source and returns the printed output, the current
// hull sets as viewer geometry, and any errors.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Hulls:  []HullData{},
		Errors: []EvalErrorData{},
	}

	out, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	result.Output = out

	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	s := a.engine.Session()
	i := 0
	for _, name := range s.HullSetNames() {
		for _, h := range s.Hulls[name] {
			result.Hulls = append(result.Hulls, hullData(name, h, colorPalette[i%len(colorPalette)]))
			i++
		}
	}
	return result
}

// hullData flattens a hull into viewer triangle data.
func hullData(setName string, h *hull.ConvexHull, color string) HullData {
	d := HullData{
		Vertices: make([]float32, 0, len(h.Verts)*3),
		Indices:  make([]uint32, 0, len(h.Faces)*3),
		SetName:  setName,
		Color:    color,
		Volume:   h.Volume(),
	}
	for _, v := range h.Verts {
		d.Vertices = append(d.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
	}
	for _, f := range h.Faces {
		d.Indices = append(d.Indices, uint32(f[0]), uint32(f[1]), uint32(f[2]))
	}
	return d
}
