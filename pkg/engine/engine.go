// Package engine provides the Lisp operator console for collision
// generation. It wraps zygomys in a sandboxed environment whose builtins
// drive the decomposition pipeline against a persistent session.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine wraps the zygomys interpreter. Each call to Evaluate creates a
// fresh sandboxed environment over the engine's session, so definitions do
// not leak between evaluations but meshes and hull sets do persist.
// Evaluations are serialized; the session is never touched concurrently.
type Engine struct {
	mu         sync.Mutex // guards generation
	evalMu     sync.Mutex // serializes session access across evaluations
	generation uint64
	session    *Session
}

// NewEngine creates an engine over a fresh session.
func NewEngine() *Engine {
	return &Engine{session: NewSession()}
}

// Session exposes the engine's workspace for host bindings.
func (e *Engine) Session() *Session {
	return e.session
}

// Evaluate runs one script against the session.
//
// Return semantics:
//   - On success: printed value of the last expression + nil errors + nil error
//   - On parse/eval failure: "" + eval errors + nil error
//   - On fatal failure (timeout, panic): "" + nil + error
func (e *Engine) Evaluate(source string) (string, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		// The worker holds evalMu for the whole run so session access is
		// serialized even when a timed-out evaluation is still finishing.
		e.evalMu.Lock()
		defer e.evalMu.Unlock()

		out, evalErrs, err := e.evaluate(source)
		ch <- evalResult{out: out, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (string, []EvalError, error) {
	if strings.TrimSpace(source) == "" {
		return "", nil, nil
	}

	// Sandbox mode keeps user scripts away from the filesystem except
	// through the registered builtins.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	registerBuiltins(env, e.session)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return "", parseZygomysError(err), nil
	}

	result, err := env.Run()
	if err != nil {
		return "", parseZygomysError(err), nil
	}
	if result == nil || result == zygo.SexpNull {
		return "", nil, nil
	}
	return result.SexpString(nil), nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError
// values, extracting line numbers where the message carries them.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	if m := linePatternShort.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
