// Package vmf patches Valve Map Format files in place: it clones the
// prop_static entry pointing at the first collision part so every generated
// part gets a map entry, and strips those entries back out. The file is
// treated as raw bytes; everything outside the touched blocks survives
// byte for byte, including the author's indentation and comments.
package vmf

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrMalformed reports unbalanced braces in the input.
	ErrMalformed = errors.New("vmf: unbalanced block braces")

	// ErrNoPlaceholder reports that no entity references the base
	// model's first part.
	ErrNoPlaceholder = errors.New("vmf: no entity references part 000")
)

// Block is one top-level keyword block: the class keyword through its
// closing brace. Offsets index into the parsed buffer.
type Block struct {
	Class string
	Start int // offset of the class keyword
	End   int // offset one past the closing brace

	src []byte
}

// Bytes returns the block's raw text.
func (b *Block) Bytes() []byte { return b.src }

// Property returns the value of a "key" "value" line anywhere inside the
// block. Nested sub-block properties are visible too; first hit wins.
func (b *Block) Property(name string) (string, bool) {
	for _, l := range bytes.Split(b.src, []byte("\n")) {
		k, v, ok := splitKeyValue(l)
		if ok && k == name {
			return v, true
		}
	}
	return "", false
}

func splitKeyValue(line []byte) (key, value string, ok bool) {
	q := bytes.IndexByte(line, '"')
	if q == -1 {
		return "", "", false
	}
	r := line[q+1:]
	q = bytes.IndexByte(r, '"')
	if q == -1 {
		return "", "", false
	}
	key = string(r[:q])
	r = r[q+1:]
	q = bytes.IndexByte(r, '"')
	if q == -1 {
		return "", "", false
	}
	r = r[q+1:]
	q = bytes.IndexByte(r, '"')
	if q == -1 {
		return "", "", false
	}
	return key, string(r[:q]), true
}

// Parse splits data into its top-level blocks. Braces inside quoted values
// do not count toward nesting.
func Parse(data []byte) ([]*Block, error) {
	var blocks []*Block
	depth, quoted := 0, false
	start := -1
	for i, c := range data {
		switch c {
		case '"':
			quoted = !quoted
		case '{':
			if quoted {
				break
			}
			if depth == 0 {
				start = keywordStart(data, i)
			}
			depth++
		case '}':
			if quoted {
				break
			}
			depth--
			if depth < 0 {
				return nil, ErrMalformed
			}
			if depth == 0 {
				b := &Block{Start: start, End: i + 1, src: data[start : i+1]}
				b.Class = className(data[start:i])
				blocks = append(blocks, b)
				start = -1
			}
		}
	}
	if depth != 0 || quoted {
		return nil, ErrMalformed
	}
	return blocks, nil
}

// keywordStart walks back from an opening brace to the start of the class
// keyword preceding it.
func keywordStart(data []byte, brace int) int {
	i := brace - 1
	for i >= 0 && isSpace(data[i]) {
		i--
	}
	end := i
	for i >= 0 && !isSpace(data[i]) {
		i--
	}
	if end < 0 {
		return brace
	}
	return i + 1
}

func className(src []byte) string {
	brace := bytes.IndexByte(src, '{')
	if brace == -1 {
		return ""
	}
	return string(bytes.TrimSpace(src[:brace]))
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

var idLine = regexp.MustCompile(`(?m)^[ \t]*"id"[ \t]+"\d+"[ \t]*\r?\n`)

// Patch clones the entity referencing part 000 of base once per additional
// group, rewriting the part number in each clone and stripping the numeric
// "id" line so the editor reassigns fresh ids. Clones are inserted directly
// after the placeholder; the rest of the file is untouched. n is the total
// group count, so n <= 1 is a no-op.
func Patch(data []byte, base string, n int) ([]byte, error) {
	blocks, err := Parse(data)
	if err != nil {
		return nil, err
	}
	marker := partRef(base, 0)
	var placeholder *Block
	for _, b := range blocks {
		if bytes.Contains(b.src, []byte(marker)) {
			placeholder = b
			break
		}
	}
	if placeholder == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoPlaceholder, marker)
	}
	if n <= 1 {
		return data, nil
	}

	var out bytes.Buffer
	out.Write(data[:placeholder.End])
	template := idLine.ReplaceAll(placeholder.src, nil)
	for i := 1; i < n; i++ {
		clone := bytes.ReplaceAll(template, []byte(marker), []byte(partRef(base, i)))
		out.WriteByte('\n')
		out.Write(clone)
	}
	out.Write(data[placeholder.End:])
	return out.Bytes(), nil
}

// Strip deletes every top-level block referencing any part of base and
// returns how many were removed. Inverse of Patch, except it removes the
// part 000 placeholder too.
func Strip(data []byte, base string) ([]byte, int, error) {
	blocks, err := Parse(data)
	if err != nil {
		return nil, 0, err
	}
	marker := base + "_part_"
	var out bytes.Buffer
	prev := 0
	removed := 0
	for _, b := range blocks {
		if !bytes.Contains(b.src, []byte(marker)) {
			continue
		}
		// Take the block's indentation and its trailing newline with
		// it, so the deletion removes whole lines.
		start := b.Start
		for start > prev && (data[start-1] == ' ' || data[start-1] == '\t') {
			start--
		}
		end := b.End
		if end < len(data) && data[end] == '\r' {
			end++
		}
		if end < len(data) && data[end] == '\n' {
			end++
		}
		out.Write(data[prev:start])
		prev = end
		removed++
	}
	out.Write(data[prev:])
	if removed == 0 {
		return data, 0, nil
	}
	return out.Bytes(), removed, nil
}

// partRef is the model-path fragment naming group i of base.
func partRef(base string, i int) string {
	return fmt.Sprintf("%s_part_%03d", base, i)
}
