package meshfile

import (
	"errors"
	"fmt"
)

// DiagKind classifies a non-fatal problem found while loading a mesh.
type DiagKind int

const (
	// FieldCount: a "v" or "f" record without exactly three values. The line is skipped.
	FieldCount DiagKind = iota
	// VertexParse: one or more vertex coordinates failed to parse. The vertex is kept with zeros.
	VertexParse
	// FaceParse: one or more face indices failed to parse. The face is dropped.
	FaceParse
	// IndexRange: a face references a vertex that does not exist. The face is dropped.
	IndexRange
	// NotFound: the mesh file does not exist. An empty mesh is returned.
	NotFound
	// IO: any other failure reading the mesh file. An empty mesh is returned.
	IO
)

func (k DiagKind) String() string {
	switch k {
	case FieldCount:
		return "field count"
	case VertexParse:
		return "vertex parse"
	case FaceParse:
		return "face parse"
	case IndexRange:
		return "index range"
	case NotFound:
		return "not found"
	case IO:
		return "io"
	}
	return fmt.Sprintf("diag(%d)", int(k))
}

// Diagnostic is one parse or load problem. Line is 1-based; 0 when not tied to a line.
type Diagnostic struct {
	Line int
	Kind DiagKind
	Text string // offending line or path
	Err  error
}

func (d Diagnostic) String() string {
	var s string
	if d.Line > 0 {
		s = fmt.Sprintf("line %d: %s: %q", d.Line, d.Kind, d.Text)
	} else {
		s = fmt.Sprintf("%s: %s", d.Kind, d.Text)
	}
	if d.Err != nil {
		s += ": " + d.Err.Error()
	}
	return s
}

// Error makes a Diagnostic usable as an error value.
func (d Diagnostic) Error() string { return "meshfile: " + d.String() }

// Diagnostics is the warning list returned alongside a parsed mesh.
type Diagnostics []Diagnostic

// Count returns how many diagnostics are of kind k.
func (ds Diagnostics) Count(k DiagKind) int {
	n := 0
	for _, d := range ds {
		if d.Kind == k {
			n++
		}
	}
	return n
}

// Err joins all diagnostics into one error, or nil when there are none.
func (ds Diagnostics) Err() error {
	if len(ds) == 0 {
		return nil
	}
	errs := make([]error, len(ds))
	for i, d := range ds {
		errs[i] = d
	}
	return errors.Join(errs...)
}
