package ast

import "fmt"

// FaultKind classifies programming errors detected while building a tree.
type FaultKind int

const (
	// FaultUnknownToken is raised when a keyword matched by the grammar has
	// no corresponding enumeration value.
	FaultUnknownToken FaultKind = iota + 1
	// FaultPartialReuse is raised when a partial node is completed twice.
	FaultPartialReuse
	// FaultIncompletePath is raised when a path expression has neither an
	// initial step nor a relative path.
	FaultIncompletePath
)

func (k FaultKind) String() string {
	switch k {
	case FaultUnknownToken:
		return "unknown token"
	case FaultPartialReuse:
		return "partial reuse"
	case FaultIncompletePath:
		return "incomplete path"
	default:
		return fmt.Sprintf("fault(%d)", int(k))
	}
}

// Fault is the panic value for a grammar or model bug. It is never caused
// by user input, so it is not returned as an error.
type Fault struct {
	Kind FaultKind
	Msg  string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("internal fault (%s): %s", f.Kind, f.Msg)
}

func fault(kind FaultKind, format string, args ...any) *Fault {
	return &Fault{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
