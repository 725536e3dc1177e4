package compiler

import "fmt"

// CompileError reports a structural fault in the OSM input itself — a
// duplicate node id, a way referencing a node never seen in the node
// pass, or a CSR invariant violated after emission. It aborts
// compilation; nothing in this package retries after one.
type CompileError struct {
	Stage string
	Msg   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compiler: %s: %s", e.Stage, e.Msg)
}
