// Package dag holds the graph traversals run over the resolved gate graph:
// cycle detection with diagnosable path reporting, and the topological
// ordering used for deterministic serialization. Both are depth-first
// searches with three node states, and each allocates its own transient
// mark map; nothing is stored on the nodes themselves, so the two
// algorithms can never observe each other's state.
package dag

import (
	"fmt"
	"strings"
)

// mark is the transient traversal state of one node.
type mark uint8

const (
	unvisited mark = iota
	inProgress
	done
)

// walker is one depth-first traversal with its own mark map.
type walker[N comparable] struct {
	marks    map[N]mark
	children func(N) []N
}

func newWalker[N comparable](children func(N) []N) *walker[N] {
	return &walker[N]{marks: make(map[N]mark), children: children}
}

// visit searches the subgraph under n for a cycle. It returns nil when none
// is found and otherwise the cycle path in reverse order, starting with the
// repeated node; callers unwind the path from the active call stack.
func (w *walker[N]) visit(n N) []N {
	switch w.marks[n] {
	case inProgress:
		return []N{n}
	case done:
		return nil
	}
	w.marks[n] = inProgress
	for _, child := range w.children(n) {
		if cycle := w.visit(child); cycle != nil {
			return append(cycle, n)
		}
	}
	w.marks[n] = done
	return nil
}

// settle demotes every node left in progress by an aborted walk. Without
// this, a later walk reaching such a node would mistake the stale mark for
// an edge back into its own stack and report a cycle that does not exist.
func (w *walker[N]) settle() {
	for n, m := range w.marks {
		if m == inProgress {
			w.marks[n] = done
		}
	}
}

// cycleMessage formats a reverse-order cycle path top-down, beginning at the
// repeated node.
func cycleMessage[N comparable](cycle []N, label func(N) string) string {
	repeated := cycle[0]
	names := make([]string, 0, len(cycle))
	for i := len(cycle) - 1; i >= 0; i-- {
		if len(names) == 0 && cycle[i] != repeated {
			continue // skip the prefix above the cycle entry point
		}
		names = append(names, label(cycle[i]))
	}
	return "Detected a cycle: " + strings.Join(names, "->")
}

// DetectCycles verifies that the gate graph is acyclic. It first walks from
// every root; a cycle reachable from a root is reported alone with its full
// path. Any node still unvisited afterwards belongs to a subgraph detached
// from every root, which by construction must contain a cycle; those nodes
// are re-walked and every discovered cycle is aggregated into one error
// together with the detached-gate report.
func DetectCycles[N comparable](roots, all []N, children func(N) []N, label func(N) string) error {
	w := newWalker(children)
	for _, root := range roots {
		if cycle := w.visit(root); cycle != nil {
			return fmt.Errorf("%s", cycleMessage(cycle, label))
		}
	}

	var detached []N
	for _, n := range all {
		if w.marks[n] == unvisited {
			detached = append(detached, n)
		}
	}
	if len(detached) == 0 {
		return nil
	}

	names := make([]string, len(detached))
	for i, n := range detached {
		names[i] = label(n)
	}
	msg := fmt.Sprintf("Detected detached gates that may be in a cycle\n[%s]", strings.Join(names, ", "))
	for _, n := range detached {
		if w.marks[n] != unvisited {
			continue // already swept up by an aborted walk
		}
		if cycle := w.visit(n); cycle != nil {
			msg += "\n" + cycleMessage(cycle, label)
			w.settle()
		}
	}
	return fmt.Errorf("%s", msg)
}

// ScanCycles walks the whole graph from every node and returns the cycle
// paths discovered, formatted top-down. It is used to diagnose graphs that
// have no root to start from.
func ScanCycles[N comparable](all []N, children func(N) []N, label func(N) string) []string {
	w := newWalker(children)
	var cycles []string
	for _, n := range all {
		if w.marks[n] != unvisited {
			continue
		}
		if cycle := w.visit(n); cycle != nil {
			cycles = append(cycles, cycleMessage(cycle, label))
			w.settle()
		}
	}
	return cycles
}
