package dag

import "fmt"

// Sort orders the nodes reachable from roots so that every node precedes
// the nodes it references (reverse postorder): each node's children are
// visited before the node itself is prepended to the result.
//
// Sort assumes the graph has already been verified acyclic. Meeting an
// in-progress node, or producing a different node count than all, means an
// undetected cycle or an unreachable node slipped past validation; both are
// internal invariant failures.
func Sort[N comparable](roots, all []N, children func(N) []N, label func(N) string) ([]N, error) {
	marks := make(map[N]mark, len(all))
	sorted := make([]N, 0, len(all))

	var visit func(n N) error
	visit = func(n N) error {
		switch marks[n] {
		case inProgress:
			return fmt.Errorf("topological sort revisited in-progress node %q: cycle escaped detection", label(n))
		case done:
			return nil
		}
		marks[n] = inProgress
		for _, child := range children(n) {
			if err := visit(child); err != nil {
				return err
			}
		}
		marks[n] = done
		sorted = append(sorted, n)
		return nil
	}

	for _, root := range roots {
		if err := visit(root); err != nil {
			return nil, err
		}
	}
	if len(sorted) != len(all) {
		return nil, fmt.Errorf("topological sort produced %d of %d nodes: graph validation was skipped or incomplete", len(sorted), len(all))
	}

	// sorted is in postorder; reverse for parents-first emission.
	for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
		sorted[i], sorted[j] = sorted[j], sorted[i]
	}
	return sorted, nil
}
