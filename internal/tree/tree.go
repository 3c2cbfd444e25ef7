// Package tree builds fault trees from the line-oriented input notation.
//
// Construction is two passes over the declarations: the first records gate
// formulas and event definitions under a single shared namespace, the second
// resolves every argument token into an object reference, minting
// placeholder events for names that were never declared. Top-gate selection
// and cycle detection then either complete the tree or abort the whole
// conversion; there is no partial result.
package tree

import (
	"context"
	"errors"
	"strings"

	"github.com/vk/araliago/internal/ctxlog"
)

// FaultTree is a fully built and validated fault tree. All slices preserve
// declaration order, so iteration is reproducible across runs.
type FaultTree struct {
	Name            string
	MultiTop        bool
	Gates           []*Gate
	BasicEvents     []*BasicEvent
	HouseEvents     []*HouseEvent
	UndefinedEvents []*Event // placeholder leaves, in mint order
	TopGates        []*Gate
	Warnings        []string // non-fatal findings, in discovery order
}

// Parse builds a fault tree from already-read input lines. Fatal errors are
// returned as *ParseError with the offending line attached when the failure
// is tied to one; warnings never block completion and are collected on the
// returned tree.
func Parse(ctx context.Context, lines []string, opts Options) (*FaultTree, error) {
	logger := ctxlog.FromContext(ctx)
	b := NewBuilder(opts)
	for i, line := range lines {
		if err := b.Interpret(line); err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				perr.Line = i + 1
				perr.Text = strings.TrimSpace(line)
			}
			return nil, err
		}
	}
	logger.Debug("Declarations recorded.",
		"gates", len(b.tree.Gates),
		"basic_events", len(b.tree.BasicEvents),
		"house_events", len(b.tree.HouseEvents))

	ft, err := b.Finish()
	if err != nil {
		return nil, err
	}
	logger.Debug("Fault tree resolved and validated.",
		"top_gates", len(ft.TopGates),
		"undefined_events", len(ft.UndefinedEvents),
		"warnings", len(ft.Warnings))
	return ft, nil
}
