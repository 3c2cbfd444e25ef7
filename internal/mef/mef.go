// Package mef renders a validated fault tree as an Open-PSA MEF XML
// document: a fault-tree section with one element per gate in topological
// order, followed by a model-data section with basic and house events in
// declaration order. The output is line-oriented and not indented.
package mef

import (
	"fmt"
	"io"

	"github.com/vk/araliago/internal/dag"
	"github.com/vk/araliago/internal/formula"
	"github.com/vk/araliago/internal/tree"
)

// Write emits the document for ft to w.
//
// nest controls formula inlining: at 0 every child gate is a bare by-name
// reference whose real formula lives in its own top-level element; a
// positive depth inlines that many levels of child-gate formulas into the
// parent element, duplicating gates reachable through several parents.
func Write(w io.Writer, ft *tree.FaultTree, nest int) error {
	if nest < 0 {
		return fmt.Errorf("mef: negative nesting depth %d", nest)
	}
	sorted, err := dag.Sort(ft.TopGates, ft.Gates, func(g *tree.Gate) []*tree.Gate { return g.ChildGates() },
		func(g *tree.Gate) string { return g.Name })
	if err != nil {
		return fmt.Errorf("mef: %w", err)
	}

	x := &xmlWriter{w: w}
	x.printf("<?xml version=\"1.0\"?>\n")
	x.printf("<opsa-mef>\n")
	x.printf("<define-fault-tree name=%q>\n", ft.Name)
	for _, g := range sorted {
		writeGate(x, g, nest)
	}
	x.printf("</define-fault-tree>\n")
	x.printf("<model-data>\n")
	for _, ev := range ft.BasicEvents {
		x.printf("<define-basic-event name=%q>\n<float value=%q/>\n</define-basic-event>\n", ev.Name, ev.Prob)
	}
	for _, ev := range ft.HouseEvents {
		x.printf("<define-house-event name=%q>\n<constant value=%q/>\n</define-house-event>\n", ev.Name, ev.State)
	}
	x.printf("</model-data>\n")
	x.printf("</opsa-mef>\n")
	return x.err
}

func writeGate(x *xmlWriter, g *tree.Gate, nest int) {
	x.printf("<define-gate name=%q>\n", g.Name)
	writeFormula(x, g, nest)
	x.printf("</define-gate>\n")
}

// writeFormula emits a gate's formula. The pass-through (null) operator has
// no element of its own; its one argument stands in the parent's place.
// Arguments are grouped by kind in fixed order, each wrapped in a negation
// element when recorded as complemented.
func writeFormula(x *xmlWriter, g *tree.Gate, nest int) {
	if g.Operator != formula.OpNull {
		switch g.Operator {
		case formula.OpAtleast:
			x.printf("<%s min=\"%d\">\n", g.Operator, g.Min)
		case formula.OpCardinality:
			x.printf("<%s min=\"%d\" max=\"%d\">\n", g.Operator, g.Min, g.Max)
		default:
			x.printf("<%s>\n", g.Operator)
		}
	}
	writeRefs(x, "house-event", g.ArgsOfKind(tree.ArgHouse))
	writeRefs(x, "basic-event", g.ArgsOfKind(tree.ArgBasic))
	writeRefs(x, "event", g.ArgsOfKind(tree.ArgUndefined))
	for _, a := range g.ArgsOfKind(tree.ArgGate) {
		if a.Complement {
			x.printf("<not>\n")
		}
		if nest > 0 {
			writeFormula(x, a.Gate, nest-1)
		} else {
			x.printf("<gate name=%q/>\n", a.Gate.Name)
		}
		if a.Complement {
			x.printf("</not>\n")
		}
	}
	if g.Operator != formula.OpNull {
		x.printf("</%s>\n", g.Operator)
	}
}

func writeRefs(x *xmlWriter, element string, args []tree.Arg) {
	for _, a := range args {
		if a.Complement {
			x.printf("<not>\n")
		}
		x.printf("<%s name=%q/>\n", element, a.Name())
		if a.Complement {
			x.printf("</not>\n")
		}
	}
}

// xmlWriter is a sticky-error writer; after the first write failure every
// subsequent printf is a no-op.
type xmlWriter struct {
	w   io.Writer
	err error
}

func (x *xmlWriter) printf(format string, args ...any) {
	if x.err != nil {
		return
	}
	_, x.err = fmt.Fprintf(x.w, format, args...)
}
