package tree

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/vk/araliago/internal/dag"
	"github.com/vk/araliago/internal/formula"
	"github.com/vk/araliago/internal/name"
)

// Anchored forms of the four declaration line classes.
var (
	reGateLine  = regexp.MustCompile(`^(` + name.Pattern + `)\s*:=\s*(.+)$`)
	reProbLine  = regexp.MustCompile(`^p\(\s*(` + name.Pattern + `)\s*\)\s*=\s*(1|0|0\.\d+)$`)
	reStateLine = regexp.MustCompile(`^s\(\s*(` + name.Pattern + `)\s*\)\s*=\s*(true|false)$`)
	reTreeName  = regexp.MustCompile(`^` + name.Pattern + `$`)
)

// Options configure fault-tree construction.
type Options struct {
	// MultiTop allows more than one root gate.
	MultiTop bool
}

// Builder accumulates declarations line by line (first pass) and resolves
// them into a validated FaultTree (second pass). Gates, basic events, and
// house events share one namespace.
type Builder struct {
	opts   Options
	tree   *FaultTree
	gates  map[string]*Gate
	basics map[string]*BasicEvent
	houses map[string]*HouseEvent
	undefs map[string]*Event
}

// NewBuilder returns an empty Builder.
func NewBuilder(opts Options) *Builder {
	return &Builder{
		opts:   opts,
		tree:   &FaultTree{MultiTop: opts.MultiTop},
		gates:  make(map[string]*Gate),
		basics: make(map[string]*BasicEvent),
		houses: make(map[string]*HouseEvent),
		undefs: make(map[string]*Event),
	}
}

// Interpret classifies and records one input line. Blank lines are ignored.
// Exactly one declaration is allowed per line.
func (b *Builder) Interpret(line string) error {
	s := strings.TrimSpace(line)
	if s == "" {
		return nil
	}
	if m := reGateLine.FindStringSubmatch(s); m != nil {
		return b.addGate(m[1], m[2])
	}
	if m := reProbLine.FindStringSubmatch(s); m != nil {
		return b.addBasicEvent(m[1], m[2])
	}
	if m := reStateLine.FindStringSubmatch(s); m != nil {
		return b.addHouseEvent(m[1], m[2])
	}
	if reTreeName.MatchString(s) {
		if b.tree.Name != "" {
			return &ParseError{
				Kind: KindFormat,
				Err:  fmt.Errorf("Redefinition of the fault tree name:\n%s to %s", b.tree.Name, s),
			}
		}
		b.tree.Name = s
		return nil
	}
	return &ParseError{Kind: KindRecognition, Err: errors.New("Cannot interpret the line.")}
}

// checkRedefinition rejects a name already taken by a gate, basic event, or
// house event.
func (b *Builder) checkRedefinition(eventName string) error {
	if b.gates[eventName] != nil || b.basics[eventName] != nil || b.houses[eventName] != nil {
		return structural("Redefinition of an event: %s", eventName)
	}
	return nil
}

func (b *Builder) addGate(gateName, body string) error {
	f, err := formula.Parse(body)
	if err != nil {
		return classifyFormula(err)
	}
	if err := b.checkRedefinition(gateName); err != nil {
		return err
	}
	g := &Gate{
		Event:    Event{Name: gateName},
		Operator: f.Operator,
		Min:      f.Min,
		Max:      f.Max,
		rawArgs:  f.Args,
	}
	b.gates[gateName] = g
	b.tree.Gates = append(b.tree.Gates, g)
	return nil
}

func (b *Builder) addBasicEvent(eventName, prob string) error {
	if err := b.checkRedefinition(eventName); err != nil {
		return err
	}
	ev := &BasicEvent{Event: Event{Name: eventName}, Prob: prob}
	b.basics[eventName] = ev
	b.tree.BasicEvents = append(b.tree.BasicEvents, ev)
	return nil
}

func (b *Builder) addHouseEvent(eventName, state string) error {
	if err := b.checkRedefinition(eventName); err != nil {
		return err
	}
	ev := &HouseEvent{Event: Event{Name: eventName}, State: state}
	b.houses[eventName] = ev
	b.tree.HouseEvents = append(b.tree.HouseEvents, ev)
	return nil
}

// Finish resolves all recorded declarations, selects the top gate(s), and
// verifies the gate graph is acyclic. The builder must not be reused after
// a successful Finish.
func (b *Builder) Finish() (*FaultTree, error) {
	if b.tree.Name == "" {
		return nil, &ParseError{Kind: KindFormat, Err: errors.New("The fault tree name is not given.")}
	}
	b.populate()
	if err := b.detectTop(); err != nil {
		return nil, err
	}
	if err := dag.DetectCycles(b.tree.TopGates, b.tree.Gates, gateChildren, gateName); err != nil {
		return nil, &ParseError{Kind: KindStructural, Err: err}
	}
	return b.tree, nil
}

// populate is the second pass: every raw argument token is resolved into an
// object reference, minting undefined-event placeholders on a total miss.
func (b *Builder) populate() {
	for _, g := range b.tree.Gates {
		seen := make(map[formula.Literal]struct{}, len(g.rawArgs))
		for _, lit := range g.rawArgs {
			// The recognizer already rejected duplicate tokens; a repeat
			// here is a broken invariant, not user error.
			if _, dup := seen[lit]; dup {
				panic(fmt.Sprintf("tree: duplicate argument %q attached to gate %q", lit.Token(), g.Name))
			}
			seen[lit] = struct{}{}
			b.attach(g, lit)
		}
		g.rawArgs = nil
	}
	for _, ev := range b.tree.BasicEvents {
		if ev.IsOrphan() {
			b.warnf("Orphan basic event: %s", ev.Name)
		}
	}
	for _, ev := range b.tree.HouseEvents {
		if ev.IsOrphan() {
			b.warnf("Orphan house event: %s", ev.Name)
		}
	}
}

// attach resolves one argument token against the gate, basic-event,
// house-event, and undefined-event tables, in that order.
func (b *Builder) attach(g *Gate, lit formula.Literal) {
	arg := Arg{Complement: lit.Complement}
	switch {
	case b.gates[lit.Name] != nil:
		arg.Kind, arg.Gate = ArgGate, b.gates[lit.Name]
		arg.Gate.addParent(g)
	case b.basics[lit.Name] != nil:
		arg.Kind, arg.Basic = ArgBasic, b.basics[lit.Name]
		arg.Basic.addParent(g)
	case b.houses[lit.Name] != nil:
		arg.Kind, arg.House = ArgHouse, b.houses[lit.Name]
		arg.House.addParent(g)
	case b.undefs[lit.Name] != nil:
		arg.Kind, arg.Undefined = ArgUndefined, b.undefs[lit.Name]
		arg.Undefined.addParent(g)
	default:
		b.warnf("Unidentified event: %s", lit.Name)
		ev := &Event{Name: lit.Name}
		b.undefs[lit.Name] = ev
		b.tree.UndefinedEvents = append(b.tree.UndefinedEvents, ev)
		arg.Kind, arg.Undefined = ArgUndefined, ev
		ev.addParent(g)
	}
	g.Args = append(g.Args, arg)
}

// detectTop collects the gates no other gate uses. Zero roots means every
// gate has a parent, which in a graph of non-empty gates implies a cycle;
// the discovered cycle paths are folded into the error.
func (b *Builder) detectTop() error {
	var tops []*Gate
	for _, g := range b.tree.Gates {
		if g.IsOrphan() {
			tops = append(tops, g)
		}
	}
	if len(tops) == 0 {
		msg := "No top gate is detected"
		for _, cycle := range dag.ScanCycles(b.tree.Gates, gateChildren, gateName) {
			msg += "\n" + cycle
		}
		return structural("%s", msg)
	}
	if len(tops) > 1 && !b.opts.MultiTop {
		names := make([]string, len(tops))
		for i, g := range tops {
			names[i] = g.Name
		}
		return structural("Detected multiple top gates:\n[%s]", strings.Join(names, ", "))
	}
	b.tree.TopGates = tops
	return nil
}

func (b *Builder) warnf(format string, args ...any) {
	b.tree.Warnings = append(b.tree.Warnings, fmt.Sprintf(format, args...))
}

func gateChildren(g *Gate) []*Gate { return g.ChildGates() }

func gateName(g *Gate) string { return g.Name }
