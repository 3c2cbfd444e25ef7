package tree

import "github.com/vk/araliago/internal/formula"

// Event is the common identity of every node in a fault tree: a unique,
// case-sensitive name plus a back-reference to the gates that use it. The
// parent set serves membership and orphan queries only, never traversal.
type Event struct {
	Name    string
	parents []*Gate // insertion-ordered, no duplicates
}

// addParent records g as a user of this event. Adding the same gate twice
// is a no-op.
func (e *Event) addParent(g *Gate) {
	for _, p := range e.parents {
		if p == g {
			return
		}
	}
	e.parents = append(e.parents, g)
}

// NumParents returns the number of distinct gates using this event.
func (e *Event) NumParents() int { return len(e.parents) }

// IsOrphan reports whether no gate uses this event.
func (e *Event) IsOrphan() bool { return len(e.parents) == 0 }

// IsCommon reports whether this event appears under more than one gate.
func (e *Event) IsCommon() bool { return len(e.parents) > 1 }

// Parents returns the gates using this event, in first-use order.
func (e *Event) Parents() []*Gate { return e.parents }

// BasicEvent is a leaf carrying a failure probability.
type BasicEvent struct {
	Event
	Prob string // `1`, `0`, or `0.<digits>`, kept as written
}

// HouseEvent is a leaf carrying a fixed boolean state.
type HouseEvent struct {
	Event
	State string // "true" or "false"
}

// ArgKind tags the resolved kind of a gate argument.
type ArgKind int

// Argument kinds, in the order the document emitter groups them.
const (
	ArgHouse ArgKind = iota
	ArgBasic
	ArgUndefined
	ArgGate
)

// Arg is one resolved gate argument: the referenced node tagged at attach
// time with its kind and complement status.
type Arg struct {
	Kind       ArgKind
	Complement bool
	Gate       *Gate       // set when Kind == ArgGate
	Basic      *BasicEvent // set when Kind == ArgBasic
	House      *HouseEvent // set when Kind == ArgHouse
	Undefined  *Event      // set when Kind == ArgUndefined
}

// Name returns the referenced event's name.
func (a Arg) Name() string {
	switch a.Kind {
	case ArgGate:
		return a.Gate.Name
	case ArgBasic:
		return a.Basic.Name
	case ArgHouse:
		return a.House.Name
	default:
		return a.Undefined.Name
	}
}

// Gate combines child events and gates under one logical operator.
type Gate struct {
	Event
	Operator formula.Operator
	Min      int // k for atleast, l for cardinality
	Max      int // h for cardinality
	Args     []Arg

	rawArgs []formula.Literal // tokens awaiting resolution
}

// NumArguments returns the number of resolved arguments.
func (g *Gate) NumArguments() int { return len(g.Args) }

// ChildGates returns the arguments that are gates, in declaration order.
func (g *Gate) ChildGates() []*Gate {
	var children []*Gate
	for _, a := range g.Args {
		if a.Kind == ArgGate {
			children = append(children, a.Gate)
		}
	}
	return children
}

// ArgsOfKind returns the arguments of one kind, in declaration order.
func (g *Gate) ArgsOfKind(kind ArgKind) []Arg {
	var args []Arg
	for _, a := range g.Args {
		if a.Kind == kind {
			args = append(args, a)
		}
	}
	return args
}
