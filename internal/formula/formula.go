// Package formula recognizes the right-hand side of a gate definition.
//
// The notation disallows implicit precedence: a formula is exactly one of
// nine gate shapes over literal arguments, and anything mixing operators at
// the same level must be rewritten with explicit named sub-gates. Each shape
// has its own matcher; the matchers are tried in a fixed priority order and
// every pattern must consume the entire trimmed string.
package formula

import (
	"strconv"
	"strings"
)

// Operator identifies the logical connective of a gate formula.
type Operator string

// Supported gate operators. The string values are the Open-PSA MEF element
// names used on output.
const (
	OpAnd         Operator = "and"
	OpOr          Operator = "or"
	OpXor         Operator = "xor"
	OpNot         Operator = "not"
	OpNull        Operator = "null"
	OpImply       Operator = "imply"
	OpIff         Operator = "iff"
	OpAtleast     Operator = "atleast"
	OpCardinality Operator = "cardinality"
)

// Literal is a single argument token: an event reference with an optional
// leading complement marker.
type Literal struct {
	Name       string
	Complement bool
}

// Token renders the literal as it appeared in the source text.
func (l Literal) Token() string {
	if l.Complement {
		return "~" + l.Name
	}
	return l.Name
}

// Formula is the recognized shape of a gate definition body.
type Formula struct {
	Operator Operator
	Args     []Literal // declaration order
	Min      int       // k for atleast, l for cardinality
	Max      int       // h for cardinality
}

// Parse classifies a formula string into one of the supported gate shapes
// and extracts its arguments.
//
// A single redundant pair of outer parentheses is stripped before matching;
// a second pair is not, so over-parenthesized formulas fail recognition
// instead of being silently unwrapped.
func Parse(text string) (*Formula, error) {
	s := strings.TrimSpace(text)
	if m := reParen.FindStringSubmatch(s); m != nil {
		s = strings.TrimSpace(m[1])
	}
	for _, match := range matchers {
		f, err := match(s)
		if err != nil {
			return nil, err
		}
		if f != nil {
			return f, nil
		}
	}
	return nil, &RecognitionError{Formula: s}
}

// parseLiteral splits an argument token into its name and complement flag.
// The token is already known to match the literal grammar.
func parseLiteral(token string) Literal {
	if rest, ok := strings.CutPrefix(token, "~"); ok {
		return Literal{Name: rest, Complement: true}
	}
	return Literal{Name: token}
}

// splitArgs splits a matched multi-argument body on the operator's
// separator. Two textually identical tokens (complement marker included)
// are a structural error, not a silent deduplication.
func splitArgs(s, sep string) ([]Literal, error) {
	parts := strings.Split(strings.TrimSpace(s), sep)
	seen := make(map[string]struct{}, len(parts))
	args := make([]Literal, 0, len(parts))
	for _, part := range parts {
		token := strings.TrimSpace(part)
		if _, dup := seen[token]; dup {
			return nil, &StructuralError{Reason: "Repeated arguments:\n" + s}
		}
		seen[token] = struct{}{}
		args = append(args, parseLiteral(token))
	}
	return args, nil
}

func matchOr(s string) (*Formula, error) {
	if !reOr.MatchString(s) {
		return nil, nil
	}
	args, err := splitArgs(s, "|")
	if err != nil {
		return nil, err
	}
	return &Formula{Operator: OpOr, Args: args}, nil
}

func matchXor(s string) (*Formula, error) {
	if !reXor.MatchString(s) {
		return nil, nil
	}
	args, err := splitArgs(s, "^")
	if err != nil {
		return nil, err
	}
	return &Formula{Operator: OpXor, Args: args}, nil
}

func matchAnd(s string) (*Formula, error) {
	if !reAnd.MatchString(s) {
		return nil, nil
	}
	args, err := splitArgs(s, "&")
	if err != nil {
		return nil, err
	}
	return &Formula{Operator: OpAnd, Args: args}, nil
}

func matchAtleast(s string) (*Formula, error) {
	m := reAtleast.FindStringSubmatch(s)
	if m == nil {
		return nil, nil
	}
	args, err := splitArgs(m[2], ",")
	if err != nil {
		return nil, err
	}
	min, _ := strconv.Atoi(m[1])
	if min >= len(args) {
		return nil, &StructuralError{Reason: "Invalid k/n for the combination formula:\n" + s}
	}
	return &Formula{Operator: OpAtleast, Args: args, Min: min}, nil
}

func matchNot(s string) (*Formula, error) {
	m := reNot.FindStringSubmatch(s)
	if m == nil {
		return nil, nil
	}
	return &Formula{Operator: OpNot, Args: []Literal{parseLiteral(strings.TrimSpace(m[1]))}}, nil
}

func matchNull(s string) (*Formula, error) {
	if !reNull.MatchString(s) {
		return nil, nil
	}
	return &Formula{Operator: OpNull, Args: []Literal{parseLiteral(s)}}, nil
}

func matchImply(s string) (*Formula, error) {
	if !reImply.MatchString(s) {
		return nil, nil
	}
	args, err := splitArgs(s, "=>")
	if err != nil {
		return nil, err
	}
	return &Formula{Operator: OpImply, Args: args}, nil
}

func matchIff(s string) (*Formula, error) {
	if !reIff.MatchString(s) {
		return nil, nil
	}
	args, err := splitArgs(s, "<=>")
	if err != nil {
		return nil, err
	}
	return &Formula{Operator: OpIff, Args: args}, nil
}

func matchCardinality(s string) (*Formula, error) {
	m := reCardinality.FindStringSubmatch(s)
	if m == nil {
		return nil, nil
	}
	args, err := splitArgs(m[3], ",")
	if err != nil {
		return nil, err
	}
	min, _ := strconv.Atoi(m[1])
	max, _ := strconv.Atoi(m[2])
	if min > max || max > len(args) {
		return nil, &StructuralError{Reason: "Invalid l/h for the cardinality formula:\n" + s}
	}
	return &Formula{Operator: OpCardinality, Args: args, Min: min, Max: max}, nil
}
