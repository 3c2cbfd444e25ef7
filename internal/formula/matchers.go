package formula

import (
	"regexp"

	"github.com/vk/araliago/internal/name"
)

// literal is the argument token grammar: an optional complement marker
// followed by an identifier.
const literal = `~?` + name.Pattern

// argsList is the bracketed argument list of the atleast and cardinality
// shapes. The capture group holds the comma-separated list without the
// brackets. At least three literals are required.
const argsList = `\[(\s*` + literal + `(?:\s*,\s*` + literal + `\s*){2,})\]`

// One anchored pattern per gate shape. Every pattern must match the entire
// trimmed formula string; partial or mixed-operator expressions match
// nothing and are rejected.
var (
	reParen       = regexp.MustCompile(`^\(([^()]+)\)$`)
	reOr          = regexp.MustCompile(`^` + literal + `(?:\s*\|\s*` + literal + `\s*)+$`)
	reXor         = regexp.MustCompile(`^` + literal + `\s*\^\s*` + literal + `$`)
	reAnd         = regexp.MustCompile(`^` + literal + `(?:\s*&\s*` + literal + `\s*)+$`)
	reAtleast     = regexp.MustCompile(`^@\(\s*([2-9])\s*,\s*` + argsList + `\s*\)\s*$`)
	reNot         = regexp.MustCompile(`^~\(\s*(` + literal + `)\s*\)$`)
	reNull        = regexp.MustCompile(`^` + literal + `$`)
	reImply       = regexp.MustCompile(`^` + literal + `\s*=>\s*` + literal + `$`)
	reIff         = regexp.MustCompile(`^` + literal + `\s*<=>\s*` + literal + `$`)
	reCardinality = regexp.MustCompile(`^#\(\s*(\d)\s*,\s*(\d)\s*,\s*` + argsList + `\s*\)\s*$`)
)

// matchFunc recognizes one gate shape. A (nil, nil) return means the text is
// not this shape and the next matcher should be tried; a non-nil error means
// the shape matched but carries a structural problem, which aborts
// recognition entirely.
type matchFunc func(s string) (*Formula, error)

// matchers is the fixed recognition priority. NULL must come after NOT and
// ATLEAST so that a lone literal does not shadow the prefixed shapes.
var matchers = []matchFunc{
	matchOr,
	matchXor,
	matchAnd,
	matchAtleast,
	matchNot,
	matchNull,
	matchImply,
	matchIff,
	matchCardinality,
}
