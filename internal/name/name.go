// Package name defines the identifier grammar shared by the fault-tree name
// and every gate and event name.
//
// An identifier is a letter followed by any run of word characters, with
// single hyphens allowed as internal group separators. Double dashes,
// trailing dashes, and periods are rejected. Names are case-sensitive ASCII.
package name

import "regexp"

// Pattern is the unanchored identifier grammar. Other packages embed it in
// larger patterns (formula literals, declaration lines) so that every
// reference site shares one definition.
const Pattern = `[a-zA-Z]\w*(?:-\w+)*`

var reName = regexp.MustCompile(`^` + Pattern + `$`)

// Valid reports whether s is a well-formed identifier.
func Valid(s string) bool {
	return reName.MatchString(s)
}
