package tree

import (
	"errors"
	"fmt"

	"github.com/vk/araliago/internal/formula"
)

// Kind classifies fatal conversion errors.
type Kind int

const (
	// KindRecognition marks input text that matches no supported shape.
	KindRecognition Kind = iota
	// KindFormat marks document-level problems with the fault-tree name.
	KindFormat
	// KindStructural marks redefinitions, duplicate arguments, invalid
	// operator bounds, top-gate problems, and cycles.
	KindStructural
)

// ParseError is a fatal conversion error. When the error arises while
// processing a declaration line, that line and its number are attached for
// diagnostics.
type ParseError struct {
	Kind Kind
	Line int    // 1-based input line, 0 when not tied to a line
	Text string // offending line
	Err  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s\nIn line %d:\n%s", e.Err, e.Line, e.Text)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error { return e.Err }

// structural builds a structural ParseError without line attribution.
func structural(format string, args ...any) *ParseError {
	return &ParseError{Kind: KindStructural, Err: fmt.Errorf(format, args...)}
}

// classifyFormula maps a recognizer error onto the conversion error kinds.
func classifyFormula(err error) *ParseError {
	var rec *formula.RecognitionError
	if errors.As(err, &rec) {
		return &ParseError{Kind: KindRecognition, Err: err}
	}
	return &ParseError{Kind: KindStructural, Err: err}
}
