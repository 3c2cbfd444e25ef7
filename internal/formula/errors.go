package formula

// RecognitionError reports formula text that matches no supported gate
// shape.
type RecognitionError struct {
	Formula string
}

// Error implements the error interface.
func (e *RecognitionError) Error() string {
	return "Cannot interpret the formula:\n" + e.Formula
}

// StructuralError reports a formula that matched a gate shape but violates a
// structural rule: repeated argument tokens or invalid atleast/cardinality
// bounds.
type StructuralError struct {
	Reason string
}

// Error implements the error interface.
func (e *StructuralError) Error() string {
	return e.Reason
}
