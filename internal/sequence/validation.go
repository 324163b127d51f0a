package sequence

import "fmt"

// SequenceError is the base error type for sequence operations.
type SequenceError interface {
	error
	IsSequenceError()
}

// EmptySequenceError is returned when a sequence is empty.
type EmptySequenceError struct {
	SequenceID string
}

func (e *EmptySequenceError) Error() string {
	if e.SequenceID != "" {
		return fmt.Sprintf("sequence %q must have at least one base", e.SequenceID)
	}
	return "sequence must have at least one base"
}

func (e *EmptySequenceError) IsSequenceError() {}

// InvalidSymbolError is returned when a symbol outside {A, C, G, T} is
// encountered.
type InvalidSymbolError struct {
	SequenceID string
	Position   int
	Found      byte
}

func (e *InvalidSymbolError) Error() string {
	if e.SequenceID != "" {
		return fmt.Sprintf("invalid sequence symbol '%c' at position %d in %q", e.Found, e.Position, e.SequenceID)
	}
	return fmt.Sprintf("invalid sequence symbol '%c' at position %d", e.Found, e.Position)
}

func (e *InvalidSymbolError) IsSequenceError() {}

// Validate checks that bases contains only canonical upper-case symbols.
func Validate(bases string) error {
	for i := 0; i < len(bases); i++ {
		if !IsCanonical(bases[i]) {
			return &InvalidSymbolError{Position: i, Found: bases[i]}
		}
	}
	return nil
}

// IsCanonical reports whether c is one of A, C, G, T.
func IsCanonical(c byte) bool {
	switch c {
	case 'A', 'C', 'G', 'T':
		return true
	}
	return false
}
