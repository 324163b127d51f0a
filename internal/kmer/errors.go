package kmer

import (
	"fmt"
	"strings"
)

// InvalidWordLengthError is returned when k is outside [1, min(len1, len2)].
type InvalidWordLengthError struct {
	K   int
	Max int
}

func (e *InvalidWordLengthError) Error() string {
	if e.Max <= 0 {
		return fmt.Sprintf("invalid word length k=%d: k must be positive", e.K)
	}
	return fmt.Sprintf("invalid word length k=%d: must be within [1, %d]", e.K, e.Max)
}

// UnknownStrategyError is returned for an unrecognized word-matching
// strategy name.
type UnknownStrategyError struct {
	Key  string
	Name string
}

func (e *UnknownStrategyError) Error() string {
	return fmt.Sprintf("%s: unknown word matching strategy %q (want one of %s)",
		e.Key, e.Name, strings.Join(StrategyNames(), ", "))
}

// UnknownMotifSetError is returned when a motif set name has no built-in
// definition and no custom patterns were supplied.
type UnknownMotifSetError struct {
	Name string
}

func (e *UnknownMotifSetError) Error() string {
	return fmt.Sprintf("motif_set: unknown motif set %q (want one of %s)",
		e.Name, strings.Join(MotifSetNames(), ", "))
}

// InvalidMaskError is returned for a gapped-word mask that cannot be used
// at the requested word length.
type InvalidMaskError struct {
	K      int
	Mask   string
	Reason string
}

func (e *InvalidMaskError) Error() string {
	return fmt.Sprintf("invalid mask %q for k=%d: %s", e.Mask, e.K, e.Reason)
}

// InvalidMotifError is returned for a motif pattern that is not a
// purine/pyrimidine string of the set's common length.
type InvalidMotifError struct {
	Pattern string
	Reason  string
}

func (e *InvalidMotifError) Error() string {
	return fmt.Sprintf("invalid motif %q: %s", e.Pattern, e.Reason)
}
