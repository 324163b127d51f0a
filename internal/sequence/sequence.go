// Package sequence provides the canonical nucleotide sequence type and the
// recodings used by word matching.
//
// Sequences are upper-cased and validated once, at construction. After that
// they are treated as immutable: every transform returns a new Sequence and
// the original is shared read-only between goroutines.
package sequence

import (
	"fmt"
	"strings"
)

// Sequence is a validated DNA sequence over {A, C, G, T}.
type Sequence struct {
	Bases       string
	ID          string
	Description string
}

// New creates a new sequence with validation. Lowercase input is accepted
// and normalized.
func New(bases string) (*Sequence, error) {
	normalized := strings.ToUpper(bases)

	if len(normalized) == 0 {
		return nil, &EmptySequenceError{}
	}

	if err := Validate(normalized); err != nil {
		return nil, err
	}

	return &Sequence{Bases: normalized}, nil
}

// WithID creates a new sequence with an identifier. Validation errors are
// tagged with the identifier so callers can report the offending record.
func WithID(bases, id string) (*Sequence, error) {
	if len(id) == 0 {
		return nil, fmt.Errorf("ID cannot be empty")
	}

	seq, err := New(bases)
	if err != nil {
		switch e := err.(type) {
		case *InvalidSymbolError:
			e.SequenceID = id
		case *EmptySequenceError:
			e.SequenceID = id
		}
		return nil, err
	}

	seq.ID = id
	return seq, nil
}

// Name returns the identifier, or "sequence" when none was set.
func (s *Sequence) Name() string {
	if s.ID == "" {
		return "sequence"
	}
	return s.ID
}

// Len returns the length of the sequence.
func (s *Sequence) Len() int {
	return len(s.Bases)
}

// derive returns a sequence carrying s's metadata and the given bases.
func (s *Sequence) derive(bases []byte) *Sequence {
	return &Sequence{
		Bases:       string(bases),
		ID:          s.ID,
		Description: s.Description,
	}
}

// complementBase returns the Watson-Crick partner of a canonical base.
func complementBase(c byte) byte {
	switch c {
	case 'A':
		return 'T'
	case 'T':
		return 'A'
	case 'C':
		return 'G'
	case 'G':
		return 'C'
	default:
		return c
	}
}

// Reverse returns the reverse of the sequence without complementing it.
func (s *Sequence) Reverse() *Sequence {
	n := len(s.Bases)
	rev := make([]byte, n)
	for i := 0; i < n; i++ {
		rev[i] = s.Bases[n-1-i]
	}
	return s.derive(rev)
}

// ReverseComplement returns the reverse complement of the sequence.
// Applying it twice yields the original bases.
func (s *Sequence) ReverseComplement() *Sequence {
	n := len(s.Bases)
	rc := make([]byte, n)
	for i := 0; i < n; i++ {
		rc[i] = complementBase(s.Bases[n-1-i])
	}
	return s.derive(rc)
}

// RecodeRY maps purines (A, G) to R and pyrimidines (C, T) to Y, position
// by position.
func (s *Sequence) RecodeRY() *Sequence {
	ry := make([]byte, len(s.Bases))
	for i := 0; i < len(s.Bases); i++ {
		switch s.Bases[i] {
		case 'A', 'G':
			ry[i] = 'R'
		default:
			ry[i] = 'Y'
		}
	}
	return s.derive(ry)
}

// BaseCounts holds per-base totals.
type BaseCounts struct {
	A int
	C int
	G int
	T int
}

// BaseCounts returns the count of each base type.
func (s *Sequence) BaseCounts() BaseCounts {
	counts := BaseCounts{}

	for i := 0; i < len(s.Bases); i++ {
		switch s.Bases[i] {
		case 'A':
			counts.A++
		case 'C':
			counts.C++
		case 'G':
			counts.G++
		case 'T':
			counts.T++
		}
	}

	return counts
}

// GCContent calculates the proportion of G and C bases.
func (s *Sequence) GCContent() float64 {
	if len(s.Bases) == 0 {
		return 0.0
	}
	c := s.BaseCounts()
	return float64(c.G+c.C) / float64(len(s.Bases))
}

// ATContent calculates the proportion of A and T bases.
func (s *Sequence) ATContent() float64 {
	if len(s.Bases) == 0 {
		return 0.0
	}
	c := s.BaseCounts()
	return float64(c.A+c.T) / float64(len(s.Bases))
}
