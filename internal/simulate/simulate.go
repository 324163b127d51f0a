// Package simulate generates random nucleotide sequences and mutated copies
// with a known substitution rate, for benchmarking the estimator.
package simulate

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/aria-lang/afdist/internal/sequence"
)

const bases = "ACGT"

// RandomSequence returns n uniformly drawn bases.
func RandomSequence(rng *rand.Rand, n int) (*sequence.Sequence, error) {
	if n < 1 {
		return nil, &sequence.EmptySequenceError{}
	}
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = bases[rng.Intn(4)]
	}
	return sequence.New(string(buf))
}

// Mutate substitutes each position of s with probability rate by one of the
// three other bases, chosen uniformly. The copy keeps the ID of s.
func Mutate(rng *rand.Rand, s *sequence.Sequence, rate float64) (*sequence.Sequence, error) {
	if rate < 0 || rate > 1 {
		return nil, fmt.Errorf("mutation rate %v outside [0, 1]", rate)
	}
	buf := []byte(s.Bases)
	for i, c := range buf {
		if rng.Float64() >= rate {
			continue
		}
		cur := strings.IndexByte(bases, c)
		buf[i] = bases[(cur+1+rng.Intn(3))%4]
	}
	if s.ID == "" {
		return sequence.New(string(buf))
	}
	return sequence.WithID(string(buf), s.ID)
}

// Pair returns a random sequence of length n and a copy mutated at rate.
func Pair(rng *rand.Rand, n int, rate float64) (*sequence.Sequence, *sequence.Sequence, error) {
	a, err := RandomSequence(rng, n)
	if err != nil {
		return nil, nil, err
	}
	a.ID = "ancestor"
	b, err := Mutate(rng, a, rate)
	if err != nil {
		return nil, nil, err
	}
	b.ID = "mutant"
	return a, b, nil
}

// Family returns count independent mutants of one random ancestor of
// length n, named prefix1, prefix2, ...
func Family(rng *rand.Rand, prefix string, n, count int, rate float64) ([]*sequence.Sequence, error) {
	if count < 1 {
		return nil, fmt.Errorf("family size must be positive, got %d", count)
	}
	root, err := RandomSequence(rng, n)
	if err != nil {
		return nil, err
	}

	out := make([]*sequence.Sequence, 0, count)
	for i := 1; i <= count; i++ {
		m, err := Mutate(rng, root, rate)
		if err != nil {
			return nil, err
		}
		m.ID = fmt.Sprintf("%s%d", prefix, i)
		out = append(out, m)
	}
	return out, nil
}
