package kmer

import (
	"github.com/aria-lang/afdist/internal/sequence"
)

// Matcher scores the words shared by two sequences at word length k.
//
// Implementations must be safe for concurrent use: the matrix builder
// calls one Matcher from many goroutines.
type Matcher interface {
	// CountMatches returns a non-negative match score. k must lie in
	// [1, min(len(seq1), len(seq2))].
	CountMatches(seq1, seq2 *sequence.Sequence, k int, doubleStrand bool) (float64, error)
	Name() string
}

func checkWordLength(seq1, seq2 *sequence.Sequence, k int) error {
	max := seq1.Len()
	if seq2.Len() < max {
		max = seq2.Len()
	}
	if k < 1 || k > max {
		return &InvalidWordLengthError{K: k, Max: max}
	}
	return nil
}

// productScore returns Σ c1(w)·c2(w) over words present in both tables.
func productScore(t1, t2 *Counter) float64 {
	small, large := t1, t2
	if small.UniqueCount() > large.UniqueCount() {
		small, large = large, small
	}
	var score float64
	for word, n := range small.Counts {
		score += float64(n) * float64(large.GetCount(word))
	}
	return score
}

// halfMinScore returns Σ 0.5·min(c1(w), c2(w)) over shared words.
func halfMinScore(t1, t2 *Counter) float64 {
	small, large := t1, t2
	if small.UniqueCount() > large.UniqueCount() {
		small, large = large, small
	}
	var score float64
	for word, n := range small.Counts {
		if m := large.GetCount(word); m > 0 {
			if m < n {
				n = m
			}
			score += 0.5 * float64(n)
		}
	}
	return score
}

// PlainMatcher scores contiguous k-mers.
type PlainMatcher struct{}

// Name implements Matcher.
func (PlainMatcher) Name() string { return StrategyPlain }

// CountMatches implements Matcher. In double-strand mode only the first
// sequence contributes its reverse complement, so a forward/reverse pair is
// counted once.
func (PlainMatcher) CountMatches(seq1, seq2 *sequence.Sequence, k int, doubleStrand bool) (float64, error) {
	if err := checkWordLength(seq1, seq2, k); err != nil {
		return 0, err
	}

	t1, _ := NewCounter(k)
	t1.CountKMers(seq1.Bases)
	if doubleStrand {
		t1.CountKMers(seq1.ReverseComplement().Bases)
	}

	t2, _ := NewCounter(k)
	t2.CountKMers(seq2.Bases)

	return productScore(t1, t2), nil
}

// GappedMatcher scores spaced words: each length-k window is reduced to the
// positions retained by the mask for k.
type GappedMatcher struct {
	Masks MaskSource
}

// Name implements Matcher.
func (GappedMatcher) Name() string { return StrategyGapped }

// CountMatches implements Matcher with the same strand handling as
// PlainMatcher.
func (g GappedMatcher) CountMatches(seq1, seq2 *sequence.Sequence, k int, doubleStrand bool) (float64, error) {
	if err := checkWordLength(seq1, seq2, k); err != nil {
		return 0, err
	}

	mask, err := g.Masks.MaskFor(k)
	if err != nil {
		return 0, err
	}

	t1, _ := NewCounter(k)
	t1.CountMasked(seq1.Bases, mask)
	if doubleStrand {
		t1.CountMasked(seq1.ReverseComplement().Bases, mask)
	}

	t2, _ := NewCounter(k)
	t2.CountMasked(seq2.Bases, mask)

	return productScore(t1, t2), nil
}

// MotifMatcher counts only k-mers whose RY prefix belongs to Motifs and
// scores shared words by half their minimum count.
type MotifMatcher struct {
	Motifs *MotifSet
}

// Name implements Matcher.
func (m MotifMatcher) Name() string { return StrategyMotif + ":" + m.Motifs.Name }

// CountMatches implements Matcher. In double-strand mode both tables include
// the reverse complement of their sequence; the 0.5 factor compensates for
// each complementary pair being seen twice.
func (m MotifMatcher) CountMatches(seq1, seq2 *sequence.Sequence, k int, doubleStrand bool) (float64, error) {
	if err := checkWordLength(seq1, seq2, k); err != nil {
		return 0, err
	}

	t1 := m.table(seq1, k, doubleStrand)
	t2 := m.table(seq2, k, doubleStrand)
	return halfMinScore(t1, t2), nil
}

func (m MotifMatcher) table(seq *sequence.Sequence, k int, doubleStrand bool) *Counter {
	t, _ := NewCounter(k)
	t.CountFiltered(seq.Bases, m.Motifs.Accepts)
	if doubleStrand {
		t.CountFiltered(seq.ReverseComplement().Bases, m.Motifs.Accepts)
	}
	return t
}
