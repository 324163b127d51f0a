// Package kmer provides word (k-mer) frequency tables and the word-matching
// strategies used to score a pair of sequences at a given word length.
//
// A Counter is the per-sequence frequency table. A Matcher turns two
// sequences and a word length into a single non-negative match score; the
// three implementations differ only in which words they extract and how
// shared words are combined.
package kmer

// Counter is a word frequency table for one sequence (or a sequence and its
// reverse complement). Counts are never negative. Every key has length K,
// except after CountMasked, where keys have the mask weight.
type Counter struct {
	K      int
	Counts map[string]int
	Total  int
}

// NewCounter creates a new counter for words of length k.
func NewCounter(k int) (*Counter, error) {
	if k <= 0 {
		return nil, &InvalidWordLengthError{K: k}
	}

	return &Counter{
		K:      k,
		Counts: make(map[string]int),
	}, nil
}

// CountKMers counts every length-k window of bases.
func (c *Counter) CountKMers(bases string) {
	for i := 0; i+c.K <= len(bases); i++ {
		c.Counts[bases[i:i+c.K]]++
		c.Total++
	}
}

// CountFiltered counts the length-k windows of bases accepted by keep.
func (c *Counter) CountFiltered(bases string, keep func(word string) bool) {
	for i := 0; i+c.K <= len(bases); i++ {
		word := bases[i : i+c.K]
		if keep(word) {
			c.Counts[word]++
			c.Total++
		}
	}
}

// CountMasked counts every length-k window of bases projected onto the
// retained positions of mask. The mask length must equal c.K.
func (c *Counter) CountMasked(bases string, mask Mask) {
	positions := mask.Positions()
	buf := make([]byte, len(positions))
	for i := 0; i+c.K <= len(bases); i++ {
		for j, p := range positions {
			buf[j] = bases[i+p]
		}
		c.Counts[string(buf)]++
		c.Total++
	}
}

// GetCount returns the count of word, or 0 when it was never seen. Words
// are stored exactly as extracted from the canonical upper-case bases.
func (c *Counter) GetCount(word string) int {
	return c.Counts[word]
}

// UniqueCount returns the number of distinct words.
func (c *Counter) UniqueCount() int {
	return len(c.Counts)
}
