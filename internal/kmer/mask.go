package kmer

import (
	"math/rand"
	"sort"
	"strconv"
)

// Mask is a binary inclusion pattern over a length-k window: '1' keeps the
// position, '0' skips it.
type Mask string

// ParseMask validates s as a mask for word length k.
func ParseMask(s string, k int) (Mask, error) {
	if len(s) != k {
		return "", &InvalidMaskError{K: k, Mask: s, Reason: "length " + strconv.Itoa(len(s)) + " does not match k"}
	}
	weight := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '1':
			weight++
		case '0':
		default:
			return "", &InvalidMaskError{K: k, Mask: s, Reason: "only '0' and '1' are allowed"}
		}
	}
	if weight == 0 {
		return "", &InvalidMaskError{K: k, Mask: s, Reason: "at least one position must be retained"}
	}
	return Mask(s), nil
}

// Weight returns the number of retained positions.
func (m Mask) Weight() int {
	w := 0
	for i := 0; i < len(m); i++ {
		if m[i] == '1' {
			w++
		}
	}
	return w
}

// Positions returns the offsets of the retained positions in order.
func (m Mask) Positions() []int {
	pos := make([]int, 0, len(m))
	for i := 0; i < len(m); i++ {
		if m[i] == '1' {
			pos = append(pos, i)
		}
	}
	return pos
}

// MaskSource supplies the gapped-word mask used at word length k. The same
// k must always yield the same mask.
type MaskSource interface {
	MaskFor(k int) (Mask, error)
}

// FixedMasks is an explicit, caller-supplied mask per word length.
type FixedMasks map[int]string

// MaskFor returns the configured mask for k.
func (f FixedMasks) MaskFor(k int) (Mask, error) {
	s, ok := f[k]
	if !ok {
		return "", &InvalidMaskError{K: k, Reason: "no mask configured for this word length"}
	}
	return ParseMask(s, k)
}

// Lengths returns the configured word lengths in ascending order.
func (f FixedMasks) Lengths() []int {
	ks := make([]int, 0, len(f))
	for k := range f {
		ks = append(ks, k)
	}
	sort.Ints(ks)
	return ks
}

// SeededMasks derives a pseudo-random mask for each k from a fixed seed.
// Each k gets its own generator so the mask for k does not depend on which
// other lengths were requested before it.
type SeededMasks struct {
	Seed int64
}

// MaskFor generates the mask for k. If every position comes out '0' the
// first position is retained.
func (s SeededMasks) MaskFor(k int) (Mask, error) {
	if k <= 0 {
		return "", &InvalidWordLengthError{K: k}
	}

	rng := rand.New(rand.NewSource(s.Seed*1000003 + int64(k)))
	b := make([]byte, k)
	weight := 0
	for i := range b {
		if rng.Intn(2) == 1 {
			b[i] = '1'
			weight++
		} else {
			b[i] = '0'
		}
	}
	if weight == 0 {
		b[0] = '1'
	}
	return Mask(b), nil
}
