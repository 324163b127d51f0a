// Package curve builds the word-length decay curve F(k) for a pair of
// sequences.
//
// For each k the configured matcher gives the match score M(k); a
// background policy gives the chance level B(k); the curve records
// F(k) = ln(M(k) − B(k)). Points where the background swallows the signal
// are kept and marked undefined instead of being dropped, so the k values
// of a curve are always exactly the ones that were requested.
package curve

import (
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/aria-lang/afdist/internal/kmer"
	"github.com/aria-lang/afdist/internal/sequence"
)

// Point is one k of a decay curve.
type Point struct {
	K          int     `json:"k"`
	Match      float64 `json:"match"`
	Background float64 `json:"background"`
	// Value is Match − Background.
	Value float64 `json:"value"`
	// F is ln(Value), or NaN when the point is undefined.
	F       float64 `json:"-"`
	Defined bool    `json:"defined"`
}

// Curve is an ordered decay curve with strictly increasing K.
type Curve struct {
	Strategy     string  `json:"strategy"`
	Background   string  `json:"background"`
	DoubleStrand bool    `json:"double_strand"`
	Points       []Point `json:"points"`
}

// Ks returns the word lengths of the curve in order.
func (c *Curve) Ks() []int {
	ks := make([]int, len(c.Points))
	for i, p := range c.Points {
		ks[i] = p.K
	}
	return ks
}

// Defined returns only the defined points.
func (c *Curve) Defined() []Point {
	out := make([]Point, 0, len(c.Points))
	for _, p := range c.Points {
		if p.Defined {
			out = append(out, p)
		}
	}
	return out
}

// UndefinedCount returns the number of undefined points.
func (c *Curve) UndefinedCount() int {
	return len(c.Points) - len(c.Defined())
}

// Format renders the curve as a text table; undefined values print as NaN.
func (c *Curve) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# strategy=%s background=%s double_strand=%v undefined=%d\n",
		c.Strategy, c.Background, c.DoubleStrand, c.UndefinedCount())
	sb.WriteString("k\tmatch\tbackground\tF(k)\n")
	for _, p := range c.Points {
		fmt.Fprintf(&sb, "%d\t%.4f\t%.4f\t%.6f\n", p.K, p.Match, p.Background, p.F)
	}
	return sb.String()
}

// Builder sweeps word lengths with a matcher and a background policy. A
// Builder holds no per-call state and may be shared between goroutines.
type Builder struct {
	Matcher      kmer.Matcher
	Background   Policy
	DoubleStrand bool
	Logger       logrus.FieldLogger
}

// Build computes the curve of seq1 against seq2 over ks. Word lengths that
// the matcher rejects fail the whole build; no k is skipped.
func (b *Builder) Build(seq1, seq2 *sequence.Sequence, ks []int) (*Curve, error) {
	if err := validateKs(ks); err != nil {
		return nil, err
	}

	var reversed *sequence.Sequence
	if b.Background == ReversedControl {
		reversed = seq2.Reverse()
	}

	c := &Curve{
		Strategy:     b.Matcher.Name(),
		Background:   b.Background.String(),
		DoubleStrand: b.DoubleStrand,
		Points:       make([]Point, 0, len(ks)),
	}

	for _, k := range ks {
		m, err := b.Matcher.CountMatches(seq1, seq2, k, b.DoubleStrand)
		if err != nil {
			return nil, fmt.Errorf("counting matches at k=%d: %w", k, err)
		}

		bg, err := b.Background.background(b.Matcher, seq1, seq2, reversed, k, b.DoubleStrand)
		if err != nil {
			return nil, fmt.Errorf("counting %s background at k=%d: %w", b.Background, k, err)
		}

		p := Point{K: k, Match: m, Background: bg, Value: m - bg, F: math.NaN()}
		if m > bg {
			p.F = math.Log(m - bg)
			p.Defined = true
		} else if b.Logger != nil {
			b.Logger.WithFields(logrus.Fields{
				"k":          k,
				"match":      m,
				"background": bg,
				"seq1":       seq1.Name(),
				"seq2":       seq2.Name(),
			}).Debug("background-subtracted count is not positive; point left undefined")
		}
		c.Points = append(c.Points, p)
	}

	return c, nil
}
