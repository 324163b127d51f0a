package curve

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/aria-lang/afdist/internal/kmer"
	"github.com/aria-lang/afdist/internal/sequence"
)

// Policy selects how the chance-match background B(k) is estimated.
type Policy int

const (
	// None subtracts nothing.
	None Policy = iota
	// ReversedControl re-runs the matcher against the reversed (not
	// complemented) second sequence, a non-homologous control of the same
	// length and composition.
	ReversedControl
	// ExpectedRandom uses the closed form 2·L1·L2·(1/4)^k.
	ExpectedRandom
)

var policyNames = map[string]Policy{
	"none":             None,
	"reversed_control": ReversedControl,
	"expected_random":  ExpectedRandom,
}

func (p Policy) String() string {
	switch p {
	case None:
		return "none"
	case ReversedControl:
		return "reversed_control"
	case ExpectedRandom:
		return "expected_random"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// UnknownBackgroundPolicyError is returned for an unrecognized policy name.
type UnknownBackgroundPolicyError struct {
	Key  string
	Name string
}

func (e *UnknownBackgroundPolicyError) Error() string {
	return fmt.Sprintf("%s: unknown background policy %q (want one of %s)",
		e.Key, e.Name, strings.Join(PolicyNames(), ", "))
}

// PolicyNames returns the accepted policy names in sorted order.
func PolicyNames() []string {
	names := make([]string, 0, len(policyNames))
	for n := range policyNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParsePolicy resolves a configuration name into a Policy. The empty string
// selects None.
func ParsePolicy(name string) (Policy, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return None, nil
	}
	p, ok := policyNames[n]
	if !ok {
		return None, &UnknownBackgroundPolicyError{Key: "background_policy", Name: name}
	}
	return p, nil
}

// ExpectedRandomMatches returns 2·L1·L2·(1/4)^k, the expected number of
// chance word matches between two random sequences of lengths l1 and l2.
func ExpectedRandomMatches(l1, l2, k int) float64 {
	return 2 * float64(l1) * float64(l2) * math.Pow(0.25, float64(k))
}

// background computes B(k) for one word length. reversed is the reversed
// second sequence, precomputed once per curve.
func (p Policy) background(m kmer.Matcher, seq1, seq2, reversed *sequence.Sequence, k int, doubleStrand bool) (float64, error) {
	switch p {
	case ReversedControl:
		return m.CountMatches(seq1, reversed, k, doubleStrand)
	case ExpectedRandom:
		return ExpectedRandomMatches(seq1.Len(), seq2.Len(), k), nil
	default:
		return 0, nil
	}
}
