package kmer

import (
	"sort"
	"strings"
)

// Strategy names accepted by NewMatcher.
const (
	StrategyPlain  = "plain"
	StrategyGapped = "gapped"
	StrategyMotif  = "motif"
)

// strategyAliases maps accepted spellings to canonical strategy names.
var strategyAliases = map[string]string{
	"plain":        StrategyPlain,
	"basic_kmer":   StrategyPlain,
	"gapped":       StrategyGapped,
	"spaced_word":  StrategyGapped,
	"motif":        StrategyMotif,
	"motif_filter": StrategyMotif,
}

// StrategyNames returns every accepted strategy spelling.
func StrategyNames() []string {
	names := make([]string, 0, len(strategyAliases))
	for n := range strategyAliases {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// MatcherOptions selects and parameterizes a word-matching strategy.
type MatcherOptions struct {
	Strategy string

	// Motif strategy: a built-in set name, or custom Motifs (which win
	// when both are set; MotifSet then only names the custom set).
	MotifSet string
	Motifs   []string

	// Gapped strategy: explicit masks per k, or a seed for derived masks.
	// One of the two is required.
	Masks    map[int]string
	MaskSeed *int64
}

// NewMatcher resolves opts into a Matcher.
func NewMatcher(opts MatcherOptions) (Matcher, error) {
	name, ok := strategyAliases[strings.ToLower(strings.TrimSpace(opts.Strategy))]
	if !ok {
		return nil, &UnknownStrategyError{Key: "word_matching_strategy", Name: opts.Strategy}
	}

	switch name {
	case StrategyGapped:
		switch {
		case len(opts.Masks) > 0:
			masks := FixedMasks(opts.Masks)
			for _, k := range masks.Lengths() {
				if _, err := masks.MaskFor(k); err != nil {
					return nil, err
				}
			}
			return GappedMatcher{Masks: masks}, nil
		case opts.MaskSeed != nil:
			return GappedMatcher{Masks: SeededMasks{Seed: *opts.MaskSeed}}, nil
		default:
			return nil, &InvalidMaskError{Reason: "gapped strategy needs masks or mask_seed"}
		}

	case StrategyMotif:
		if len(opts.Motifs) > 0 {
			setName := opts.MotifSet
			if setName == "" {
				setName = "custom"
			}
			ms, err := NewMotifSet(setName, opts.Motifs)
			if err != nil {
				return nil, err
			}
			return MotifMatcher{Motifs: ms}, nil
		}
		setName := opts.MotifSet
		if setName == "" {
			setName = "ry9"
		}
		ms, err := LookupMotifSet(setName)
		if err != nil {
			return nil, err
		}
		return MotifMatcher{Motifs: ms}, nil

	default:
		return PlainMatcher{}, nil
	}
}
