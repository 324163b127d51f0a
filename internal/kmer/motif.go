package kmer

import (
	"sort"
	"strings"
)

// MotifSet is a fixed set of purine/pyrimidine prefix patterns of a common
// length. A word passes the set when the RY recoding of its first Length
// symbols is one of the patterns.
type MotifSet struct {
	Name     string
	Length   int
	prefixes map[string]struct{}
}

// NewMotifSet builds a motif set from RY patterns. Patterns are
// case-insensitive and must all have the same non-zero length.
func NewMotifSet(name string, patterns []string) (*MotifSet, error) {
	if len(patterns) == 0 {
		return nil, &InvalidMotifError{Reason: "motif set " + name + " is empty"}
	}

	ms := &MotifSet{Name: name, prefixes: make(map[string]struct{}, len(patterns))}
	for _, p := range patterns {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p == "" {
			return nil, &InvalidMotifError{Pattern: p, Reason: "empty pattern"}
		}
		if ms.Length == 0 {
			ms.Length = len(p)
		}
		if len(p) != ms.Length {
			return nil, &InvalidMotifError{Pattern: p, Reason: "all patterns in a set must have the same length"}
		}
		if strings.Trim(p, "RY") != "" {
			return nil, &InvalidMotifError{Pattern: p, Reason: "only R and Y are allowed"}
		}
		ms.prefixes[p] = struct{}{}
	}
	return ms, nil
}

// Size returns the number of distinct patterns.
func (m *MotifSet) Size() int {
	return len(m.prefixes)
}

// Patterns returns the patterns in lexicographic order.
func (m *MotifSet) Patterns() []string {
	out := make([]string, 0, len(m.prefixes))
	for p := range m.prefixes {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Accepts reports whether word (over A, C, G, T) starts with an accepted
// RY prefix. Words shorter than the prefix length are never accepted.
func (m *MotifSet) Accepts(word string) bool {
	if len(word) < m.Length {
		return false
	}
	var buf [16]byte
	prefix := buf[:0]
	for i := 0; i < m.Length; i++ {
		switch word[i] {
		case 'A', 'G':
			prefix = append(prefix, 'R')
		case 'C', 'T':
			prefix = append(prefix, 'Y')
		default:
			return false
		}
	}
	_, ok := m.prefixes[string(prefix)]
	return ok
}

// ry9Patterns is the 9-symbol purine/pyrimidine prefix table.
var ry9Patterns = []string{
	"RRRRRRRRR", "RRRRRRYRR", "RRRRRRYRY", "RRRRRRYYR", "RRRRRRYYY", "RRRYRYRRR",
	"RRRYRYYRR", "RRRYRYYRY", "RRRYRYYYR", "RRRYRYYYY", "RRYRRRRRR", "RRYRRRYRR",
	"RRYRRRYRY", "RRYRRRYYR", "RRYRRYRRR", "RRYRRYRRY", "RRYRRYRYR", "RRYRRYYRR",
	"RRYRRYYRY", "RRYRRYYYR", "RRYRRYYYY", "RRYRYRYYR", "RRYRYRYYY", "RRYYRYRRR",
	"RRYYRYYRR", "RRYYRYYRY", "RRYYRYYYR", "RRYYRYYYY", "RRYYYRYRR", "RRYYYYRRR",
	"RRYYYYYRR", "RRYYYYYYR", "RYRRRRYRR", "RYRRRRYRY", "RYRRRRYYR", "RYRRRRYYY",
	"RYRRRYYYR", "RYRRRYYYY", "RYRRYRYYR", "RYRRYRYYY", "RYRYRRYRR", "RYRYRRYRY",
	"RYRYRRYYR", "RYRYRRYYY", "RYRYRYRRR", "RYRYRYRRY", "RYRYRYRYR", "RYYRRRRRR",
	"RYYRRRRRY", "RYYRRRYRR", "RYYRRRYRY", "RYYRRRYYR", "RYYRRRYYY", "RYYRRYRRR",
	"RYYRRYRRY", "RYYRRYRYR", "RYYRRYYRR", "RYYRRYYRY", "RYYRRYYYR", "RYYRRYYYY",
	"RYYRYRYRR", "RYYRYRYRY", "RYYRYRYYR", "RYYRYRYYY", "RYYYRRRRR", "RYYYRRRRY",
	"RYYYRRYRR", "RYYYRRYRY", "RYYYRRYYR", "RYYYRRYYY", "RYYYRYRYR", "RYYYRYYRR",
	"RYYYRYYRY", "RYYYRYYYR", "RYYYRYYYY", "RYYYYRYRR", "RYYYYRYRY", "RYYYYRYYR",
	"RYYYYRYYY", "RYYYYYYYR", "YRRRRRYRR", "YRRRRRYRY", "YRRRRRYYR", "YRRRRRYYY",
	"YRRYRYRRR", "YRYRRRRRR", "YRYRRRYRR", "YRYRRRYRY", "YRYRRRYYR", "YRYRYRYYR",
	"YRYRYRYYY", "YRYYRYRRR", "YRYYRYYRR", "YRYYRYYRY", "YRYYRYYYR", "YRYYRYYYY",
	"YRYYYRYRR", "YRYYYYRRR", "YRYYYYYRR", "YRYYYYYYR", "YYRRRRYRR", "YYRRRRYRY",
	"YYRRRRYYR", "YYRRRRYYY", "YYRRYRYYR", "YYRRYRYYY", "YYRYRRYRR", "YYRYRRYRY",
	"YYRYRRYYR", "YYRYRRYYY", "YYRYRYRRR", "YYYRRRYRR", "YYYRRRYRY", "YYYRRRYYR",
	"YYYRRRYYY", "YYYRYRYYR", "YYYRYRYYY", "YYYYRRRRR", "YYYYRRYRR", "YYYYRRYRY",
	"YYYYRRYYR", "YYYYRRYYY", "YYYYYRYRR", "YYYYYRYRY", "YYYYYRYYR", "YYYYYRYYY",
	"YYYYYYYYR", "YYYYYYYYY",
}

// builtinMotifSets maps a configuration name to its pattern list. Only ry9
// is a stored table; ry4 and ry6 are its distinct prefixes and push/pull
// split it on the first symbol.
var builtinMotifSets = map[string]func() []string{
	"rr":  func() []string { return []string{"RR"} },
	"ry2": func() []string { return []string{"RR", "YY"} },
	"ry4": func() []string { return truncatePatterns(ry9Patterns, 4) },
	"ry6": func() []string { return truncatePatterns(ry9Patterns, 6) },
	"ry9": func() []string { return ry9Patterns },
	"push": func() []string {
		return selectPatterns(ry9Patterns, func(p string) bool { return p[0] == 'R' })
	},
	"pull": func() []string {
		return selectPatterns(ry9Patterns, func(p string) bool { return p[0] == 'Y' })
	},
}

// MotifSetNames returns the built-in motif set names.
func MotifSetNames() []string {
	names := make([]string, 0, len(builtinMotifSets))
	for name := range builtinMotifSets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupMotifSet returns the built-in motif set registered under name.
func LookupMotifSet(name string) (*MotifSet, error) {
	patterns, ok := builtinMotifSets[strings.ToLower(name)]
	if !ok {
		return nil, &UnknownMotifSetError{Name: name}
	}
	return NewMotifSet(strings.ToLower(name), patterns())
}

func truncatePatterns(patterns []string, n int) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range patterns {
		head := p[:n]
		if _, dup := seen[head]; dup {
			continue
		}
		seen[head] = struct{}{}
		out = append(out, head)
	}
	return out
}

func selectPatterns(patterns []string, keep func(string) bool) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
