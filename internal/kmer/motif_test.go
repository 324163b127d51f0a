package kmer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMotifSet(t *testing.T, name string) *MotifSet {
	t.Helper()
	ms, err := LookupMotifSet(name)
	require.NoError(t, err)
	return ms
}

func TestBuiltinMotifSets(t *testing.T) {
	tests := []struct {
		name   string
		length int
		size   int
	}{
		{"rr", 2, 1},
		{"ry2", 2, 2},
		{"ry4", 4, 16},
		{"ry6", 6, 36},
		{"ry9", 9, 128},
		{"push", 9, 80},
		{"pull", 9, 48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms := mustMotifSet(t, tt.name)
			assert.Equal(t, tt.length, ms.Length)
			assert.Equal(t, tt.size, ms.Size())
		})
	}

	assert.Equal(t, []string{"pull", "push", "rr", "ry2", "ry4", "ry6", "ry9"}, MotifSetNames())
}

func TestPushPullPartitionRY9(t *testing.T) {
	push := mustMotifSet(t, "push")
	pull := mustMotifSet(t, "pull")
	ry9 := mustMotifSet(t, "ry9")

	for _, p := range push.Patterns() {
		assert.True(t, strings.HasPrefix(p, "R"))
	}
	for _, p := range pull.Patterns() {
		assert.True(t, strings.HasPrefix(p, "Y"))
	}
	assert.Equal(t, ry9.Size(), push.Size()+pull.Size())
}

func TestMotifSetAccepts(t *testing.T) {
	ms, err := NewMotifSet("test", []string{"RY", "yr"})
	require.NoError(t, err)

	tests := []struct {
		word string
		want bool
	}{
		{"AC", true},   // RY
		{"GTAA", true}, // RY...
		{"CA", true},   // YR
		{"AA", false},  // RR
		{"TT", false},  // YY
		{"A", false},   // shorter than prefix
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, ms.Accepts(tt.word))
		})
	}
}

func TestNewMotifSetErrors(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
	}{
		{"empty set", nil},
		{"mixed lengths", []string{"RY", "RYR"}},
		{"nucleotide symbols", []string{"AC"}},
		{"blank pattern", []string{"  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMotifSet("bad", tt.patterns)
			require.Error(t, err)
			assert.IsType(t, &InvalidMotifError{}, err)
		})
	}
}

func TestLookupMotifSetUnknown(t *testing.T) {
	_, err := LookupMotifSet("ry4")
	require.Error(t, err)
	assert.IsType(t, &UnknownMotifSetError{}, err)
	assert.Contains(t, err.Error(), "motif_set")
}
