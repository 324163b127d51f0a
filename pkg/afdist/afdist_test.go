package afdist

import (
	"bytes"
	"context"
	"math/rand"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-lang/afdist/internal/simulate"
)

func TestPairDistanceIdentical(t *testing.T) {
	s1, err := NewSequenceWithID("ACGTACGTACGT", "s1")
	require.NoError(t, err)
	s2, err := NewSequenceWithID("acgtacgtacgt", "s2")
	require.NoError(t, err)

	res, err := PairDistance(s1, s2, DefaultConfig(), nil)
	require.NoError(t, err)
	assert.LessOrEqual(t, res.Distance, 0.01)
}

func TestBuildCurve(t *testing.T) {
	s, err := NewSequence("ACGTACGTACGT")
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.DoubleStrand = false
	cfg.KValuesToReport = []int{3}

	c, err := BuildCurve(s, s, cfg, nil)
	require.NoError(t, err)
	require.Len(t, c.Points, 1)
	assert.Equal(t, 26.0, c.Points[0].Match)
}

func TestBuildMatrix(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	seqs, err := simulate.Family(rng, "sim", 2000, 4, 0.05)
	require.NoError(t, err)

	var pairs int32
	cfg := DefaultConfig()
	cfg.Workers = 2
	m, err := BuildMatrix(context.Background(), seqs, cfg, &Options{
		OnPair: func() { atomic.AddInt32(&pairs, 1) },
	})
	require.NoError(t, err)
	assert.Equal(t, 4, m.Size())
	assert.Equal(t, int32(12), pairs)

	for i := 0; i < m.Size(); i++ {
		assert.Equal(t, 0.0, m.At(i, i))
		for j := 0; j < m.Size(); j++ {
			if i != j {
				// Siblings are two independent 5% mutation steps apart.
				assert.InDelta(t, 0.11, m.At(i, j), 0.07)
			}
		}
	}

	var buf bytes.Buffer
	require.NoError(t, WritePHYLIP(&buf, m))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "4", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "sim1      0.000000 "))
}

func TestBuildMatrixRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WordMatchingStrategy = "nope"
	_, err := BuildMatrix(context.Background(), nil, cfg, nil)
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "1.0.0", Version())
	assert.Contains(t, Info(), Version())
}
