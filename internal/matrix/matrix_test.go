package matrix

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-lang/afdist/internal/sequence"
)

func makeSeqs(t *testing.T, ids ...string) []*sequence.Sequence {
	t.Helper()
	out := make([]*sequence.Sequence, len(ids))
	for i, id := range ids {
		s, err := sequence.WithID("ACGTACGTAC"[:4+i%6], id)
		require.NoError(t, err)
		out[i] = s
	}
	return out
}

// lengthGap is a deterministic asymmetric stand-in for the pair pipeline.
func lengthGap(s1, s2 *sequence.Sequence) (float64, error) {
	return float64(s2.Len()-s1.Len()) / 10, nil
}

func TestBuild(t *testing.T) {
	seqs := makeSeqs(t, "a", "b", "c", "d", "e")

	var calls int32
	b := &Builder{
		Workers:  3,
		Distance: lengthGap,
		OnPair:   func() { atomic.AddInt32(&calls, 1) },
	}

	m, err := b.Build(context.Background(), seqs)
	require.NoError(t, err)
	require.Equal(t, 5, m.Size())
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, m.Names())
	assert.Equal(t, int32(20), atomic.LoadInt32(&calls))

	for i := range seqs {
		assert.Equal(t, 0.0, m.At(i, i))
		for j := range seqs {
			if i != j {
				want, _ := lengthGap(seqs[i], seqs[j])
				assert.Equal(t, want, m.At(i, j), "d(%d,%d)", i, j)
			}
		}
	}
	assert.InDelta(t, 0.8, m.Asymmetry(), 1e-12)
	assert.Len(t, m.OffDiagonal(), 20)
}

func TestBuildResultIndependentOfWorkers(t *testing.T) {
	seqs := makeSeqs(t, "a", "b", "c", "d", "e", "f", "g")

	var ref *Matrix
	for _, workers := range []int{0, 1, 2, 8, 64} {
		m, err := (&Builder{Workers: workers, Distance: lengthGap}).Build(context.Background(), seqs)
		require.NoError(t, err)
		if ref == nil {
			ref = m
			continue
		}
		for i := range seqs {
			assert.Equal(t, ref.Row(i), m.Row(i), "workers=%d row=%d", workers, i)
		}
	}
}

func TestBuildInsufficientInput(t *testing.T) {
	b := &Builder{Distance: lengthGap}
	for _, n := range []int{0, 1} {
		_, err := b.Build(context.Background(), makeSeqs(t, []string{"a"}[:n]...))
		var inErr *InsufficientInputError
		require.ErrorAs(t, err, &inErr)
		assert.Equal(t, n, inErr.Count)
	}
}

func TestBuildFailFast(t *testing.T) {
	seqs := makeSeqs(t, "a", "b", "c", "d", "e", "f", "g", "h")
	boom := errors.New("boom")

	var calls int32
	logger, hook := test.NewNullLogger()
	b := &Builder{
		Workers: 2,
		Distance: func(s1, s2 *sequence.Sequence) (float64, error) {
			atomic.AddInt32(&calls, 1)
			if s1.ID == "a" && s2.ID == "c" {
				return 0, boom
			}
			time.Sleep(time.Millisecond)
			return 1, nil
		},
		Logger: logger,
	}

	m, err := b.Build(context.Background(), seqs)
	assert.Nil(t, m)
	require.ErrorIs(t, err, boom)
	assert.Less(t, int(atomic.LoadInt32(&calls)), 56, "remaining pairs should be cancelled")

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestBuildContextCancelled(t *testing.T) {
	seqs := makeSeqs(t, "a", "b", "c")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m, err := (&Builder{Workers: 2, Distance: lengthGap}).Build(ctx, seqs)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildLogsTiming(t *testing.T) {
	logger, hook := test.NewNullLogger()
	b := &Builder{Workers: 2, Distance: lengthGap, Logger: logger}

	_, err := b.Build(context.Background(), makeSeqs(t, "a", "b", "c"))
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "distance matrix built", entry.Message)
	assert.Equal(t, 6, entry.Data["pairs"])
	assert.Contains(t, entry.Data, "per_pair")
	// lengthGap is antisymmetric, so the off-diagonal cancels out.
	assert.InDelta(t, 0.0, entry.Data["mean"], 1e-12)
}

func TestWritePHYLIP(t *testing.T) {
	m := newMatrix([]string{"s1", "s2"})
	m.values[0][1] = 0.123456
	m.values[1][0] = 0.123456

	var buf bytes.Buffer
	require.NoError(t, WritePHYLIP(&buf, m))
	assert.Equal(t, "2\ns1        0.000000 0.123456\ns2        0.123456 0.000000\n", buf.String())
}

func TestWritePHYLIPTruncatesNames(t *testing.T) {
	m := newMatrix([]string{"averyverylongname", "x"})
	var buf bytes.Buffer
	require.NoError(t, WritePHYLIP(&buf, m))
	assert.Contains(t, buf.String(), "averyveryl0.000000 0.000000\n")
	assert.Contains(t, buf.String(), fmt.Sprintf("%-10s0.000000", "x"))
}

func TestWritePairs(t *testing.T) {
	m := newMatrix([]string{"a", "b"})
	m.values[0][1] = 0.25
	m.values[1][0] = 0.5

	var buf bytes.Buffer
	require.NoError(t, WritePairs(&buf, m))
	assert.Equal(t, "a\tb\t0.250000\nb\ta\t0.500000\n", buf.String())
}

func TestMarshalJSON(t *testing.T) {
	m := newMatrix([]string{"a", "b"})
	m.values[0][1] = 0.5

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"names":["a","b"],"distances":[[0,0.5],[0,0]]}`, string(data))
}
