// Package stats provides summaries of sequence sets and of estimated
// distances.
package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/aria-lang/afdist/internal/sequence"
)

// SequenceStats describes a single sequence.
type SequenceStats struct {
	ID        string  `json:"id"`
	Length    int     `json:"length"`
	GCContent float64 `json:"gc_content"`
	ATContent float64 `json:"at_content"`
	ACount    int     `json:"a"`
	CCount    int     `json:"c"`
	GCount    int     `json:"g"`
	TCount    int     `json:"t"`
}

// FromSequence calculates statistics for a sequence.
func FromSequence(seq *sequence.Sequence) *SequenceStats {
	counts := seq.BaseCounts()
	return &SequenceStats{
		ID:        seq.Name(),
		Length:    seq.Len(),
		GCContent: seq.GCContent(),
		ATContent: seq.ATContent(),
		ACount:    counts.A,
		CCount:    counts.C,
		GCount:    counts.G,
		TCount:    counts.T,
	}
}

// ATRichness returns the AT content as a percentage.
func (s *SequenceStats) ATRichness() float64 {
	return s.ATContent * 100
}

func (s *SequenceStats) String() string {
	return fmt.Sprintf("%s\tlength=%d\tGC=%.2f%%\tAT=%.2f%%", s.ID, s.Length, s.GCContent*100, s.ATRichness())
}

// SequenceSetStats aggregates a collection of sequences.
type SequenceSetStats struct {
	Count         int     `json:"count"`
	TotalBases    int     `json:"total_bases"`
	MinLength     int     `json:"min_length"`
	MaxLength     int     `json:"max_length"`
	MeanLength    float64 `json:"mean_length"`
	StdDevLength  float64 `json:"stddev_length"`
	MedianLength  float64 `json:"median_length"`
	MeanGCContent float64 `json:"mean_gc_content"`
	N50           int     `json:"n50"`
}

// FromSequences calculates statistics for a non-empty collection.
func FromSequences(sequences []*sequence.Sequence) (*SequenceSetStats, error) {
	if len(sequences) == 0 {
		return nil, fmt.Errorf("sequence list cannot be empty")
	}

	lengths := make([]float64, len(sequences))
	gc := make([]float64, len(sequences))
	total := 0
	for i, seq := range sequences {
		lengths[i] = float64(seq.Len())
		gc[i] = seq.GCContent()
		total += seq.Len()
	}

	mean, std := stat.MeanStdDev(lengths, nil)
	if len(lengths) < 2 {
		std = 0
	}

	sorted := append([]float64(nil), lengths...)
	sort.Float64s(sorted)

	return &SequenceSetStats{
		Count:         len(sequences),
		TotalBases:    total,
		MinLength:     int(sorted[0]),
		MaxLength:     int(sorted[len(sorted)-1]),
		MeanLength:    mean,
		StdDevLength:  std,
		MedianLength:  median(sorted),
		MeanGCContent: stat.Mean(gc, nil),
		N50:           n50(sorted, total),
	}, nil
}

func (s *SequenceSetStats) String() string {
	return fmt.Sprintf("sequences=%d total_bases=%d length=%d-%d mean=%.1f±%.1f median=%.1f N50=%d GC=%.2f%%",
		s.Count, s.TotalBases, s.MinLength, s.MaxLength, s.MeanLength, s.StdDevLength,
		s.MedianLength, s.N50, s.MeanGCContent*100)
}

// median of an ascending slice.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// n50 is the length L such that sequences of length ≥ L hold at least half
// of all bases.
func n50(sorted []float64, total int) int {
	half := float64(total) / 2
	running := 0.0
	for i := len(sorted) - 1; i >= 0; i-- {
		running += sorted[i]
		if running >= half {
			return int(sorted[i])
		}
	}
	return int(sorted[0])
}

// Summary describes a sample of distances.
type Summary struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summarize computes mean, sample standard deviation and range. NaN values
// are skipped. An empty sample gives N = 0 and NaN moments.
func Summarize(values []float64) Summary {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		nan := math.NaN()
		return Summary{Mean: nan, StdDev: nan, Min: nan, Max: nan}
	}

	mean, std := stat.MeanStdDev(clean, nil)
	if len(clean) == 1 {
		std = 0
	}
	return Summary{
		N:      len(clean),
		Mean:   mean,
		StdDev: std,
		Min:    floats.Min(clean),
		Max:    floats.Max(clean),
	}
}

func (s Summary) String() string {
	return fmt.Sprintf("n=%d mean=%.6f sd=%.6f min=%.6f max=%.6f", s.N, s.Mean, s.StdDev, s.Min, s.Max)
}

// RateSummary pairs a simulated mutation rate with the distances estimated
// for it.
type RateSummary struct {
	Rate float64 `json:"rate"`
	// Expected is the Jukes-Cantor distance for an observed mismatch
	// fraction equal to Rate.
	Expected float64 `json:"expected"`
	Summary
	Failures int `json:"failures"`
}

// Bias returns Mean − Expected.
func (r RateSummary) Bias() float64 {
	return r.Mean - r.Expected
}
