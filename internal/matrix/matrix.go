// Package matrix computes all-pairs distance matrices on a worker pool and
// writes them in PHYLIP and pairwise tab-separated layouts.
package matrix

import (
	"encoding/json"
	"fmt"
	"math"
)

// InsufficientInputError is returned when fewer than two sequences are
// given.
type InsufficientInputError struct {
	Count int
}

func (e *InsufficientInputError) Error() string {
	return fmt.Sprintf("distance matrix needs at least 2 sequences, got %d", e.Count)
}

// Matrix is an N×N distance matrix with a zero diagonal. Row i holds the
// distances computed with sequence i as the first argument. It is not
// modified after Build returns.
type Matrix struct {
	names  []string
	values [][]float64
}

func newMatrix(names []string) *Matrix {
	values := make([][]float64, len(names))
	for i := range values {
		values[i] = make([]float64, len(names))
	}
	return &Matrix{names: names, values: values}
}

// Size returns N.
func (m *Matrix) Size() int {
	return len(m.names)
}

// Names returns a copy of the row labels.
func (m *Matrix) Names() []string {
	return append([]string(nil), m.names...)
}

// At returns d(i, j).
func (m *Matrix) At(i, j int) float64 {
	return m.values[i][j]
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) []float64 {
	return append([]float64(nil), m.values[i]...)
}

// OffDiagonal returns d(i, j) for every ordered pair i ≠ j in row order.
func (m *Matrix) OffDiagonal() []float64 {
	n := m.Size()
	out := make([]float64, 0, n*(n-1))
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				out = append(out, m.values[i][j])
			}
		}
	}
	return out
}

// Asymmetry returns the largest |d(i, j) − d(j, i)|. The plain and gapped
// strategies count the reverse complement of the first sequence only, so
// the two orientations of a pair can differ slightly.
func (m *Matrix) Asymmetry() float64 {
	var worst float64
	for i := range m.values {
		for j := i + 1; j < len(m.values); j++ {
			worst = math.Max(worst, math.Abs(m.values[i][j]-m.values[j][i]))
		}
	}
	return worst
}

type matrixJSON struct {
	Names     []string    `json:"names"`
	Distances [][]float64 `json:"distances"`
}

func (m *Matrix) MarshalJSON() ([]byte, error) {
	return json.Marshal(matrixJSON{Names: m.names, Distances: m.values})
}
