// Package estimate recovers the per-position match probability from a
// decay curve.
//
// Under a memoryless match model the expected number of word matches falls
// geometrically with word length, so ln(count) is linear in k with slope
// ln(p). The estimate is exp(slope) of a least-squares line through the
// chosen curve points.
package estimate

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/aria-lang/afdist/internal/curve"
)

// Epsilon is added to background-subtracted counts before taking the
// logarithm.
const Epsilon = 1e-10

// FitMode selects which curve points feed the regression.
type FitMode int

const (
	// Boundary fits the first and last point only.
	Boundary FitMode = iota
	// AllPoints fits every defined point.
	AllPoints
)

func (m FitMode) String() string {
	if m == AllPoints {
		return "all"
	}
	return "boundary"
}

// ParseFitMode resolves a configuration name. The empty string selects
// Boundary.
func ParseFitMode(name string) (FitMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "boundary":
		return Boundary, nil
	case "all":
		return AllPoints, nil
	default:
		return Boundary, fmt.Errorf("fit: unknown fit mode %q (want boundary or all)", name)
	}
}

// InsufficientCurveDataError is returned when the curve lacks the defined
// points needed for a fit.
type InsufficientCurveDataError struct {
	K      int
	Reason string
}

func (e *InsufficientCurveDataError) Error() string {
	if e.K > 0 {
		return fmt.Sprintf("insufficient curve data at k=%d: %s", e.K, e.Reason)
	}
	return "insufficient curve data: " + e.Reason
}

// Estimate returns p̂ for c using mode.
func Estimate(c *curve.Curve, mode FitMode) (float64, error) {
	if mode == AllPoints {
		return FromAllPoints(c)
	}
	return FromBoundary(c)
}

// FromBoundary fits the line through the first and last curve points. Both
// must be defined.
func FromBoundary(c *curve.Curve) (float64, error) {
	if c == nil || len(c.Points) < 2 {
		return 0, &InsufficientCurveDataError{Reason: "at least two word lengths are required"}
	}

	first, last := c.Points[0], c.Points[len(c.Points)-1]
	for _, p := range []curve.Point{first, last} {
		if !p.Defined {
			return 0, &InsufficientCurveDataError{K: p.K, Reason: "boundary point is undefined"}
		}
	}

	return fit([]curve.Point{first, last}), nil
}

// FromAllPoints fits every defined point; at least two are required.
func FromAllPoints(c *curve.Curve) (float64, error) {
	if c == nil {
		return 0, &InsufficientCurveDataError{Reason: "no curve"}
	}
	pts := c.Defined()
	if len(pts) < 2 {
		return 0, &InsufficientCurveDataError{
			Reason: fmt.Sprintf("%d defined point(s), at least two are required", len(pts)),
		}
	}
	return fit(pts), nil
}

func fit(pts []curve.Point) float64 {
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = float64(p.K)
		ys[i] = math.Log(p.Value + Epsilon)
	}
	_, slope := stat.LinearRegression(xs, ys, nil, false)
	return math.Exp(slope)
}
