package curve

import (
	"fmt"
	"math"
)

// Range is an inclusive word-length window.
type Range struct {
	Min int
	Max int
}

// Ks expands the range into the list of word lengths it covers.
func (r Range) Ks() []int {
	if r.Max < r.Min {
		return nil
	}
	ks := make([]int, 0, r.Max-r.Min+1)
	for k := r.Min; k <= r.Max; k++ {
		ks = append(ks, k)
	}
	return ks
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d]", r.Min, r.Max)
}

// EmpiricalRange derives the window over which the exponential decay model
// is expected to hold, from the mean length L of the two sequences:
//
//	k_min = ceil((ln L + 0.69) / 0.875)
//	k_max = floor(ln L / 0.634)
//
// For short sequences the formulas cross; k_max is then raised to
// k_min + 1 and adjusted is true.
func EmpiricalRange(len1, len2 int) (r Range, adjusted bool) {
	l := (float64(len1) + float64(len2)) / 2
	if l < 1 {
		l = 1
	}
	lnL := math.Log(l)

	r.Min = int(math.Ceil((lnL + 0.69) / 0.875))
	r.Max = int(math.Floor(lnL / 0.634))
	if r.Min < 1 {
		r.Min = 1
	}
	if r.Max <= r.Min {
		r.Max = r.Min + 1
		adjusted = true
	}
	return r, adjusted
}

// InvalidRangeError is returned for a word-length list that is empty or not
// strictly increasing.
type InvalidRangeError struct {
	Ks     []int
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid word length range %v: %s", e.Ks, e.Reason)
}

func validateKs(ks []int) error {
	if len(ks) == 0 {
		return &InvalidRangeError{Ks: ks, Reason: "no word lengths"}
	}
	for i := 1; i < len(ks); i++ {
		if ks[i] <= ks[i-1] {
			return &InvalidRangeError{Ks: ks, Reason: "word lengths must be strictly increasing"}
		}
	}
	return nil
}
