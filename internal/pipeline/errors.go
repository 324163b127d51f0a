package pipeline

import "fmt"

// Stage names the step of a pair computation that failed.
type Stage string

const (
	StageCounting   Stage = "counting"
	StageCurve      Stage = "curve"
	StageEstimation Stage = "estimation"
	StageDistance   Stage = "distance"
)

// StageError tags a pair failure with the stage and the two sequences.
type StageError struct {
	Stage Stage
	Seq1  string
	Seq2  string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed for %s vs %s: %v", e.Stage, e.Seq1, e.Seq2, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
