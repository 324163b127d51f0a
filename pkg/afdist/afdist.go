// Package afdist estimates evolutionary distances between nucleotide
// sequences without aligning them.
//
// Example usage:
//
//	seqs, err := afdist.LoadSequences("genomes/")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	m, err := afdist.BuildMatrix(ctx, seqs, afdist.DefaultConfig(), nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	afdist.WritePHYLIP(os.Stdout, m)
package afdist

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/aria-lang/afdist/internal/config"
	"github.com/aria-lang/afdist/internal/curve"
	"github.com/aria-lang/afdist/internal/matrix"
	"github.com/aria-lang/afdist/internal/pipeline"
	"github.com/aria-lang/afdist/internal/seqio"
	"github.com/aria-lang/afdist/internal/sequence"
)

// Re-export types for convenience
type (
	Sequence   = sequence.Sequence
	Config     = config.Config
	Curve      = curve.Curve
	CurvePoint = curve.Point
	Matrix     = matrix.Matrix
	Result     = pipeline.Result
	StageError = pipeline.StageError
)

// Options carries the optional collaborators of a computation. A nil
// *Options is valid.
type Options struct {
	Logger logrus.FieldLogger
	// OnPair is called after each matrix pair completes.
	OnPair func()
}

func (o *Options) logger() logrus.FieldLogger {
	if o == nil {
		return nil
	}
	return o.Logger
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return config.Default()
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	return config.Load(path)
}

// NewSequence creates a validated nucleotide sequence.
func NewSequence(bases string) (*Sequence, error) {
	return sequence.New(bases)
}

// NewSequenceWithID creates a validated sequence with an identifier.
func NewSequenceWithID(bases, id string) (*Sequence, error) {
	return sequence.WithID(bases, id)
}

// LoadSequences reads FASTA files and directories of FASTA files.
func LoadSequences(paths ...string) ([]*Sequence, error) {
	return seqio.Load(paths...)
}

// BuildCurve returns the decay curve of seq1 against seq2.
func BuildCurve(seq1, seq2 *Sequence, cfg Config, opts *Options) (*Curve, error) {
	p, err := pipeline.New(cfg, opts.logger())
	if err != nil {
		return nil, err
	}
	return p.Curve(seq1, seq2)
}

// PairDistance estimates the distance between two sequences.
func PairDistance(seq1, seq2 *Sequence, cfg Config, opts *Options) (*Result, error) {
	p, err := pipeline.New(cfg, opts.logger())
	if err != nil {
		return nil, err
	}
	return p.Distance(seq1, seq2)
}

// BuildMatrix computes the all-pairs distance matrix of seqs on
// cfg.Workers goroutines.
func BuildMatrix(ctx context.Context, seqs []*Sequence, cfg Config, opts *Options) (*Matrix, error) {
	p, err := pipeline.New(cfg, opts.logger())
	if err != nil {
		return nil, err
	}

	b := &matrix.Builder{
		Workers:  cfg.Workers,
		Distance: p.PairDistance,
		Logger:   opts.logger(),
	}
	if opts != nil {
		b.OnPair = opts.OnPair
	}
	return b.Build(ctx, seqs)
}

// WritePHYLIP writes m as a PHYLIP distance matrix.
func WritePHYLIP(w io.Writer, m *Matrix) error {
	return matrix.WritePHYLIP(w, m)
}

// WritePairs writes one tab-separated line per ordered pair.
func WritePairs(w io.Writer, m *Matrix) error {
	return matrix.WritePairs(w, m)
}

// Version returns the afdist version.
func Version() string {
	return "1.0.0"
}

// Info returns information about afdist.
func Info() string {
	return fmt.Sprintf(`afdist v%s - Alignment-free evolutionary distances

Features:
  - Plain, gapped and motif-filtered word matching
  - Single and double strand counting
  - Reversed-control and expected-random background subtraction
  - Decay curve slope estimation of the match probability
  - Jukes-Cantor distance correction
  - Parallel all-pairs matrices in PHYLIP and pairwise layouts
`, Version())
}
