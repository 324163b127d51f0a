// Package pipeline runs the per-pair distance computation: word-length
// range, decay curve, probability estimate, Jukes-Cantor distance.
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/aria-lang/afdist/internal/config"
	"github.com/aria-lang/afdist/internal/curve"
	"github.com/aria-lang/afdist/internal/distance"
	"github.com/aria-lang/afdist/internal/estimate"
	"github.com/aria-lang/afdist/internal/kmer"
	"github.com/aria-lang/afdist/internal/sequence"
)

// Result is the outcome of one pair computation.
type Result struct {
	Seq1     string       `json:"seq1"`
	Seq2     string       `json:"seq2"`
	Range    curve.Range  `json:"range"`
	Curve    *curve.Curve `json:"curve"`
	PHat     float64      `json:"p_hat"`
	Distance float64      `json:"distance"`
	// Identical is set when the two base strings are equal and the
	// estimator was bypassed.
	Identical bool `json:"identical"`
}

// Pipeline holds the resolved configuration. It keeps no per-pair state
// and is safe for concurrent use.
type Pipeline struct {
	cfg     config.Config
	builder *curve.Builder
	fit     estimate.FitMode
	logger  logrus.FieldLogger
}

// New resolves the names in cfg into a runnable pipeline. A nil logger
// discards all output.
func New(cfg config.Config, logger logrus.FieldLogger) (*Pipeline, error) {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}

	matcher, err := kmer.NewMatcher(cfg.MatcherOptions())
	if err != nil {
		return nil, err
	}
	policy, err := curve.ParsePolicy(cfg.BackgroundPolicy)
	if err != nil {
		return nil, err
	}
	fit, err := estimate.ParseFitMode(cfg.Fit)
	if err != nil {
		return nil, err
	}
	if !cfg.UseEmpiricalKBounds && (cfg.KMin < 1 || cfg.KMax <= cfg.KMin) {
		return nil, fmt.Errorf("explicit word length bounds [%d, %d]: k_min must be at least 1 and below k_max", cfg.KMin, cfg.KMax)
	}

	return &Pipeline{
		cfg: cfg,
		builder: &curve.Builder{
			Matcher:      matcher,
			Background:   policy,
			DoubleStrand: cfg.DoubleStrand,
			Logger:       logger,
		},
		fit:    fit,
		logger: logger,
	}, nil
}

// Config returns the configuration the pipeline was built from.
func (p *Pipeline) Config() config.Config {
	return p.cfg
}

// Strategy returns the name of the configured matcher.
func (p *Pipeline) Strategy() string {
	return p.builder.Matcher.Name()
}

// EstimationRange returns the word-length window used for estimation.
func (p *Pipeline) EstimationRange(seq1, seq2 *sequence.Sequence) curve.Range {
	if !p.cfg.UseEmpiricalKBounds {
		return curve.Range{Min: p.cfg.KMin, Max: p.cfg.KMax}
	}

	r, adjusted := curve.EmpiricalRange(seq1.Len(), seq2.Len())
	if adjusted {
		p.logger.WithFields(logrus.Fields{
			"seq1":  seq1.Name(),
			"seq2":  seq2.Name(),
			"range": r.String(),
		}).Warn("empirical word length bounds crossed; k_max raised to k_min+1")
	}
	return r
}

// Distance estimates the Jukes-Cantor distance between seq1 and seq2.
func (p *Pipeline) Distance(seq1, seq2 *sequence.Sequence) (*Result, error) {
	r := p.EstimationRange(seq1, seq2)
	res := &Result{Seq1: seq1.Name(), Seq2: seq2.Name(), Range: r}

	c, err := p.builder.Build(seq1, seq2, r.Ks())
	if err != nil {
		return nil, p.stageError(buildStage(err), seq1, seq2, err)
	}
	res.Curve = c

	if seq1.Bases == seq2.Bases {
		res.PHat = 1
		res.Identical = true
	} else {
		pHat, err := estimate.Estimate(c, p.fit)
		if err != nil {
			return nil, p.stageError(StageEstimation, seq1, seq2, err)
		}
		if math.IsNaN(pHat) || math.IsInf(pHat, 0) {
			return nil, p.stageError(StageEstimation, seq1, seq2,
				fmt.Errorf("non-finite probability estimate %v", pHat))
		}
		res.PHat = pHat
	}

	d := distance.JukesCantor(distance.ClampProbability(res.PHat))
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return nil, p.stageError(StageDistance, seq1, seq2,
			fmt.Errorf("non-finite distance for p=%v", res.PHat))
	}
	res.Distance = d
	return res, nil
}

// PairDistance is Distance reduced to the distance value.
func (p *Pipeline) PairDistance(seq1, seq2 *sequence.Sequence) (float64, error) {
	res, err := p.Distance(seq1, seq2)
	if err != nil {
		return 0, err
	}
	return res.Distance, nil
}

// Curve builds the display curve over k_values_to_report, or over the
// estimation range when none are configured.
func (p *Pipeline) Curve(seq1, seq2 *sequence.Sequence) (*curve.Curve, error) {
	ks := p.cfg.KValuesToReport
	if len(ks) == 0 {
		ks = p.EstimationRange(seq1, seq2).Ks()
	}

	c, err := p.builder.Build(seq1, seq2, ks)
	if err != nil {
		return nil, p.stageError(buildStage(err), seq1, seq2, err)
	}
	return c, nil
}

func (p *Pipeline) stageError(stage Stage, seq1, seq2 *sequence.Sequence, err error) error {
	p.logger.WithFields(logrus.Fields{
		"stage": stage,
		"seq1":  seq1.Name(),
		"seq2":  seq2.Name(),
	}).WithError(err).Debug("pair computation failed")
	return &StageError{Stage: stage, Seq1: seq1.Name(), Seq2: seq2.Name(), Err: err}
}

// buildStage attributes a curve build failure to counting when the matcher
// rejected its input.
func buildStage(err error) Stage {
	var wordErr *kmer.InvalidWordLengthError
	var maskErr *kmer.InvalidMaskError
	if errors.As(err, &wordErr) || errors.As(err, &maskErr) {
		return StageCounting
	}
	return StageCurve
}
