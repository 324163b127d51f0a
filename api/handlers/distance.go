package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/aria-lang/afdist/internal/config"
	"github.com/aria-lang/afdist/internal/curve"
	"github.com/aria-lang/afdist/internal/kmer"
	"github.com/aria-lang/afdist/internal/matrix"
	"github.com/aria-lang/afdist/internal/pipeline"
	"github.com/aria-lang/afdist/internal/sequence"
)

// DefaultMaxSequences bounds the size of a matrix request.
const DefaultMaxSequences = 200

// Handlers serves the distance endpoints from a base configuration.
// Requests may override any configuration key.
type Handlers struct {
	Config       config.Config
	Logger       logrus.FieldLogger
	MaxSequences int
}

// NamedSequence is a sequence in a request body.
type NamedSequence struct {
	ID       string `json:"id"`
	Sequence string `json:"sequence"`
}

func (n NamedSequence) parse(fallbackID string) (*sequence.Sequence, error) {
	id := n.ID
	if id == "" {
		id = fallbackID
	}
	return sequence.WithID(n.Sequence, id)
}

// PairRequest represents a request for one pair of sequences.
type PairRequest struct {
	Sequence1 string          `json:"sequence1"`
	Sequence2 string          `json:"sequence2"`
	ID1       string          `json:"id1,omitempty"`
	ID2       string          `json:"id2,omitempty"`
	Config    json.RawMessage `json:"config,omitempty"`
}

// PointResponse is a curve point; F is null when the point is undefined.
type PointResponse struct {
	K          int      `json:"k"`
	Match      float64  `json:"match"`
	Background float64  `json:"background"`
	Value      float64  `json:"value"`
	F          *float64 `json:"f"`
	Defined    bool     `json:"defined"`
}

// CurveResponse represents a decay curve.
type CurveResponse struct {
	Strategy     string          `json:"strategy"`
	Background   string          `json:"background"`
	DoubleStrand bool            `json:"double_strand"`
	Points       []PointResponse `json:"points"`
}

func newCurveResponse(c *curve.Curve) CurveResponse {
	resp := CurveResponse{
		Strategy:     c.Strategy,
		Background:   c.Background,
		DoubleStrand: c.DoubleStrand,
		Points:       make([]PointResponse, len(c.Points)),
	}
	for i, p := range c.Points {
		pr := PointResponse{K: p.K, Match: p.Match, Background: p.Background, Value: p.Value, Defined: p.Defined}
		if p.Defined && !math.IsNaN(p.F) {
			f := p.F
			pr.F = &f
		}
		resp.Points[i] = pr
	}
	return resp
}

// DistanceResponse represents the result of a pair computation.
type DistanceResponse struct {
	Seq1      string        `json:"seq1"`
	Seq2      string        `json:"seq2"`
	KMin      int           `json:"k_min"`
	KMax      int           `json:"k_max"`
	PHat      float64       `json:"p_hat"`
	Distance  float64       `json:"distance"`
	Identical bool          `json:"identical"`
	Curve     CurveResponse `json:"curve"`
}

// MatrixRequest represents a request for an all-pairs matrix.
type MatrixRequest struct {
	Sequences []NamedSequence `json:"sequences"`
	Config    json.RawMessage `json:"config,omitempty"`
}

// MatrixResponse represents a distance matrix.
type MatrixResponse struct {
	Names     []string    `json:"names"`
	Distances [][]float64 `json:"distances"`
	Asymmetry float64     `json:"asymmetry"`
	PHYLIP    string      `json:"phylip"`
}

// StrategiesResponse lists the accepted configuration names.
type StrategiesResponse struct {
	Strategies         []string `json:"strategies"`
	MotifSets          []string `json:"motif_sets"`
	BackgroundPolicies []string `json:"background_policies"`
	Fits               []string `json:"fits"`
}

func (h *Handlers) logger() logrus.FieldLogger {
	if h.Logger != nil {
		return h.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// workers bounds the pool size a request may ask for by the server's
// Workers setting, or by the CPU count when that is unset.
func (h *Handlers) workers(requested int) int {
	limit := h.Config.Workers
	if limit < 1 {
		limit = runtime.NumCPU()
	}
	if requested < 1 || requested > limit {
		return limit
	}
	return requested
}

// resolveConfig overlays a request's config object on the base
// configuration.
func (h *Handlers) resolveConfig(raw json.RawMessage) (config.Config, error) {
	cfg := h.Config
	if cfg.Masks != nil {
		masks := make(map[int]string, len(cfg.Masks))
		for k, v := range cfg.Masks {
			masks[k] = v
		}
		cfg.Masks = masks
	}
	if len(bytes.TrimSpace(raw)) > 0 {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
	}
	return cfg, cfg.Validate()
}

func (h *Handlers) newPipeline(w http.ResponseWriter, raw json.RawMessage) (*pipeline.Pipeline, bool) {
	cfg, err := h.resolveConfig(raw)
	if err != nil {
		badRequest(w, err.Error())
		return nil, false
	}
	p, err := pipeline.New(cfg, h.logger())
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return p, true
}

func (req PairRequest) parse() (*sequence.Sequence, *sequence.Sequence, error) {
	s1, err := NamedSequence{ID: req.ID1, Sequence: req.Sequence1}.parse("seq1")
	if err != nil {
		return nil, nil, err
	}
	s2, err := NamedSequence{ID: req.ID2, Sequence: req.Sequence2}.parse("seq2")
	if err != nil {
		return nil, nil, err
	}
	return s1, s2, nil
}

// DistanceHandler handles pair distance requests.
func (h *Handlers) DistanceHandler(w http.ResponseWriter, r *http.Request) {
	var req PairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	s1, s2, err := req.parse()
	if err != nil {
		writeError(w, err)
		return
	}
	p, ok := h.newPipeline(w, req.Config)
	if !ok {
		return
	}

	res, err := p.Distance(s1, s2)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, DistanceResponse{
		Seq1:      res.Seq1,
		Seq2:      res.Seq2,
		KMin:      res.Range.Min,
		KMax:      res.Range.Max,
		PHat:      res.PHat,
		Distance:  res.Distance,
		Identical: res.Identical,
		Curve:     newCurveResponse(res.Curve),
	})
}

// CurveHandler handles decay curve requests.
func (h *Handlers) CurveHandler(w http.ResponseWriter, r *http.Request) {
	var req PairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	s1, s2, err := req.parse()
	if err != nil {
		writeError(w, err)
		return
	}
	p, ok := h.newPipeline(w, req.Config)
	if !ok {
		return
	}

	c, err := p.Curve(s1, s2)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCurveResponse(c))
}

// MatrixHandler handles all-pairs matrix requests. The computation is
// cancelled when the request context ends.
func (h *Handlers) MatrixHandler(w http.ResponseWriter, r *http.Request) {
	var req MatrixRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	limit := h.MaxSequences
	if limit <= 0 {
		limit = DefaultMaxSequences
	}
	if len(req.Sequences) > limit {
		badRequest(w, fmt.Sprintf("too many sequences: %d (limit %d)", len(req.Sequences), limit))
		return
	}

	seqs := make([]*sequence.Sequence, len(req.Sequences))
	for i, ns := range req.Sequences {
		s, err := ns.parse(fmt.Sprintf("seq%d", i+1))
		if err != nil {
			writeError(w, err)
			return
		}
		seqs[i] = s
	}

	p, ok := h.newPipeline(w, req.Config)
	if !ok {
		return
	}

	b := &matrix.Builder{
		Workers:  h.workers(p.Config().Workers),
		Distance: p.PairDistance,
		Logger:   h.logger(),
	}
	m, err := b.Build(r.Context(), seqs)
	if err != nil {
		writeError(w, err)
		return
	}

	var phylip bytes.Buffer
	if err := matrix.WritePHYLIP(&phylip, m); err != nil {
		writeError(w, err)
		return
	}

	distances := make([][]float64, m.Size())
	for i := range distances {
		distances[i] = m.Row(i)
	}
	writeJSON(w, http.StatusOK, MatrixResponse{
		Names:     m.Names(),
		Distances: distances,
		Asymmetry: m.Asymmetry(),
		PHYLIP:    phylip.String(),
	})
}

// StrategiesHandler lists the strategies, motif sets, background policies
// and fit modes the configuration accepts.
func StrategiesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StrategiesResponse{
		Strategies:         kmer.StrategyNames(),
		MotifSets:          kmer.MotifSetNames(),
		BackgroundPolicies: curve.PolicyNames(),
		Fits:               []string{"boundary", "all"},
	})
}
