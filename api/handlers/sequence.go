// Package handlers provides HTTP handlers for the afdist API.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aria-lang/afdist/internal/sequence"
	"github.com/aria-lang/afdist/internal/stats"
)

// SequenceRequest represents a request with a sequence.
type SequenceRequest struct {
	Sequence string `json:"sequence"`
}

// SequenceResponse represents a transformed sequence.
type SequenceResponse struct {
	Original string `json:"original"`
	Result   string `json:"result"`
}

func decodeSequence(w http.ResponseWriter, r *http.Request) (*sequence.Sequence, bool) {
	var req SequenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return nil, false
	}

	seq, err := sequence.New(req.Sequence)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return seq, true
}

// ReverseComplementHandler handles reverse complement requests.
func ReverseComplementHandler(w http.ResponseWriter, r *http.Request) {
	seq, ok := decodeSequence(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, SequenceResponse{
		Original: seq.Bases,
		Result:   seq.ReverseComplement().Bases,
	})
}

// RecodeRYHandler handles purine/pyrimidine recoding requests.
func RecodeRYHandler(w http.ResponseWriter, r *http.Request) {
	seq, ok := decodeSequence(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, SequenceResponse{
		Original: seq.Bases,
		Result:   seq.RecodeRY().Bases,
	})
}

// ValidateResponse represents the result of sequence validation.
type ValidateResponse struct {
	Valid    bool   `json:"valid"`
	Error    string `json:"error,omitempty"`
	Position *int   `json:"position,omitempty"`
}

// ValidateHandler handles sequence validation requests.
func ValidateHandler(w http.ResponseWriter, r *http.Request) {
	var req SequenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	resp := ValidateResponse{Valid: true}
	if _, err := sequence.New(req.Sequence); err != nil {
		resp.Valid = false
		resp.Error = err.Error()
		if symErr, ok := err.(*sequence.InvalidSymbolError); ok {
			pos := symErr.Position
			resp.Position = &pos
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// SequenceSetRequest represents a request with several sequences.
type SequenceSetRequest struct {
	Sequences []NamedSequence `json:"sequences"`
}

// SequenceSetStatsResponse carries per-sequence and aggregate statistics.
type SequenceSetStatsResponse struct {
	Sequences []*stats.SequenceStats  `json:"sequences"`
	Set       *stats.SequenceSetStats `json:"set"`
}

// SequenceSetStatsHandler handles sequence set statistics requests.
func SequenceSetStatsHandler(w http.ResponseWriter, r *http.Request) {
	var req SequenceSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	seqs := make([]*sequence.Sequence, len(req.Sequences))
	per := make([]*stats.SequenceStats, len(req.Sequences))
	for i, ns := range req.Sequences {
		s, err := ns.parse(fmt.Sprintf("seq%d", i+1))
		if err != nil {
			writeError(w, err)
			return
		}
		seqs[i] = s
		per[i] = stats.FromSequence(s)
	}

	set, err := stats.FromSequences(seqs)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, SequenceSetStatsResponse{Sequences: per, Set: set})
}
