package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aria-lang/afdist/internal/curve"
	"github.com/aria-lang/afdist/internal/estimate"
	"github.com/aria-lang/afdist/internal/kmer"
	"github.com/aria-lang/afdist/internal/matrix"
	"github.com/aria-lang/afdist/internal/pipeline"
	"github.com/aria-lang/afdist/internal/sequence"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Stage string `json:"stage,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Error: err.Error()}
	var stageErr *pipeline.StageError
	if errors.As(err, &stageErr) {
		resp.Stage = string(stageErr.Stage)
	}
	writeJSON(w, statusFor(err), resp)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msg})
}

// statusFor maps error kinds to HTTP status codes.
func statusFor(err error) int {
	var (
		seqErr      sequence.SequenceError
		wordErr     *kmer.InvalidWordLengthError
		strategyErr *kmer.UnknownStrategyError
		motifSetErr *kmer.UnknownMotifSetError
		motifErr    *kmer.InvalidMotifError
		maskErr     *kmer.InvalidMaskError
		policyErr   *curve.UnknownBackgroundPolicyError
		rangeErr    *curve.InvalidRangeError
		inputErr    *matrix.InsufficientInputError
		curveErr    *estimate.InsufficientCurveDataError
	)
	switch {
	case errors.As(err, &seqErr), errors.As(err, &wordErr), errors.As(err, &strategyErr),
		errors.As(err, &motifSetErr), errors.As(err, &motifErr), errors.As(err, &maskErr),
		errors.As(err, &policyErr), errors.As(err, &rangeErr), errors.As(err, &inputErr):
		return http.StatusBadRequest
	case errors.As(err, &curveErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
