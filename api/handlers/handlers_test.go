package handlers

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-lang/afdist/internal/config"
	"github.com/aria-lang/afdist/internal/simulate"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger, _ := test.NewNullLogger()
	cfg := config.Default()
	cfg.Workers = 2
	h := &Handlers{Config: cfg, Logger: logger, MaxSequences: 5}
	return h.Routes()
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestDistanceHandlerIdentical(t *testing.T) {
	rec := post(t, newTestRouter(t), "/distance",
		`{"sequence1": "ACGTACGTACGT", "sequence2": "ACGTACGTACGT", "id1": "s1", "id2": "s2"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp DistanceResponse
	decode(t, rec, &resp)
	assert.Equal(t, "s1", resp.Seq1)
	assert.True(t, resp.Identical)
	assert.LessOrEqual(t, resp.Distance, 0.01)
	assert.Equal(t, 4, resp.KMin)
	assert.Equal(t, 5, resp.KMax)
	assert.Len(t, resp.Curve.Points, 2)
}

func TestDistanceHandlerErrors(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name   string
		body   string
		status int
		stage  string
		match  string
	}{
		{"bad body", `{`, http.StatusBadRequest, "", "invalid request body"},
		{"bad symbol", `{"sequence1": "ACGN", "sequence2": "ACGT"}`, http.StatusBadRequest, "", "position 3"},
		{"unknown strategy", `{"sequence1": "ACGT", "sequence2": "ACGT", "config": {"word_matching_strategy": "blast"}}`,
			http.StatusBadRequest, "", "word_matching_strategy"},
		{"unknown config key", `{"sequence1": "ACGT", "sequence2": "ACGT", "config": {"k_mers_method": "x"}}`,
			http.StatusBadRequest, "", "k_mers_method"},
		{"no shared words", `{"sequence1": "AAAAAAAAAAAAAAAAAAAA", "sequence2": "CCCCCCCCCCCCCCCCCCCC"}`,
			http.StatusUnprocessableEntity, "estimation", "insufficient curve data"},
		{"word too long", `{"sequence1": "ACGTACGT", "sequence2": "ACGTACGA", "config": {"use_empirical_k_bounds": false, "k_min": 10, "k_max": 12}}`,
			http.StatusBadRequest, "counting", "invalid word length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, router, "/distance", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())

			var resp ErrorResponse
			decode(t, rec, &resp)
			assert.Contains(t, resp.Error, tt.match)
			assert.Equal(t, tt.stage, resp.Stage)
		})
	}
}

func TestCurveHandlerMarksUndefinedPoints(t *testing.T) {
	body := `{"sequence1": "ACGTACGTACGT", "sequence2": "ACGTACGTACGT",
		"config": {"double_strand": false, "background_policy": "reversed_control", "k_values_to_report": [2, 3, 4]}}`
	rec := post(t, newTestRouter(t), "/curve", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp CurveResponse
	decode(t, rec, &resp)
	assert.Equal(t, "plain", resp.Strategy)
	assert.Equal(t, "reversed_control", resp.Background)
	require.Len(t, resp.Points, 3)
	for _, p := range resp.Points {
		if p.Defined {
			assert.NotNil(t, p.F)
		} else {
			assert.Nil(t, p.F)
		}
	}
	assert.Contains(t, rec.Body.String(), `"f":`)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}

func TestCurveHandlerDoesNotLeakOverrides(t *testing.T) {
	cfg := config.Default()
	cfg.WordMatchingStrategy = "gapped"
	cfg.Masks = map[int]string{3: "101"}
	h := &Handlers{Config: cfg}
	router := h.Routes()

	rec := post(t, router, "/curve", `{"sequence1": "ACGTACGT", "sequence2": "ACGTACGT",
		"config": {"k_values_to_report": [4], "masks": {"4": "1101"}}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, map[int]string{3: "101"}, h.Config.Masks)
}

func TestMatrixHandler(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	fam, err := simulate.Family(rng, "f", 1500, 3, 0.05)
	require.NoError(t, err)

	req := MatrixRequest{}
	for _, s := range fam {
		req.Sequences = append(req.Sequences, NamedSequence{ID: s.ID, Sequence: s.Bases})
	}
	body, err := json.Marshal(req)
	require.NoError(t, err)

	rec := post(t, newTestRouter(t), "/matrix", string(body))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp MatrixResponse
	decode(t, rec, &resp)
	assert.Equal(t, []string{"f1", "f2", "f3"}, resp.Names)
	require.Len(t, resp.Distances, 3)
	for i, row := range resp.Distances {
		require.Len(t, row, 3)
		assert.Equal(t, 0.0, row[i])
	}
	assert.True(t, strings.HasPrefix(resp.PHYLIP, "3\nf1        0.000000 "))
	assert.GreaterOrEqual(t, resp.Asymmetry, 0.0)
}

func TestMatrixHandlerErrors(t *testing.T) {
	router := newTestRouter(t)

	rec := post(t, router, "/matrix", `{"sequences": [{"id": "a", "sequence": "ACGT"}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "at least 2 sequences")

	many := `{"sequences": [` + strings.Repeat(`{"sequence": "ACGT"},`, 5) + `{"sequence": "ACGT"}]}`
	rec = post(t, router, "/matrix", many)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "too many sequences")
}

func TestSequenceHandlers(t *testing.T) {
	router := newTestRouter(t)

	rec := post(t, router, "/sequence/reverse-complement", `{"sequence": "aacg"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var seqResp SequenceResponse
	decode(t, rec, &seqResp)
	assert.Equal(t, "AACG", seqResp.Original)
	assert.Equal(t, "CGTT", seqResp.Result)

	rec = post(t, router, "/sequence/recode-ry", `{"sequence": "ACGTTGCA"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &seqResp)
	assert.Equal(t, "RYRYYRYR", seqResp.Result)

	rec = post(t, router, "/sequence/recode-ry", `{"sequence": "ACGN"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid")

	rec = post(t, router, "/sequence/validate", `{"sequence": "ACXT"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var valResp ValidateResponse
	decode(t, rec, &valResp)
	assert.False(t, valResp.Valid)
	require.NotNil(t, valResp.Position)
	assert.Equal(t, 2, *valResp.Position)

	rec = post(t, router, "/sequence/stats", `{"sequences": [{"id": "x", "sequence": "GGCC"}, {"sequence": "ATAT"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var statsResp SequenceSetStatsResponse
	decode(t, rec, &statsResp)
	require.Len(t, statsResp.Sequences, 2)
	assert.Equal(t, "seq2", statsResp.Sequences[1].ID)
	assert.Equal(t, 0.5, statsResp.Set.MeanGCContent)

	rec = post(t, router, "/sequence/stats", `{"sequences": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStrategiesHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/strategies", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp StrategiesResponse
	decode(t, rec, &resp)
	assert.Contains(t, resp.Strategies, "plain")
	assert.Contains(t, resp.MotifSets, "ry9")
	assert.Equal(t, []string{"expected_random", "none", "reversed_control"}, resp.BackgroundPolicies)
}

func TestMatrixWorkersAreCapped(t *testing.T) {
	tests := []struct {
		name      string
		server    int
		requested int
		want      int
	}{
		{"within limit", 4, 2, 2},
		{"above limit", 4, 10000, 4},
		{"unset request", 4, 0, 4},
		{"unset server", 0, 1 << 20, runtime.NumCPU()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handlers{Config: config.Config{Workers: tt.server}}
			assert.Equal(t, tt.want, h.workers(tt.requested))
		})
	}
}

func TestHandlersWithoutLoggerStayQuiet(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	// The length-12 pair adjusts crossed bounds, which logs a warning.
	h := &Handlers{Config: config.Default()}
	rec := post(t, h.Routes(), "/distance", `{"sequence1": "ACGTACGTACGT", "sequence2": "ACGTACGTACGT"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Empty(t, hook.AllEntries())
}
