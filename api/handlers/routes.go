package handlers

import "github.com/go-chi/chi/v5"

// Routes returns the API router, to be mounted under /api.
func (h *Handlers) Routes() chi.Router {
	r := chi.NewRouter()

	// Sequence endpoints
	r.Route("/sequence", func(r chi.Router) {
		r.Post("/reverse-complement", ReverseComplementHandler)
		r.Post("/recode-ry", RecodeRYHandler)
		r.Post("/validate", ValidateHandler)
		r.Post("/stats", SequenceSetStatsHandler)
	})

	// Distance endpoints
	r.Post("/distance", h.DistanceHandler)
	r.Post("/curve", h.CurveHandler)
	r.Post("/matrix", h.MatrixHandler)
	r.Get("/strategies", StrategiesHandler)

	return r
}
