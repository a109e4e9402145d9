// internal/web/router.go
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.HandleHealthz)
	r.Handle("/metrics", s.Metrics.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Use(s.requireToken)

		api.Post("/prove", s.HandleProve)
		api.Post("/find-model", s.HandleFindModel)
		api.Post("/counterexample", s.HandleCounterexample)
		api.Post("/check", s.HandleCheck)
		api.Post("/commutes", s.HandleCommutes)
		api.Get("/axioms/{theory}", s.HandleAxioms)

		api.Get("/proofs", s.HandleListProofs)
		api.Get("/proofs/{proofID}", s.HandleGetProof)

		api.Get("/cache/stats", s.HandleCacheStats)

		api.Post("/tokens", s.HandleCreateToken)
		api.Post("/tokens/{tokenID}/revoke", s.HandleRevokeToken)
	})

	return r
}
