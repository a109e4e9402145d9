// internal/web/server.go

// Package web is the JSON API over the proof engine: prove, model-finding,
// well-formedness checks, axiom templates, and proof history. Persistence and
// token auth are active only when a database is configured.
package web

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"github.com/angrysky56/mcp-logic/internal/metrics"
	"github.com/angrysky56/mcp-logic/internal/prover"
)

type Server struct {
	DB      *sql.DB // nil disables persistence and auth
	Engine  *prover.Engine
	Metrics *metrics.Metrics
	Store   *Store
}

func NewServer(db *sql.DB, engine *prover.Engine, m *metrics.Metrics) *Server {
	s := &Server{
		DB:      db,
		Engine:  engine,
		Metrics: m,
	}
	if db != nil {
		s.Store = NewStore(db)
	}
	return s
}

func (s *Server) json(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("json encode error: %v", err)
	}
}

func (s *Server) jsonError(w http.ResponseWriter, status int, msg string) {
	s.json(w, status, map[string]any{
		"ok":    false,
		"error": msg,
	})
}

// decode reads a JSON request body into dst, rejecting unknown fields so
// misspelled knobs fail loudly instead of silently using defaults.
func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
