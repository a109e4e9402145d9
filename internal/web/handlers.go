// internal/web/handlers.go
package web

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/angrysky56/mcp-logic/internal/axioms"
	"github.com/angrysky56/mcp-logic/internal/prover"
)

type proveRequest struct {
	Premises       []string `json:"premises"`
	Conclusion     string   `json:"conclusion"`
	TimeoutSeconds int      `json:"timeout_seconds,omitempty"`
}

type modelRequest struct {
	Premises       []string `json:"premises"`
	DomainSize     int      `json:"domain_size,omitempty"`
	TimeoutSeconds int      `json:"timeout_seconds,omitempty"`
}

type counterexampleRequest struct {
	Premises       []string `json:"premises"`
	Conclusion     string   `json:"conclusion"`
	DomainSize     int      `json:"domain_size,omitempty"`
	TimeoutSeconds int      `json:"timeout_seconds,omitempty"`
}

type outcomeResponse struct {
	OK        bool            `json:"ok"`
	RequestID string          `json:"request_id"`
	Outcome   *prover.Outcome `json:"outcome"`
	ElapsedMs int64           `json:"elapsed_ms"`
}

func timeoutFrom(seconds int) time.Duration {
	if seconds <= 0 {
		return 0 // engine default
	}
	return time.Duration(seconds) * time.Second
}

// writeOutcome sends the engine result and records it best-effort. A failed
// history write is logged, never surfaced: the proof already happened.
func (s *Server) writeOutcome(w http.ResponseWriter, r *http.Request, operation string, premises []string, conclusion string, out *prover.Outcome) {
	s.persist(r.Context(), operation, premises, conclusion, out)
	s.json(w, http.StatusOK, outcomeResponse{
		OK:        true,
		RequestID: uuid.NewString(),
		Outcome:   out,
		ElapsedMs: out.Elapsed.Milliseconds(),
	})
}

func (s *Server) persist(ctx context.Context, operation string, premises []string, conclusion string, out *prover.Outcome) {
	if s.Store == nil {
		return
	}

	detail := out.Proof
	if out.Model != nil {
		detail = out.Model.Interpretation
	}
	rec := &ProofRecord{
		Operation:  operation,
		Premises:   premises,
		Conclusion: conclusion,
		Status:     out.Status.String(),
		Detail:     detail,
		ElapsedMs:  out.Elapsed.Milliseconds(),
	}
	if err := s.Store.SaveProof(ctx, rec); err != nil {
		log.Printf("persist %s outcome: %v", operation, err)
	}
}

// engineError maps engine failures onto HTTP statuses. Validation failures
// carry the full per-statement diagnostics.
func (s *Server) engineError(w http.ResponseWriter, err error) {
	var verr *prover.ValidationError
	if errors.As(err, &verr) {
		s.json(w, http.StatusUnprocessableEntity, map[string]any{
			"ok":      false,
			"error":   verr.Error(),
			"results": verr.Results,
		})
		return
	}
	log.Printf("engine error: %v", err)
	s.jsonError(w, http.StatusBadGateway, "prover invocation failed")
}

func (s *Server) HandleProve(w http.ResponseWriter, r *http.Request) {
	var req proveRequest
	if err := decode(r, &req); err != nil {
		s.jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Premises) == 0 || req.Conclusion == "" {
		s.jsonError(w, http.StatusBadRequest, "premises and conclusion are required")
		return
	}

	out, err := s.Engine.Prove(r.Context(), req.Premises, req.Conclusion, timeoutFrom(req.TimeoutSeconds))
	if err != nil {
		s.engineError(w, err)
		return
	}
	s.writeOutcome(w, r, "prove", req.Premises, req.Conclusion, out)
}

func (s *Server) HandleFindModel(w http.ResponseWriter, r *http.Request) {
	var req modelRequest
	if err := decode(r, &req); err != nil {
		s.jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Premises) == 0 {
		s.jsonError(w, http.StatusBadRequest, "premises are required")
		return
	}

	out, err := s.Engine.FindModel(r.Context(), req.Premises, req.DomainSize, timeoutFrom(req.TimeoutSeconds))
	if err != nil {
		s.engineError(w, err)
		return
	}
	s.writeOutcome(w, r, "find_model", req.Premises, "", out)
}

func (s *Server) HandleCounterexample(w http.ResponseWriter, r *http.Request) {
	var req counterexampleRequest
	if err := decode(r, &req); err != nil {
		s.jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Premises) == 0 || req.Conclusion == "" {
		s.jsonError(w, http.StatusBadRequest, "premises and conclusion are required")
		return
	}

	out, err := s.Engine.FindCounterexample(r.Context(), req.Premises, req.Conclusion, req.DomainSize, timeoutFrom(req.TimeoutSeconds))
	if err != nil {
		s.engineError(w, err)
		return
	}
	s.writeOutcome(w, r, "counterexample", req.Premises, req.Conclusion, out)
}

func (s *Server) HandleCheck(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Statements []string `json:"statements"`
	}
	if err := decode(r, &req); err != nil {
		s.jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Statements) == 0 {
		s.jsonError(w, http.StatusBadRequest, "statements are required")
		return
	}

	results := s.Engine.CheckWellFormed(req.Statements)
	allValid := true
	for _, res := range results {
		if !res.Valid {
			allValid = false
			break
		}
	}
	s.json(w, http.StatusOK, map[string]any{
		"ok":        true,
		"all_valid": allValid,
		"results":   results,
	})
}

// HandleAxioms serves the built-in axiom sets:
//
//	GET /api/axioms/category
//	GET /api/axioms/functor?name=F
//	GET /api/axioms/naturality?functor_f=F&functor_g=G&component=eta
//	GET /api/axioms/monoid
//	GET /api/axioms/group
func (s *Server) HandleAxioms(w http.ResponseWriter, r *http.Request) {
	theory := chi.URLParam(r, "theory")
	q := r.URL.Query()

	var statements []string
	switch theory {
	case "category":
		statements = axioms.CategoryAxioms()
	case "functor":
		name := q.Get("name")
		if name == "" {
			s.jsonError(w, http.StatusBadRequest, "functor axioms need a name parameter")
			return
		}
		statements = axioms.FunctorAxioms(name)
	case "naturality":
		f, g, comp := q.Get("functor_f"), q.Get("functor_g"), q.Get("component")
		if f == "" || g == "" || comp == "" {
			s.jsonError(w, http.StatusBadRequest, "naturality needs functor_f, functor_g and component")
			return
		}
		statements = axioms.NaturalityCondition(f, g, comp)
	case "monoid":
		statements = axioms.MonoidAxioms()
	case "group":
		statements = axioms.GroupAxioms()
	default:
		s.jsonError(w, http.StatusNotFound, "unknown theory: "+theory)
		return
	}

	s.json(w, http.StatusOK, map[string]any{
		"ok":     true,
		"theory": theory,
		"axioms": statements,
	})
}

type commutesRequest struct {
	PathA          []string `json:"path_a"`
	PathB          []string `json:"path_b"`
	Start          string   `json:"start"`
	End            string   `json:"end"`
	ExtraPremises  []string `json:"extra_premises,omitempty"`
	TimeoutSeconds int      `json:"timeout_seconds,omitempty"`
}

// HandleCommutes builds a diagram-commutativity argument from two morphism
// paths, adds the category axioms, and hands it to the prover.
func (s *Server) HandleCommutes(w http.ResponseWriter, r *http.Request) {
	var req commutesRequest
	if err := decode(r, &req); err != nil {
		s.jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Start == "" || req.End == "" {
		s.jsonError(w, http.StatusBadRequest, "start and end objects are required")
		return
	}

	premises, conclusion, err := axioms.CommutativityArgument(req.PathA, req.PathB, req.Start, req.End)
	if err != nil {
		s.jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	premises = append(axioms.CategoryAxioms(), premises...)
	premises = append(premises, req.ExtraPremises...)

	out, err := s.Engine.Prove(r.Context(), premises, conclusion, timeoutFrom(req.TimeoutSeconds))
	if err != nil {
		s.engineError(w, err)
		return
	}
	s.writeOutcome(w, r, "commutes", premises, conclusion, out)
}

func (s *Server) HandleListProofs(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		s.jsonError(w, http.StatusServiceUnavailable, "proof history requires a database")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	recs, err := s.Store.ListProofs(r.Context(), limit)
	if err != nil {
		log.Printf("list proofs: %v", err)
		s.jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.json(w, http.StatusOK, map[string]any{
		"ok":     true,
		"proofs": recs,
	})
}

func (s *Server) HandleGetProof(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		s.jsonError(w, http.StatusServiceUnavailable, "proof history requires a database")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "proofID"))
	if err != nil {
		s.jsonError(w, http.StatusBadRequest, "invalid proof id")
		return
	}

	rec, err := s.Store.GetProof(r.Context(), id)
	if err != nil {
		if err == sql.ErrNoRows {
			s.jsonError(w, http.StatusNotFound, "proof not found")
			return
		}
		log.Printf("get proof: %v", err)
		s.jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.json(w, http.StatusOK, map[string]any{
		"ok":    true,
		"proof": rec,
	})
}

func (s *Server) HandleCacheStats(w http.ResponseWriter, r *http.Request) {
	s.json(w, http.StatusOK, map[string]any{
		"ok":    true,
		"cache": s.Engine.CacheStats(),
	})
}

func (s *Server) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	if s.DB != nil {
		if err := s.DB.PingContext(r.Context()); err != nil {
			s.jsonError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}
	s.json(w, http.StatusOK, map[string]any{"ok": true})
}

// HandleCreateToken mints an API token. The cleartext token appears only in
// this response.
func (s *Server) HandleCreateToken(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		s.jsonError(w, http.StatusServiceUnavailable, "tokens require a database")
		return
	}

	var req struct {
		Label string `json:"label"`
	}
	if err := decode(r, &req); err != nil || req.Label == "" {
		s.jsonError(w, http.StatusBadRequest, "invalid label")
		return
	}

	token, hash, id, err := NewToken()
	if err != nil {
		log.Println("create token: generate secret:", err)
		s.jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := s.Store.InsertToken(r.Context(), id, req.Label, hash); err != nil {
		log.Println("create token: insert:", err)
		s.jsonError(w, http.StatusInternalServerError, "could not create token")
		return
	}

	s.json(w, http.StatusOK, map[string]any{
		"ok":       true,
		"token_id": id,
		"label":    req.Label,
		"token":    token,
	})
}

func (s *Server) HandleRevokeToken(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		s.jsonError(w, http.StatusServiceUnavailable, "tokens require a database")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "tokenID"))
	if err != nil {
		s.jsonError(w, http.StatusBadRequest, "invalid token id")
		return
	}

	ok, err := s.Store.RevokeToken(r.Context(), id)
	if err != nil {
		log.Println("revoke token:", err)
		s.jsonError(w, http.StatusInternalServerError, "could not revoke token")
		return
	}
	if !ok {
		s.jsonError(w, http.StatusNotFound, "token not found")
		return
	}

	s.json(w, http.StatusOK, map[string]any{
		"ok":       true,
		"token_id": id,
	})
}
