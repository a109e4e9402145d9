// internal/web/auth.go
package web

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Tokens look like "<uuid>.<hex secret>". Only the bcrypt hash of the secret
// part is stored; the full token is shown once at creation time.

// NewToken mints a token string and the bcrypt hash to store for it.
func NewToken() (token, secretHash string, id uuid.UUID, err error) {
	buf := make([]byte, 32)
	if _, err = rand.Read(buf); err != nil {
		return "", "", uuid.Nil, err
	}
	secret := hex.EncodeToString(buf)

	h, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", "", uuid.Nil, err
	}

	id = uuid.New()
	return fmt.Sprintf("%s.%s", id, secret), string(h), id, nil
}

// authenticateBearer extracts "Bearer <id>.<secret>" from the Authorization
// header and checks the secret against the stored hash.
func (s *Server) authenticateBearer(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return false
	}

	parts := strings.Fields(auth)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return false
	}

	idStr, secret, found := strings.Cut(parts[1], ".")
	if !found {
		return false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return false
	}

	hash, err := s.Store.TokenHash(r.Context(), id)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("authenticateBearer: db error: %v", err)
		}
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}

// requireToken gates a route behind bearer auth. With no database configured
// the server runs open, the local single-user mode.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.DB == nil {
			next.ServeHTTP(w, r)
			return
		}
		if !s.authenticateBearer(r) {
			s.jsonError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
