// internal/web/store.go
package web

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

//go:embed schema.sql
var schemaSQL string

// ProofRecord is one row of proof history. Detail holds the proof text for
// proved outcomes and the interpretation block for found models.
type ProofRecord struct {
	ID         uuid.UUID `json:"id"`
	Operation  string    `json:"operation"`
	Premises   []string  `json:"premises"`
	Conclusion string    `json:"conclusion,omitempty"`
	Status     string    `json:"status"`
	Detail     string    `json:"detail,omitempty"`
	ElapsedMs  int64     `json:"elapsed_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store persists proof history and API tokens in Postgres.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// InitSchema applies the embedded schema. Idempotent.
func (st *Store) InitSchema(ctx context.Context) error {
	if _, err := st.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("schema exec error: %w", err)
	}
	return nil
}

// SaveProof records a completed outcome. The record's ID and CreatedAt are
// filled in on success.
func (st *Store) SaveProof(ctx context.Context, rec *ProofRecord) error {
	rec.ID = uuid.New()

	err := st.db.QueryRowContext(ctx, `
        INSERT INTO proofs (id, operation, premises, conclusion, status, detail, elapsed_ms)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at
    `, rec.ID, rec.Operation, pq.Array(rec.Premises), rec.Conclusion,
		rec.Status, rec.Detail, rec.ElapsedMs).Scan(&rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("save proof: %w", err)
	}
	return nil
}

// ListProofs returns the most recent proof records, newest first.
func (st *Store) ListProofs(ctx context.Context, limit int) ([]ProofRecord, error) {
	if limit < 1 || limit > 500 {
		limit = 50
	}

	rows, err := st.db.QueryContext(ctx, `
        SELECT id, operation, premises, conclusion, status, detail, elapsed_ms, created_at
        FROM proofs
        ORDER BY created_at DESC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("list proofs: %w", err)
	}
	defer rows.Close()

	var out []ProofRecord
	for rows.Next() {
		var rec ProofRecord
		if err := rows.Scan(&rec.ID, &rec.Operation, pq.Array(&rec.Premises),
			&rec.Conclusion, &rec.Status, &rec.Detail, &rec.ElapsedMs, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("list proofs: scan: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list proofs: %w", err)
	}
	return out, nil
}

// GetProof loads one proof record by ID.
func (st *Store) GetProof(ctx context.Context, id uuid.UUID) (*ProofRecord, error) {
	var rec ProofRecord
	err := st.db.QueryRowContext(ctx, `
        SELECT id, operation, premises, conclusion, status, detail, elapsed_ms, created_at
        FROM proofs
        WHERE id = $1
    `, id).Scan(&rec.ID, &rec.Operation, pq.Array(&rec.Premises),
		&rec.Conclusion, &rec.Status, &rec.Detail, &rec.ElapsedMs, &rec.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get proof: %w", err)
	}
	return &rec, nil
}

// InsertToken stores a new API token's bcrypt hash under the ID minted with
// the token string.
func (st *Store) InsertToken(ctx context.Context, id uuid.UUID, label, secretHash string) error {
	_, err := st.db.ExecContext(ctx, `
        INSERT INTO api_tokens (id, label, secret_hash)
        VALUES ($1, $2, $3)
    `, id, label, secretHash)
	if err != nil {
		return fmt.Errorf("insert token: %w", err)
	}
	return nil
}

// TokenHash resolves an unrevoked token's stored hash by ID.
func (st *Store) TokenHash(ctx context.Context, id uuid.UUID) (string, error) {
	var hash string
	err := st.db.QueryRowContext(ctx, `
        SELECT secret_hash
        FROM api_tokens
        WHERE id = $1 AND revoked = FALSE
    `, id).Scan(&hash)
	if err != nil {
		return "", err
	}
	return hash, nil
}

// RevokeToken marks a token revoked. Reports whether a row changed.
func (st *Store) RevokeToken(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := st.db.ExecContext(ctx, `
        UPDATE api_tokens
        SET revoked = TRUE
        WHERE id = $1
    `, id)
	if err != nil {
		return false, fmt.Errorf("revoke token: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
