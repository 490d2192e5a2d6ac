package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vet-practice-management/internal/domain/apperr"
	"vet-practice-management/internal/domain/session"
	"vet-practice-management/internal/ports/auth"
)

type SessionsRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewSessionsRepo(db *sql.DB) *SessionsRepo {
	return &SessionsRepo{db: db, now: time.Now}
}

// EnsureSchema crea la tabla si no existe (idempotente).
func (r *SessionsRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS sessions (
			id          TEXT PRIMARY KEY,
			user_id     BIGINT NOT NULL,
			username    TEXT NOT NULL,
			role        TEXT NOT NULL,
			name        TEXT NOT NULL,
			expires_at  TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (r *SessionsRepo) Save(ctx context.Context, sessionID string, id session.Identity, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, username, role, name, expires_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			username = EXCLUDED.username,
			role = EXCLUDED.role,
			name = EXCLUDED.name,
			expires_at = EXCLUDED.expires_at
	`,
		sessionID,
		id.ID,
		id.Username,
		string(id.Role),
		id.Name,
		expiresAt.UTC(),
	)
	return err
}

func (r *SessionsRepo) Load(ctx context.Context, sessionID string) (session.Identity, error) {
	var (
		id   session.Identity
		role string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, username, role, name
		FROM sessions
		WHERE id = $1 AND expires_at > $2
	`, sessionID, r.now().UTC()).Scan(&id.ID, &id.Username, &role, &id.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return session.Identity{}, apperr.ErrNotFound
	}
	if err != nil {
		return session.Identity{}, err
	}
	id.Role = auth.Role(role)
	return id, nil
}

func (r *SessionsRepo) Delete(ctx context.Context, sessionID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, sessionID)
	return err
}

// PurgeExpired borra sesiones vencidas; devuelve cuántas.
func (r *SessionsRepo) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, r.now().UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

var _ session.Store = (*SessionsRepo)(nil)
