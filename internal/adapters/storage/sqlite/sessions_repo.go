// Package sqlite guarda el slot de sesión en un archivo SQLite
// (SESSION_BACKEND=sqlite), sin cgo.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"vet-practice-management/internal/domain/apperr"
	"vet-practice-management/internal/domain/session"
	"vet-practice-management/internal/ports/auth"

	_ "modernc.org/sqlite"
)

type SessionsRepo struct {
	db  *sql.DB
	now func() time.Time
}

// Open crea el directorio y la tabla si hace falta.
func Open(ctx context.Context, path string) (*SessionsRepo, error) {
	if path == "" {
		path = "sessions.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// un solo writer: evita SQLITE_BUSY entre conexiones del pool
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS sessions (
		id         TEXT PRIMARY KEY,
		user_id    INTEGER NOT NULL,
		username   TEXT NOT NULL,
		role       TEXT NOT NULL,
		name       TEXT NOT NULL,
		expires_at INTEGER NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create sessions table: %w", err)
	}
	return &SessionsRepo{db: db, now: time.Now}, nil
}

func (r *SessionsRepo) Close() error { return r.db.Close() }

func (r *SessionsRepo) Save(ctx context.Context, sessionID string, id session.Identity, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO sessions (id, user_id, username, role, name, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, sessionID, id.ID, id.Username, string(id.Role), id.Name, expiresAt.UnixNano())
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
		WHERE id = ? AND expires_at > ?
	`, sessionID, r.now().UnixNano()).Scan(&id.ID, &id.Username, &role, &id.Name)
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
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, sessionID)
	return err
}

func (r *SessionsRepo) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, r.now().UnixNano())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

var _ session.Store = (*SessionsRepo)(nil)
