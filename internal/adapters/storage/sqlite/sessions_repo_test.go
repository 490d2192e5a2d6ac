package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"vet-practice-management/internal/domain/apperr"
	"vet-practice-management/internal/domain/session"
	"vet-practice-management/internal/ports/auth"
)

func openTemp(t *testing.T) *SessionsRepo {
	t.Helper()
	repo, err := Open(context.Background(), filepath.Join(t.TempDir(), "data", "sessions.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSessionsRepo_SaveLoadDelete(t *testing.T) {
	repo := openTemp(t)
	ctx := context.Background()
	id := session.Identity{ID: 2, Username: "vet", Role: auth.RoleVeterinarian, Name: "Dr. Michael Chen"}

	if err := repo.Save(ctx, "s1", id, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != id {
		t.Fatalf("expected %#v, got %#v", id, got)
	}

	if err := repo.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Load(ctx, "s1"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSessionsRepo_ExpiredIsNotFound(t *testing.T) {
	repo := openTemp(t)
	ctx := context.Background()
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	id := session.Identity{ID: 1, Username: "admin", Role: auth.RoleAdmin}
	if err := repo.Save(ctx, "old", id, now.Add(-time.Minute)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := repo.Load(ctx, "old"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for expired session, got %v", err)
	}
	n, err := repo.PurgeExpired(ctx)
	if err != nil || n != 1 {
		t.Fatalf("expected 1 purged, got %d (%v)", n, err)
	}
}
