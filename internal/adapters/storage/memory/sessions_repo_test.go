package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"vet-practice-management/internal/domain/apperr"
	"vet-practice-management/internal/domain/session"
)

func TestSessionStore_ExpiryAndDelete(t *testing.T) {
	s := NewSessionStore()
	now := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()
	id := session.Identity{ID: 3, Username: "reception"}

	_ = s.Save(ctx, "live", id, now.Add(time.Hour))
	_ = s.Save(ctx, "stale", id, now)

	if got, err := s.Load(ctx, "live"); err != nil || got != id {
		t.Fatalf("expected live session, got %#v (%v)", got, err)
	}
	if _, err := s.Load(ctx, "stale"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected expired session to be gone, got %v", err)
	}

	_ = s.Delete(ctx, "live")
	if _, err := s.Load(ctx, "live"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
