package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"vet-practice-management/internal/domain/apperr"
	"vet-practice-management/internal/ports/auth"

	"golang.org/x/crypto/bcrypt"
)

type testStore struct {
	byID map[string]Identity
}

func newTestStore() *testStore { return &testStore{byID: map[string]Identity{}} }

func (s *testStore) Save(_ context.Context, sid string, id Identity, _ time.Time) error {
	s.byID[sid] = id
	return nil
}

func (s *testStore) Load(_ context.Context, sid string) (Identity, error) {
	id, ok := s.byID[sid]
	if !ok {
		return Identity{}, apperr.ErrNotFound
	}
	return id, nil
}

func (s *testStore) Delete(_ context.Context, sid string) error {
	delete(s.byID, sid)
	return nil
}

func newTestService(t *testing.T) (*Service, *testStore) {
	t.Helper()
	store := newTestStore()
	svc, err := NewService(DefaultUsers(), store, NewTokens("test-secret", time.Hour), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	svc.now = func() time.Time { return time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC) }
	return svc, store
}

func TestLogin_FixedUsers(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		username string
		role     auth.Role
		name     string
	}{
		{"admin", auth.RoleAdmin, "Dr. Sarah Johnson"},
		{"vet", auth.RoleVeterinarian, "Dr. Michael Chen"},
		{"reception", auth.RoleReceptionist, "Emily Davis"},
	}
	for _, tc := range cases {
		sess, err := svc.Login(ctx, tc.username, tc.username)
		if err != nil {
			t.Fatalf("login %s: %v", tc.username, err)
		}
		if sess.Identity.Role != tc.role || sess.Identity.Name != tc.name {
			t.Fatalf("unexpected identity for %s: %#v", tc.username, sess.Identity)
		}
		if sess.Token == "" || sess.ID == "" {
			t.Fatalf("expected token and session id")
		}
		if _, ok := store.byID[sess.ID]; !ok {
			t.Fatalf("session not saved in slot")
		}
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	for _, c := range [][2]string{{"admin", "wrong"}, {"Admin", "admin"}, {"nobody", "x"}, {"", ""}} {
		if _, err := svc.Login(ctx, c[0], c[1]); !errors.Is(err, apperr.ErrInvalidCredentials) {
			t.Fatalf("login %q/%q: expected ErrInvalidCredentials, got %v", c[0], c[1], err)
		}
	}
	if len(store.byID) != 0 {
		t.Fatalf("failed logins must not write the slot")
	}
}

func TestRestoreAndLogout(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sess, err := svc.Login(ctx, "vet", "vet")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	id, sid, err := svc.Restore(ctx, sess.Token)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if id != sess.Identity || sid != sess.ID {
		t.Fatalf("restored %#v/%s, want %#v/%s", id, sid, sess.Identity, sess.ID)
	}

	if err := svc.Logout(ctx, sess.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, _, err := svc.Restore(ctx, sess.Token); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated after logout, got %v", err)
	}
	if err := svc.Logout(ctx, sess.Token); err != nil {
		t.Fatalf("second logout must be a no-op, got %v", err)
	}
}

func TestRestore_RejectsBadTokens(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.Restore(ctx, "not-a-jwt"); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	other := NewTokens("other-secret", time.Hour)
	forged, _, err := other.Issue(Identity{ID: 1, Username: "admin", Role: auth.RoleAdmin}, "sid", svc.now())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, _, err := svc.Restore(ctx, forged); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Fatalf("expected forged token rejected, got %v", err)
	}
}

func TestTokens_Expired(t *testing.T) {
	tokens := NewTokens("s", time.Minute)
	issued := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	raw, exp, err := tokens.Issue(Identity{ID: 1, Username: "admin"}, "sid", issued)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !exp.Equal(issued.Add(time.Minute)) {
		t.Fatalf("unexpected expiry %s", exp)
	}
	if _, _, err := tokens.Parse(raw, issued.Add(30*time.Second)); err != nil {
		t.Fatalf("token should be valid before expiry: %v", err)
	}
	if _, _, err := tokens.Parse(raw, issued.Add(2*time.Minute)); !errors.Is(err, ErrBadToken) {
		t.Fatalf("expected ErrBadToken after expiry, got %v", err)
	}
}
