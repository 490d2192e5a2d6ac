package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vet-practice-management/internal/ports/auth"
)

type fakeVerifier map[string]auth.Claims

func (f fakeVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	c, ok := f[token]
	if !ok {
		return auth.Claims{}, context.Canceled
	}
	return c, nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
}

func TestRequireSection(t *testing.T) {
	v := fakeVerifier{
		"vet-token":   {UserID: 2, Username: "vet", Role: auth.RoleVeterinarian},
		"admin-token": {UserID: 1, Username: "admin", Role: auth.RoleAdmin},
	}
	h := AuthContext(v)(RequireSection(auth.SectionInvoices)(okHandler()))

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"role not allowed", "Bearer vet-token", http.StatusForbidden},
		{"allowed", "Bearer admin-token", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/invoices", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			if rr.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rr.Code)
			}
		})
	}
}

func TestRateLimiter_PerIP(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	h := rl.Limit(nil)(okHandler())

	hit := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	if hit("10.0.0.1:1000") != http.StatusOK || hit("10.0.0.1:1001") != http.StatusOK {
		t.Fatalf("burst requests must pass")
	}
	if code := hit("10.0.0.1:1002"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", code)
	}
	if code := hit("10.0.0.2:1000"); code != http.StatusOK {
		t.Fatalf("other IPs must not be limited, got %d", code)
	}
}

func TestRateLimiter_Sweep(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	rl.get("a")

	now = now.Add(10 * time.Minute)
	rl.get("b")
	if left := rl.Sweep(); left != 1 {
		t.Fatalf("expected 1 client after sweep, got %d", left)
	}
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"Bearer abc":  "abc",
		"bearer  abc": "abc",
		"Basic abc":   "",
		"Bearer":      "",
		"":            "",
	}
	for header, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		if got := BearerToken(req); got != want {
			t.Fatalf("BearerToken(%q) = %q, want %q", header, got, want)
		}
	}
}

func TestRequireSectionForWrites(t *testing.T) {
	v := fakeVerifier{"vet-token": {UserID: 2, Username: "vet", Role: auth.RoleVeterinarian}}
	h := AuthContext(v)(RequireSectionForWrites(auth.SectionCustomers)(okHandler()))

	for method, want := range map[string]int{
		http.MethodGet:    http.StatusOK,
		http.MethodPost:   http.StatusForbidden,
		http.MethodDelete: http.StatusForbidden,
	} {
		req := httptest.NewRequest(method, "/customers", nil)
		req.Header.Set("Authorization", "Bearer vet-token")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != want {
			t.Fatalf("%s: expected %d, got %d", method, want, rr.Code)
		}
	}
}
