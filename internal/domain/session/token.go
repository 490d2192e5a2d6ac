package session

import (
	"errors"
	"fmt"
	"time"

	"vet-practice-management/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var ErrBadToken = errors.New("invalid session token")

type tokenClaims struct {
	UserID   int64     `json:"uid"`
	Username string    `json:"username"`
	Role     auth.Role `json:"role"`
	Name     string    `json:"name"`
	jwt.RegisteredClaims
}

// Tokens firma y valida los tokens de sesión (HS256).
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

func NewTokens(secret string, ttl time.Duration) Tokens {
	return Tokens{secret: []byte(secret), ttl: ttl}
}

func (t Tokens) TTL() time.Duration { return t.ttl }

func (t Tokens) Issue(id Identity, sessionID string, now time.Time) (string, time.Time, error) {
	exp := now.Add(t.ttl)
	c := tokenClaims{
		UserID:   id.ID,
		Username: id.Username,
		Role:     id.Role,
		Name:     id.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   id.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return signed, exp, nil
}

// Parse valida firma y vencimiento y devuelve el id de sesión (jti).
func (t Tokens) Parse(raw string, now time.Time) (string, Identity, error) {
	tok, err := jwt.ParseWithClaims(raw, &tokenClaims{}, func(tk *jwt.Token) (any, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }), jwt.WithExpirationRequired())
	if err != nil {
		return "", Identity{}, fmt.Errorf("%w: %v", ErrBadToken, err)
	}
	c, ok := tok.Claims.(*tokenClaims)
	if !ok || !tok.Valid || c.ID == "" {
		return "", Identity{}, ErrBadToken
	}
	return c.ID, Identity{ID: c.UserID, Username: c.Username, Role: c.Role, Name: c.Name}, nil
}
