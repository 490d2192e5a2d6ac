package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vet-practice-management/internal/domain/apperr"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type user struct {
	identity Identity
	hash     []byte
}

type Service struct {
	users  map[string]user
	store  Store
	tokens Tokens
	now    func() time.Time
	newID  func() string
}

// NewService hashea las contraseñas de la lista fija al construir.
// cost 0 = bcrypt.DefaultCost.
func NewService(creds []Credential, store Store, tokens Tokens, cost int) (*Service, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	users := make(map[string]user, len(creds))
	for _, c := range creds {
		hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", c.Identity.Username, err)
		}
		users[c.Identity.Username] = user{identity: c.Identity, hash: hash}
	}
	return &Service{
		users:  users,
		store:  store,
		tokens: tokens,
		now:    time.Now,
		newID:  uuid.NewString,
	}, nil
}

// Login compara usuario y contraseña de forma exacta (case-sensitive).
// Usuario inexistente y contraseña incorrecta devuelven el mismo error.
func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	u, ok := s.users[username]
	if !ok || bcrypt.CompareHashAndPassword(u.hash, []byte(password)) != nil {
		return Session{}, apperr.ErrInvalidCredentials
	}

	sid := s.newID()
	now := s.now()
	token, exp, err := s.tokens.Issue(u.identity, sid, now)
	if err != nil {
		return Session{}, err
	}
	if err := s.store.Save(ctx, sid, u.identity, exp); err != nil {
		return Session{}, fmt.Errorf("save session: %w", err)
	}
	return Session{ID: sid, Identity: u.identity, Token: token, ExpiresAt: exp}, nil
}

// Restore devuelve la identidad guardada para el token. El slot manda:
// un token válido cuya sesión fue cerrada no restaura nada.
func (s *Service) Restore(ctx context.Context, token string) (Identity, string, error) {
	sid, _, err := s.tokens.Parse(strings.TrimSpace(token), s.now())
	if err != nil {
		return Identity{}, "", apperr.ErrUnauthenticated
	}
	id, err := s.store.Load(ctx, sid)
	if errors.Is(err, apperr.ErrNotFound) {
		return Identity{}, "", apperr.ErrUnauthenticated
	}
	if err != nil {
		return Identity{}, "", fmt.Errorf("load session: %w", err)
	}
	return id, sid, nil
}

// Logout vacía el slot. Repetirlo no es error.
func (s *Service) Logout(ctx context.Context, token string) error {
	sid, _, err := s.tokens.Parse(strings.TrimSpace(token), s.now())
	if err != nil {
		return apperr.ErrUnauthenticated
	}
	if err := s.store.Delete(ctx, sid); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
