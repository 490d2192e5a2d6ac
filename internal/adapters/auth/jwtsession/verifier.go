// Package jwtsession implementa auth.AuthVerifier sobre el servicio de sesión:
// el token debe ser válido y su sesión seguir en el slot.
package jwtsession

import (
	"context"
	"errors"
	"strings"

	"vet-practice-management/internal/domain/session"
	"vet-practice-management/internal/ports/auth"
)

var ErrTokenEmpty = errors.New("token is empty")

type Verifier struct {
	sessions *session.Service
}

func NewVerifier(sessions *session.Service) *Verifier {
	return &Verifier{sessions: sessions}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}
	id, sid, err := v.sessions.Restore(ctx, token)
	if err != nil {
		return auth.Claims{}, err
	}
	return id.Claims(sid), nil
}

var _ auth.AuthVerifier = (*Verifier)(nil)
