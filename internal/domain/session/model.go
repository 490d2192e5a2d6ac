// Package session autentica contra la lista fija de usuarios del staff y
// mantiene el slot de sesión. Solo la identidad se persiste, nunca la contraseña.
package session

import (
	"context"
	"time"

	"vet-practice-management/internal/ports/auth"
)

type Identity struct {
	ID       int64
	Username string
	Role     auth.Role
	Name     string
}

func (i Identity) Claims(sessionID string) auth.Claims {
	return auth.Claims{
		UserID:    i.ID,
		Username:  i.Username,
		Role:      i.Role,
		Name:      i.Name,
		SessionID: sessionID,
	}
}

// Session es lo que devuelve un login exitoso.
type Session struct {
	ID        string
	Identity  Identity
	Token     string
	ExpiresAt time.Time
}

// Store es el slot de sesión. Load devuelve apperr.ErrNotFound si la sesión
// no existe o ya venció.
type Store interface {
	Save(ctx context.Context, sessionID string, id Identity, expiresAt time.Time) error
	Load(ctx context.Context, sessionID string) (Identity, error)
	Delete(ctx context.Context, sessionID string) error
}

// Credential es un usuario de la lista fija.
type Credential struct {
	Identity Identity
	Password string
}

// DefaultUsers son los usuarios demo de la clínica.
func DefaultUsers() []Credential {
	return []Credential{
		{Identity{ID: 1, Username: "admin", Role: auth.RoleAdmin, Name: "Dr. Sarah Johnson"}, "admin"},
		{Identity{ID: 2, Username: "vet", Role: auth.RoleVeterinarian, Name: "Dr. Michael Chen"}, "vet"},
		{Identity{ID: 3, Username: "reception", Role: auth.RoleReceptionist, Name: "Emily Davis"}, "reception"},
	}
}
