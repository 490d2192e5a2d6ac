// Package redis guarda el slot de sesión en Redis (SESSION_BACKEND=redis).
// El vencimiento lo maneja el TTL de la clave.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vet-practice-management/internal/domain/apperr"
	"vet-practice-management/internal/domain/session"
	"vet-practice-management/internal/ports/auth"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "vet:session:"

type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewClient crea el cliente y verifica con ping (timeout corto).
func NewClient(ctx context.Context, opts Options) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}
	return client, nil
}

type SessionsRepo struct {
	client goredis.Cmdable
	now    func() time.Time
}

func NewSessionsRepo(client goredis.Cmdable) *SessionsRepo {
	return &SessionsRepo{client: client, now: time.Now}
}

type storedIdentity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Name     string `json:"name"`
}

func (r *SessionsRepo) Save(ctx context.Context, sessionID string, id session.Identity, expiresAt time.Time) error {
	ttl := expiresAt.Sub(r.now())
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired at %s", sessionID, expiresAt.UTC().Format(time.RFC3339))
	}
	b, err := json.Marshal(storedIdentity{ID: id.ID, Username: id.Username, Role: string(id.Role), Name: id.Name})
	if err != nil {
		return err
	}
	return r.client.Set(ctx, keyPrefix+sessionID, b, ttl).Err()
}

func (r *SessionsRepo) Load(ctx context.Context, sessionID string) (session.Identity, error) {
	b, err := r.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if errors.Is(err, goredis.Nil) {
		return session.Identity{}, apperr.ErrNotFound
	}
	if err != nil {
		return session.Identity{}, err
	}
	var s storedIdentity
	if err := json.Unmarshal(b, &s); err != nil {
		return session.Identity{}, fmt.Errorf("decode session %s: %w", sessionID, err)
	}
	return session.Identity{ID: s.ID, Username: s.Username, Role: auth.Role(s.Role), Name: s.Name}, nil
}

func (r *SessionsRepo) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, keyPrefix+sessionID).Err()
}

var _ session.Store = (*SessionsRepo)(nil)
