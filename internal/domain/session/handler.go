package session

import (
	"errors"
	"net/http"
	"time"

	"vet-practice-management/internal/domain/apperr"
	"vet-practice-management/internal/middleware"
	"vet-practice-management/internal/platform/httpx"
	"vet-practice-management/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

type RouteOptions struct {
	// LoginLimiter envuelve solo POST /auth/login (puede ser nil).
	LoginLimiter func(http.Handler) http.Handler
	// OnLogin recibe "ok" o "invalid" (métricas).
	OnLogin func(result string)
}

func RegisterRoutes(r chi.Router, svc *Service, opts RouteOptions) {
	r.Route("/auth", func(ar chi.Router) {
		login := http.Handler(loginHandler(svc, opts.OnLogin))
		if opts.LoginLimiter != nil {
			login = opts.LoginLimiter(login)
		}
		ar.Method(http.MethodPost, "/login", login)
		ar.Get("/session", currentSessionHandler(svc))
		ar.Post("/logout", logoutHandler(svc))
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type identityResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Name     string `json:"name"`
}

type sessionResponse struct {
	Token     string           `json:"token,omitempty"`
	ExpiresAt *time.Time       `json:"expires_at,omitempty"`
	User      identityResponse `json:"user"`
}

// loginHandler godoc
// @Summary Iniciar sesión
// @Description Valida contra la lista fija de usuarios del staff y devuelve un token Bearer.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} sessionResponse
// @Failure 400 {object} httpx.ErrorResponse "invalid json"
// @Failure 401 {object} httpx.ErrorResponse "invalid credentials"
// @Failure 429 {object} httpx.ErrorResponse "too many requests"
// @Router /auth/login [post]
func loginHandler(svc *Service, onLogin func(string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		sess, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, apperr.ErrInvalidCredentials) {
				report(onLogin, "invalid")
				logger.FromContext(r.Context()).Warn("login rejected", logger.Fields{"username": req.Username})
			}
			httpx.WriteError(w, err, "")
			return
		}

		report(onLogin, "ok")
		logger.FromContext(r.Context()).Info("login", logger.Fields{
			"user_id": sess.Identity.ID,
			"role":    string(sess.Identity.Role),
		})
		exp := sess.ExpiresAt
		httpx.JSON(w, http.StatusOK, sessionResponse{
			Token:     sess.Token,
			ExpiresAt: &exp,
			User:      toIdentityResponse(sess.Identity),
		})
	}
}

// currentSessionHandler godoc
// @Summary Restaurar sesión
// @Description Devuelve el usuario del slot de sesión activo.
// @Tags auth
// @Produce json
// @Param Authorization header string true "Bearer token de sesión"
// @Success 200 {object} sessionResponse
// @Failure 401 {object} httpx.ErrorResponse "unauthorized"
// @Router /auth/session [get]
func currentSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _, err := svc.Restore(r.Context(), middleware.BearerToken(r))
		if err != nil {
			httpx.WriteError(w, err, "")
			return
		}
		httpx.JSON(w, http.StatusOK, sessionResponse{User: toIdentityResponse(id)})
	}
}

func logoutHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Logout(r.Context(), middleware.BearerToken(r)); err != nil {
			httpx.WriteError(w, err, "")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func report(fn func(string), result string) {
	if fn != nil {
		fn(result)
	}
}

func toIdentityResponse(id Identity) identityResponse {
	return identityResponse{
		ID:       id.ID,
		Username: id.Username,
		Role:     string(id.Role),
		Name:     id.Name,
	}
}
