package handlers

import (
	"errors"
	"net/http"

	"github.com/isdelr/contactos-api/internal/auth"
	"github.com/isdelr/contactos-api/internal/services"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles registration, token issuance and token checks.
type AuthHandler struct {
	service services.AuthServiceProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.AuthServiceProvider) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register creates a user from HTTP Basic credentials.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	username, password, ok := r.BasicAuth()
	if !ok {
		auth.Unauthorized(w, "Basic", "Not authenticated")
		return
	}

	if err := h.service.Register(r.Context(), username, password); err != nil {
		if errors.Is(err, services.ErrConflict) {
			log.Warn().Str("username", username).Msg("Registration for existing user")
			writeError(w, http.StatusBadRequest, "User already exists")
			return
		}
		writeServiceError(w, err, "Failed to register user", "Failed to register user")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "User registered"})
}

// Token exchanges HTTP Basic credentials for a fresh bearer token.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	username, password, ok := r.BasicAuth()
	if !ok {
		auth.Unauthorized(w, "Basic", "Not authenticated")
		return
	}

	token, err := h.service.IssueToken(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, services.ErrUnauthenticated) {
			log.Warn().Err(err).Str("username", username).Msg("Failed authentication attempt")
			auth.Unauthorized(w, "Basic", "Invalid credentials")
			return
		}
		writeServiceError(w, err, "Failed to issue token", "Failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Login reports whether the presented bearer token is valid.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.checkBearer(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Login successful"})
}

// RequireToken is middleware that runs the login check before next and
// short-circuits when it fails.
func (h *AuthHandler) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.checkBearer(w, r) {
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *AuthHandler) checkBearer(w http.ResponseWriter, r *http.Request) bool {
	token, ok := auth.BearerToken(r)
	if !ok {
		auth.Unauthorized(w, "Bearer", "Not authenticated")
		return false
	}

	if err := h.service.ValidateToken(r.Context(), token); err != nil {
		if errors.Is(err, services.ErrUnauthenticated) {
			log.Warn().Err(err).Str("path", r.URL.Path).Msg("Rejected bearer token")
			auth.Unauthorized(w, "Bearer", "Invalid or expired token")
			return false
		}
		writeServiceError(w, err, "Failed to validate token", "Failed to validate token")
		return false
	}
	return true
}

// Root returns the service banner.
func Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "/contactos para obtener todos los contactos"})
}
