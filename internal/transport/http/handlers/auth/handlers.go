package authhandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"caribpay/internal/auth"
	"caribpay/internal/transport/http/api"
	"caribpay/internal/transport/http/middleware"
)

// Handler exchanges a configured API credential for a bearer token. It is
// only mounted when auth is enabled.
type Handler struct {
	Secret     string
	ClientID   string
	SecretHash string
	TokenTTL   time.Duration
}

func NewHandler(secret, clientID, secretHash string, ttl time.Duration) *Handler {
	return &Handler{Secret: secret, ClientID: clientID, SecretHash: secretHash, TokenTTL: ttl}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/token", h.handleToken)
}

type tokenPayload struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

func (h *Handler) handleToken(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload tokenPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON", reqID)
		return
	}

	if payload.ClientID != h.ClientID || auth.CheckSecret(h.SecretHash, payload.ClientSecret) != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "client id or secret is incorrect", reqID)
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{ClientID: payload.ClientID}, h.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "could not issue token", reqID)
		return
	}

	api.Success(w, map[string]any{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   int(h.TokenTTL.Seconds()),
	}, reqID)
}
