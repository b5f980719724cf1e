package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/studio-elise/gallerybackend/auth"
	"github.com/studio-elise/gallerybackend/models"
	"github.com/studio-elise/gallerybackend/repository"
)

type AdminAuthHandler struct {
	UserRepo repository.UserRepository
	Tokens   *auth.TokenManager
}

func NewAdminAuthHandler(userRepo repository.UserRepository, tokens *auth.TokenManager) *AdminAuthHandler {
	return &AdminAuthHandler{UserRepo: userRepo, Tokens: tokens}
}

type AdminLoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AdminLoginResponse struct {
	Token     string      `json:"token"`
	User      models.User `json:"user"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// Login authenticates an admin user. Unknown username and wrong password
// return the identical error so accounts cannot be enumerated.
func (h *AdminAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload AdminLoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request payload")
		return
	}

	user, err := h.UserRepo.GetByUsername(payload.Username)
	if err != nil || !user.CheckPassword(payload.Password) {
		WriteAPIError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid username or password")
		return
	}

	token, expiresAt, err := h.Tokens.IssueAdminToken(user.ID)
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, AdminLoginResponse{Token: token, User: *user, ExpiresAt: expiresAt})
}

// CurrentUser returns the authenticated admin user from the request context.
// This handler must sit behind AdminAuthMiddleware.
func (h *AdminAuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	if user == nil {
		WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "could not retrieve user from context")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
