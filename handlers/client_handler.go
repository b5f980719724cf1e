package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/studio-elise/gallerybackend/auth"
	"github.com/studio-elise/gallerybackend/models"
	"github.com/studio-elise/gallerybackend/repository"
	"gorm.io/gorm"
)

// ClientHandler serves the self-service client routes: login, registration,
// profile and the list of galleries the client was granted access to.
type ClientHandler struct {
	ClientRepo repository.ClientRepository
	AccessRepo repository.AccessRepository
	Tokens     *auth.TokenManager
}

func NewClientHandler(clientRepo repository.ClientRepository, accessRepo repository.AccessRepository, tokens *auth.TokenManager) *ClientHandler {
	return &ClientHandler{ClientRepo: clientRepo, AccessRepo: accessRepo, Tokens: tokens}
}

type ClientLoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ClientAuthResponse struct {
	Token     string        `json:"token"`
	Client    models.Client `json:"client"`
	ExpiresAt time.Time     `json:"expires_at"`
}

// Login authenticates a client. Unknown email and mismatched password
// return the identical error shape, deliberately: no enumeration signal.
func (h *ClientHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload ClientLoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request payload")
		return
	}

	client, err := h.ClientRepo.GetByEmail(payload.Email)
	if err != nil || !client.CheckPassword(payload.Password) {
		WriteAPIError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid email or password")
		return
	}

	token, expiresAt, err := h.Tokens.IssueClientToken(client.ID)
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, ClientAuthResponse{Token: token, Client: *client, ExpiresAt: expiresAt})
}

type ClientRegisterPayload struct {
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	Password string  `json:"password"`
	Phone    *string `json:"phone,omitempty"`
}

// Register creates a client account. A duplicate email is a conflict.
func (h *ClientHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload ClientRegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request payload")
		return
	}
	if payload.Email == "" || payload.Name == "" || payload.Password == "" {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "email, name and password are required")
		return
	}

	if _, err := h.ClientRepo.GetByEmail(payload.Email); err == nil {
		WriteAPIError(w, http.StatusConflict, ErrCodeConflict, "email already registered")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to check email")
		return
	}

	client := &models.Client{Email: payload.Email, Name: payload.Name, Phone: payload.Phone}
	if err := client.SetPassword(payload.Password); err != nil {
		WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to hash password")
		return
	}

	if err := h.ClientRepo.Create(client); err != nil {
		// the unique index may still fire under a concurrent registration
		WriteAPIError(w, http.StatusConflict, ErrCodeConflict, "email already registered")
		return
	}

	token, expiresAt, err := h.Tokens.IssueClientToken(client.ID)
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to generate token")
		return
	}

	writeJSON(w, http.StatusCreated, ClientAuthResponse{Token: token, Client: *client, ExpiresAt: expiresAt})
}

// Me returns the authenticated client. Must sit behind ClientAuthMiddleware.
func (h *ClientHandler) Me(w http.ResponseWriter, r *http.Request) {
	client := clientFromContext(r)
	if client == nil {
		WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "could not retrieve client from context")
		return
	}
	writeJSON(w, http.StatusOK, client)
}

// MyGalleries lists the access grants of the authenticated client with the
// galleries preloaded.
func (h *ClientHandler) MyGalleries(w http.ResponseWriter, r *http.Request) {
	client := clientFromContext(r)
	if client == nil {
		WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "could not retrieve client from context")
		return
	}

	grants, err := h.AccessRepo.ListByClient(client.ID)
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to list galleries")
		return
	}
	writeJSON(w, http.StatusOK, grants)
}

type UpdateProfilePayload struct {
	Name            *string `json:"name,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	AvatarURL       *string `json:"avatar_url,omitempty"`
	CurrentPassword *string `json:"current_password,omitempty"`
	NewPassword     *string `json:"new_password,omitempty"`
}

// UpdateProfile updates the authenticated client's profile. Changing the
// password requires the current password.
func (h *ClientHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	client := clientFromContext(r)
	if client == nil {
		WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "could not retrieve client from context")
		return
	}

	var payload UpdateProfilePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request payload")
		return
	}

	if payload.Name != nil {
		client.Name = *payload.Name
	}
	if payload.Phone != nil {
		client.Phone = payload.Phone
	}
	if payload.AvatarURL != nil {
		client.AvatarURL = payload.AvatarURL
	}

	if payload.NewPassword != nil && *payload.NewPassword != "" {
		if payload.CurrentPassword == nil || *payload.CurrentPassword == "" {
			WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "current password is required to change password")
			return
		}
		if !client.CheckPassword(*payload.CurrentPassword) {
			WriteAPIError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "current password is incorrect")
			return
		}
		if err := client.SetPassword(*payload.NewPassword); err != nil {
			WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to hash password")
			return
		}
	}

	if err := h.ClientRepo.Update(client); err != nil {
		WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to update profile")
		return
	}
	writeJSON(w, http.StatusOK, client)
}
