package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/studio-elise/gallerybackend/models"
	"github.com/studio-elise/gallerybackend/repository"
	"gorm.io/gorm"
)

// AdminClientHandler manages client accounts and their gallery access
// grants. Grant and revoke are scoped to galleries the calling admin owns.
type AdminClientHandler struct {
	ClientRepo  repository.ClientRepository
	GalleryRepo repository.GalleryRepository
	AccessRepo  repository.AccessRepository
}

func NewAdminClientHandler(clientRepo repository.ClientRepository, galleryRepo repository.GalleryRepository, accessRepo repository.AccessRepository) *AdminClientHandler {
	return &AdminClientHandler{ClientRepo: clientRepo, GalleryRepo: galleryRepo, AccessRepo: accessRepo}
}

type CreateClientPayload struct {
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	Password string  `json:"password"`
	Phone    *string `json:"phone,omitempty"`
}

func (h *AdminClientHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var payload CreateClientPayload
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
		WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to create client: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

func (h *AdminClientHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.ClientRepo.ListAll()
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to list clients")
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

func (h *AdminClientHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}
	client, err := h.ClientRepo.GetByID(id)
	if err != nil {
		writeRepoError(w, err, "client not found")
		return
	}
	writeJSON(w, http.StatusOK, client)
}

type UpdateClientPayload struct {
	Name      *string `json:"name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Password  *string `json:"password,omitempty"`
}

func (h *AdminClientHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var payload UpdateClientPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request payload")
		return
	}

	client, err := h.ClientRepo.GetByID(id)
	if err != nil {
		writeRepoError(w, err, "client not found")
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
	if payload.Password != nil && *payload.Password != "" {
		if err := client.SetPassword(*payload.Password); err != nil {
			WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to hash password")
			return
		}
	}

	if err := h.ClientRepo.Update(client); err != nil {
		WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to update client")
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (h *AdminClientHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.ClientRepo.Delete(id); err != nil {
		writeRepoError(w, err, "client not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type GrantAccessPayload struct {
	GalleryID uint   `json:"gallery_id"`
	Role      string `json:"role"`
}

// GrantAccess grants the client a role on one of the caller's galleries.
// Re-granting updates the role in place. A gallery the caller does not own
// reads as not found.
func (h *AdminClientHandler) GrantAccess(w http.ResponseWriter, r *http.Request) {
	clientID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var payload GrantAccessPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request payload")
		return
	}
	if !models.IsValidAccessRole(payload.Role) {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid role")
		return
	}

	if _, err := h.ClientRepo.GetByID(clientID); err != nil {
		writeRepoError(w, err, "client not found")
		return
	}

	gallery, err := h.GalleryRepo.GetByID(payload.GalleryID)
	if err != nil {
		writeRepoError(w, err, "gallery not found")
		return
	}
	if gallery.CreatedByUserID != userFromContext(r).ID {
		WriteAPIError(w, http.StatusNotFound, ErrCodeNotFound, "gallery not found")
		return
	}

	access, err := h.AccessRepo.Upsert(clientID, gallery.ID, models.AccessRole(payload.Role))
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to grant access")
		return
	}
	writeJSON(w, http.StatusOK, access)
}

// RevokeAccess removes the client's grant on one of the caller's galleries.
// An already-missing grant is a no-op; only galleries the caller does not
// own produce not found.
func (h *AdminClientHandler) RevokeAccess(w http.ResponseWriter, r *http.Request) {
	clientID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}
	galleryID, ok := parseIDParam(w, r, "galleryID")
	if !ok {
		return
	}

	gallery, err := h.GalleryRepo.GetByID(galleryID)
	if err != nil {
		writeRepoError(w, err, "gallery not found")
		return
	}
	if gallery.CreatedByUserID != userFromContext(r).ID {
		WriteAPIError(w, http.StatusNotFound, ErrCodeNotFound, "gallery not found")
		return
	}

	if err := h.AccessRepo.Delete(clientID, galleryID); err != nil {
		WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to revoke access")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
