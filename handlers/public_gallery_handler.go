package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/studio-elise/gallerybackend/config"
	"github.com/studio-elise/gallerybackend/models"
	"github.com/studio-elise/gallerybackend/repository"
)

// PublicGalleryHandler serves the guest-facing gallery routes: the access
// check, access code verification and the gallery content itself.
type PublicGalleryHandler struct {
	GalleryRepo repository.GalleryRepository
	MediaRepo   repository.MediaRepository
	AccessRepo  repository.AccessRepository
	SessionRepo repository.GuestSessionRepository
	Cfg         config.Config
}

func NewPublicGalleryHandler(galleryRepo repository.GalleryRepository, mediaRepo repository.MediaRepository, accessRepo repository.AccessRepository, sessionRepo repository.GuestSessionRepository, cfg config.Config) *PublicGalleryHandler {
	return &PublicGalleryHandler{GalleryRepo: galleryRepo, MediaRepo: mediaRepo, AccessRepo: accessRepo, SessionRepo: sessionRepo, Cfg: cfg}
}

// CheckAccessResponse is the access check result. It never errors: unknown
// or unpublished slugs read as non-existent, expired galleries announce
// their expiry so the frontend can show a dedicated page.
type CheckAccessResponse struct {
	Exists       bool    `json:"exists"`
	Expired      bool    `json:"expired,omitempty"`
	RequiresCode bool    `json:"requiresCode"`
	Title        string  `json:"title,omitempty"`
	CoverImage   *string `json:"coverImage,omitempty"`
}

// CheckAccess inspects a gallery slug before any authentication happens.
func (h *PublicGalleryHandler) CheckAccess(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	gallery, err := h.GalleryRepo.GetBySlug(slug)
	if err != nil || gallery.Status != models.GalleryStatusPublished {
		writeJSON(w, http.StatusOK, CheckAccessResponse{Exists: false, RequiresCode: false})
		return
	}
	if gallery.IsExpired() {
		writeJSON(w, http.StatusOK, CheckAccessResponse{Exists: true, Expired: true, RequiresCode: false})
		return
	}

	writeJSON(w, http.StatusOK, CheckAccessResponse{
		Exists:       true,
		RequiresCode: gallery.RequiresAccessCode(),
		Title:        gallery.Title,
		CoverImage:   gallery.CoverImageURL,
	})
}

type VerifyAccessPayload struct {
	Code       string  `json:"code"`
	GuestName  *string `json:"guest_name,omitempty"`
	GuestEmail *string `json:"guest_email,omitempty"`
}

type VerifyAccessResponse struct {
	SessionID string         `json:"sessionId"`
	ExpiresAt time.Time      `json:"expiresAt"`
	Gallery   models.Gallery `json:"gallery"`
}

// VerifyAccessCode exchanges a valid access code for a guest session tied to
// the gallery. The session references the gallery id, so a later code
// rotation does not invalidate it.
func (h *PublicGalleryHandler) VerifyAccessCode(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var payload VerifyAccessPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request payload")
		return
	}

	gallery, err := h.GalleryRepo.GetBySlug(slug)
	if err != nil {
		writeRepoError(w, err, "gallery not found")
		return
	}
	if !gallery.IsViewable() {
		WriteAPIError(w, http.StatusNotFound, ErrCodeNotFound, "gallery not found")
		return
	}
	if !gallery.RequiresAccessCode() {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "gallery does not require an access code")
		return
	}
	if payload.Code == "" || subtle.ConstantTimeCompare([]byte(*gallery.AccessCode), []byte(payload.Code)) != 1 {
		WriteAPIError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid access code")
		return
	}

	session := &models.GuestSession{
		GalleryID:  gallery.ID,
		GuestName:  payload.GuestName,
		GuestEmail: payload.GuestEmail,
		ExpiresAt:  time.Now().Add(h.Cfg.GuestSessionTTL),
	}
	if err := h.SessionRepo.Create(session); err != nil {
		WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to create guest session")
		return
	}

	writeJSON(w, http.StatusOK, VerifyAccessResponse{SessionID: session.ID, ExpiresAt: session.ExpiresAt, Gallery: *gallery})
}

// GalleryContentResponse is the gallery plus its media in the configured
// sort order.
type GalleryContentResponse struct {
	Gallery models.Gallery `json:"gallery"`
	Media   []models.Media `json:"media"`
}

// GetBySlug serves the gallery content to an authorized actor. Anything the
// caller may not see, including expired or unpublished galleries, reads as
// not found.
func (h *PublicGalleryHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	gallery, err := h.GalleryRepo.GetBySlug(slug)
	if err != nil {
		writeRepoError(w, err, "gallery not found")
		return
	}
	if !canViewGallery(gallery, actorFromContext(r), h.AccessRepo) {
		WriteAPIError(w, http.StatusNotFound, ErrCodeNotFound, "gallery not found")
		return
	}

	media, err := h.MediaRepo.ListByGallery(gallery.ID, gallery.SortOrder)
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to list media")
		return
	}
	writeJSON(w, http.StatusOK, GalleryContentResponse{Gallery: *gallery, Media: media})
}
