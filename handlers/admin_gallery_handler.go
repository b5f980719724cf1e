package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/studio-elise/gallerybackend/auth"
	"github.com/studio-elise/gallerybackend/config"
	"github.com/studio-elise/gallerybackend/database"
	"github.com/studio-elise/gallerybackend/models"
	"github.com/studio-elise/gallerybackend/repository"
)

const topMediaLimit = 5

// AdminGalleryHandler manages gallery lifecycle for the owning admin.
// Every route is scoped to galleries created by the caller; another admin's
// gallery reads as not found.
type AdminGalleryHandler struct {
	GalleryRepo   repository.GalleryRepository
	AccessRepo    repository.AccessRepository
	AnalyticsRepo repository.AnalyticsRepository
	Cfg           config.Config
}

func NewAdminGalleryHandler(galleryRepo repository.GalleryRepository, accessRepo repository.AccessRepository, analyticsRepo repository.AnalyticsRepository, cfg config.Config) *AdminGalleryHandler {
	return &AdminGalleryHandler{GalleryRepo: galleryRepo, AccessRepo: accessRepo, AnalyticsRepo: analyticsRepo, Cfg: cfg}
}

// ownedGallery loads a gallery and enforces ownership, writing the error
// response itself when the gallery is unavailable to the caller.
func (h *AdminGalleryHandler) ownedGallery(w http.ResponseWriter, r *http.Request, galleryID uint) *models.Gallery {
	gallery, err := h.GalleryRepo.GetByID(galleryID)
	if err != nil {
		writeRepoError(w, err, "gallery not found")
		return nil
	}
	if gallery.CreatedByUserID != userFromContext(r).ID {
		WriteAPIError(w, http.StatusNotFound, ErrCodeNotFound, "gallery not found")
		return nil
	}
	return gallery
}

type CreateGalleryPayload struct {
	Title          string     `json:"title"`
	Description    *string    `json:"description,omitempty"`
	CoverImageURL  *string    `json:"cover_image_url,omitempty"`
	EventDate      *time.Time `json:"event_date,omitempty"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	AccessCode     bool       `json:"access_code"`
	AllowDownload  *bool      `json:"allow_download,omitempty"`
	AllowFavorites *bool      `json:"allow_favorites,omitempty"`
	AllowComments  *bool      `json:"allow_comments,omitempty"`
	AllowSharing   *bool      `json:"allow_sharing,omitempty"`
	Watermark      *bool      `json:"watermark,omitempty"`
}

// CreateGallery creates a DRAFT gallery owned by the caller. When
// access_code is true a fresh code is generated alongside.
func (h *AdminGalleryHandler) CreateGallery(w http.ResponseWriter, r *http.Request) {
	var payload CreateGalleryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request payload")
		return
	}
	if payload.Title == "" {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "title is required")
		return
	}

	gallery := &models.Gallery{
		Title:           payload.Title,
		Description:     payload.Description,
		CoverImageURL:   payload.CoverImageURL,
		EventDate:       payload.EventDate,
		ExpiresAt:       payload.ExpiresAt,
		Status:          models.GalleryStatusDraft,
		CreatedByUserID: userFromContext(r).ID,
		AllowDownload:   true,
		AllowFavorites:  true,
		AllowComments:   true,
		AllowSharing:    true,
	}
	if payload.AllowDownload != nil {
		gallery.AllowDownload = *payload.AllowDownload
	}
	if payload.AllowFavorites != nil {
		gallery.AllowFavorites = *payload.AllowFavorites
	}
	if payload.AllowComments != nil {
		gallery.AllowComments = *payload.AllowComments
	}
	if payload.AllowSharing != nil {
		gallery.AllowSharing = *payload.AllowSharing
	}
	if payload.Watermark != nil {
		gallery.Watermark = *payload.Watermark
	}

	if payload.AccessCode {
		code, err := auth.GenerateAccessCode(h.Cfg.AccessCodeLength)
		if err != nil {
			WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to generate access code")
			return
		}
		gallery.AccessCode = &code
	}

	if err := h.GalleryRepo.Create(gallery); err != nil {
		WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to create gallery: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, galleryWithCode{Gallery: gallery, AccessCode: gallery.AccessCode})
}

// galleryWithCode exposes the access code on admin responses only; the
// public gallery serialization always hides it.
type galleryWithCode struct {
	*models.Gallery
	AccessCode *string `json:"access_code,omitempty"`
}

func (h *AdminGalleryHandler) ListGalleries(w http.ResponseWriter, r *http.Request) {
	galleries, err := h.GalleryRepo.ListByOwner(userFromContext(r).ID)
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to list galleries")
		return
	}
	writeJSON(w, http.StatusOK, galleries)
}

func (h *AdminGalleryHandler) GetGallery(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}
	gallery := h.ownedGallery(w, r, id)
	if gallery == nil {
		return
	}
	writeJSON(w, http.StatusOK, galleryWithCode{Gallery: gallery, AccessCode: gallery.AccessCode})
}

type UpdateGalleryPayload struct {
	Title          *string    `json:"title,omitempty"`
	Description    *string    `json:"description,omitempty"`
	CoverImageURL  *string    `json:"cover_image_url,omitempty"`
	EventDate      *time.Time `json:"event_date,omitempty"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	AllowDownload  *bool      `json:"allow_download,omitempty"`
	AllowFavorites *bool      `json:"allow_favorites,omitempty"`
	AllowComments  *bool      `json:"allow_comments,omitempty"`
	AllowSharing   *bool      `json:"allow_sharing,omitempty"`
	Watermark      *bool      `json:"watermark,omitempty"`
}

func (h *AdminGalleryHandler) UpdateGallery(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}
	if h.ownedGallery(w, r, id) == nil {
		return
	}

	var payload UpdateGalleryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request payload")
		return
	}

	input := repository.GalleryUpdateInput{
		Title:          payload.Title,
		Description:    payload.Description,
		CoverImageURL:  payload.CoverImageURL,
		EventDate:      payload.EventDate,
		ExpiresAt:      payload.ExpiresAt,
		AllowDownload:  payload.AllowDownload,
		AllowFavorites: payload.AllowFavorites,
		AllowComments:  payload.AllowComments,
		AllowSharing:   payload.AllowSharing,
		Watermark:      payload.Watermark,
	}
	if err := h.GalleryRepo.Update(id, input); err != nil {
		writeRepoError(w, err, "gallery not found")
		return
	}

	gallery, err := h.GalleryRepo.GetByID(id)
	if err != nil {
		writeRepoError(w, err, "gallery not found")
		return
	}
	writeJSON(w, http.StatusOK, galleryWithCode{Gallery: gallery, AccessCode: gallery.AccessCode})
}

type SetStatusPayload struct {
	Status string `json:"status"`
}

// SetStatus moves a gallery between DRAFT, PUBLISHED and ARCHIVED.
// DRAFT and PUBLISHED toggle freely in both directions.
func (h *AdminGalleryHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}
	if h.ownedGallery(w, r, id) == nil {
		return
	}

	var payload SetStatusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request payload")
		return
	}
	if !models.IsValidGalleryStatus(payload.Status) {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid status")
		return
	}

	if err := h.GalleryRepo.SetStatus(id, models.GalleryStatus(payload.Status)); err != nil {
		writeRepoError(w, err, "gallery not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": payload.Status})
}

// RegenerateAccessCode replaces the gallery's access code immediately, with
// no grace period: the old code stops admitting new guests at once, while
// guest sessions created under it stay valid.
func (h *AdminGalleryHandler) RegenerateAccessCode(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}
	if h.ownedGallery(w, r, id) == nil {
		return
	}

	code, err := auth.GenerateAccessCode(h.Cfg.AccessCodeLength)
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to generate access code")
		return
	}
	if err := h.GalleryRepo.SetAccessCode(id, &code); err != nil {
		writeRepoError(w, err, "gallery not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"access_code": code})
}

type UpdateSortOrderPayload struct {
	SortOrder string `json:"sort_order"`
}

func (h *AdminGalleryHandler) UpdateSortOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}
	if h.ownedGallery(w, r, id) == nil {
		return
	}

	var payload UpdateSortOrderPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request payload")
		return
	}
	if !database.IsValidSortOrder(payload.SortOrder) {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid sort order")
		return
	}

	if err := h.GalleryRepo.UpdateSortOrder(id, payload.SortOrder); err != nil {
		writeRepoError(w, err, "gallery not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"sort_order": payload.SortOrder})
}

func (h *AdminGalleryHandler) DeleteGallery(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}
	if h.ownedGallery(w, r, id) == nil {
		return
	}

	if err := h.GalleryRepo.Delete(id); err != nil {
		writeRepoError(w, err, "gallery not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AccessRosterEntry pairs a grant with the client account it belongs to.
type AccessRosterEntry struct {
	models.GalleryAccess
	Client models.Client `json:"client"`
}

// ListAccess returns the gallery's access roster with the client accounts
// attached.
func (h *AdminGalleryHandler) ListAccess(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}
	if h.ownedGallery(w, r, id) == nil {
		return
	}

	grants, err := h.AccessRepo.ListByGallery(id)
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to list access grants")
		return
	}
	roster := make([]AccessRosterEntry, len(grants))
	for i, grant := range grants {
		roster[i] = AccessRosterEntry{GalleryAccess: grant, Client: grant.Client}
	}
	writeJSON(w, http.StatusOK, roster)
}

// GalleryAnalyticsResponse bundles the dashboard aggregates: summary
// counts, the trailing daily view series and the top media ranking.
type GalleryAnalyticsResponse struct {
	Summary    *database.GallerySummary `json:"summary"`
	DailyViews []database.DailyViews    `json:"daily_views"`
	TopMedia   []database.TopMediaEntry `json:"top_media"`
}

func (h *AdminGalleryHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}
	if h.ownedGallery(w, r, id) == nil {
		return
	}

	summary, err := h.AnalyticsRepo.Summary(id)
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to aggregate analytics")
		return
	}
	series, err := h.AnalyticsRepo.DailyViews(id, h.Cfg.AnalyticsWindowDays)
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to aggregate view series")
		return
	}
	topMedia, err := h.AnalyticsRepo.TopMedia(id, topMediaLimit)
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to rank media")
		return
	}

	writeJSON(w, http.StatusOK, GalleryAnalyticsResponse{Summary: summary, DailyViews: series, TopMedia: topMedia})
}
