package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/studio-elise/gallerybackend/models"
	"github.com/studio-elise/gallerybackend/repository"
)

// AnalyticsHandler records engagement events from the public gallery. The
// log is append-only; aggregation happens on the admin dashboard routes.
type AnalyticsHandler struct {
	GalleryRepo   repository.GalleryRepository
	MediaRepo     repository.MediaRepository
	AccessRepo    repository.AccessRepository
	AnalyticsRepo repository.AnalyticsRepository
}

func NewAnalyticsHandler(galleryRepo repository.GalleryRepository, mediaRepo repository.MediaRepository, accessRepo repository.AccessRepository, analyticsRepo repository.AnalyticsRepository) *AnalyticsHandler {
	return &AnalyticsHandler{GalleryRepo: galleryRepo, MediaRepo: mediaRepo, AccessRepo: accessRepo, AnalyticsRepo: analyticsRepo}
}

type TrackEventPayload struct {
	EventType    string  `json:"event_type"`
	MediaID      *uint   `json:"media_id,omitempty"`
	DownloadKind *string `json:"download_kind,omitempty"`
}

// TrackEvent appends one event to the gallery's log. The caller must be able
// to view the gallery; download events carry a kind, share events are gated
// on the sharing flag.
func (h *AnalyticsHandler) TrackEvent(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	gallery, err := h.GalleryRepo.GetBySlug(slug)
	if err != nil {
		writeRepoError(w, err, "gallery not found")
		return
	}
	actor := actorFromContext(r)
	if !canViewGallery(gallery, actor, h.AccessRepo) {
		WriteAPIError(w, http.StatusNotFound, ErrCodeNotFound, "gallery not found")
		return
	}

	var payload TrackEventPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request payload")
		return
	}
	if !models.IsValidAnalyticsEventType(payload.EventType) {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid event type")
		return
	}

	eventType := models.AnalyticsEventType(payload.EventType)
	switch eventType {
	case models.EventDownload:
		if !gallery.AllowDownload {
			WriteAPIError(w, http.StatusForbidden, ErrCodeForbidden, "downloads are disabled for this gallery")
			return
		}
		if payload.DownloadKind == nil || !models.IsValidDownloadKind(*payload.DownloadKind) {
			WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid download kind")
			return
		}
	case models.EventShare:
		if !gallery.AllowSharing {
			WriteAPIError(w, http.StatusForbidden, ErrCodeForbidden, "sharing is disabled for this gallery")
			return
		}
		payload.DownloadKind = nil
	default:
		payload.DownloadKind = nil
	}

	if payload.MediaID != nil {
		media, err := h.MediaRepo.GetByID(*payload.MediaID)
		if err != nil || media.GalleryID != gallery.ID {
			WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "media does not belong to this gallery")
			return
		}
	}

	event := &models.AnalyticsEvent{
		GalleryID:    gallery.ID,
		MediaID:      payload.MediaID,
		EventType:    eventType,
		DownloadKind: payload.DownloadKind,
	}
	if actor != nil {
		ref := actor.Ref()
		event.ClientID = ref.ClientID
		event.GuestSessionID = ref.GuestSessionID
	}

	if err := h.AnalyticsRepo.Insert(event); err != nil {
		WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to record event")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]bool{"recorded": true})
}
