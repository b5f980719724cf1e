package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/studio-elise/gallerybackend/models"
	"github.com/studio-elise/gallerybackend/repository"
)

// AdminMediaHandler manages the media records of a gallery. Records carry
// URLs to externally hosted renditions; no file handling happens here.
type AdminMediaHandler struct {
	GalleryRepo repository.GalleryRepository
	MediaRepo   repository.MediaRepository
}

func NewAdminMediaHandler(galleryRepo repository.GalleryRepository, mediaRepo repository.MediaRepository) *AdminMediaHandler {
	return &AdminMediaHandler{GalleryRepo: galleryRepo, MediaRepo: mediaRepo}
}

// ownedGallery mirrors the gallery handler's ownership check.
func (h *AdminMediaHandler) ownedGallery(w http.ResponseWriter, r *http.Request, galleryID uint) *models.Gallery {
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

// ownedMedia loads a media item and checks that its gallery belongs to the
// caller.
func (h *AdminMediaHandler) ownedMedia(w http.ResponseWriter, r *http.Request, mediaID uint) *models.Media {
	media, err := h.MediaRepo.GetByID(mediaID)
	if err != nil {
		writeRepoError(w, err, "media not found")
		return nil
	}
	gallery, err := h.GalleryRepo.GetByID(media.GalleryID)
	if err != nil {
		writeRepoError(w, err, "media not found")
		return nil
	}
	if gallery.CreatedByUserID != userFromContext(r).ID {
		WriteAPIError(w, http.StatusNotFound, ErrCodeNotFound, "media not found")
		return nil
	}
	return media
}

type CreateMediaPayload struct {
	Type         string          `json:"type"`
	Filename     string          `json:"filename"`
	OriginalURL  string          `json:"original_url"`
	ThumbnailURL *string         `json:"thumbnail_url,omitempty"`
	MediumURL    *string         `json:"medium_url,omitempty"`
	Width        *int            `json:"width,omitempty"`
	Height       *int            `json:"height,omitempty"`
	Metadata     models.Metadata `json:"metadata,omitempty"`
	Position     *int            `json:"position,omitempty"`
}

func (h *AdminMediaHandler) CreateMedia(w http.ResponseWriter, r *http.Request) {
	galleryID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}
	if h.ownedGallery(w, r, galleryID) == nil {
		return
	}

	var payload CreateMediaPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request payload")
		return
	}
	if payload.Filename == "" || payload.OriginalURL == "" {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "filename and original_url are required")
		return
	}
	mediaType := models.MediaTypePhoto
	if payload.Type != "" {
		if !models.IsValidMediaType(payload.Type) {
			WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid media type")
			return
		}
		mediaType = models.MediaType(payload.Type)
	}

	media := &models.Media{
		GalleryID:    galleryID,
		Type:         mediaType,
		Filename:     payload.Filename,
		OriginalURL:  payload.OriginalURL,
		ThumbnailURL: payload.ThumbnailURL,
		MediumURL:    payload.MediumURL,
		Width:        payload.Width,
		Height:       payload.Height,
		Metadata:     payload.Metadata,
	}
	if payload.Position != nil {
		media.Position = *payload.Position
	}

	if err := h.MediaRepo.Create(media); err != nil {
		WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to create media: "+err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, media)
}

// ListMedia returns a gallery's media in its configured sort order.
func (h *AdminMediaHandler) ListMedia(w http.ResponseWriter, r *http.Request) {
	galleryID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}
	gallery := h.ownedGallery(w, r, galleryID)
	if gallery == nil {
		return
	}

	media, err := h.MediaRepo.ListByGallery(galleryID, gallery.SortOrder)
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to list media")
		return
	}
	writeJSON(w, http.StatusOK, media)
}

type UpdateMediaPayload struct {
	Filename     *string         `json:"filename,omitempty"`
	ThumbnailURL *string         `json:"thumbnail_url,omitempty"`
	MediumURL    *string         `json:"medium_url,omitempty"`
	Width        *int            `json:"width,omitempty"`
	Height       *int            `json:"height,omitempty"`
	Metadata     models.Metadata `json:"metadata,omitempty"`
	Position     *int            `json:"position,omitempty"`
}

func (h *AdminMediaHandler) UpdateMedia(w http.ResponseWriter, r *http.Request) {
	mediaID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}
	media := h.ownedMedia(w, r, mediaID)
	if media == nil {
		return
	}

	var payload UpdateMediaPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request payload")
		return
	}

	if payload.Filename != nil && *payload.Filename != "" {
		media.Filename = *payload.Filename
	}
	if payload.ThumbnailURL != nil {
		media.ThumbnailURL = payload.ThumbnailURL
	}
	if payload.MediumURL != nil {
		media.MediumURL = payload.MediumURL
	}
	if payload.Width != nil {
		media.Width = payload.Width
	}
	if payload.Height != nil {
		media.Height = payload.Height
	}
	if payload.Metadata != nil {
		media.Metadata = payload.Metadata
	}
	if payload.Position != nil {
		media.Position = *payload.Position
	}

	if err := h.MediaRepo.Update(media); err != nil {
		WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to update media")
		return
	}
	writeJSON(w, http.StatusOK, media)
}

// DeleteMedia removes a media item together with its favorites and comments.
func (h *AdminMediaHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	mediaID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}
	if h.ownedMedia(w, r, mediaID) == nil {
		return
	}

	if err := h.MediaRepo.Delete(mediaID); err != nil {
		writeRepoError(w, err, "media not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
