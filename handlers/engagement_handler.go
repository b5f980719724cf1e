package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/studio-elise/gallerybackend/auth"
	"github.com/studio-elise/gallerybackend/config"
	"github.com/studio-elise/gallerybackend/models"
	"github.com/studio-elise/gallerybackend/repository"
)

// EngagementHandler serves favorites and comments on gallery media. The
// gallery's feature flags are hard gates here: a disabled flag rejects the
// write no matter who the actor is.
type EngagementHandler struct {
	GalleryRepo  repository.GalleryRepository
	MediaRepo    repository.MediaRepository
	AccessRepo   repository.AccessRepository
	FavoriteRepo repository.FavoriteRepository
	CommentRepo  repository.CommentRepository
	UserRepo     repository.UserRepository
	Tokens       *auth.TokenManager
	Cfg          config.Config
}

func NewEngagementHandler(galleryRepo repository.GalleryRepository, mediaRepo repository.MediaRepository, accessRepo repository.AccessRepository, favoriteRepo repository.FavoriteRepository, commentRepo repository.CommentRepository, userRepo repository.UserRepository, tokens *auth.TokenManager, cfg config.Config) *EngagementHandler {
	return &EngagementHandler{
		GalleryRepo:  galleryRepo,
		MediaRepo:    mediaRepo,
		AccessRepo:   accessRepo,
		FavoriteRepo: favoriteRepo,
		CommentRepo:  commentRepo,
		UserRepo:     userRepo,
		Tokens:       tokens,
		Cfg:          cfg,
	}
}

// mediaGallery loads a media item together with its gallery and verifies the
// actor may view it. Errors are written directly.
func (h *EngagementHandler) mediaGallery(w http.ResponseWriter, r *http.Request, mediaID uint) (*models.Media, *models.Gallery) {
	media, err := h.MediaRepo.GetByID(mediaID)
	if err != nil {
		writeRepoError(w, err, "media not found")
		return nil, nil
	}
	gallery, err := h.GalleryRepo.GetByID(media.GalleryID)
	if err != nil {
		writeRepoError(w, err, "media not found")
		return nil, nil
	}
	if !canViewGallery(gallery, actorFromContext(r), h.AccessRepo) {
		WriteAPIError(w, http.StatusNotFound, ErrCodeNotFound, "media not found")
		return nil, nil
	}
	return media, gallery
}

// requireActor rejects requests without a resolved actor.
func requireActor(w http.ResponseWriter, r *http.Request) *Actor {
	actor := actorFromContext(r)
	if actor == nil {
		WriteAPIError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "a client token or guest session is required")
		return nil
	}
	return actor
}

type FavoriteResponse struct {
	Favorited bool `json:"favorited"`
}

// ToggleFavorite flips the actor's favorite on a media item and returns the
// resulting state.
func (h *EngagementHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	mediaID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}
	media, gallery := h.mediaGallery(w, r, mediaID)
	if media == nil {
		return
	}
	if !gallery.AllowFavorites {
		WriteAPIError(w, http.StatusForbidden, ErrCodeForbidden, "favorites are disabled for this gallery")
		return
	}
	actor := requireActor(w, r)
	if actor == nil {
		return
	}

	favorited, err := h.FavoriteRepo.Toggle(media.ID, actor.Ref())
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to toggle favorite")
		return
	}
	writeJSON(w, http.StatusOK, FavoriteResponse{Favorited: favorited})
}

type CheckFavoritesPayload struct {
	MediaIDs []uint `json:"media_ids"`
}

// CheckFavorites reports the actor's favorite state for a batch of media
// ids. Ids outside the actor's reach simply read as not favorited.
func (h *EngagementHandler) CheckFavorites(w http.ResponseWriter, r *http.Request) {
	actor := requireActor(w, r)
	if actor == nil {
		return
	}

	var payload CheckFavoritesPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request payload")
		return
	}

	favorites, err := h.FavoriteRepo.CheckMany(payload.MediaIDs, actor.Ref())
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to check favorites")
		return
	}
	writeJSON(w, http.StatusOK, map[string]map[uint]bool{"favorites": favorites})
}

// ListGalleryFavorites returns the ids of the media the actor has favorited
// within one gallery, so the frontend can restore heart states on load.
func (h *EngagementHandler) ListGalleryFavorites(w http.ResponseWriter, r *http.Request) {
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
	actor := requireActor(w, r)
	if actor == nil {
		return
	}

	mediaIDs, err := h.FavoriteRepo.ListMediaIDsByActor(gallery.ID, actor.Ref())
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to list favorites")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]uint{"media_ids": mediaIDs})
}

type CreateCommentPayload struct {
	Content string `json:"content"`
}

// CreateComment posts a comment on a media item, snapshotting the author's
// display name and avatar at write time.
func (h *EngagementHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	mediaID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}
	media, gallery := h.mediaGallery(w, r, mediaID)
	if media == nil {
		return
	}
	if !gallery.AllowComments {
		WriteAPIError(w, http.StatusForbidden, ErrCodeForbidden, "comments are disabled for this gallery")
		return
	}
	actor := requireActor(w, r)
	if actor == nil {
		return
	}

	var payload CreateCommentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request payload")
		return
	}
	if strings.TrimSpace(payload.Content) == "" {
		WriteAPIError(w, http.StatusBadRequest, ErrCodeBadRequest, "content is required")
		return
	}

	ref := actor.Ref()
	comment := &models.Comment{
		MediaID:         media.ID,
		ClientID:        ref.ClientID,
		GuestSessionID:  ref.GuestSessionID,
		Content:         payload.Content,
		AuthorName:      actor.DisplayName(),
		AuthorAvatarURL: actor.AvatarURL(),
		AuthorIsClient:  ref.IsClient(),
	}
	if err := h.CommentRepo.Create(comment); err != nil {
		WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to create comment")
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

// ListComments returns a media item's most recent comments. An optional
// limit query parameter trims the page below the configured cap.
func (h *EngagementHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	mediaID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}
	media, _ := h.mediaGallery(w, r, mediaID)
	if media == nil {
		return
	}

	limit := h.Cfg.CommentListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v < limit {
			limit = v
		}
	}

	comments, err := h.CommentRepo.ListByMedia(media.ID, limit)
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to list comments")
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

// DeleteComment removes a comment. Allowed for the comment's author, or for
// an admin whose gallery the comment lives in.
func (h *EngagementHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	comment, err := h.CommentRepo.GetByID(commentID)
	if err != nil {
		writeRepoError(w, err, "comment not found")
		return
	}

	if !h.canDeleteComment(r, comment) {
		WriteAPIError(w, http.StatusForbidden, ErrCodeForbidden, "you cannot delete this comment")
		return
	}

	if err := h.CommentRepo.Delete(commentID); err != nil {
		writeRepoError(w, err, "comment not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// canDeleteComment checks authorship first, then falls back to an admin
// bearer token owning the comment's gallery.
func (h *EngagementHandler) canDeleteComment(r *http.Request, comment *models.Comment) bool {
	if actor := actorFromContext(r); actor != nil {
		if actor.Ref().Matches(comment.ClientID, comment.GuestSessionID) {
			return true
		}
	}

	tokenString := bearerToken(r)
	if tokenString == "" {
		return false
	}
	userID, err := h.Tokens.VerifyAdminToken(tokenString)
	if err != nil {
		return false
	}
	if _, err := h.UserRepo.GetByID(userID); err != nil {
		return false
	}
	media, err := h.MediaRepo.GetByID(comment.MediaID)
	if err != nil {
		return false
	}
	gallery, err := h.GalleryRepo.GetByID(media.GalleryID)
	if err != nil {
		return false
	}
	return gallery.CreatedByUserID == userID
}
