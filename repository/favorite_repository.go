package repository

import (
	"errors"
	"fmt"

	"github.com/studio-elise/gallerybackend/models"
	"gorm.io/gorm"
)

type GormFavoriteRepository struct {
	db *gorm.DB
}

func NewGormFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

func actorScope(query *gorm.DB, actor models.ActorRef) *gorm.DB {
	if actor.ClientID != nil {
		return query.Where("client_id = ?", *actor.ClientID)
	}
	return query.Where("guest_session_id = ?", *actor.GuestSessionID)
}

// Toggle flips the favorite state for (media, actor) and returns the
// resulting state. The read and write run in one transaction, and the
// partial unique indexes on favorites reject the duplicate row should two
// toggles from the same actor race past the read.
func (r *GormFavoriteRepository) Toggle(mediaID uint, actor models.ActorRef) (bool, error) {
	var favorited bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Favorite
		err := actorScope(tx.Where("media_id = ?", mediaID), actor).First(&existing).Error
		if err == nil {
			if err := tx.Delete(&models.Favorite{}, existing.ID).Error; err != nil {
				return fmt.Errorf("failed to remove favorite %d: %w", existing.ID, err)
			}
			favorited = false
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up favorite for media %d: %w", mediaID, err)
		}

		favorite := models.Favorite{
			MediaID:        mediaID,
			ClientID:       actor.ClientID,
			GuestSessionID: actor.GuestSessionID,
		}
		if err := tx.Create(&favorite).Error; err != nil {
			return fmt.Errorf("failed to create favorite for media %d: %w", mediaID, err)
		}
		favorited = true
		return nil
	})
	return favorited, err
}

// CheckMany hydrates a gallery grid in one round trip: it returns a map of
// mediaID to favorited state for the given actor. Media ids absent from the
// result are simply not favorited.
func (r *GormFavoriteRepository) CheckMany(mediaIDs []uint, actor models.ActorRef) (map[uint]bool, error) {
	result := make(map[uint]bool, len(mediaIDs))
	for _, id := range mediaIDs {
		result[id] = false
	}
	if len(mediaIDs) == 0 {
		return result, nil
	}

	var favoritedIDs []uint
	err := actorScope(r.db.Model(&models.Favorite{}).Where("media_id IN ?", mediaIDs), actor).
		Pluck("media_id", &favoritedIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check favorites: %w", err)
	}
	for _, id := range favoritedIDs {
		result[id] = true
	}
	return result, nil
}

func (r *GormFavoriteRepository) ListMediaIDsByActor(galleryID uint, actor models.ActorRef) ([]uint, error) {
	var mediaIDs []uint
	query := r.db.Model(&models.Favorite{}).
		Joins("JOIN media ON media.id = favorites.media_id").
		Where("media.gallery_id = ?", galleryID)
	err := actorScope(query, actor).Pluck("favorites.media_id", &mediaIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites for gallery %d: %w", galleryID, err)
	}
	return mediaIDs, nil
}
