package repository

import (
	"fmt"

	"github.com/studio-elise/gallerybackend/database"
	"github.com/studio-elise/gallerybackend/models"
	"github.com/studio-elise/gallerybackend/utils"
	"gorm.io/gorm"
)

type GormGalleryRepository struct {
	db *gorm.DB
}

func NewGormGalleryRepository(db *gorm.DB) GalleryRepository {
	return &GormGalleryRepository{db: db}
}

// Create inserts a new gallery, deriving a unique slug from the title.
// Slug collisions get a numeric suffix: "mariage-test", "mariage-test-1", ...
func (r *GormGalleryRepository) Create(gallery *models.Gallery) error {
	if gallery.SortOrder == "" {
		gallery.SortOrder = database.DefaultSortOrder
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		slug, err := nextAvailableSlug(tx, utils.Slugify(gallery.Title))
		if err != nil {
			return err
		}
		gallery.Slug = slug
		if err := tx.Create(gallery).Error; err != nil {
			return fmt.Errorf("failed to create gallery %s: %w", gallery.Title, err)
		}
		return nil
	})
}

func nextAvailableSlug(tx *gorm.DB, base string) (string, error) {
	if base == "" {
		base = "gallery"
	}
	slug := base
	for i := 1; ; i++ {
		var count int64
		if err := tx.Model(&models.Gallery{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check slug availability for %s: %w", slug, err)
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func (r *GormGalleryRepository) GetByID(id uint) (*models.Gallery, error) {
	var gallery models.Gallery
	if err := r.db.First(&gallery, id).Error; err != nil {
		return nil, err
	}
	return &gallery, nil
}

func (r *GormGalleryRepository) GetBySlug(slug string) (*models.Gallery, error) {
	var gallery models.Gallery
	if err := r.db.Where("slug = ?", slug).First(&gallery).Error; err != nil {
		return nil, err
	}
	return &gallery, nil
}

func (r *GormGalleryRepository) ListByOwner(userID uint) ([]models.Gallery, error) {
	var galleries []models.Gallery
	err := r.db.Where("created_by_user_id = ?", userID).Order("created_at DESC").Find(&galleries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list galleries for user %d: %w", userID, err)
	}
	return galleries, nil
}

// Update applies the non-nil fields of the input. The slug is never touched;
// it is fixed at creation.
func (r *GormGalleryRepository) Update(galleryID uint, input GalleryUpdateInput) error {
	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.CoverImageURL != nil {
		updates["cover_image_url"] = *input.CoverImageURL
	}
	if input.EventDate != nil {
		updates["event_date"] = *input.EventDate
	}
	if input.ExpiresAt != nil {
		updates["expires_at"] = *input.ExpiresAt
	}
	if input.AllowDownload != nil {
		updates["allow_download"] = *input.AllowDownload
	}
	if input.AllowFavorites != nil {
		updates["allow_favorites"] = *input.AllowFavorites
	}
	if input.AllowComments != nil {
		updates["allow_comments"] = *input.AllowComments
	}
	if input.AllowSharing != nil {
		updates["allow_sharing"] = *input.AllowSharing
	}
	if input.Watermark != nil {
		updates["watermark"] = *input.Watermark
	}

	if len(updates) == 0 {
		return nil
	}

	result := r.db.Model(&models.Gallery{}).Where("id = ?", galleryID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update gallery ID %d: %w", galleryID, result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		r.db.Model(&models.Gallery{}).Where("id = ?", galleryID).Count(&count)
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

func (r *GormGalleryRepository) SetStatus(galleryID uint, status models.GalleryStatus) error {
	result := r.db.Model(&models.Gallery{}).Where("id = ?", galleryID).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to set status for gallery ID %d: %w", galleryID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetAccessCode replaces the access code. The old code stops working
// immediately; existing guest sessions are untouched.
func (r *GormGalleryRepository) SetAccessCode(galleryID uint, code *string) error {
	result := r.db.Model(&models.Gallery{}).Where("id = ?", galleryID).Update("access_code", code)
	if result.Error != nil {
		return fmt.Errorf("failed to set access code for gallery ID %d: %w", galleryID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormGalleryRepository) UpdateSortOrder(galleryID uint, sortOrder string) error {
	result := r.db.Model(&models.Gallery{}).Where("id = ?", galleryID).Update("sort_order", sortOrder)
	if result.Error != nil {
		return fmt.Errorf("failed to update sort order for gallery ID %d: %w", galleryID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a gallery and everything hanging off it: media, access
// grants, guest sessions, favorites, comments and analytics events.
func (r *GormGalleryRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var mediaIDs []uint
		if err := tx.Model(&models.Media{}).Where("gallery_id = ?", id).Pluck("id", &mediaIDs).Error; err != nil {
			return fmt.Errorf("failed to collect media for gallery %d: %w", id, err)
		}
		if len(mediaIDs) > 0 {
			if err := tx.Where("media_id IN ?", mediaIDs).Delete(&models.Favorite{}).Error; err != nil {
				return fmt.Errorf("failed to delete favorites for gallery %d: %w", id, err)
			}
			if err := tx.Where("media_id IN ?", mediaIDs).Delete(&models.Comment{}).Error; err != nil {
				return fmt.Errorf("failed to delete comments for gallery %d: %w", id, err)
			}
		}
		if err := tx.Where("gallery_id = ?", id).Delete(&models.Media{}).Error; err != nil {
			return fmt.Errorf("failed to delete media for gallery %d: %w", id, err)
		}
		if err := tx.Where("gallery_id = ?", id).Delete(&models.GalleryAccess{}).Error; err != nil {
			return fmt.Errorf("failed to delete access grants for gallery %d: %w", id, err)
		}
		if err := tx.Where("gallery_id = ?", id).Delete(&models.GuestSession{}).Error; err != nil {
			return fmt.Errorf("failed to delete guest sessions for gallery %d: %w", id, err)
		}
		if err := tx.Where("gallery_id = ?", id).Delete(&models.AnalyticsEvent{}).Error; err != nil {
			return fmt.Errorf("failed to delete analytics events for gallery %d: %w", id, err)
		}
		result := tx.Delete(&models.Gallery{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete gallery %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
