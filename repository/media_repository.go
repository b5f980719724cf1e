package repository

import (
	"fmt"
	"sort"

	"github.com/facette/natsort"

	"github.com/studio-elise/gallerybackend/database"
	"github.com/studio-elise/gallerybackend/models"
	"gorm.io/gorm"
)

type GormMediaRepository struct {
	db *gorm.DB
}

func NewGormMediaRepository(db *gorm.DB) MediaRepository {
	return &GormMediaRepository{db: db}
}

func (r *GormMediaRepository) Create(media *models.Media) error {
	return r.db.Create(media).Error
}

func (r *GormMediaRepository) GetByID(id uint) (*models.Media, error) {
	var media models.Media
	if err := r.db.First(&media, id).Error; err != nil {
		return nil, err
	}
	return &media, nil
}

// ListByGallery returns the gallery's media in the requested order.
// filename_nat sorts in natural order (img2 before img10), which SQL can't
// express, so that ordering happens in memory after the fetch.
func (r *GormMediaRepository) ListByGallery(galleryID uint, sortOrder string) ([]models.Media, error) {
	if !database.IsValidSortOrder(sortOrder) {
		sortOrder = database.DefaultSortOrder
	}

	query := r.db.Where("gallery_id = ?", galleryID)
	switch sortOrder {
	case database.SortFilenameAsc:
		query = query.Order("filename ASC")
	case database.SortDateDesc:
		query = query.Order("created_at DESC")
	case database.SortDateAsc:
		query = query.Order("created_at ASC")
	case database.SortFilenameNat:
		query = query.Order("id ASC")
	default:
		query = query.Order("position ASC, id ASC")
	}

	var media []models.Media
	if err := query.Find(&media).Error; err != nil {
		return nil, fmt.Errorf("failed to list media for gallery %d: %w", galleryID, err)
	}

	if sortOrder == database.SortFilenameNat {
		sort.SliceStable(media, func(i, j int) bool {
			return natsort.Compare(media[i].Filename, media[j].Filename)
		})
	}
	return media, nil
}

func (r *GormMediaRepository) Update(media *models.Media) error {
	return r.db.Save(media).Error
}

// Delete removes a media item and its engagement rows.
func (r *GormMediaRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("media_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return fmt.Errorf("failed to delete favorites for media %d: %w", id, err)
		}
		if err := tx.Where("media_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("failed to delete comments for media %d: %w", id, err)
		}
		result := tx.Delete(&models.Media{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete media %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
