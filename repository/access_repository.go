package repository

import (
	"fmt"

	"github.com/studio-elise/gallerybackend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormAccessRepository struct {
	db *gorm.DB
}

func NewGormAccessRepository(db *gorm.DB) AccessRepository {
	return &GormAccessRepository{db: db}
}

// Upsert grants a client a role on a gallery. Re-granting updates the role
// in place; the unique (client_id, gallery_id) index plus the conflict
// clause keep concurrent grants from duplicating the row.
func (r *GormAccessRepository) Upsert(clientID, galleryID uint, role models.AccessRole) (*models.GalleryAccess, error) {
	access := models.GalleryAccess{ClientID: clientID, GalleryID: galleryID, Role: role}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "client_id"}, {Name: "gallery_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
	}).Create(&access).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert access for client %d on gallery %d: %w", clientID, galleryID, err)
	}
	return r.Get(clientID, galleryID)
}

func (r *GormAccessRepository) Get(clientID, galleryID uint) (*models.GalleryAccess, error) {
	var access models.GalleryAccess
	err := r.db.Where("client_id = ? AND gallery_id = ?", clientID, galleryID).First(&access).Error
	if err != nil {
		return nil, err
	}
	return &access, nil
}

func (r *GormAccessRepository) ListByClient(clientID uint) ([]models.GalleryAccess, error) {
	var grants []models.GalleryAccess
	err := r.db.Preload("Gallery").Where("client_id = ?", clientID).Find(&grants).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list access grants for client %d: %w", clientID, err)
	}
	return grants, nil
}

func (r *GormAccessRepository) ListByGallery(galleryID uint) ([]models.GalleryAccess, error) {
	var grants []models.GalleryAccess
	err := r.db.Preload("Client").Where("gallery_id = ?", galleryID).Find(&grants).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list access grants for gallery %d: %w", galleryID, err)
	}
	return grants, nil
}

// Delete revokes a grant. Deleting a grant that does not exist is a no-op;
// the ownership check happens in the handler before this is reached.
func (r *GormAccessRepository) Delete(clientID, galleryID uint) error {
	err := r.db.Where("client_id = ? AND gallery_id = ?", clientID, galleryID).Delete(&models.GalleryAccess{}).Error
	if err != nil {
		return fmt.Errorf("failed to revoke access for client %d on gallery %d: %w", clientID, galleryID, err)
	}
	return nil
}
