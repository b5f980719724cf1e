package repository

import (
	"fmt"

	"github.com/studio-elise/gallerybackend/models"
	"gorm.io/gorm"
)

type GormClientRepository struct {
	db *gorm.DB
}

func NewGormClientRepository(db *gorm.DB) ClientRepository {
	return &GormClientRepository{db: db}
}

func (r *GormClientRepository) Create(client *models.Client) error {
	return r.db.Create(client).Error
}

func (r *GormClientRepository) GetByID(id uint) (*models.Client, error) {
	var client models.Client
	if err := r.db.First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *GormClientRepository) GetByEmail(email string) (*models.Client, error) {
	var client models.Client
	if err := r.db.Where("email = ?", email).First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *GormClientRepository) Update(client *models.Client) error {
	return r.db.Save(client).Error
}

// Delete removes a client together with its access grants and favorites.
// Comments are kept; they carry an author snapshot and remain displayable
// after the account is gone.
func (r *GormClientRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", id).Delete(&models.GalleryAccess{}).Error; err != nil {
			return fmt.Errorf("failed to delete access grants for client %d: %w", id, err)
		}
		if err := tx.Where("client_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return fmt.Errorf("failed to delete favorites for client %d: %w", id, err)
		}
		result := tx.Delete(&models.Client{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete client %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormClientRepository) ListAll() ([]models.Client, error) {
	var clients []models.Client
	if err := r.db.Order("name ASC").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}
