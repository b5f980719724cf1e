package repository

import (
	"github.com/studio-elise/gallerybackend/models"
	"gorm.io/gorm"
)

type GormGuestSessionRepository struct {
	db *gorm.DB
}

func NewGormGuestSessionRepository(db *gorm.DB) GuestSessionRepository {
	return &GormGuestSessionRepository{db: db}
}

func (r *GormGuestSessionRepository) Create(session *models.GuestSession) error {
	return r.db.Create(session).Error
}

// GetByID looks up a session by its uuid. Sessions are never re-validated
// against the gallery access code; rotating the code blocks new entry only,
// sessions created under the old code stay valid until their own expiry.
func (r *GormGuestSessionRepository) GetByID(id string) (*models.GuestSession, error) {
	var session models.GuestSession
	if err := r.db.Where("id = ?", id).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}
