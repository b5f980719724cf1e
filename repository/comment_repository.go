package repository

import (
	"fmt"

	"github.com/studio-elise/gallerybackend/models"
	"gorm.io/gorm"
)

type GormCommentRepository struct {
	db *gorm.DB
}

func NewGormCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *GormCommentRepository) GetByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByMedia returns the most recent comments first, bounded by limit.
func (r *GormCommentRepository) ListByMedia(mediaID uint, limit int) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("media_id = ?", mediaID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments for media %d: %w", mediaID, err)
	}
	return comments, nil
}

func (r *GormCommentRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Comment{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete comment %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
