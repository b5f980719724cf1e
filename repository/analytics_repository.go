package repository

import (
	"fmt"

	"github.com/studio-elise/gallerybackend/database"
	"github.com/studio-elise/gallerybackend/models"
	"gorm.io/gorm"
)

// GormAnalyticsRepository inserts rows through GORM and delegates the
// aggregations to the squirrel query layer over the raw *sql.DB.
type GormAnalyticsRepository struct {
	db *gorm.DB
}

func NewGormAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &GormAnalyticsRepository{db: db}
}

func (r *GormAnalyticsRepository) Insert(event *models.AnalyticsEvent) error {
	if err := r.db.Create(event).Error; err != nil {
		return fmt.Errorf("failed to insert analytics event: %w", err)
	}
	return nil
}

func (r *GormAnalyticsRepository) Summary(galleryID uint) (*database.GallerySummary, error) {
	sqlDB, err := r.db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return database.GetGallerySummary(sqlDB, galleryID)
}

func (r *GormAnalyticsRepository) DailyViews(galleryID uint, windowDays int) ([]database.DailyViews, error) {
	sqlDB, err := r.db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return database.GetDailyViews(sqlDB, galleryID, windowDays)
}

func (r *GormAnalyticsRepository) TopMedia(galleryID uint, limit int) ([]database.TopMediaEntry, error) {
	sqlDB, err := r.db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return database.GetTopMedia(sqlDB, galleryID, limit)
}
