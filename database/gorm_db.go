package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/studio-elise/gallerybackend/models"
)

// InitGormDB initializes and returns a GORM database instance
func InitGormDB(dataSourceName string) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database using GORM: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB from GORM: %w", err)
	}

	// enable write-ahead logging for better concurrency
	if _, err := sqlDB.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		log.Printf("warning: failed to set WAL mode: %v", err)
	}
	if _, err := sqlDB.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		log.Printf("warning: failed to enable foreign keys: %v", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// AutoMigrateModels migrates all schemas. Called once at startup after
// InitGormDB.
func AutoMigrateModels(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Gallery{},
		&models.GalleryAccess{},
		&models.GuestSession{},
		&models.Media{},
		&models.Favorite{},
		&models.Comment{},
		&models.AnalyticsEvent{},
	)
	if err != nil {
		return fmt.Errorf("GORM AutoMigrate failed: %w", err)
	}

	// one partial unique index per actor column; a composite index over both
	// nullable columns would admit duplicates because sqlite treats NULLs as
	// distinct in unique indexes
	favoriteIndexes := []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_favorites_media_client ON favorites(media_id, client_id) WHERE client_id IS NOT NULL",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_favorites_media_guest ON favorites(media_id, guest_session_id) WHERE guest_session_id IS NOT NULL",
	}
	for _, stmt := range favoriteIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create favorites unique index: %w", err)
		}
	}
	return nil
}
