package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/studio-elise/gallerybackend/database"
	"github.com/studio-elise/gallerybackend/models"
)

// newTestDB opens a fresh in-memory database with the full schema. A single
// connection keeps the in-memory database alive for the whole test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrateModels(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username}
	require.NoError(t, user.SetPassword("password"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedClient(t *testing.T, db *gorm.DB, email string) *models.Client {
	t.Helper()
	client := &models.Client{Email: email, Name: "Test Client"}
	require.NoError(t, client.SetPassword("password"))
	require.NoError(t, db.Create(client).Error)
	return client
}

func seedGallery(t *testing.T, db *gorm.DB, userID uint, title, slug string) *models.Gallery {
	t.Helper()
	gallery := &models.Gallery{
		Title:           title,
		Slug:            slug,
		Status:          models.GalleryStatusPublished,
		SortOrder:       database.DefaultSortOrder,
		CreatedByUserID: userID,
		AllowDownload:   true,
		AllowFavorites:  true,
		AllowComments:   true,
		AllowSharing:    true,
	}
	require.NoError(t, db.Create(gallery).Error)
	return gallery
}

func seedMedia(t *testing.T, db *gorm.DB, galleryID uint, filename string, position int) *models.Media {
	t.Helper()
	media := &models.Media{
		GalleryID:   galleryID,
		Type:        models.MediaTypePhoto,
		Filename:    filename,
		OriginalURL: "https://cdn.example.com/" + filename,
		Position:    position,
	}
	require.NoError(t, db.Create(media).Error)
	return media
}

func seedGuestSession(t *testing.T, db *gorm.DB, galleryID uint) *models.GuestSession {
	t.Helper()
	session := &models.GuestSession{
		GalleryID: galleryID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, db.Create(session).Error)
	return session
}
