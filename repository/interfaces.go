package repository

import (
	"time"

	"github.com/studio-elise/gallerybackend/database"
	"github.com/studio-elise/gallerybackend/models"
)

// UserRepository defines the methods for admin user data operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
}

// ClientRepository defines the methods for client account data operations
type ClientRepository interface {
	Create(client *models.Client) error
	GetByID(id uint) (*models.Client, error)
	GetByEmail(email string) (*models.Client, error)
	Update(client *models.Client) error
	Delete(id uint) error
	ListAll() ([]models.Client, error)
}

// GalleryUpdateInput carries the updatable gallery fields; nil pointers
// leave the column untouched.
type GalleryUpdateInput struct {
	Title          *string
	Description    *string
	CoverImageURL  *string
	EventDate      *time.Time
	ExpiresAt      *time.Time
	AllowDownload  *bool
	AllowFavorites *bool
	AllowComments  *bool
	AllowSharing   *bool
	Watermark      *bool
}

// GalleryRepository defines the methods for gallery data operations
type GalleryRepository interface {
	Create(gallery *models.Gallery) error
	GetByID(id uint) (*models.Gallery, error)
	GetBySlug(slug string) (*models.Gallery, error)
	ListByOwner(userID uint) ([]models.Gallery, error)
	Update(galleryID uint, input GalleryUpdateInput) error
	SetStatus(galleryID uint, status models.GalleryStatus) error
	SetAccessCode(galleryID uint, code *string) error
	UpdateSortOrder(galleryID uint, sortOrder string) error
	Delete(id uint) error
}

// AccessRepository defines the methods for client gallery access grants
type AccessRepository interface {
	Upsert(clientID, galleryID uint, role models.AccessRole) (*models.GalleryAccess, error)
	Get(clientID, galleryID uint) (*models.GalleryAccess, error)
	ListByClient(clientID uint) ([]models.GalleryAccess, error)
	ListByGallery(galleryID uint) ([]models.GalleryAccess, error)
	Delete(clientID, galleryID uint) error
}

// GuestSessionRepository defines the methods for guest session data operations
type GuestSessionRepository interface {
	Create(session *models.GuestSession) error
	GetByID(id string) (*models.GuestSession, error)
}

// MediaRepository defines the methods for media data operations
type MediaRepository interface {
	Create(media *models.Media) error
	GetByID(id uint) (*models.Media, error)
	ListByGallery(galleryID uint, sortOrder string) ([]models.Media, error)
	Update(media *models.Media) error
	Delete(id uint) error
}

// FavoriteRepository defines the methods for favorite data operations
type FavoriteRepository interface {
	Toggle(mediaID uint, actor models.ActorRef) (bool, error)
	CheckMany(mediaIDs []uint, actor models.ActorRef) (map[uint]bool, error)
	ListMediaIDsByActor(galleryID uint, actor models.ActorRef) ([]uint, error)
}

// CommentRepository defines the methods for comment data operations
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id uint) (*models.Comment, error)
	ListByMedia(mediaID uint, limit int) ([]models.Comment, error)
	Delete(id uint) error
}

// AnalyticsRepository defines the methods for the append-only event log and
// its aggregations
type AnalyticsRepository interface {
	Insert(event *models.AnalyticsEvent) error
	Summary(galleryID uint) (*database.GallerySummary, error)
	DailyViews(galleryID uint, windowDays int) ([]database.DailyViews, error)
	TopMedia(galleryID uint, limit int) ([]database.TopMediaEntry, error)
}
