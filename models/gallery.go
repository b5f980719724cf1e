package models

import "time"

// GalleryStatus is the publication state of a gallery. PUBLISHED and DRAFT
// can be toggled back and forth; ARCHIVED takes a gallery out of the public
// paths entirely.
type GalleryStatus string

const (
	GalleryStatusDraft     GalleryStatus = "DRAFT"
	GalleryStatusPublished GalleryStatus = "PUBLISHED"
	GalleryStatusArchived  GalleryStatus = "ARCHIVED"
)

// IsValidGalleryStatus checks if a string is a valid gallery status.
func IsValidGalleryStatus(status string) bool {
	switch GalleryStatus(status) {
	case GalleryStatusDraft, GalleryStatusPublished, GalleryStatusArchived:
		return true
	default:
		return false
	}
}

// Gallery represents a named collection of media delivered to one or more
// clients. The access code is a nullable shared secret for guest entry; the
// feature flags are hard gates for engagement writes regardless of the
// actor's role.
type Gallery struct {
	ID              uint          `json:"id" gorm:"primaryKey"`
	Title           string        `json:"title" gorm:"not null"`
	Slug            string        `json:"slug" gorm:"uniqueIndex;not null"`
	Description     *string       `json:"description,omitempty"`
	CoverImageURL   *string       `json:"cover_image_url,omitempty"`
	EventDate       *time.Time    `json:"event_date,omitempty"`
	ExpiresAt       *time.Time    `json:"expires_at,omitempty"`
	Status          GalleryStatus `json:"status" gorm:"not null;default:DRAFT;index"`
	AccessCode      *string       `json:"-" gorm:"index"`
	AllowDownload   bool          `json:"allow_download" gorm:"not null;default:true"`
	AllowFavorites  bool          `json:"allow_favorites" gorm:"not null;default:true"`
	AllowComments   bool          `json:"allow_comments" gorm:"not null;default:true"`
	AllowSharing    bool          `json:"allow_sharing" gorm:"not null;default:true"`
	Watermark       bool          `json:"watermark" gorm:"not null;default:false"`
	SortOrder       string        `json:"sort_order" gorm:"not null;default:position_asc"`
	CreatedByUserID uint          `json:"created_by_user_id" gorm:"not null;index"`
	CreatedByUser   User          `json:"-" gorm:"foreignKey:CreatedByUserID"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// TableName explicitly sets the table name for GORM.
func (Gallery) TableName() string {
	return "galleries"
}

// IsExpired reports whether the gallery's expiry date has passed. A gallery
// without an expiry never expires.
func (g *Gallery) IsExpired() bool {
	return g.ExpiresAt != nil && time.Now().After(*g.ExpiresAt)
}

// IsViewable reports whether the gallery can be served on the public paths.
// Expired galleries are treated as not viewable even when PUBLISHED.
func (g *Gallery) IsViewable() bool {
	return g.Status == GalleryStatusPublished && !g.IsExpired()
}

// RequiresAccessCode reports whether anonymous visitors must supply the
// shared access code before a guest session is issued.
func (g *Gallery) RequiresAccessCode() bool {
	return g.AccessCode != nil && *g.AccessCode != ""
}
