package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GuestSession is the ephemeral identity handed to an anonymous visitor who
// supplied a valid access code. It attributes favorites, comments and
// analytics events when no client is authenticated. The session stores the
// gallery id, not the code, so regenerating the code leaves existing
// sessions valid; only new entry through the old code is blocked.
type GuestSession struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	GalleryID  uint      `json:"gallery_id" gorm:"not null;index"`
	Gallery    Gallery   `json:"-" gorm:"foreignKey:GalleryID"`
	GuestName  *string   `json:"guest_name,omitempty"`
	GuestEmail *string   `json:"guest_email,omitempty"`
	ExpiresAt  time.Time `json:"expires_at" gorm:"not null;index"`
	CreatedAt  time.Time `json:"created_at"`
}

// BeforeCreate generates the session id if not provided.
func (s *GuestSession) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}

// IsValid reports whether the session can still be used.
func (s *GuestSession) IsValid() bool {
	return time.Now().Before(s.ExpiresAt)
}
