package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

type MediaType string

const (
	MediaTypePhoto MediaType = "photo"
	MediaTypeVideo MediaType = "video"
)

// IsValidMediaType checks if a string is a valid media type.
func IsValidMediaType(t string) bool {
	switch MediaType(t) {
	case MediaTypePhoto, MediaTypeVideo:
		return true
	default:
		return false
	}
}

// Metadata holds free-form media details (camera, exposure, captions)
// serialized as JSON in a single column.
type Metadata map[string]interface{}

// Value implements driver.Valuer so Metadata round-trips through a TEXT column.
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *Metadata) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	}
	return nil
}

// Media is a photo or video belonging to a gallery. The URLs point at
// externally hosted, pre-computed renditions; this service never touches
// pixels.
type Media struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	GalleryID    uint      `json:"gallery_id" gorm:"not null;index"`
	Gallery      Gallery   `json:"-" gorm:"foreignKey:GalleryID"`
	Type         MediaType `json:"type" gorm:"not null;default:photo"`
	Filename     string    `json:"filename" gorm:"not null"`
	OriginalURL  string    `json:"original_url" gorm:"not null"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty"`
	MediumURL    *string   `json:"medium_url,omitempty"`
	Width        *int      `json:"width,omitempty"`
	Height       *int      `json:"height,omitempty"`
	Metadata     Metadata  `json:"metadata,omitempty" gorm:"type:text"`
	Position     int       `json:"position" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName explicitly sets the table name for GORM.
func (Media) TableName() string {
	return "media"
}
