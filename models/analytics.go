package models

import "time"

type AnalyticsEventType string

const (
	EventView     AnalyticsEventType = "view"
	EventDownload AnalyticsEventType = "download"
	EventShare    AnalyticsEventType = "share"
)

// IsValidAnalyticsEventType checks if a string is a valid event type.
func IsValidAnalyticsEventType(t string) bool {
	switch AnalyticsEventType(t) {
	case EventView, EventDownload, EventShare:
		return true
	default:
		return false
	}
}

// DownloadKind distinguishes how a download event was triggered.
const (
	DownloadKindSingle    = "single"
	DownloadKindSelection = "selection"
	DownloadKindAll       = "all"
)

// IsValidDownloadKind checks if a string is a valid download kind.
func IsValidDownloadKind(kind string) bool {
	switch kind {
	case DownloadKindSingle, DownloadKindSelection, DownloadKindAll:
		return true
	default:
		return false
	}
}

// AnalyticsEvent is one row of the append-only engagement log. Events are
// only inserted and aggregated, never mutated.
type AnalyticsEvent struct {
	ID             uint               `json:"id" gorm:"primaryKey"`
	GalleryID      uint               `json:"gallery_id" gorm:"not null;index"`
	Gallery        Gallery            `json:"-" gorm:"foreignKey:GalleryID"`
	MediaID        *uint              `json:"media_id,omitempty" gorm:"index"`
	EventType      AnalyticsEventType `json:"event_type" gorm:"not null;index"`
	DownloadKind   *string            `json:"download_kind,omitempty"`
	ClientID       *uint              `json:"client_id,omitempty"`
	GuestSessionID *string            `json:"guest_session_id,omitempty"`
	CreatedAt      time.Time          `json:"created_at" gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (AnalyticsEvent) TableName() string {
	return "analytics_events"
}
