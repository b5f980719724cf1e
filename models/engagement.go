package models

import "time"

// ActorRef identifies who performed an engagement action: either a
// registered client or a guest session, never both. It is resolved once at
// the request boundary and passed down as a single value.
type ActorRef struct {
	ClientID       *uint
	GuestSessionID *string
}

// ClientActor builds an ActorRef for a registered client.
func ClientActor(clientID uint) ActorRef {
	return ActorRef{ClientID: &clientID}
}

// GuestActor builds an ActorRef for a guest session.
func GuestActor(sessionID string) ActorRef {
	return ActorRef{GuestSessionID: &sessionID}
}

// IsClient reports whether the actor is a registered client.
func (a ActorRef) IsClient() bool {
	return a.ClientID != nil
}

// IsZero reports whether no actor was resolved.
func (a ActorRef) IsZero() bool {
	return a.ClientID == nil && a.GuestSessionID == nil
}

// Matches reports whether the actor columns of a stored row belong to this
// actor.
func (a ActorRef) Matches(clientID *uint, guestSessionID *string) bool {
	if a.ClientID != nil {
		return clientID != nil && *clientID == *a.ClientID
	}
	if a.GuestSessionID != nil {
		return guestSessionID != nil && *guestSessionID == *a.GuestSessionID
	}
	return false
}

// Favorite marks a media item as favorited by an actor. Presence of the row
// is the favorited state; the toggle operation flips presence. Uniqueness of
// (media, actor) is enforced by one partial unique index per actor column,
// created during migration; a single composite index over both nullable
// columns would enforce nothing since sqlite treats NULLs as distinct.
type Favorite struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	MediaID        uint      `json:"media_id" gorm:"not null;index"`
	Media          Media     `json:"-" gorm:"foreignKey:MediaID"`
	ClientID       *uint     `json:"client_id,omitempty" gorm:"index"`
	GuestSessionID *string   `json:"guest_session_id,omitempty" gorm:"index"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName explicitly sets the table name for GORM.
func (Favorite) TableName() string {
	return "favorites"
}

// Comment is a remark on a media item. The author fields are a snapshot
// captured at write time so the displayed author survives later profile
// changes.
type Comment struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	MediaID         uint      `json:"media_id" gorm:"not null;index"`
	Media           Media     `json:"-" gorm:"foreignKey:MediaID"`
	ClientID        *uint     `json:"client_id,omitempty" gorm:"index"`
	GuestSessionID  *string   `json:"guest_session_id,omitempty" gorm:"index"`
	Content         string    `json:"content" gorm:"not null"`
	AuthorName      string    `json:"author_name" gorm:"not null"`
	AuthorAvatarURL *string   `json:"author_avatar_url,omitempty"`
	AuthorIsClient  bool      `json:"author_is_client" gorm:"not null;default:false"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName explicitly sets the table name for GORM.
func (Comment) TableName() string {
	return "comments"
}
