package models

import "time"

// AccessRole is the permission tier a client holds on a specific gallery.
// The tiers form an ordered ladder: VIEWER < COLLABORATOR < OWNER.
type AccessRole string

const (
	RoleViewer       AccessRole = "VIEWER"
	RoleCollaborator AccessRole = "COLLABORATOR"
	RoleOwner        AccessRole = "OWNER"
)

var roleRank = map[AccessRole]int{
	RoleViewer:       1,
	RoleCollaborator: 2,
	RoleOwner:        3,
}

// IsValidAccessRole checks if a string is a valid access role.
func IsValidAccessRole(role string) bool {
	_, ok := roleRank[AccessRole(role)]
	return ok
}

// GalleryAccess grants a client a role on a gallery. The (client, gallery)
// pair is unique; re-granting updates the role in place rather than
// duplicating the row.
type GalleryAccess struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	ClientID  uint       `json:"client_id" gorm:"not null;uniqueIndex:idx_client_gallery"`
	Client    Client     `json:"-" gorm:"foreignKey:ClientID"`
	GalleryID uint       `json:"gallery_id" gorm:"not null;uniqueIndex:idx_client_gallery"`
	Gallery   Gallery    `json:"gallery,omitempty" gorm:"foreignKey:GalleryID"`
	Role      AccessRole `json:"role" gorm:"not null;default:VIEWER"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName explicitly sets the table name for GORM.
func (GalleryAccess) TableName() string {
	return "gallery_accesses"
}
