package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Client represents a registered end-customer account, distinct from the
// admin accounts that create galleries. Clients reach galleries through
// GalleryAccess grants.
type Client struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Name         string    `json:"name" gorm:"not null"`
	Phone        *string   `json:"phone,omitempty"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SetPassword hashes the given password and sets it on the client model.
func (c *Client) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	c.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the given password matches the client's hashed password.
func (c *Client) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password))
	return err == nil
}
