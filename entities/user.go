package entities

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Nickname   string    `json:"nickname"`
	Email      *string   `gorm:"uniqueIndex" json:"email,omitempty"`
	Phone      *string   `gorm:"uniqueIndex;size:20" json:"phone,omitempty"`
	Password   string    `json:"-"`
	Avatar     string    `json:"avatar,omitempty"`
	Bio        string    `gorm:"type:text" json:"bio,omitempty"`
	Provider   *string   `gorm:"index:idx_users_provider" json:"provider,omitempty"`
	ProviderID *string   `gorm:"index:idx_users_provider" json:"provider_id,omitempty"`

	Recipes  []*Recipe        `gorm:"foreignKey:UserID" json:"recipes,omitempty"`
	Comments []*RecipeComment `gorm:"foreignKey:UserID" json:"comments,omitempty"`
	Timestamp
}

// RevokedToken holds the jti of a bearer token invalidated by logout.
// Rows past ExpiresAt are dead weight and safe to purge.
type RevokedToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ExpiresAt time.Time `gorm:"type:timestamp" json:"expires_at"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`
}
