package entities

import (
	"time"

	"github.com/google/uuid"
)

type RecipeFavorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_recipe_favorites_pair" json:"recipe_id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_recipe_favorites_pair" json:"user_id"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
	User   *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (RecipeFavorite) TableName() string {
	return "recipe_favorites"
}
