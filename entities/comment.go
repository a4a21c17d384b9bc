package entities

import (
	"github.com/google/uuid"
)

// RecipeComment is self-referential: a nil ParentID marks a top-level
// comment, replies point at their parent. UserID is nullable so comments
// survive the deletion of their author.
type RecipeComment struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID uuid.UUID  `gorm:"type:uuid;index:idx_recipe_comments_recipe" json:"recipe_id"`
	UserID   *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	ParentID *uuid.UUID `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Content  string     `gorm:"type:text" json:"content"`

	Recipe  *Recipe          `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
	User    *User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Replies []*RecipeComment `gorm:"foreignKey:ParentID" json:"replies,omitempty"`
	Timestamp
}
