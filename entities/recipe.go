package entities

import (
	"github.com/google/uuid"
)

type RecipeCategory struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `json:"name"`

	Timestamp
}

type Recipe struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	CategoryID  *uuid.UUID `gorm:"type:uuid" json:"category_id,omitempty"`
	Name        string     `json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Difficulty  string     `gorm:"size:50" json:"difficulty"` // Easy, Medium, Hard
	PrepTime    int        `json:"prep_time"`
	CookTime    int        `json:"cook_time"`
	CoverImage  string     `json:"cover_image,omitempty"`
	Slug        string     `gorm:"uniqueIndex" json:"slug"`
	Views       int64      `json:"views"`

	User        *User               `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Category    *RecipeCategory     `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Ingredients []*RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients,omitempty"`
	Steps       []*RecipeStep       `gorm:"foreignKey:RecipeID" json:"steps,omitempty"`
	Tags        []*RecipeTag        `gorm:"many2many:recipe_tag_relations;joinForeignKey:RecipeID;joinReferences:TagID" json:"tags,omitempty"`

	// Aggregate counts filled by subquery selects, never persisted.
	IngredientsCount int64 `gorm:"->;-:migration" json:"ingredients_count"`
	StepsCount       int64 `gorm:"->;-:migration" json:"steps_count"`
	FavoritesCount   int64 `gorm:"->;-:migration" json:"favorites_count"`
	CommentsCount    int64 `gorm:"->;-:migration" json:"comments_count"`
	Timestamp
}

type RecipeIngredient struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;index" json:"recipe_id"`
	Name     string    `json:"name"`
	Quantity string    `json:"quantity,omitempty"`
	Unit     string    `gorm:"size:50" json:"unit,omitempty"`

	Timestamp
}

type RecipeStep struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_recipe_steps_order" json:"recipe_id"`
	StepOrder   int       `gorm:"uniqueIndex:idx_recipe_steps_order" json:"step_order"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `json:"image_url,omitempty"`

	Timestamp
}
