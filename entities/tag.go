package entities

import (
	"github.com/google/uuid"
)

type RecipeTag struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `json:"name"`

	Recipes []*Recipe `gorm:"many2many:recipe_tag_relations;joinForeignKey:TagID;joinReferences:RecipeID" json:"recipes,omitempty"`
	Timestamp
}

type RecipeTagRelation struct {
	RecipeID uuid.UUID `gorm:"type:uuid;primaryKey" json:"recipe_id"`
	TagID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"tag_id"`
}

func (RecipeTagRelation) TableName() string {
	return "recipe_tag_relations"
}
