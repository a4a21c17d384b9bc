package migration

import (
	"fmt"
	"log"

	"recipeshare/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var seedCategories = []string{
	"Main Courses",
	"Desserts",
	"Breakfast",
	"Appetizers",
	"Side Dishes",
	"Salads",
	"Soups",
	"Baking",
	"Drinks",
	"Sauces & Dips",
}

func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&entities.Recipe{}, "Tags", &entities.RecipeTagRelation{}); err != nil {
		log.Fatalf("Error setting up recipe tag join table: %v", err)
		return err
	}

	if err := db.AutoMigrate(
		&entities.User{},
		&entities.RevokedToken{},
		&entities.RecipeCategory{},
		&entities.RecipeTag{},
		&entities.Recipe{},
		&entities.RecipeIngredient{},
		&entities.RecipeStep{},
		&entities.RecipeComment{},
		&entities.RecipeFavorite{},
	); err != nil {
		log.Fatalf("Error migrating database: %v", err)
		return err
	}

	if err := seedRecipeCategories(db); err != nil {
		log.Fatalf("Error seeding recipe categories: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}

func seedRecipeCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entities.RecipeCategory{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, name := range seedCategories {
		category := entities.RecipeCategory{ID: uuid.New(), Name: name}
		if err := db.Create(&category).Error; err != nil {
			return err
		}
	}
	return nil
}
