package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessToggleFavorite  = "favorite toggled successfully"
	MessageSuccessGetFavorites    = "success get favorite recipes"
	MessageSuccessGetTags         = "success get recipe tags"
	MessageSuccessUploadImage     = "image uploaded successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedToggleFavorite  = "failed to toggle favorite"
	MessageFailedGetFavorites    = "failed to get favorite recipes"
	MessageFailedGetTags         = "failed to get recipe tags"
	MessageFailedUploadImage     = "failed to upload image"

	ErrRecipeNotFound           = errors.New("recipe not found")
	ErrUnauthorizedRecipeAccess = errors.New("unauthorized access to recipe")
	ErrCategoryNotFound         = errors.New("recipe category not found")
	ErrStepNotFound             = errors.New("recipe step not found")
)

const (
	RecipeSortDefault   = "created_at"
	DefaultPerPage      = 12
	DefaultPerPageOwned = 10
	MaxPerPage          = 100
)

// RecipeSortFields is the allow-list for the sort_by query parameter.
// Anything else silently falls back to created_at.
var RecipeSortFields = map[string]bool{
	"created_at": true,
	"views":      true,
	"name":       true,
}

type (
	IngredientRequest struct {
		Name     string `json:"name" validate:"required,max=255"`
		Quantity string `json:"quantity" validate:"omitempty,max=255"`
		Unit     string `json:"unit" validate:"omitempty,max=50"`
	}

	StepRequest struct {
		StepOrder   int    `json:"step_order" validate:"required,min=1"`
		Description string `json:"description" validate:"required"`
		ImageURL    string `json:"image_url" validate:"omitempty,max=255"`
	}

	CreateRecipeRequest struct {
		CategoryID  string              `json:"category_id" validate:"omitempty,uuid"`
		Name        string              `json:"name" validate:"required,max=255"`
		Description string              `json:"description" validate:"omitempty"`
		Difficulty  string              `json:"difficulty" validate:"omitempty,oneof=Easy Medium Hard"`
		PrepTime    int                 `json:"prep_time" validate:"omitempty,min=0"`
		CookTime    int                 `json:"cook_time" validate:"omitempty,min=0"`
		CoverImage  string              `json:"cover_image" validate:"omitempty,max=255"`
		Ingredients []IngredientRequest `json:"ingredients" validate:"required,min=1,dive"`
		Steps       []StepRequest       `json:"steps" validate:"required,min=1,dive"`
		Tags        []string            `json:"tags" validate:"omitempty,dive,max=255"`
	}

	UpdateRecipeRequest struct {
		CategoryID  string `json:"category_id" validate:"omitempty,uuid"`
		Name        string `json:"name" validate:"omitempty,max=255"`
		Description string `json:"description" validate:"omitempty"`
		Difficulty  string `json:"difficulty" validate:"omitempty,oneof=Easy Medium Hard"`
		PrepTime    int    `json:"prep_time" validate:"omitempty,min=0"`
		CookTime    int    `json:"cook_time" validate:"omitempty,min=0"`
		CoverImage  string `json:"cover_image" validate:"omitempty,max=255"`
	}

	// RecipeFilter carries the optional listing filters shared by the public
	// catalog, "my recipes" and the favorites listing.
	RecipeFilter struct {
		CategoryID    string
		TagID         string
		Tags          []string
		Search        string
		Difficulty    string
		SortBy        string
		SortDirection string
		Page          int
		PerPage       int
	}

	RecipeOwner struct {
		ID       string `json:"id"`
		Nickname string `json:"nickname"`
		Avatar   string `json:"avatar,omitempty"`
	}

	CategoryResponse struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	TagResponse struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	IngredientResponse struct {
		Name     string `json:"name"`
		Quantity string `json:"quantity,omitempty"`
		Unit     string `json:"unit,omitempty"`
	}

	StepResponse struct {
		StepOrder   int    `json:"step_order"`
		Description string `json:"description"`
		ImageURL    string `json:"image_url,omitempty"`
	}

	RecipeResponse struct {
		ID               string            `json:"id"`
		Name             string            `json:"name"`
		Description      string            `json:"description"`
		Difficulty       string            `json:"difficulty,omitempty"`
		PrepTime         int               `json:"prep_time"`
		CookTime         int               `json:"cook_time"`
		CoverImage       string            `json:"cover_image,omitempty"`
		Slug             string            `json:"slug"`
		Views            int64             `json:"views"`
		User             *RecipeOwner      `json:"user,omitempty"`
		Category         *CategoryResponse `json:"category,omitempty"`
		Tags             []TagResponse     `json:"tags"`
		IngredientsCount int64             `json:"ingredients_count"`
		StepsCount       int64             `json:"steps_count"`
		FavoritesCount   int64             `json:"favorites_count"`
		CommentsCount    int64             `json:"comments_count"`
		CreatedAt        time.Time         `json:"created_at"`
	}

	RecipeDetailResponse struct {
		RecipeResponse
		Ingredients []IngredientResponse `json:"ingredients"`
		Steps       []StepResponse       `json:"steps"`
		IsFavorited bool                 `json:"is_favorited"`
	}

	FavoriteToggleResponse struct {
		IsFavorited    bool  `json:"is_favorited"`
		FavoritesCount int64 `json:"favorites_count"`
	}

	UploadRecipeImageRequest struct {
		Type   string                `json:"type" form:"type" validate:"required,oneof=cover step"`
		StepID string                `json:"step_id" form:"step_id" validate:"omitempty,uuid"`
		Image  *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	UploadImageResponse struct {
		URL string `json:"url"`
	}
)
