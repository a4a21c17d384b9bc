package recipe

import (
	"context"
	"fmt"
	"strings"

	"recipeshare/domain"
	"recipeshare/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// recipeCountSelect fills the read-only count columns without loading the
// related rows themselves.
const recipeCountSelect = "recipes.*, " +
	"(SELECT COUNT(*) FROM recipe_ingredients WHERE recipe_ingredients.recipe_id = recipes.id) AS ingredients_count, " +
	"(SELECT COUNT(*) FROM recipe_steps WHERE recipe_steps.recipe_id = recipes.id) AS steps_count, " +
	"(SELECT COUNT(*) FROM recipe_favorites WHERE recipe_favorites.recipe_id = recipes.id) AS favorites_count, " +
	"(SELECT COUNT(*) FROM recipe_comments WHERE recipe_comments.recipe_id = recipes.id) AS comments_count"

type (
	RecipeRepository interface {
		CreateRecipeAggregate(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.RecipeIngredient, steps []*entities.RecipeStep, tagIDs []uuid.UUID) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipeRowByID(ctx context.Context, id string) (*entities.Recipe, error)
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error
		DeleteRecipe(ctx context.Context, recipe *entities.Recipe) error
		ListRecipes(ctx context.Context, filter domain.RecipeFilter, ownerID string) ([]*entities.Recipe, int64, error)
		ListFavoriteRecipes(ctx context.Context, userID string, page, limit int) ([]*entities.Recipe, int64, error)
		SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
		IncrementViews(ctx context.Context, id string) error
		GetCategoryByID(ctx context.Context, id string) (*entities.RecipeCategory, error)
		GetTagByName(ctx context.Context, name string) (*entities.RecipeTag, error)
		GetTags(ctx context.Context) ([]*entities.RecipeTag, error)
		ToggleFavorite(ctx context.Context, recipeID, userID uuid.UUID) (bool, error)
		CountFavorites(ctx context.Context, recipeID uuid.UUID) (int64, error)
		IsFavorited(ctx context.Context, recipeID, userID uuid.UUID) (bool, error)
		GetStepByID(ctx context.Context, id string) (*entities.RecipeStep, error)
		UpdateStep(ctx context.Context, step *entities.RecipeStep) error
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipeAggregate(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.RecipeIngredient, steps []*entities.RecipeStep, tagIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		if len(ingredients) > 0 {
			if err := tx.Create(ingredients).Error; err != nil {
				return err
			}
		}
		if len(steps) > 0 {
			if err := tx.Create(steps).Error; err != nil {
				return err
			}
		}
		for _, tagID := range tagIDs {
			relation := entities.RecipeTagRelation{RecipeID: recipe.ID, TagID: tagID}
			if err := tx.Create(&relation).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var found entities.Recipe
	if err := r.db.WithContext(ctx).
		Select(recipeCountSelect).
		Preload("User").
		Preload("Category").
		Preload("Ingredients").
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_order ASC")
		}).
		Preload("Tags").
		Where("recipes.id = ?", id).
		First(&found).Error; err != nil {
		return nil, err
	}
	return &found, nil
}

// GetRecipeRowByID loads the bare row, enough for ownership checks and
// header updates.
func (r *recipeRepository) GetRecipeRowByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var found entities.Recipe
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&found).Error; err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Save(recipe).Error
}

// DeleteRecipe removes the aggregate and every owned row in one transaction.
func (r *recipeRepository) DeleteRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeComment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeFavorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeTagRelation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeStep{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Recipe{}, "id = ?", recipe.ID).Error
	})
}

// ListRecipes applies the shared filter pipeline. A non-empty ownerID
// restricts results to that user's recipes before filtering.
func (r *recipeRepository) ListRecipes(ctx context.Context, filter domain.RecipeFilter, ownerID string) ([]*entities.Recipe, int64, error) {
	var count int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&entities.Recipe{}), filter, ownerID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PerPage
	var recipes []*entities.Recipe
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&entities.Recipe{}), filter, ownerID).
		Select(recipeCountSelect).
		Preload("User").
		Preload("Category").
		Preload("Tags").
		Order(orderClause(filter)).
		Offset(offset).
		Limit(filter.PerPage).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) applyFilter(q *gorm.DB, filter domain.RecipeFilter, ownerID string) *gorm.DB {
	if ownerID != "" {
		q = q.Where("recipes.user_id = ?", ownerID)
	}
	if filter.CategoryID != "" {
		q = q.Where("recipes.category_id = ?", filter.CategoryID)
	}
	if filter.Difficulty != "" {
		q = q.Where("recipes.difficulty = ?", filter.Difficulty)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(recipes.name) LIKE ? OR LOWER(recipes.description) LIKE ?", pattern, pattern)
	}
	if filter.TagID != "" {
		q = q.Where("EXISTS (SELECT 1 FROM recipe_tag_relations rtr WHERE rtr.recipe_id = recipes.id AND rtr.tag_id = ?)", filter.TagID)
	}
	if len(filter.Tags) > 0 {
		q = q.Where("EXISTS (SELECT 1 FROM recipe_tag_relations rtr JOIN recipe_tags rt ON rt.id = rtr.tag_id WHERE rtr.recipe_id = recipes.id AND rt.name IN ?)", filter.Tags)
	}
	return q
}

func orderClause(filter domain.RecipeFilter) string {
	field := filter.SortBy
	if !domain.RecipeSortFields[field] {
		field = domain.RecipeSortDefault
	}
	direction := "desc"
	if strings.EqualFold(filter.SortDirection, "asc") {
		direction = "asc"
	}
	return fmt.Sprintf("recipes.%s %s", field, direction)
}

func (r *recipeRepository) ListFavoriteRecipes(ctx context.Context, userID string, page, limit int) ([]*entities.Recipe, int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Joins("JOIN recipe_favorites ON recipes.id = recipe_favorites.recipe_id").
		Where("recipe_favorites.user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Select(recipeCountSelect).
		Joins("JOIN recipe_favorites ON recipes.id = recipe_favorites.recipe_id").
		Where("recipe_favorites.user_id = ?", userID).
		Preload("User").
		Preload("Category").
		Preload("Tags").
		Order("recipe_favorites.created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&entities.Recipe{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) IncrementViews(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *recipeRepository) GetCategoryByID(ctx context.Context, id string) (*entities.RecipeCategory, error) {
	var category entities.RecipeCategory
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *recipeRepository) GetTagByName(ctx context.Context, name string) (*entities.RecipeTag, error) {
	var tag entities.RecipeTag
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *recipeRepository) GetTags(ctx context.Context) ([]*entities.RecipeTag, error) {
	var tags []*entities.RecipeTag
	if err := r.db.WithContext(ctx).Order("name asc").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// ToggleFavorite deletes the (recipe, user) row if present, inserts it
// otherwise, inside one transaction. The unique index on the pair turns a
// concurrent double-insert into a constraint violation instead of a
// duplicate row.
func (r *recipeRepository) ToggleFavorite(ctx context.Context, recipeID, userID uuid.UUID) (bool, error) {
	var favorited bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("recipe_id = ? AND user_id = ?", recipeID, userID).
			Delete(&entities.RecipeFavorite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			favorited = false
			return nil
		}

		favorited = true
		return tx.Create(&entities.RecipeFavorite{
			ID:       uuid.New(),
			RecipeID: recipeID,
			UserID:   userID,
		}).Error
	})
	return favorited, err
}

func (r *recipeRepository) CountFavorites(ctx context.Context, recipeID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeFavorite{}).
		Where("recipe_id = ?", recipeID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *recipeRepository) IsFavorited(ctx context.Context, recipeID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeFavorite{}).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) GetStepByID(ctx context.Context, id string) (*entities.RecipeStep, error) {
	var step entities.RecipeStep
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&step).Error; err != nil {
		return nil, err
	}
	return &step, nil
}

func (r *recipeRepository) UpdateStep(ctx context.Context, step *entities.RecipeStep) error {
	return r.db.WithContext(ctx).Save(step).Error
}
