package recipe

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"recipeshare/domain"
	"recipeshare/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	if err := db.SetupJoinTable(&entities.Recipe{}, "Tags", &entities.RecipeTagRelation{}); err != nil {
		t.Fatalf("failed to setup join table: %v", err)
	}
	if err := db.AutoMigrate(
		&entities.User{},
		&entities.RecipeCategory{},
		&entities.RecipeTag{},
		&entities.Recipe{},
		&entities.RecipeIngredient{},
		&entities.RecipeStep{},
		&entities.RecipeComment{},
		&entities.RecipeFavorite{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func createTestUser(db *gorm.DB, nickname string) *entities.User {
	email := nickname + "@example.com"
	user := &entities.User{
		ID:       uuid.New(),
		Nickname: nickname,
		Email:    &email,
		Password: "hashedpassword",
	}
	db.Create(user)
	return user
}

func createTestCategory(db *gorm.DB, name string) *entities.RecipeCategory {
	category := &entities.RecipeCategory{ID: uuid.New(), Name: name}
	db.Create(category)
	return category
}

func createTestTag(db *gorm.DB, name string) *entities.RecipeTag {
	tag := &entities.RecipeTag{ID: uuid.New(), Name: name}
	db.Create(tag)
	return tag
}

func buildRecipeRequest(name string) domain.CreateRecipeRequest {
	return domain.CreateRecipeRequest{
		Name:       name,
		Difficulty: "Easy",
		PrepTime:   10,
		CookTime:   20,
		Ingredients: []domain.IngredientRequest{
			{Name: "Rice", Quantity: "2", Unit: "cups"},
			{Name: "Egg", Quantity: "1"},
		},
		Steps: []domain.StepRequest{
			{StepOrder: 1, Description: "Cook the rice"},
			{StepOrder: 2, Description: "Fry everything"},
		},
	}
}

func TestCreateRecipe_PersistsAggregate(t *testing.T) {
	db := setupTestDB(t)
	service := NewRecipeService(NewRecipeRepository(db), nil)
	owner := createTestUser(db, "cook")
	tag := createTestTag(db, "spicy")

	req := buildRecipeRequest("Nasi Goreng")
	req.Tags = []string{tag.Name}

	detail, err := service.CreateRecipe(context.Background(), req, owner.ID.String())

	assert.NoError(t, err)
	assert.Equal(t, "Nasi Goreng", detail.Name)
	assert.Equal(t, "nasi-goreng", detail.Slug)
	assert.Len(t, detail.Ingredients, 2)
	assert.Len(t, detail.Steps, 2)
	assert.Equal(t, int64(2), detail.IngredientsCount)
	assert.Equal(t, int64(2), detail.StepsCount)
	assert.Len(t, detail.Tags, 1)
	assert.Equal(t, "spicy", detail.Tags[0].Name)
	assert.Equal(t, owner.ID.String(), detail.User.ID)
}

func TestCreateRecipe_UnknownTagsSkipped(t *testing.T) {
	db := setupTestDB(t)
	service := NewRecipeService(NewRecipeRepository(db), nil)
	owner := createTestUser(db, "cook")
	createTestTag(db, "spicy")

	req := buildRecipeRequest("Nasi Goreng")
	req.Tags = []string{"spicy", "does-not-exist"}

	detail, err := service.CreateRecipe(context.Background(), req, owner.ID.String())

	assert.NoError(t, err)
	assert.Len(t, detail.Tags, 1)
	assert.Equal(t, "spicy", detail.Tags[0].Name)
}

func TestCreateRecipe_SlugCollisionGetsSuffix(t *testing.T) {
	db := setupTestDB(t)
	service := NewRecipeService(NewRecipeRepository(db), nil)
	owner := createTestUser(db, "cook")

	first, err := service.CreateRecipe(context.Background(), buildRecipeRequest("Nasi Goreng"), owner.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, "nasi-goreng", first.Slug)

	second, err := service.CreateRecipe(context.Background(), buildRecipeRequest("Nasi Goreng"), owner.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, "nasi-goreng-2", second.Slug)

	third, err := service.CreateRecipe(context.Background(), buildRecipeRequest("Nasi Goreng"), owner.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, "nasi-goreng-3", third.Slug)
}

func TestCreateRecipe_UnknownCategory(t *testing.T) {
	db := setupTestDB(t)
	service := NewRecipeService(NewRecipeRepository(db), nil)
	owner := createTestUser(db, "cook")

	req := buildRecipeRequest("Nasi Goreng")
	req.CategoryID = uuid.NewString()

	_, err := service.CreateRecipe(context.Background(), req, owner.ID.String())

	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestUpdateRecipe_KeepsSlugWhenNameUnchanged(t *testing.T) {
	db := setupTestDB(t)
	service := NewRecipeService(NewRecipeRepository(db), nil)
	owner := createTestUser(db, "cook")

	created, err := service.CreateRecipe(context.Background(), buildRecipeRequest("Nasi Goreng"), owner.ID.String())
	assert.NoError(t, err)

	updated, err := service.UpdateRecipe(context.Background(), created.ID, domain.UpdateRecipeRequest{
		Description: "Now with more detail",
	}, owner.ID.String())

	assert.NoError(t, err)
	assert.Equal(t, "nasi-goreng", updated.Slug)
	assert.Equal(t, "Now with more detail", updated.Description)
}

func TestUpdateRecipe_RenamingRederivesSlug(t *testing.T) {
	db := setupTestDB(t)
	service := NewRecipeService(NewRecipeRepository(db), nil)
	owner := createTestUser(db, "cook")

	created, err := service.CreateRecipe(context.Background(), buildRecipeRequest("Nasi Goreng"), owner.ID.String())
	assert.NoError(t, err)

	updated, err := service.UpdateRecipe(context.Background(), created.ID, domain.UpdateRecipeRequest{
		Name: "Mie Goreng",
	}, owner.ID.String())

	assert.NoError(t, err)
	assert.Equal(t, "mie-goreng", updated.Slug)
}

func TestUpdateRecipe_NotOwner(t *testing.T) {
	db := setupTestDB(t)
	service := NewRecipeService(NewRecipeRepository(db), nil)
	owner := createTestUser(db, "cook")
	other := createTestUser(db, "stranger")

	created, err := service.CreateRecipe(context.Background(), buildRecipeRequest("Nasi Goreng"), owner.ID.String())
	assert.NoError(t, err)

	_, err = service.UpdateRecipe(context.Background(), created.ID, domain.UpdateRecipeRequest{
		Name: "Stolen Recipe",
	}, other.ID.String())

	assert.ErrorIs(t, err, domain.ErrUnauthorizedRecipeAccess)
}

func TestDeleteRecipe_CascadesOwnedRows(t *testing.T) {
	db := setupTestDB(t)
	repository := NewRecipeRepository(db)
	service := NewRecipeService(repository, nil)
	owner := createTestUser(db, "cook")
	tag := createTestTag(db, "spicy")

	req := buildRecipeRequest("Nasi Goreng")
	req.Tags = []string{tag.Name}
	created, err := service.CreateRecipe(context.Background(), req, owner.ID.String())
	assert.NoError(t, err)

	recipeID := uuid.MustParse(created.ID)
	db.Create(&entities.RecipeFavorite{ID: uuid.New(), RecipeID: recipeID, UserID: owner.ID})
	db.Create(&entities.RecipeComment{ID: uuid.New(), RecipeID: recipeID, UserID: &owner.ID, Content: "yum"})

	err = service.DeleteRecipe(context.Background(), created.ID, owner.ID.String())
	assert.NoError(t, err)

	for table, model := range map[string]any{
		"ingredients": &entities.RecipeIngredient{},
		"steps":       &entities.RecipeStep{},
		"favorites":   &entities.RecipeFavorite{},
		"comments":    &entities.RecipeComment{},
	} {
		var count int64
		db.Model(model).Where("recipe_id = ?", recipeID).Count(&count)
		assert.Zero(t, count, "leftover %s", table)
	}

	var relCount int64
	db.Model(&entities.RecipeTagRelation{}).Where("recipe_id = ?", recipeID).Count(&relCount)
	assert.Zero(t, relCount)

	_, err = service.GetRecipeDetail(context.Background(), created.ID, "")
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestDeleteRecipe_NotOwner(t *testing.T) {
	db := setupTestDB(t)
	service := NewRecipeService(NewRecipeRepository(db), nil)
	owner := createTestUser(db, "cook")
	other := createTestUser(db, "stranger")

	created, err := service.CreateRecipe(context.Background(), buildRecipeRequest("Nasi Goreng"), owner.ID.String())
	assert.NoError(t, err)

	err = service.DeleteRecipe(context.Background(), created.ID, other.ID.String())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedRecipeAccess)
}

func TestGetRecipes_Filters(t *testing.T) {
	db := setupTestDB(t)
	service := NewRecipeService(NewRecipeRepository(db), nil)
	owner := createTestUser(db, "cook")
	category := createTestCategory(db, "Desserts")
	tag := createTestTag(db, "sweet")

	cake := buildRecipeRequest("Chocolate Cake")
	cake.CategoryID = category.ID.String()
	cake.Difficulty = "Hard"
	cake.Tags = []string{tag.Name}
	_, err := service.CreateRecipe(context.Background(), cake, owner.ID.String())
	assert.NoError(t, err)

	_, err = service.CreateRecipe(context.Background(), buildRecipeRequest("Nasi Goreng"), owner.ID.String())
	assert.NoError(t, err)

	byCategory, count, err := service.GetRecipes(context.Background(), domain.RecipeFilter{CategoryID: category.ID.String()})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, "Chocolate Cake", byCategory[0].Name)

	bySearch, count, err := service.GetRecipes(context.Background(), domain.RecipeFilter{Search: "chocolate"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, "Chocolate Cake", bySearch[0].Name)

	byDifficulty, count, err := service.GetRecipes(context.Background(), domain.RecipeFilter{Difficulty: "Hard"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, "Chocolate Cake", byDifficulty[0].Name)

	byTag, count, err := service.GetRecipes(context.Background(), domain.RecipeFilter{TagID: tag.ID.String()})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, "Chocolate Cake", byTag[0].Name)

	all, count, err := service.GetRecipes(context.Background(), domain.RecipeFilter{})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Len(t, all, 2)
}

func TestGetRecipes_Pagination(t *testing.T) {
	db := setupTestDB(t)
	service := NewRecipeService(NewRecipeRepository(db), nil)
	owner := createTestUser(db, "cook")

	for i := 1; i <= 15; i++ {
		_, err := service.CreateRecipe(context.Background(), buildRecipeRequest(fmt.Sprintf("Recipe %d", i)), owner.ID.String())
		assert.NoError(t, err)
	}

	pageOne, count, err := service.GetRecipes(context.Background(), domain.RecipeFilter{Page: 1, PerPage: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(15), count)
	assert.Len(t, pageOne, 10)

	pageTwo, count, err := service.GetRecipes(context.Background(), domain.RecipeFilter{Page: 2, PerPage: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(15), count)
	assert.Len(t, pageTwo, 5)
}

func TestGetMyRecipes_OnlyOwn(t *testing.T) {
	db := setupTestDB(t)
	service := NewRecipeService(NewRecipeRepository(db), nil)
	owner := createTestUser(db, "cook")
	other := createTestUser(db, "stranger")

	_, err := service.CreateRecipe(context.Background(), buildRecipeRequest("Mine"), owner.ID.String())
	assert.NoError(t, err)
	_, err = service.CreateRecipe(context.Background(), buildRecipeRequest("Theirs"), other.ID.String())
	assert.NoError(t, err)

	mine, count, err := service.GetMyRecipes(context.Background(), domain.RecipeFilter{}, owner.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, "Mine", mine[0].Name)
}

func TestGetRecipeDetail_CountsViews(t *testing.T) {
	db := setupTestDB(t)
	service := NewRecipeService(NewRecipeRepository(db), nil)
	owner := createTestUser(db, "cook")

	created, err := service.CreateRecipe(context.Background(), buildRecipeRequest("Nasi Goreng"), owner.ID.String())
	assert.NoError(t, err)
	assert.Zero(t, created.Views)

	first, err := service.GetRecipeDetail(context.Background(), created.ID, "")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), first.Views)

	second, err := service.GetRecipeDetail(context.Background(), created.ID, "")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), second.Views)
}

func TestToggleFavorite(t *testing.T) {
	db := setupTestDB(t)
	service := NewRecipeService(NewRecipeRepository(db), nil)
	owner := createTestUser(db, "cook")
	fan := createTestUser(db, "fan")

	created, err := service.CreateRecipe(context.Background(), buildRecipeRequest("Nasi Goreng"), owner.ID.String())
	assert.NoError(t, err)

	on, err := service.ToggleFavorite(context.Background(), created.ID, fan.ID.String())
	assert.NoError(t, err)
	assert.True(t, on.IsFavorited)
	assert.Equal(t, int64(1), on.FavoritesCount)

	detail, err := service.GetRecipeDetail(context.Background(), created.ID, fan.ID.String())
	assert.NoError(t, err)
	assert.True(t, detail.IsFavorited)

	off, err := service.ToggleFavorite(context.Background(), created.ID, fan.ID.String())
	assert.NoError(t, err)
	assert.False(t, off.IsFavorited)
	assert.Zero(t, off.FavoritesCount)
}

func TestGetFavoriteRecipes(t *testing.T) {
	db := setupTestDB(t)
	service := NewRecipeService(NewRecipeRepository(db), nil)
	owner := createTestUser(db, "cook")
	fan := createTestUser(db, "fan")

	first, err := service.CreateRecipe(context.Background(), buildRecipeRequest("First"), owner.ID.String())
	assert.NoError(t, err)
	_, err = service.CreateRecipe(context.Background(), buildRecipeRequest("Second"), owner.ID.String())
	assert.NoError(t, err)

	_, err = service.ToggleFavorite(context.Background(), first.ID, fan.ID.String())
	assert.NoError(t, err)

	favorites, count, err := service.GetFavoriteRecipes(context.Background(), fan.ID.String(), 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Len(t, favorites, 1)
	assert.Equal(t, "First", favorites[0].Name)
}

func TestGetTags_Alphabetical(t *testing.T) {
	db := setupTestDB(t)
	service := NewRecipeService(NewRecipeRepository(db), nil)
	createTestTag(db, "vegan")
	createTestTag(db, "breakfast")
	createTestTag(db, "quick")

	tags, err := service.GetTags(context.Background())

	assert.NoError(t, err)
	assert.Len(t, tags, 3)
	assert.Equal(t, "breakfast", tags[0].Name)
	assert.Equal(t, "quick", tags[1].Name)
	assert.Equal(t, "vegan", tags[2].Name)
}
