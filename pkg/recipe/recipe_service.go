package recipe

import (
	"context"
	"errors"
	"mime/multipart"

	"recipeshare/domain"
	"recipeshare/entities"
	"recipeshare/internal/utils/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeDetailResponse, error)
		UpdateRecipe(ctx context.Context, id string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeDetailResponse, error)
		DeleteRecipe(ctx context.Context, id string, userID string) error
		GetRecipes(ctx context.Context, filter domain.RecipeFilter) ([]domain.RecipeResponse, int64, error)
		GetMyRecipes(ctx context.Context, filter domain.RecipeFilter, userID string) ([]domain.RecipeResponse, int64, error)
		GetRecipeDetail(ctx context.Context, id string, viewerID string) (domain.RecipeDetailResponse, error)
		ToggleFavorite(ctx context.Context, recipeID string, userID string) (domain.FavoriteToggleResponse, error)
		GetFavoriteRecipes(ctx context.Context, userID string, page, limit int) ([]domain.RecipeResponse, int64, error)
		GetTags(ctx context.Context) ([]domain.TagResponse, error)
		UploadRecipeImage(ctx context.Context, recipeID string, req domain.UploadRecipeImageRequest, userID string) (domain.UploadImageResponse, error)
		UploadTemporaryImage(ctx context.Context, image *multipart.FileHeader, userID string) (domain.UploadImageResponse, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		s3               storage.AwsS3
	}
)

func NewRecipeService(recipeRepository RecipeRepository, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		s3:               s3,
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeDetailResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeDetailResponse{}, domain.ErrParseUUID
	}

	var categoryID *uuid.UUID
	if req.CategoryID != "" {
		category, err := s.recipeRepository.GetCategoryByID(ctx, req.CategoryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.RecipeDetailResponse{}, domain.ErrCategoryNotFound
			}
			return domain.RecipeDetailResponse{}, err
		}
		categoryID = &category.ID
	}

	newRecipe := &entities.Recipe{
		ID:          uuid.New(),
		UserID:      userUUID,
		CategoryID:  categoryID,
		Name:        req.Name,
		Description: req.Description,
		Difficulty:  req.Difficulty,
		PrepTime:    req.PrepTime,
		CookTime:    req.CookTime,
		CoverImage:  req.CoverImage,
	}

	ingredients := make([]*entities.RecipeIngredient, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		ingredients = append(ingredients, &entities.RecipeIngredient{
			ID:       uuid.New(),
			RecipeID: newRecipe.ID,
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		})
	}

	steps := make([]*entities.RecipeStep, 0, len(req.Steps))
	for _, st := range req.Steps {
		steps = append(steps, &entities.RecipeStep{
			ID:          uuid.New(),
			RecipeID:    newRecipe.ID,
			StepOrder:   st.StepOrder,
			Description: st.Description,
			ImageURL:    st.ImageURL,
		})
	}

	// Unknown tag names are skipped, never an error.
	tagIDs := make([]uuid.UUID, 0, len(req.Tags))
	for _, name := range req.Tags {
		tag, err := s.recipeRepository.GetTagByName(ctx, name)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return domain.RecipeDetailResponse{}, err
		}
		tagIDs = append(tagIDs, tag.ID)
	}

	if err := s.assignSlug(ctx, newRecipe, uuid.Nil); err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	err = s.recipeRepository.CreateRecipeAggregate(ctx, newRecipe, ingredients, steps, tagIDs)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost a slug race; derive again against current state and retry once.
		if err = s.assignSlug(ctx, newRecipe, uuid.Nil); err != nil {
			return domain.RecipeDetailResponse{}, err
		}
		err = s.recipeRepository.CreateRecipeAggregate(ctx, newRecipe, ingredients, steps, tagIDs)
	}
	if err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	return s.loadDetail(ctx, newRecipe.ID.String(), userUUID, false)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, id string, req domain.UpdateRecipeRequest, userID string) (domain.RecipeDetailResponse, error) {
	found, err := s.recipeRepository.GetRecipeRowByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetailResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetailResponse{}, err
	}

	if found.UserID.String() != userID {
		return domain.RecipeDetailResponse{}, domain.ErrUnauthorizedRecipeAccess
	}

	if req.CategoryID != "" {
		category, err := s.recipeRepository.GetCategoryByID(ctx, req.CategoryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.RecipeDetailResponse{}, domain.ErrCategoryNotFound
			}
			return domain.RecipeDetailResponse{}, err
		}
		found.CategoryID = &category.ID
	}

	if req.Name != "" {
		found.Name = req.Name
	}
	if req.Description != "" {
		found.Description = req.Description
	}
	if req.Difficulty != "" {
		found.Difficulty = req.Difficulty
	}
	if req.PrepTime > 0 {
		found.PrepTime = req.PrepTime
	}
	if req.CookTime > 0 {
		found.CookTime = req.CookTime
	}
	if req.CoverImage != "" {
		found.CoverImage = req.CoverImage
	}

	// The slug follows the name on every update, excluding our own row from
	// the collision probe.
	if err := s.assignSlug(ctx, found, found.ID); err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, found); err != nil {
		return domain.RecipeDetailResponse{}, err
	}

	viewerUUID, _ := uuid.Parse(userID)
	return s.loadDetail(ctx, found.ID.String(), viewerUUID, false)
}

func (s *recipeService) assignSlug(ctx context.Context, rec *entities.Recipe, excludeID uuid.UUID) error {
	slug, err := UniqueSlug(rec.Name, func(candidate string) (bool, error) {
		return s.recipeRepository.SlugExists(ctx, candidate, excludeID)
	})
	if err != nil {
		return err
	}
	rec.Slug = slug
	return nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, id string, userID string) error {
	found, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	if found.UserID.String() != userID {
		return domain.ErrUnauthorizedRecipeAccess
	}

	if err := s.recipeRepository.DeleteRecipe(ctx, found); err != nil {
		return err
	}

	// Stored images are cleaned up best-effort once the rows are gone.
	if found.CoverImage != "" {
		_ = s.s3.DeleteFile(s.s3.GetObjectKeyFromLink(found.CoverImage))
	}
	for _, st := range found.Steps {
		if st.ImageURL != "" {
			_ = s.s3.DeleteFile(s.s3.GetObjectKeyFromLink(st.ImageURL))
		}
	}
	return nil
}

func (s *recipeService) GetRecipes(ctx context.Context, filter domain.RecipeFilter) ([]domain.RecipeResponse, int64, error) {
	normalizeFilter(&filter, domain.DefaultPerPage)
	recipes, count, err := s.recipeRepository.ListRecipes(ctx, filter, "")
	if err != nil {
		return nil, 0, err
	}
	return toRecipeResponses(recipes), count, nil
}

func (s *recipeService) GetMyRecipes(ctx context.Context, filter domain.RecipeFilter, userID string) ([]domain.RecipeResponse, int64, error) {
	normalizeFilter(&filter, domain.DefaultPerPageOwned)
	recipes, count, err := s.recipeRepository.ListRecipes(ctx, filter, userID)
	if err != nil {
		return nil, 0, err
	}
	return toRecipeResponses(recipes), count, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, id string, viewerID string) (domain.RecipeDetailResponse, error) {
	viewerUUID := uuid.Nil
	if viewerID != "" {
		parsed, err := uuid.Parse(viewerID)
		if err != nil {
			return domain.RecipeDetailResponse{}, domain.ErrParseUUID
		}
		viewerUUID = parsed
	}
	return s.loadDetail(ctx, id, viewerUUID, true)
}

func (s *recipeService) loadDetail(ctx context.Context, id string, viewerUUID uuid.UUID, countView bool) (domain.RecipeDetailResponse, error) {
	if countView {
		if err := s.recipeRepository.IncrementViews(ctx, id); err != nil {
			return domain.RecipeDetailResponse{}, err
		}
	}

	found, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetailResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetailResponse{}, err
	}

	detail := domain.RecipeDetailResponse{
		RecipeResponse: toRecipeResponse(found),
		Ingredients:    make([]domain.IngredientResponse, 0, len(found.Ingredients)),
		Steps:          make([]domain.StepResponse, 0, len(found.Steps)),
	}

	for _, ing := range found.Ingredients {
		detail.Ingredients = append(detail.Ingredients, domain.IngredientResponse{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		})
	}
	for _, st := range found.Steps {
		detail.Steps = append(detail.Steps, domain.StepResponse{
			StepOrder:   st.StepOrder,
			Description: st.Description,
			ImageURL:    st.ImageURL,
		})
	}

	if viewerUUID != uuid.Nil {
		favorited, err := s.recipeRepository.IsFavorited(ctx, found.ID, viewerUUID)
		if err != nil {
			return domain.RecipeDetailResponse{}, err
		}
		detail.IsFavorited = favorited
	}

	return detail, nil
}

func (s *recipeService) ToggleFavorite(ctx context.Context, recipeID string, userID string) (domain.FavoriteToggleResponse, error) {
	found, err := s.recipeRepository.GetRecipeRowByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FavoriteToggleResponse{}, domain.ErrRecipeNotFound
		}
		return domain.FavoriteToggleResponse{}, err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.FavoriteToggleResponse{}, domain.ErrParseUUID
	}

	favorited, err := s.recipeRepository.ToggleFavorite(ctx, found.ID, userUUID)
	if err != nil {
		return domain.FavoriteToggleResponse{}, err
	}

	count, err := s.recipeRepository.CountFavorites(ctx, found.ID)
	if err != nil {
		return domain.FavoriteToggleResponse{}, err
	}

	return domain.FavoriteToggleResponse{
		IsFavorited:    favorited,
		FavoritesCount: count,
	}, nil
}

func (s *recipeService) GetFavoriteRecipes(ctx context.Context, userID string, page, limit int) ([]domain.RecipeResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > domain.MaxPerPage {
		limit = domain.DefaultPerPage
	}

	recipes, count, err := s.recipeRepository.ListFavoriteRecipes(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return toRecipeResponses(recipes), count, nil
}

func (s *recipeService) GetTags(ctx context.Context) ([]domain.TagResponse, error) {
	tags, err := s.recipeRepository.GetTags(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.TagResponse, 0, len(tags))
	for _, tag := range tags {
		result = append(result, domain.TagResponse{ID: tag.ID.String(), Name: tag.Name})
	}
	return result, nil
}

func (s *recipeService) UploadRecipeImage(ctx context.Context, recipeID string, req domain.UploadRecipeImageRequest, userID string) (domain.UploadImageResponse, error) {
	found, err := s.recipeRepository.GetRecipeRowByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UploadImageResponse{}, domain.ErrRecipeNotFound
		}
		return domain.UploadImageResponse{}, err
	}

	if found.UserID.String() != userID {
		return domain.UploadImageResponse{}, domain.ErrUnauthorizedRecipeAccess
	}

	if req.Type == "step" {
		return s.uploadStepImage(ctx, found, req)
	}
	return s.uploadCoverImage(ctx, found, req)
}

// uploadCoverImage stores the new object before deleting the old one, so a
// crash in between leaves the recipe with a working image.
func (s *recipeService) uploadCoverImage(ctx context.Context, rec *entities.Recipe, req domain.UploadRecipeImageRequest) (domain.UploadImageResponse, error) {
	objectKey, err := s.s3.UploadFile(uuid.New().String(), req.Image, storage.DirRecipeCovers, storage.AllowImage...)
	if err != nil {
		return domain.UploadImageResponse{}, err
	}

	oldImage := rec.CoverImage
	rec.CoverImage = s.s3.GetPublicLinkKey(objectKey)
	if err := s.recipeRepository.UpdateRecipe(ctx, rec); err != nil {
		return domain.UploadImageResponse{}, err
	}

	if oldImage != "" {
		_ = s.s3.DeleteFile(s.s3.GetObjectKeyFromLink(oldImage))
	}
	return domain.UploadImageResponse{URL: rec.CoverImage}, nil
}

func (s *recipeService) uploadStepImage(ctx context.Context, rec *entities.Recipe, req domain.UploadRecipeImageRequest) (domain.UploadImageResponse, error) {
	if req.StepID == "" {
		return domain.UploadImageResponse{}, domain.ErrStepNotFound
	}

	step, err := s.recipeRepository.GetStepByID(ctx, req.StepID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UploadImageResponse{}, domain.ErrStepNotFound
		}
		return domain.UploadImageResponse{}, err
	}
	if step.RecipeID != rec.ID {
		return domain.UploadImageResponse{}, domain.ErrStepNotFound
	}

	objectKey, err := s.s3.UploadFile(uuid.New().String(), req.Image, storage.DirRecipeSteps, storage.AllowImage...)
	if err != nil {
		return domain.UploadImageResponse{}, err
	}

	oldImage := step.ImageURL
	step.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.recipeRepository.UpdateStep(ctx, step); err != nil {
		return domain.UploadImageResponse{}, err
	}

	if oldImage != "" {
		_ = s.s3.DeleteFile(s.s3.GetObjectKeyFromLink(oldImage))
	}
	return domain.UploadImageResponse{URL: step.ImageURL}, nil
}

func (s *recipeService) UploadTemporaryImage(ctx context.Context, image *multipart.FileHeader, userID string) (domain.UploadImageResponse, error) {
	objectKey, err := s.s3.UploadFile(uuid.New().String(), image, storage.DirRecipeTemp, storage.AllowImage...)
	if err != nil {
		return domain.UploadImageResponse{}, err
	}
	return domain.UploadImageResponse{URL: s.s3.GetPublicLinkKey(objectKey)}, nil
}

func normalizeFilter(filter *domain.RecipeFilter, defaultPerPage int) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 || filter.PerPage > domain.MaxPerPage {
		filter.PerPage = defaultPerPage
	}
}

func toRecipeResponses(recipes []*entities.Recipe) []domain.RecipeResponse {
	result := make([]domain.RecipeResponse, 0, len(recipes))
	for _, rec := range recipes {
		result = append(result, toRecipeResponse(rec))
	}
	return result
}

func toRecipeResponse(rec *entities.Recipe) domain.RecipeResponse {
	resp := domain.RecipeResponse{
		ID:               rec.ID.String(),
		Name:             rec.Name,
		Description:      rec.Description,
		Difficulty:       rec.Difficulty,
		PrepTime:         rec.PrepTime,
		CookTime:         rec.CookTime,
		CoverImage:       rec.CoverImage,
		Slug:             rec.Slug,
		Views:            rec.Views,
		Tags:             make([]domain.TagResponse, 0, len(rec.Tags)),
		IngredientsCount: rec.IngredientsCount,
		StepsCount:       rec.StepsCount,
		FavoritesCount:   rec.FavoritesCount,
		CommentsCount:    rec.CommentsCount,
		CreatedAt:        rec.CreatedAt,
	}

	if rec.User != nil {
		resp.User = &domain.RecipeOwner{
			ID:       rec.User.ID.String(),
			Nickname: rec.User.Nickname,
			Avatar:   rec.User.Avatar,
		}
	}
	if rec.Category != nil {
		resp.Category = &domain.CategoryResponse{
			ID:   rec.Category.ID.String(),
			Name: rec.Category.Name,
		}
	}
	for _, tag := range rec.Tags {
		resp.Tags = append(resp.Tags, domain.TagResponse{ID: tag.ID.String(), Name: tag.Name})
	}
	return resp
}
