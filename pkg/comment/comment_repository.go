package comment

import (
	"context"

	"recipeshare/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	CommentRepository interface {
		CreateComment(ctx context.Context, comment *entities.RecipeComment) error
		GetCommentByID(ctx context.Context, id string) (*entities.RecipeComment, error)
		GetCommentsByRecipe(ctx context.Context, recipeID string) ([]*entities.RecipeComment, error)
		GetCommentsByUser(ctx context.Context, userID string, page, limit int) ([]*entities.RecipeComment, int64, error)
		UpdateComment(ctx context.Context, comment *entities.RecipeComment) error
		DeleteCommentWithReplies(ctx context.Context, comment *entities.RecipeComment) error
	}

	commentRepository struct {
		db *gorm.DB
	}
)

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) CreateComment(ctx context.Context, comment *entities.RecipeComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetCommentByID(ctx context.Context, id string) (*entities.RecipeComment, error) {
	var found entities.RecipeComment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&found).Error; err != nil {
		return nil, err
	}
	return &found, nil
}

// GetCommentsByRecipe returns the top-level thread, newest first, with replies
// nested one level deep.
func (r *commentRepository) GetCommentsByRecipe(ctx context.Context, recipeID string) ([]*entities.RecipeComment, error) {
	var comments []*entities.RecipeComment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Replies.User").
		Where("recipe_id = ? AND parent_id IS NULL", recipeID).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) GetCommentsByUser(ctx context.Context, userID string, page, limit int) ([]*entities.RecipeComment, int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeComment{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	var comments []*entities.RecipeComment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&comments).Error; err != nil {
		return nil, 0, err
	}

	return comments, count, nil
}

func (r *commentRepository) UpdateComment(ctx context.Context, comment *entities.RecipeComment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

// DeleteCommentWithReplies removes the comment and every descendant reply,
// however deep the thread goes. Descendants are collected level by level
// inside the transaction, then deleted in one statement.
func (r *commentRepository) DeleteCommentWithReplies(ctx context.Context, comment *entities.RecipeComment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := []uuid.UUID{comment.ID}
		frontier := ids
		for len(frontier) > 0 {
			var children []uuid.UUID
			if err := tx.Model(&entities.RecipeComment{}).
				Where("parent_id IN ?", frontier).
				Pluck("id", &children).Error; err != nil {
				return err
			}
			ids = append(ids, children...)
			frontier = children
		}
		return tx.Delete(&entities.RecipeComment{}, "id IN ?", ids).Error
	})
}
