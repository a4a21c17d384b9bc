package comment

import (
	"context"
	"errors"

	"recipeshare/domain"
	"recipeshare/entities"
	"recipeshare/pkg/recipe"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	CommentService interface {
		GetComments(ctx context.Context, recipeID string) ([]domain.CommentResponse, error)
		AddComment(ctx context.Context, recipeID string, req domain.AddCommentRequest, userID string) (domain.CommentResponse, error)
		UpdateComment(ctx context.Context, id string, req domain.UpdateCommentRequest, userID string) (domain.CommentResponse, error)
		DeleteComment(ctx context.Context, id string, userID string) (domain.DeleteCommentResponse, error)
		GetMyComments(ctx context.Context, userID string, page, limit int) ([]domain.CommentResponse, int64, error)
	}

	commentService struct {
		commentRepository CommentRepository
		recipeRepository  recipe.RecipeRepository
	}
)

func NewCommentService(commentRepository CommentRepository, recipeRepository recipe.RecipeRepository) CommentService {
	return &commentService{
		commentRepository: commentRepository,
		recipeRepository:  recipeRepository,
	}
}

func (s *commentService) GetComments(ctx context.Context, recipeID string) ([]domain.CommentResponse, error) {
	if _, err := s.recipeRepository.GetRecipeRowByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}

	comments, err := s.commentRepository.GetCommentsByRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.CommentResponse, 0, len(comments))
	for _, c := range comments {
		result = append(result, toCommentResponse(c, true))
	}
	return result, nil
}

func (s *commentService) AddComment(ctx context.Context, recipeID string, req domain.AddCommentRequest, userID string) (domain.CommentResponse, error) {
	found, err := s.recipeRepository.GetRecipeRowByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CommentResponse{}, domain.ErrRecipeNotFound
		}
		return domain.CommentResponse{}, err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.CommentResponse{}, domain.ErrParseUUID
	}

	var parentID *uuid.UUID
	if req.ParentID != "" {
		parent, err := s.commentRepository.GetCommentByID(ctx, req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.CommentResponse{}, domain.ErrParentCommentNotFound
			}
			return domain.CommentResponse{}, err
		}
		if parent.RecipeID != found.ID {
			return domain.CommentResponse{}, domain.ErrParentCommentMismatch
		}
		parentID = &parent.ID
	}

	newComment := &entities.RecipeComment{
		ID:       uuid.New(),
		RecipeID: found.ID,
		UserID:   &userUUID,
		ParentID: parentID,
		Content:  req.Content,
	}
	if err := s.commentRepository.CreateComment(ctx, newComment); err != nil {
		return domain.CommentResponse{}, err
	}

	created, err := s.commentRepository.GetCommentByID(ctx, newComment.ID.String())
	if err != nil {
		return domain.CommentResponse{}, err
	}
	return toCommentResponse(created, false), nil
}

func (s *commentService) UpdateComment(ctx context.Context, id string, req domain.UpdateCommentRequest, userID string) (domain.CommentResponse, error) {
	found, err := s.commentRepository.GetCommentByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CommentResponse{}, domain.ErrCommentNotFound
		}
		return domain.CommentResponse{}, err
	}

	if found.UserID == nil || found.UserID.String() != userID {
		return domain.CommentResponse{}, domain.ErrUnauthorizedCommentAccess
	}

	found.Content = req.Content
	if err := s.commentRepository.UpdateComment(ctx, found); err != nil {
		return domain.CommentResponse{}, err
	}
	return toCommentResponse(found, false), nil
}

func (s *commentService) DeleteComment(ctx context.Context, id string, userID string) (domain.DeleteCommentResponse, error) {
	found, err := s.commentRepository.GetCommentByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.DeleteCommentResponse{}, domain.ErrCommentNotFound
		}
		return domain.DeleteCommentResponse{}, err
	}

	if found.UserID == nil || found.UserID.String() != userID {
		return domain.DeleteCommentResponse{}, domain.ErrUnauthorizedCommentAccess
	}

	deletedType := domain.DeletedTypeMainComment
	if found.ParentID != nil {
		deletedType = domain.DeletedTypeReply
	}

	if err := s.commentRepository.DeleteCommentWithReplies(ctx, found); err != nil {
		return domain.DeleteCommentResponse{}, err
	}
	return domain.DeleteCommentResponse{DeletedType: deletedType}, nil
}

func (s *commentService) GetMyComments(ctx context.Context, userID string, page, limit int) ([]domain.CommentResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > domain.MaxPerPage {
		limit = domain.DefaultPerPageOwned
	}

	comments, count, err := s.commentRepository.GetCommentsByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.CommentResponse, 0, len(comments))
	for _, c := range comments {
		result = append(result, toCommentResponse(c, false))
	}
	return result, count, nil
}

func toCommentResponse(c *entities.RecipeComment, withReplies bool) domain.CommentResponse {
	resp := domain.CommentResponse{
		ID:        c.ID.String(),
		RecipeID:  c.RecipeID.String(),
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
	if c.ParentID != nil {
		resp.ParentID = c.ParentID.String()
	}
	if c.User != nil {
		resp.User = &domain.CommentAuthor{
			ID:       c.User.ID.String(),
			Nickname: c.User.Nickname,
			Avatar:   c.User.Avatar,
		}
	}
	if withReplies {
		resp.Replies = make([]domain.CommentResponse, 0, len(c.Replies))
		for _, reply := range c.Replies {
			resp.Replies = append(resp.Replies, toCommentResponse(reply, false))
		}
	}
	return resp
}
