package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetComments   = "success get comments"
	MessageSuccessAddComment    = "comment added successfully"
	MessageSuccessUpdateComment = "comment updated successfully"
	MessageSuccessDeleteComment = "comment deleted successfully"
	MessageSuccessGetMyComments = "success get my comments"

	MessageFailedGetComments   = "failed to get comments"
	MessageFailedAddComment    = "failed to add comment"
	MessageFailedUpdateComment = "failed to update comment"
	MessageFailedDeleteComment = "failed to delete comment"
	MessageFailedGetMyComments = "failed to get my comments"

	ErrCommentNotFound           = errors.New("comment not found")
	ErrUnauthorizedCommentAccess = errors.New("unauthorized access to comment")
	ErrParentCommentNotFound     = errors.New("parent comment not found")
	ErrParentCommentMismatch     = errors.New("parent comment belongs to another recipe")
)

const (
	DeletedTypeMainComment = "main_comment"
	DeletedTypeReply       = "reply"
)

type (
	AddCommentRequest struct {
		Content  string `json:"content" validate:"required,min=1,max=1000"`
		ParentID string `json:"parent_id" validate:"omitempty,uuid"`
	}

	UpdateCommentRequest struct {
		Content string `json:"content" validate:"required,min=1,max=1000"`
	}

	CommentAuthor struct {
		ID       string `json:"id"`
		Nickname string `json:"nickname"`
		Avatar   string `json:"avatar,omitempty"`
	}

	CommentResponse struct {
		ID        string            `json:"id"`
		RecipeID  string            `json:"recipe_id"`
		ParentID  string            `json:"parent_id,omitempty"`
		Content   string            `json:"content"`
		User      *CommentAuthor    `json:"user,omitempty"`
		Replies   []CommentResponse `json:"replies,omitempty"`
		CreatedAt time.Time         `json:"created_at"`
	}

	DeleteCommentResponse struct {
		DeletedType string `json:"deleted_type"`
	}
)
