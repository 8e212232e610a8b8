package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"ripple/internal/models"
	"ripple/internal/repository"
)

const maxCommentLen = 2000

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type AddCommentInput struct {
	UserID  uint
	PostID  uint
	Content string
}

type DeleteCommentInput struct {
	UserID    uint
	PostID    uint
	CommentID uint
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

// AddComment creates a comment and returns the resolved post, comments
// newest first.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if utf8.RuneCountInString(content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 2000 characters)")
	}

	comment := &models.Comment{
		Content: content,
		UserID:  in.UserID,
		PostID:  in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, in.PostID)
}

// DeleteComment removes a comment. Allowed for the comment author and for
// the post author; everyone else gets Forbidden. Returns the resolved post.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.PostID != in.PostID {
		return nil, models.NewNotFoundError("Comment", in.CommentID)
	}

	if comment.UserID != in.UserID && post.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only delete your own comments")
	}

	if err := s.commentRepo.Delete(ctx, in.CommentID); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, in.PostID)
}
