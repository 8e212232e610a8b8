package service

import (
	"context"
	"net/url"
	"strings"
	"unicode/utf8"

	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"
)

type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	UserID  uint
	Content string
	Image   string
}

type UpdatePostInput struct {
	UserID  uint
	PostID  uint
	Content *string
	Image   *string
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

type ReactInput struct {
	UserID uint
	PostID uint
	Emoji  string
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func validatePostContent(content string) error {
	if content == "" {
		return models.NewValidationError("Content is required")
	}
	if utf8.RuneCountInString(content) > models.MaxPostContentLen {
		return models.NewValidationError("Content too long (max 2000 characters)")
	}
	return nil
}

func validateImageURL(image string) error {
	if image == "" {
		return nil
	}
	u, err := url.Parse(image)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return models.NewValidationError("Image must be a valid http(s) URL")
	}
	return nil
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	content := strings.TrimSpace(in.Content)
	if err := validatePostContent(content); err != nil {
		return nil, err
	}
	if err := validateImageURL(in.Image); err != nil {
		return nil, err
	}

	post := &models.Post{
		Content: content,
		Image:   in.Image,
		UserID:  in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	observability.PostsCreated.Inc()

	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) GetPost(ctx context.Context, postID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, postID)
}

func (s *PostService) GetUserPosts(ctx context.Context, userID uint, page, limit int) ([]*models.Post, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}
	return s.postRepo.GetByUserID(ctx, userID, limit, (page-1)*limit)
}

// UpdatePost applies patch semantics: only non-nil fields change.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own posts")
	}

	if in.Content != nil {
		content := strings.TrimSpace(*in.Content)
		if err := validatePostContent(content); err != nil {
			return nil, err
		}
		post.Content = content
	}
	if in.Image != nil {
		if err := validateImageURL(*in.Image); err != nil {
			return nil, err
		}
		post.Image = *in.Image
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return err
	}
	if post.UserID != in.UserID {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, in.PostID)
}

// React toggles the user's reaction on a post: reacting with the emoji
// already set removes it, a different emoji replaces it, otherwise a new
// reaction is added. Returns the fully resolved post.
func (s *PostService) React(ctx context.Context, in ReactInput) (*models.Post, error) {
	emoji := strings.TrimSpace(in.Emoji)
	if emoji == "" {
		return nil, models.NewValidationError("Emoji is required")
	}

	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	existing, err := s.postRepo.GetReaction(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}

	switch {
	case existing == nil:
		reaction := &models.Reaction{PostID: in.PostID, UserID: in.UserID, Emoji: emoji}
		if err := s.postRepo.SaveReaction(ctx, reaction); err != nil {
			return nil, err
		}
		observability.ReactionsToggled.WithLabelValues("added").Inc()
	case existing.Emoji == emoji:
		if err := s.postRepo.RemoveReaction(ctx, in.PostID, in.UserID); err != nil {
			return nil, err
		}
		observability.ReactionsToggled.WithLabelValues("removed").Inc()
	default:
		existing.Emoji = emoji
		if err := s.postRepo.SaveReaction(ctx, existing); err != nil {
			return nil, err
		}
		observability.ReactionsToggled.WithLabelValues("changed").Inc()
	}

	return s.postRepo.GetByID(ctx, in.PostID)
}
