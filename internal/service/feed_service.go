package service

import (
	"context"

	"ripple/internal/cache"
	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"
)

const (
	defaultFeedPage  = 1
	defaultFeedLimit = 5
	maxFeedLimit     = 100
	publicFeedSize   = 50
)

// FeedService composes reverse-chronological feeds from the follow graph.
type FeedService struct {
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

type FeedInput struct {
	UserID uint
	Page   int
	Limit  int
}

func NewFeedService(postRepo repository.PostRepository, followRepo repository.FollowRepository, userRepo repository.UserRepository) *FeedService {
	return &FeedService{postRepo: postRepo, followRepo: followRepo, userRepo: userRepo}
}

// GetFeed returns posts authored by the user and everyone they follow,
// newest first. Page and limit fall back to 1 and 5; limit is capped.
// The user must resolve; a token can outlive its account.
func (s *FeedService) GetFeed(ctx context.Context, in FeedInput) ([]*models.Post, error) {
	page := in.Page
	if page < 1 {
		page = defaultFeedPage
	}
	limit := in.Limit
	if limit < 1 {
		limit = defaultFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}

	if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}

	authorIDs, err := s.followRepo.FollowingIDs(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	authorIDs = append(authorIDs, in.UserID)

	posts, err := s.postRepo.ListByAuthors(ctx, authorIDs, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	observability.FeedRequests.WithLabelValues("personal").Inc()
	return posts, nil
}

// ListRecent returns the latest public posts, served cache-aside.
func (s *FeedService) ListRecent(ctx context.Context) ([]*models.Post, error) {
	posts := []*models.Post{}
	err := cache.Aside(ctx, cache.PublicFeedKey, &posts, cache.PublicFeedTTL, func() error {
		fetched, err := s.postRepo.ListRecent(ctx, publicFeedSize)
		if err != nil {
			return err
		}
		posts = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}
	observability.FeedRequests.WithLabelValues("public").Inc()
	return posts, nil
}
