package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"
)

// GraphService manages the follow graph. The follows table is the single
// source of truth; per-user counters are derived inside the repository
// transaction.
type GraphService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

type FollowInput struct {
	ActorID  uint
	TargetID uint
}

func NewGraphService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *GraphService {
	return &GraphService{followRepo: followRepo, userRepo: userRepo}
}

func (s *GraphService) Follow(ctx context.Context, in FollowInput) (*models.User, error) {
	if in.ActorID == in.TargetID {
		return nil, models.NewValidationError("You cannot follow yourself")
	}

	target, err := s.resolveEndpoints(ctx, in)
	if err != nil {
		return nil, err
	}

	if err := s.followRepo.Follow(ctx, in.ActorID, in.TargetID); err != nil {
		return nil, err
	}
	observability.FollowMutations.WithLabelValues("follow").Inc()
	return target, nil
}

func (s *GraphService) Unfollow(ctx context.Context, in FollowInput) (*models.User, error) {
	if in.ActorID == in.TargetID {
		return nil, models.NewValidationError("You cannot unfollow yourself")
	}

	target, err := s.resolveEndpoints(ctx, in)
	if err != nil {
		return nil, err
	}

	if err := s.followRepo.Unfollow(ctx, in.ActorID, in.TargetID); err != nil {
		return nil, err
	}
	observability.FollowMutations.WithLabelValues("unfollow").Inc()
	return target, nil
}

// resolveEndpoints loads both ends of the edge. The actor can stop existing
// while still holding a valid token (deleted account), so it is checked the
// same way as the target.
func (s *GraphService) resolveEndpoints(ctx context.Context, in FollowInput) (*models.User, error) {
	target, err := s.userRepo.GetByID(ctx, in.TargetID)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, in.ActorID); err != nil {
		return nil, err
	}
	return target, nil
}

func (s *GraphService) Followers(ctx context.Context, userID uint) ([]models.UserSummary, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	users, err := s.followRepo.Followers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return summaries(users), nil
}

func (s *GraphService) Following(ctx context.Context, userID uint) ([]models.UserSummary, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	users, err := s.followRepo.Following(ctx, userID)
	if err != nil {
		return nil, err
	}
	return summaries(users), nil
}

func summaries(users []models.User) []models.UserSummary {
	out := make([]models.UserSummary, 0, len(users))
	for i := range users {
		out = append(out, users[i].Summary())
	}
	return out
}
