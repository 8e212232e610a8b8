package service

import (
	"context"
	"strings"

	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/validation"
)

type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

// Profile is a user together with the resolved follower/following summaries.
type Profile struct {
	ID             uint                 `json:"id"`
	Username       string               `json:"username"`
	Email          string               `json:"email"`
	Avatar         string               `json:"avatar"`
	Bio            string               `json:"bio"`
	FollowersCount int                  `json:"followers_count"`
	FollowingCount int                  `json:"following_count"`
	Followers      []models.UserSummary `json:"followers"`
	Following      []models.UserSummary `json:"following"`
}

type UpdateProfileInput struct {
	UserID   uint
	Username *string
	Bio      *string
	Avatar   *string
}

func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository) *UserService {
	return &UserService{userRepo: userRepo, followRepo: followRepo}
}

func (s *UserService) GetProfile(ctx context.Context, userID uint) (*Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	followers, err := s.followRepo.Followers(ctx, userID)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.Following(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		Avatar:         user.Avatar,
		Bio:            user.Bio,
		FollowersCount: user.FollowersCount,
		FollowingCount: user.FollowingCount,
		Followers:      summaries(followers),
		Following:      summaries(following),
	}, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500

	if in.Username != nil {
		if err := validation.ValidateUsername(*in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if *in.Username != user.Username {
			existing, err := s.userRepo.GetByUsername(ctx, *in.Username)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, models.NewConflictError("Username already taken")
			}
			user.Username = *in.Username
		}
	}
	if in.Bio != nil {
		if len(*in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = *in.Bio
	}
	if in.Avatar != nil {
		if err := validateImageURL(*in.Avatar); err != nil {
			return nil, err
		}
		user.Avatar = *in.Avatar
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// SearchUsers matches username or email substrings case-insensitively,
// excluding the actor.
func (s *UserService) SearchUsers(ctx context.Context, actorID uint, query string) ([]models.UserSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}

	users, err := s.userRepo.Search(ctx, query, actorID, 50)
	if err != nil {
		return nil, err
	}
	return summaries(users), nil
}

// DeleteAccount removes the actor's account and everything they authored.
func (s *UserService) DeleteAccount(ctx context.Context, actorID uint) error {
	return s.userRepo.DeleteCascade(ctx, actorID)
}
