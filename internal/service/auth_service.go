// Package service contains the business logic of the application. Services
// take explicit actor IDs in their inputs and return models.AppError values
// that handlers translate to HTTP responses.
package service

import (
	"context"
	"fmt"
	"strings"

	"ripple/internal/identity"
	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"
	"ripple/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// IdentityVerifier validates a delegated sign-in credential and returns its
// claims. Implemented by identity.GoogleVerifier.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*identity.GoogleClaims, error)
}

type AuthService struct {
	userRepo repository.UserRepository
	verifier IdentityVerifier
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type ChangePasswordInput struct {
	UserID          uint
	CurrentPassword string
	NewPassword     string
}

func NewAuthService(userRepo repository.UserRepository, verifier IdentityVerifier) *AuthService {
	return &AuthService{userRepo: userRepo, verifier: verifier}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Email already registered")
	}
	existing, err = s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	if in.Email == "" || in.Password == "" {
		return nil, models.NewValidationError("Email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Password == "" {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, in ChangePasswordInput) error {
	if in.CurrentPassword == "" || in.NewPassword == "" {
		return models.NewValidationError("Current and new password are required")
	}
	if in.CurrentPassword == in.NewPassword {
		return models.NewValidationError("New password must differ from the current one")
	}
	if err := validation.ValidatePassword(in.NewPassword); err != nil {
		return models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return err
	}
	if user.Password == "" {
		return models.NewValidationError("Password change is not available for Google sign-in accounts")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.CurrentPassword)); err != nil {
		return models.NewUnauthorizedError("Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	return s.userRepo.UpdatePassword(ctx, in.UserID, string(hash))
}

// GoogleLogin verifies a Google ID token and either logs the matching account
// in or provisions a new one. An email already registered through local
// signup is a conflict, not an implicit account link.
func (s *AuthService) GoogleLogin(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, models.NewValidationError("Credential is required")
	}
	if s.verifier == nil {
		return nil, models.NewValidationError("Google sign-in is not configured")
	}

	span, ctx := observability.NewSpan(ctx, "identity.verify_google_token")
	claims, err := s.verifier.Verify(ctx, token)
	if err != nil {
		span.SetError(err)
		span.End()
		return nil, models.NewUpstreamError("Google sign-in verification failed", err)
	}
	span.End()

	user, err := s.userRepo.GetByGoogleID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	existing, err := s.userRepo.GetByEmail(ctx, claims.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Email already registered with a different sign-in method")
	}

	username, err := s.availableUsername(ctx, claims)
	if err != nil {
		return nil, err
	}

	googleID := claims.Subject
	user = &models.User{
		Username: username,
		Email:    claims.Email,
		GoogleID: &googleID,
		Avatar:   claims.Picture,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// availableUsername derives a valid username from the Google profile and
// appends a numeric suffix until it is free.
func (s *AuthService) availableUsername(ctx context.Context, claims *identity.GoogleClaims) (string, error) {
	base := sanitizeUsername(claims.Name)
	if base == "" {
		base = sanitizeUsername(strings.SplitN(claims.Email, "@", 2)[0])
	}
	if base == "" {
		base = "user"
	}
	if len(base) > 24 {
		base = base[:24]
	}
	for len(base) < 3 {
		base += "0"
	}

	candidate := base
	for i := 1; ; i++ {
		existing, err := s.userRepo.GetByUsername(ctx, candidate)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, i)
	}
}

func sanitizeUsername(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '.', r == '-', r == '_':
			// separators dropped to keep the start/end rule simple
		}
	}
	return b.String()
}
