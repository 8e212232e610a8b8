package server

import (
	"context"

	"ripple/internal/config"
	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Function-field stubs for the repository interfaces, mirrored from the
// service tests. Handler tests override only the fields they need.

type userRepoStub struct {
	getByIDFn        func(context.Context, uint) (*models.User, error)
	getByEmailFn     func(context.Context, string) (*models.User, error)
	getByUsernameFn  func(context.Context, string) (*models.User, error)
	getByGoogleIDFn  func(context.Context, string) (*models.User, error)
	createFn         func(context.Context, *models.User) error
	updateFn         func(context.Context, *models.User) error
	updatePasswordFn func(context.Context, uint, string) error
	deleteCascadeFn  func(context.Context, uint) error
	searchFn         func(context.Context, string, uint, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	return s.getByGoogleIDFn(ctx, googleID)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return s.updatePasswordFn(ctx, id, hash)
}
func (s *userRepoStub) DeleteCascade(ctx context.Context, id uint) error {
	return s.deleteCascadeFn(ctx, id)
}
func (s *userRepoStub) Search(ctx context.Context, query string, excludeID uint, limit int) ([]models.User, error) {
	return s.searchFn(ctx, query, excludeID, limit)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "user"}, nil
		},
		getByEmailFn:     func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn:  func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByGoogleIDFn:  func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:         func(_ context.Context, _ *models.User) error { return nil },
		updateFn:         func(_ context.Context, _ *models.User) error { return nil },
		updatePasswordFn: func(_ context.Context, _ uint, _ string) error { return nil },
		deleteCascadeFn:  func(_ context.Context, _ uint) error { return nil },
		searchFn:         func(_ context.Context, _ string, _ uint, _ int) ([]models.User, error) { return nil, nil },
	}
}

type postRepoStub struct {
	createFn         func(context.Context, *models.Post) error
	getByIDFn        func(context.Context, uint) (*models.Post, error)
	getByUserIDFn    func(context.Context, uint, int, int) ([]*models.Post, error)
	listByAuthorsFn  func(context.Context, []uint, int, int) ([]*models.Post, error)
	listRecentFn     func(context.Context, int) ([]*models.Post, error)
	updateFn         func(context.Context, *models.Post) error
	deleteFn         func(context.Context, uint) error
	getReactionFn    func(context.Context, uint, uint) (*models.Reaction, error)
	saveReactionFn   func(context.Context, *models.Reaction) error
	removeReactionFn func(context.Context, uint, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset)
}
func (s *postRepoStub) ListByAuthors(ctx context.Context, authorIDs []uint, limit, offset int) ([]*models.Post, error) {
	return s.listByAuthorsFn(ctx, authorIDs, limit, offset)
}
func (s *postRepoStub) ListRecent(ctx context.Context, limit int) ([]*models.Post, error) {
	return s.listRecentFn(ctx, limit)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) GetReaction(ctx context.Context, postID, userID uint) (*models.Reaction, error) {
	return s.getReactionFn(ctx, postID, userID)
}
func (s *postRepoStub) SaveReaction(ctx context.Context, reaction *models.Reaction) error {
	return s.saveReactionFn(ctx, reaction)
}
func (s *postRepoStub) RemoveReaction(ctx context.Context, postID, userID uint) error {
	return s.removeReactionFn(ctx, postID, userID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 1, Content: "post"}, nil
		},
		getByUserIDFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Post, error) { return nil, nil },
		listByAuthorsFn: func(_ context.Context, _ []uint, _, _ int) ([]*models.Post, error) {
			return nil, nil
		},
		listRecentFn:     func(_ context.Context, _ int) ([]*models.Post, error) { return nil, nil },
		updateFn:         func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:         func(_ context.Context, _ uint) error { return nil },
		getReactionFn:    func(_ context.Context, _, _ uint) (*models.Reaction, error) { return nil, nil },
		saveReactionFn:   func(_ context.Context, _ *models.Reaction) error { return nil },
		removeReactionFn: func(_ context.Context, _, _ uint) error { return nil },
	}
}

type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint) ([]*models.Comment, error)
	deleteFn     func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:    func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByPostFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
	}
}

type followRepoStub struct {
	followFn       func(context.Context, uint, uint) error
	unfollowFn     func(context.Context, uint, uint) error
	isFollowingFn  func(context.Context, uint, uint) (bool, error)
	followersFn    func(context.Context, uint) ([]models.User, error)
	followingFn    func(context.Context, uint) ([]models.User, error)
	followingIDsFn func(context.Context, uint) ([]uint, error)
}

func (s *followRepoStub) Follow(ctx context.Context, followerID, followeeID uint) error {
	return s.followFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	return s.unfollowFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followersFn(ctx, userID)
}
func (s *followRepoStub) Following(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followingFn(ctx, userID)
}
func (s *followRepoStub) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.followingIDsFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		followFn:       func(_ context.Context, _, _ uint) error { return nil },
		unfollowFn:     func(_ context.Context, _, _ uint) error { return nil },
		isFollowingFn:  func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		followersFn:    func(_ context.Context, _ uint) ([]models.User, error) { return nil, nil },
		followingFn:    func(_ context.Context, _ uint) ([]models.User, error) { return nil, nil },
		followingIDsFn: func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
	}
}

// testDeps bundles the stubbed repositories behind a test server.
type testDeps struct {
	users    *userRepoStub
	posts    *postRepoStub
	comments *commentRepoStub
	follows  *followRepoStub
}

// newTestServer builds a Server over stubbed repositories with no Redis.
func newTestServer() (*Server, *testDeps) {
	deps := &testDeps{
		users:    noopUserRepo(),
		posts:    noopPostRepo(),
		comments: noopCommentRepo(),
		follows:  noopFollowRepo(),
	}
	cfg := &config.Config{
		JWTSecret: "test-secret-at-least-32-characters!",
		Port:      "8080",
		Env:       "test",
	}
	s := &Server{
		config:      cfg,
		userRepo:    deps.users,
		postRepo:    deps.posts,
		commentRepo: deps.comments,
		followRepo:  deps.follows,
	}
	s.authService = service.NewAuthService(deps.users, nil)
	s.userService = service.NewUserService(deps.users, deps.follows)
	s.postService = service.NewPostService(deps.posts)
	s.commentService = service.NewCommentService(deps.comments, deps.posts)
	s.feedService = service.NewFeedService(deps.posts, deps.follows, deps.users)
	s.graphService = service.NewGraphService(deps.follows, deps.users)
	return s, deps
}

// withUser injects an authenticated user ID the way AuthRequired does.
func withUser(userID uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	}
}
