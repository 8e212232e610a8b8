package service

import (
	"context"
	"testing"
	"time"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedService_GetFeed_Defaults(t *testing.T) {
	t.Parallel()

	var gotLimit, gotOffset int
	postRepo := noopPostRepo()
	postRepo.listByAuthorsFn = func(_ context.Context, _ []uint, limit, offset int) ([]*models.Post, error) {
		gotLimit, gotOffset = limit, offset
		return nil, nil
	}
	svc := NewFeedService(postRepo, noopFollowRepo(), noopUserRepo())

	_, err := svc.GetFeed(context.Background(), FeedInput{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, 5, gotLimit)
	assert.Equal(t, 0, gotOffset)

	_, err = svc.GetFeed(context.Background(), FeedInput{UserID: 1, Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, gotLimit)
	assert.Equal(t, 20, gotOffset)

	_, err = svc.GetFeed(context.Background(), FeedInput{UserID: 1, Page: 1, Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, 100, gotLimit, "limit must be capped")
}

func TestFeedService_GetFeed_AuthorsAreFollowingPlusSelf(t *testing.T) {
	t.Parallel()

	var gotAuthors []uint
	followRepo := noopFollowRepo()
	followRepo.followingIDsFn = func(_ context.Context, _ uint) ([]uint, error) {
		return []uint{2, 3}, nil
	}
	postRepo := noopPostRepo()
	postRepo.listByAuthorsFn = func(_ context.Context, authors []uint, _, _ int) ([]*models.Post, error) {
		gotAuthors = authors
		return nil, nil
	}
	svc := NewFeedService(postRepo, followRepo, noopUserRepo())

	_, err := svc.GetFeed(context.Background(), FeedInput{UserID: 1})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{1, 2, 3}, gotAuthors)
}

func TestFeedService_GetFeed_OrderingAndPagination(t *testing.T) {
	t.Parallel()

	// Six posts, oldest first. The repo stub reproduces the query contract:
	// filter by author, newest first, then limit/offset.
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	all := make([]*models.Post, 0, 6)
	for i := 0; i < 6; i++ {
		author := uint(1)
		if i%2 == 1 {
			author = 2
		}
		all = append(all, &models.Post{
			ID:        uint(i + 1),
			UserID:    author,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}

	followRepo := noopFollowRepo()
	followRepo.followingIDsFn = func(_ context.Context, _ uint) ([]uint, error) {
		return []uint{2}, nil
	}
	postRepo := noopPostRepo()
	postRepo.listByAuthorsFn = func(_ context.Context, authors []uint, limit, offset int) ([]*models.Post, error) {
		allowed := map[uint]bool{}
		for _, id := range authors {
			allowed[id] = true
		}
		matched := []*models.Post{}
		for i := len(all) - 1; i >= 0; i-- {
			if allowed[all[i].UserID] {
				matched = append(matched, all[i])
			}
		}
		if offset > len(matched) {
			offset = len(matched)
		}
		end := offset + limit
		if end > len(matched) {
			end = len(matched)
		}
		return matched[offset:end], nil
	}
	svc := NewFeedService(postRepo, followRepo, noopUserRepo())

	page1, err := svc.GetFeed(context.Background(), FeedInput{UserID: 1})
	require.NoError(t, err)
	require.Len(t, page1, 5)
	for i := 0; i < len(page1)-1; i++ {
		assert.True(t, !page1[i].CreatedAt.Before(page1[i+1].CreatedAt), "feed must be newest first")
	}
	assert.Equal(t, uint(6), page1[0].ID)

	page2, err := svc.GetFeed(context.Background(), FeedInput{UserID: 1, Page: 2})
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, uint(1), page2[0].ID)

	// Every post in the feed is authored by the user or someone they follow.
	for _, p := range append(page1, page2...) {
		assert.Contains(t, []uint{1, 2}, p.UserID)
	}
}

func TestFeedService_GetFeed_UnknownUser(t *testing.T) {
	t.Parallel()

	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}
	followRepo := noopFollowRepo()
	followRepo.followingIDsFn = func(_ context.Context, _ uint) ([]uint, error) {
		t.Fatal("follow graph must not be read for an unknown user")
		return nil, nil
	}
	svc := NewFeedService(noopPostRepo(), followRepo, userRepo)

	// A token can outlive its account; the feed must 404, not return empty.
	_, err := svc.GetFeed(context.Background(), FeedInput{UserID: 9})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestFeedService_ListRecent(t *testing.T) {
	t.Parallel()

	var gotLimit int
	postRepo := noopPostRepo()
	postRepo.listRecentFn = func(_ context.Context, limit int) ([]*models.Post, error) {
		gotLimit = limit
		return []*models.Post{{ID: 1}}, nil
	}
	svc := NewFeedService(postRepo, noopFollowRepo(), noopUserRepo())

	posts, err := svc.ListRecent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 50, gotLimit)
	require.Len(t, posts, 1)
}
