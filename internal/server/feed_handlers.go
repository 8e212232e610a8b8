package server

import (
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetFeed handles GET /api/feed. Returns posts by the authenticated user and
// everyone they follow, newest first.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	page := parsePagination(c)
	posts, err := s.feedService.GetFeed(c.Context(), service.FeedInput{
		UserID: currentUserID(c),
		Page:   page.Page,
		Limit:  page.Limit,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// GetPublicFeed handles GET /api/feed/public. Unauthenticated; served
// cache-aside with a short TTL.
func (s *Server) GetPublicFeed(c *fiber.Ctx) error {
	posts, err := s.feedService.ListRecent(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}
