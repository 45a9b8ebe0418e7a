package server

import (
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// HomeFeed handles GET / with optional ?page=N.
func (s *Server) HomeFeed(c *fiber.Ctx) error {
	ctx := c.UserContext()
	number := service.ParsePageNumber(c.Query("page"))

	page, err := s.feedService.HomePage(ctx, number)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"page": page,
	})
}

// GroupFeed handles GET /group/:slug/ with optional ?page=N.
func (s *Server) GroupFeed(c *fiber.Ctx) error {
	ctx := c.UserContext()
	slug := c.Params("slug")
	number := service.ParsePageNumber(c.Query("page"))

	group, page, err := s.feedService.GroupPage(ctx, slug, number)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"group": group,
		"page":  page,
	})
}

// Profile handles GET /profile/:username/ with optional ?page=N. For an
// authenticated viewer the response says whether they follow this author.
func (s *Server) Profile(c *fiber.Ctx) error {
	ctx := c.UserContext()
	username := c.Params("username")
	number := service.ParsePageNumber(c.Query("page"))

	author, page, following, err := s.feedService.ProfilePage(ctx, username, actorID(c), number)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"author":    author,
		"page":      page,
		"following": following,
	})
}

// FollowFeed handles GET /follow/ with optional ?page=N. Only posts by
// authors the viewer follows appear here.
func (s *Server) FollowFeed(c *fiber.Ctx) error {
	ctx := c.UserContext()
	number := service.ParsePageNumber(c.Query("page"))

	page, err := s.feedService.FollowPage(ctx, actorID(c), number)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"page": page,
	})
}
