package server

import (
	"github.com/gofiber/fiber/v2"
)

// FollowAuthor handles GET /profile/:username/follow/. Following yourself or
// an author you already follow is a no-op; either way the caller lands on the
// author's profile.
func (s *Server) FollowAuthor(c *fiber.Ctx) error {
	ctx := c.UserContext()
	username := c.Params("username")

	author, err := s.followService.Follow(ctx, actorID(c), username)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Redirect("/profile/"+author.Username+"/", fiber.StatusFound)
}

// UnfollowAuthor handles GET /profile/:username/unfollow/. Unfollowing an
// author you do not follow is a 404, matching the missing-subscription row.
func (s *Server) UnfollowAuthor(c *fiber.Ctx) error {
	ctx := c.UserContext()
	username := c.Params("username")

	author, err := s.followService.Unfollow(ctx, actorID(c), username)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Redirect("/profile/"+author.Username+"/", fiber.StatusFound)
}
