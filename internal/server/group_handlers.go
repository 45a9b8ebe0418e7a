package server

import (
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// NewGroupForm handles GET /group/create/.
func (s *Server) NewGroupForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"form": fiber.Map{"title": "", "slug": "", "description": ""},
	})
}

// CreateGroup handles POST /group/create/. On success the caller lands on the
// new group's feed.
func (s *Server) CreateGroup(c *fiber.Ctx) error {
	ctx := c.UserContext()

	group, err := s.groupService.CreateGroup(ctx, service.CreateGroupInput{
		ActorID:     actorID(c),
		Title:       c.FormValue("title"),
		Slug:        c.FormValue("slug"),
		Description: c.FormValue("description"),
	})
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Redirect("/group/"+group.Slug+"/", fiber.StatusFound)
}
