package server

import (
	"fmt"

	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AddComment handles POST /posts/:id/comment/. The commenter is sent back to
// the post page where the new comment appears.
func (s *Server) AddComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	_, err = s.commentService.AddComment(ctx, service.AddCommentInput{
		ActorID: actorID(c),
		PostID:  postID,
		Text:    c.FormValue("text"),
	})
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Redirect(fmt.Sprintf("/posts/%d/", postID), fiber.StatusFound)
}
