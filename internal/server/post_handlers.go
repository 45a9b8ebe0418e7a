package server

import (
	"fmt"

	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// PostDetail handles GET /posts/:id/. It renders the post with its comments.
func (s *Server) PostDetail(c *fiber.Ctx) error {
	ctx := c.UserContext()
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(ctx, postID)
	if err != nil {
		return s.respondError(c, err)
	}
	comments, err := s.commentService.ListComments(ctx, postID)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"post":     post,
		"comments": comments,
	})
}

// NewPostForm handles GET /create/. It renders the empty post form with the
// groups available for the select.
func (s *Server) NewPostForm(c *fiber.Ctx) error {
	groups, err := s.groupService.ListGroups(c.UserContext())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"form":   fiber.Map{"text": "", "group": nil},
		"groups": groups,
	})
}

// CreatePost handles POST /create/. On success the author lands on their
// profile page.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()

	groupID, err := optionalGroupID(c)
	if err != nil {
		return s.respondError(c, err)
	}
	image, err := s.saveUpload(c, "image")
	if err != nil {
		return s.respondError(c, err)
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		ActorID: actorID(c),
		Text:    c.FormValue("text"),
		GroupID: groupID,
		Image:   image,
	})
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Redirect("/profile/"+post.User.Username+"/", fiber.StatusFound)
}

// EditPostForm handles GET /posts/:id/edit/. Only the author sees the form;
// anyone else is sent to the post page.
func (s *Server) EditPostForm(c *fiber.Ctx) error {
	ctx := c.UserContext()
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(ctx, postID)
	if err != nil {
		return s.respondError(c, err)
	}
	if post.UserID != actorID(c) {
		return c.Redirect(fmt.Sprintf("/posts/%d/", post.ID), fiber.StatusFound)
	}

	groups, err := s.groupService.ListGroups(ctx)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"form":   fiber.Map{"text": post.Text, "group": post.GroupID},
		"groups": groups,
		"post":   post,
	})
}

// EditPost handles POST /posts/:id/edit/. On success the author lands back on
// the post page. A non-author never reaches the service mutation.
func (s *Server) EditPost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	groupID, err := optionalGroupID(c)
	if err != nil {
		return s.respondError(c, err)
	}
	image, err := s.saveUpload(c, "image")
	if err != nil {
		return s.respondError(c, err)
	}

	post, err := s.postService.UpdatePost(ctx, service.UpdatePostInput{
		ActorID: actorID(c),
		PostID:  postID,
		Text:    c.FormValue("text"),
		GroupID: groupID,
		Image:   image,
	})
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Redirect(fmt.Sprintf("/posts/%d/", post.ID), fiber.StatusFound)
}

// DeletePost handles POST /posts/:id/delete/. The author is sent back to
// their profile afterwards.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(ctx, actorID(c), postID); err != nil {
		return s.respondError(c, err)
	}

	author, err := s.userRepo.GetByID(ctx, actorID(c))
	if err != nil {
		// The post is gone; a missing author row only changes where we land.
		return c.Redirect("/", fiber.StatusFound)
	}
	return c.Redirect("/profile/"+author.Username+"/", fiber.StatusFound)
}
