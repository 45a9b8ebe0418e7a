// Package server contains the HTTP handlers for the application's endpoints.
package server

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"quill/internal/middleware"
	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 404 response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": fmt.Sprintf("unknown %s", param),
		})
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// redirectToLogin sends the client to the login flow with the originally
// requested path carried in the next parameter.
func (s *Server) redirectToLogin(c *fiber.Ctx) error {
	return c.Redirect(s.config.LoginURL+"?next="+c.Path(), fiber.StatusFound)
}

// respondError maps the application error taxonomy onto responses:
// AUTH_REQUIRED redirects to login with a return path, FORBIDDEN redirects to
// the home feed, NOT_FOUND yields 404, VALIDATION_ERROR re-renders the form
// payload with field errors, everything else is a logged 500.
func (s *Server) respondError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeAuthRequired:
			return s.redirectToLogin(c)
		case models.CodeForbidden:
			return c.Redirect("/", fiber.StatusFound)
		case models.CodeNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": appErr.Message,
			})
		case models.CodeValidation:
			resp := fiber.Map{"error": appErr.Message}
			if len(appErr.Fields) > 0 {
				resp["fields"] = appErr.Fields
			}
			return c.Status(fiber.StatusBadRequest).JSON(resp)
		}
	}

	middleware.Logger.ErrorContext(c.UserContext(), "request error",
		"path", c.Path(), "error", err.Error())
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal error",
	})
}

// saveUpload stores an optional multipart image under the configured upload
// directory with a collision-free name and returns its blob ref. A request
// without an image field returns an empty ref.
func (s *Server) saveUpload(c *fiber.Ctx, field string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", nil
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	name := uuid.NewString() + ext
	dest := filepath.Join(s.config.UploadDir, name)
	if err := c.SaveFile(fh, dest); err != nil {
		return "", models.NewInternalError(err)
	}
	return filepath.ToSlash(filepath.Join(s.config.UploadDir, name)), nil
}

// optionalGroupID parses the optional group form field.
func optionalGroupID(c *fiber.Ctx) (*uint, error) {
	raw := strings.TrimSpace(c.FormValue("group"))
	if raw == "" {
		return nil, nil
	}
	var id uint
	if _, err := fmt.Sscanf(raw, "%d", &id); err != nil || id == 0 {
		return nil, models.NewFieldErrors(map[string]string{"group": "Unknown group"})
	}
	return &id, nil
}
