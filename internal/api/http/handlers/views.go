package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/flash"
)

// Notices records and drains the one-shot messages shown on the next view.
type Notices interface {
	Push(c *fiber.Ctx, kind flash.Kind, text string)
	Pop(c *fiber.Ctx) []flash.Message
}

// render writes a view model together with any pending notices.
func render(c *fiber.Ctx, notices Notices, view string, data any) error {
	return c.JSON(fiber.Map{
		"view":    view,
		"data":    data,
		"notices": notices.Pop(c),
	})
}

// redirectWith records a notice and redirects.
func redirectWith(c *fiber.Ctx, notices Notices, kind flash.Kind, text, location string) error {
	notices.Push(c, kind, text)
	return c.Redirect(location, fiber.StatusFound)
}

// HomeHandler serves the landing page.
type HomeHandler struct {
	notices Notices
}

// NewHomeHandler constructs handler.
func NewHomeHandler(notices Notices) *HomeHandler {
	return &HomeHandler{notices: notices}
}

// Index GET /.
func (h *HomeHandler) Index(c *fiber.Ctx) error {
	var identity *dto.IdentitySummary
	if user, ok := auth.IdentityFromContext(c); ok {
		identity = &dto.IdentitySummary{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}
	}
	return render(c, h.notices, "index", fiber.Map{"user": identity})
}
