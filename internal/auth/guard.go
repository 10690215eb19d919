package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/flash"
)

// Decision is the outcome of an access check.
type Decision int

const (
	Proceed Decision = iota
	RejectUnauthenticated
	RejectForbidden
)

// Decide is the access rule shared by every guarded route.
func Decide(identity *domain.User, requireAdmin bool) Decision {
	if identity == nil {
		return RejectUnauthenticated
	}
	if requireAdmin && identity.Role != domain.RoleAdmin {
		return RejectForbidden
	}
	return Proceed
}

// Guard notices and redirect targets.
const (
	LoginPath          = "/auth/login"
	RootPath           = "/"
	NoticeLoginFirst   = "Please log in first"
	NoticeUnauthorized = "You are not authorized to view this page"
)

// Notifier records a user-visible notice for the next rendered view.
type Notifier interface {
	Push(c *fiber.Ctx, kind flash.Kind, text string)
}

// RejectionRecorder counts guard rejections.
type RejectionRecorder interface {
	RecordGuardRejection(guard string)
}

// Guard builds the route guards. A rejected request is redirected with a
// notice and never reaches the handler.
type Guard struct {
	notices    Notifier
	rejections RejectionRecorder
}

// NewGuard constructs a Guard. rejections may be nil.
func NewGuard(notices Notifier, rejections RejectionRecorder) *Guard {
	return &Guard{notices: notices, rejections: rejections}
}

// RequireAuthenticated passes requests carrying an identity and sends the rest to the login page.
func (g *Guard) RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, _ := IdentityFromContext(c)
		if Decide(identity, false) == Proceed {
			return c.Next()
		}
		return g.reject(c, "authenticated", NoticeLoginFirst, LoginPath)
	}
}

// RequireAdmin passes administrators only. Requests without any identity are
// rejected the same way as non-admins.
func (g *Guard) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, _ := IdentityFromContext(c)
		if Decide(identity, true) == Proceed {
			return c.Next()
		}
		return g.reject(c, "admin", NoticeUnauthorized, RootPath)
	}
}

func (g *Guard) reject(c *fiber.Ctx, guard, notice, location string) error {
	if g.rejections != nil {
		g.rejections.RecordGuardRejection(guard)
	}
	if g.notices != nil {
		g.notices.Push(c, flash.KindError, notice)
	}
	return c.Redirect(location, fiber.StatusFound)
}
