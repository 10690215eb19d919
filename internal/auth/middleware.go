package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/domain"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

const (
	identityKey = "auth_identity"
	sessionKey  = "auth_session"
)

// SessionManager issues session cookies and resolves them into identities.
type SessionManager struct {
	tokens     *TokenManager
	resolver   *SessionResolver
	revoked    RevocationList
	cookieName string
	secure     bool
	logger     *zap.Logger
}

// SessionOptions configures a SessionManager.
type SessionOptions struct {
	Tokens     *TokenManager
	Resolver   *SessionResolver
	Revoked    RevocationList
	CookieName string
	Secure     bool
	Logger     *zap.Logger
}

// NewSessionManager constructs a SessionManager.
func NewSessionManager(opts SessionOptions) *SessionManager {
	if opts.CookieName == "" {
		opts.CookieName = "complaint_session"
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &SessionManager{
		tokens:     opts.Tokens,
		resolver:   opts.Resolver,
		revoked:    opts.Revoked,
		cookieName: opts.CookieName,
		secure:     opts.Secure,
		logger:     opts.Logger,
	}
}

// Handle attaches the session identity, if any, and always continues.
// Unusable sessions are cleared; deciding whether an identity is required is
// left to the guards.
func (m *SessionManager) Handle(c *fiber.Ctx) error {
	raw := c.Cookies(m.cookieName)
	if raw == "" {
		return c.Next()
	}

	claims, err := m.tokens.Parse(raw)
	if err != nil {
		m.clearCookie(c)
		return c.Next()
	}

	if m.revoked != nil {
		revoked, err := m.revoked.IsRevoked(c.UserContext(), claims.ID)
		if err != nil {
			m.logger.Error("check session revocation", zap.Error(err), zap.String("session_id", claims.ID))
			return c.Next()
		}
		if revoked {
			m.clearCookie(c)
			return c.Next()
		}
	}

	user, err := m.resolver.Deserialize(c.UserContext(), claims.Subject)
	if err != nil {
		if errors.Is(err, ErrSessionSubjectNotFound) {
			m.clearCookie(c)
			return c.Next()
		}
		return apperrors.NewPersistenceError(err)
	}

	c.Locals(identityKey, user)
	c.Locals(sessionKey, claims)
	return c.Next()
}

// Start issues a session for user and sets the cookie.
func (m *SessionManager) Start(c *fiber.Ctx, user *domain.User) error {
	signed, claims, err := m.tokens.Issue(m.resolver.Serialize(user))
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     m.cookieName,
		Value:    signed,
		Path:     "/",
		Expires:  claims.ExpiresAt.Time,
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// End revokes the current session and clears the cookie.
func (m *SessionManager) End(c *fiber.Ctx) error {
	defer m.clearCookie(c)

	claims, ok := c.Locals(sessionKey).(*SessionClaims)
	if !ok || m.revoked == nil {
		return nil
	}
	if err := m.revoked.Revoke(c.UserContext(), claims.ID, claims.ExpiresAt.Time); err != nil {
		return apperrors.NewPersistenceError(err)
	}
	return nil
}

func (m *SessionManager) clearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// IdentityFromContext returns the authenticated user attached to the request.
func IdentityFromContext(c *fiber.Ctx) (*domain.User, bool) {
	user, ok := c.Locals(identityKey).(*domain.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
