package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/flash"
	"github.com/spec-kit/complaint-service/internal/service"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

const (
	registerPath = "/auth/register"
	homePath     = "/"
)

// AuthHandler exposes sign-in, sign-up and sign-out.
type AuthHandler struct {
	auth     *service.AuthService
	sessions *auth.SessionManager
	notices  Notices
	logger   *zap.Logger
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, sessions *auth.SessionManager, notices Notices, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: authService, sessions: sessions, notices: notices, logger: logger}
}

// LoginForm GET /auth/login.
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, h.notices, "login", fiber.Map{
		"fields": []dto.FormField{
			{Name: "email", Label: "Email", Required: true},
			{Name: "password", Label: "Password", Required: true},
		},
	})
}

// RegisterForm GET /auth/register.
func (h *AuthHandler) RegisterForm(c *fiber.Ctx) error {
	return render(c, h.notices, "register", fiber.Map{
		"fields": []dto.FormField{
			{Name: "name", Label: "Name", Required: true},
			{Name: "email", Label: "Email", Required: true},
			{Name: "password", Label: "Password", Required: true},
		},
	})
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return redirectWith(c, h.notices, flash.KindError, "Missing credentials", auth.LoginPath)
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return redirectWith(c, h.notices, flash.KindError, "Missing credentials", auth.LoginPath)
	}

	user, rejection, err := h.auth.Authenticate(c.UserContext(), email, req.Password)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if rejection != "" {
		return redirectWith(c, h.notices, flash.KindError, rejection.Notice(), auth.LoginPath)
	}

	if err := h.sessions.Start(c, user); err != nil {
		return err
	}
	h.logger.Info("user signed in", zap.String("user_id", user.ID))
	return c.Redirect(homePath, fiber.StatusFound)
}

// Register POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return redirectWith(c, h.notices, flash.KindError, "Invalid registration form", registerPath)
	}

	user, err := h.auth.Register(c.UserContext(), req.Name, strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		domainErr := apperrors.ToDomainError(err)
		switch domainErr.Code {
		case apperrors.CodeValidation, apperrors.CodeConflict:
			return redirectWith(c, h.notices, flash.KindError, capitalize(domainErr.Message), registerPath)
		}
		h.logger.Error("register user", zap.Error(err))
		return redirectWith(c, h.notices, flash.KindError, "Registration failed", registerPath)
	}

	h.logger.Info("user registered", zap.String("user_id", user.ID))
	return redirectWith(c, h.notices, flash.KindSuccess, "You are now registered and can log in", auth.LoginPath)
}

// Logout POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.End(c); err != nil {
		h.logger.Error("revoke session", zap.Error(err))
	}
	return redirectWith(c, h.notices, flash.KindSuccess, "You have been logged out", auth.LoginPath)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
