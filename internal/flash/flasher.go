package flash

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const clientKey = "flash_client"

// Flasher binds a Store to fiber requests through a client id cookie.
type Flasher struct {
	store      Store
	cookieName string
	secure     bool
	logger     *zap.Logger
}

// NewFlasher constructs a Flasher.
func NewFlasher(store Store, cookieName string, secure bool, logger *zap.Logger) *Flasher {
	if cookieName == "" {
		cookieName = "complaint_client"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Flasher{store: store, cookieName: cookieName, secure: secure, logger: logger}
}

// Middleware assigns every browser a stable client id.
func (f *Flasher) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		clientID := c.Cookies(f.cookieName)
		if _, err := uuid.Parse(clientID); err != nil {
			clientID = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     f.cookieName,
				Value:    clientID,
				Path:     "/",
				Expires:  time.Now().Add(365 * 24 * time.Hour),
				HTTPOnly: true,
				Secure:   f.secure,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Locals(clientKey, clientID)
		return c.Next()
	}
}

// Push records a notice for the current client. Failures are logged.
func (f *Flasher) Push(c *fiber.Ctx, kind Kind, text string) {
	clientID, ok := c.Locals(clientKey).(string)
	if !ok || clientID == "" {
		f.logger.Warn("notice dropped: no flash client", zap.String("path", c.Path()), zap.String("text", text))
		return
	}
	if err := f.store.Add(c.UserContext(), clientID, Message{Kind: kind, Text: text}); err != nil {
		f.logger.Error("record notice", zap.Error(err), zap.String("text", text))
	}
}

// Pop drains the current client's notices. Failures are logged and yield none.
func (f *Flasher) Pop(c *fiber.Ctx) []Message {
	clientID, ok := c.Locals(clientKey).(string)
	if !ok || clientID == "" {
		return []Message{}
	}
	messages, err := f.store.Pop(c.UserContext(), clientID)
	if err != nil {
		f.logger.Error("read notices", zap.Error(err))
		return []Message{}
	}
	return messages
}
