package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenManager signs session references into cookie values and validates them.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// SessionClaims is the signed cookie payload. Subject holds the serialized
// identity and nothing else about the user.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// Issue signs a session for the serialized identity.
func (tm *TokenManager) Issue(subject string) (string, *SessionClaims, error) {
	issuedAt := tm.now()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(tm.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// Parse validates signature and expiry and returns the claims.
func (tm *TokenManager) Parse(tokenStr string) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(tm.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid || claims.Subject == "" || claims.ID == "" {
		return nil, errors.New("invalid session claims")
	}
	return claims, nil
}

// TTL returns the lifetime of issued sessions.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}
