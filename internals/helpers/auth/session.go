package helper

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const LocSession = "session"

type sessionKey struct{}

// Session is the authenticated caller, set by the auth guard.
type Session struct {
	UserID uuid.UUID
	Role   string
	Name   string
}

func (s *Session) IsTeacher() bool { return s != nil && s.Role == "teacher" }

func (s *Session) HasRole(roles ...string) bool {
	if s == nil {
		return false
	}
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}

// SetSession stores the session in Locals and in the user context.
func SetSession(c *fiber.Ctx, s *Session) {
	c.Locals(LocSession, s)
	c.SetUserContext(WithSession(c.UserContext(), s))
}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok && s != nil
}

// SessionFrom returns the caller or a 401.
func SessionFrom(c *fiber.Ctx) (*Session, error) {
	if s, ok := c.Locals(LocSession).(*Session); ok && s != nil {
		return s, nil
	}
	if s, ok := SessionFromContext(c.UserContext()); ok {
		return s, nil
	}
	return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
}
