package helper

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"lms_backend/internals/configs"
)

var (
	ErrMissingSecret = errors.New("JWT_SECRET is not set")
	ErrInvalidToken  = errors.New("invalid token")
)

// Claims carried by the bearer token.
type Claims struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	Name string `json:"name"`
	jwt.RegisteredClaims
}

func secret() ([]byte, error) {
	s := strings.TrimSpace(configs.JWTSecret)
	if s == "" {
		return nil, ErrMissingSecret
	}
	return []byte(s), nil
}

func ttl() time.Duration {
	if configs.JWTTTL > 0 {
		return configs.JWTTTL
	}
	return 24 * time.Hour
}

// IssueToken signs an HS256 token for the given identity.
func IssueToken(userID uuid.UUID, role, name string) (string, error) {
	key, err := secret()
	if err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	now := time.Now().UTC()
	claims := Claims{
		ID:   userID.String(),
		Role: role,
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl())),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return signed, nil
}

// ParseToken validates signature and expiry and returns the session.
func ParseToken(raw string) (*Session, error) {
	key, err := secret()
	if err != nil {
		return nil, err
	}
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return key, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	id, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return &Session{UserID: id, Role: claims.Role, Name: claims.Name}, nil
}

// ExtractBearerToken reads "Authorization: Bearer <token>". A bare token
// without the scheme is accepted too.
func ExtractBearerToken(c *fiber.Ctx) string {
	h := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if h == "" {
		return ""
	}
	const p = "bearer "
	if len(h) > len(p) && strings.EqualFold(h[:len(p)], p) {
		return strings.TrimSpace(h[len(p):])
	}
	if strings.Contains(h, " ") {
		return ""
	}
	return h
}
