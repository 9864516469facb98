package helper

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms_backend/internals/configs"
)

func withSecret(t *testing.T, secret string, ttl time.Duration) {
	t.Helper()
	prevSecret, prevTTL := configs.JWTSecret, configs.JWTTTL
	configs.JWTSecret, configs.JWTTTL = secret, ttl
	t.Cleanup(func() { configs.JWTSecret, configs.JWTTTL = prevSecret, prevTTL })
}

func TestIssueAndParseToken(t *testing.T) {
	withSecret(t, "unit-secret", time.Hour)
	id := uuid.New()

	tok, err := IssueToken(id, "teacher", "Admin Teacher")
	require.NoError(t, err)

	sess, err := ParseToken(tok)
	require.NoError(t, err)
	assert.Equal(t, id, sess.UserID)
	assert.Equal(t, "teacher", sess.Role)
	assert.Equal(t, "Admin Teacher", sess.Name)
	assert.True(t, sess.IsTeacher())
}

func TestParseToken_Rejects(t *testing.T) {
	withSecret(t, "unit-secret", time.Hour)
	tok, err := IssueToken(uuid.New(), "student", "S")
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		configs.JWTSecret = "other-secret"
		defer func() { configs.JWTSecret = "unit-secret" }()
		_, err := ParseToken(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		past := time.Now().Add(-2 * time.Hour)
		claims := Claims{
			ID:   uuid.NewString(),
			Role: "student",
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(past),
				ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
			},
		}
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("unit-secret"))
		require.NoError(t, err)
		_, err = ParseToken(expired)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing secret", func(t *testing.T) {
		configs.JWTSecret = ""
		defer func() { configs.JWTSecret = "unit-secret" }()
		_, err := ParseToken(tok)
		assert.ErrorIs(t, err, ErrMissingSecret)
	})
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("123456")
	require.NoError(t, err)
	assert.NotEqual(t, "123456", hash)
	assert.True(t, CheckPassword(hash, "123456"))
	assert.False(t, CheckPassword(hash, "1234567"))
	BurnPasswordCheck("anything")
}

func TestExtractBearerToken(t *testing.T) {
	tests := map[string]string{
		"":             "",
		"Bearer abc":   "abc",
		"bearer  abc ": "abc",
		"abc":          "abc",
		"Basic a b":    "",
	}
	for header, want := range tests {
		app := fiber.New()
		var got string
		app.Get("/", func(c *fiber.Ctx) error {
			got = ExtractBearerToken(c)
			return nil
		})
		req := httptest.NewRequest("GET", "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		_, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, want, got, header)
	}
}
