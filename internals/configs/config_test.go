package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func reload(t *testing.T) {
	t.Helper()
	Conf = newViper()
	apply()
	t.Cleanup(func() {
		Conf = newViper()
		apply()
	})
}

func TestDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("TRUSTED_PROXIES", "")
	t.Setenv("JWT_TTL", "")
	reload(t)

	assert.Equal(t, 24*time.Hour, JWTTTL)
	assert.Equal(t, "/uploads", UploadPublicPath)
	assert.Equal(t, "local", StorageDriver)
	assert.Equal(t, "admin", DefaultTeacherUsername)
	assert.Equal(t, 20, MaxUploadMB)
	assert.Empty(t, TrustedProxies)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_SECRET", "  s3cret  ")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("UPLOAD_PUBLIC_PATH", "files/")
	t.Setenv("STORAGE_DRIVER", "OSS")
	t.Setenv("MAX_UPLOAD_MB", "50")
	t.Setenv("TRUSTED_PROXIES", " 10.0.0.0/8, ,172.16.0.1 ")
	reload(t)

	assert.Equal(t, "8080", Port)
	assert.Equal(t, "s3cret", JWTSecret)
	assert.Equal(t, 2*time.Hour, JWTTTL)
	assert.Equal(t, "/files", UploadPublicPath)
	assert.Equal(t, "oss", StorageDriver)
	assert.Equal(t, 50, MaxUploadMB)
	assert.Equal(t, []string{"10.0.0.0/8", "172.16.0.1"}, TrustedProxies)
}

func TestDSN(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_USER", "lms")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "school")
	reload(t)
	assert.Contains(t, DSN(), "postgres://lms:pw@db.internal:5432/school?sslmode=disable")

	t.Setenv("DATABASE_URL", "postgres://u:p@h/db")
	reload(t)
	assert.Equal(t, "postgres://u:p@h/db", DSN())
}

func TestGetEnv(t *testing.T) {
	assert.Equal(t, "fallback", GetEnv("LMS_NOT_SET_ANYWHERE", "fallback"))
	t.Setenv("LMS_SET_KEY", "v")
	assert.Equal(t, "v", GetEnv("LMS_SET_KEY", "fallback"))
}
