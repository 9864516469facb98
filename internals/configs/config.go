package configs

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	Conf *viper.Viper

	Port             string
	JWTSecret        string
	JWTTTL           time.Duration
	UploadDir        string
	UploadPublicPath string
	MaxUploadMB      int
	StorageDriver    string
	CorsAllowOrigins string

	RateLimitPerMinute int
	TrustedProxies     []string

	DefaultTeacherUsername string
	DefaultTeacherPassword string
	DefaultTeacherName     string
)

func init() {
	Conf = newViper()
	apply()
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("[INFO] .env not found, using system environment")
		} else {
			log.Println("[INFO] .env loaded")
		}
	} else {
		log.Println("[INFO] Running in Railway, using system environment")
	}

	Conf = newViper()
	apply()

	if JWTSecret == "" {
		log.Println("[ERROR] JWT_SECRET is not set")
	} else {
		log.Println("[INFO] JWT_SECRET loaded")
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetDefault("PORT", "5000")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", 24*time.Hour)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "lms")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("UPLOAD_PUBLIC_PATH", "/uploads")
	v.SetDefault("MAX_UPLOAD_MB", 20)
	v.SetDefault("STORAGE_DRIVER", "local")
	v.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:5173")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 300)
	v.SetDefault("TRUSTED_PROXIES", "")
	v.SetDefault("ALI_OSS_ENDPOINT", "")
	v.SetDefault("ALI_OSS_ACCESS_KEY_ID", "")
	v.SetDefault("ALI_OSS_ACCESS_KEY_SECRET", "")
	v.SetDefault("ALI_OSS_BUCKET", "")
	v.SetDefault("ALI_OSS_PUBLIC_BASE", "")
	v.SetDefault("ALI_OSS_PREFIX", "uploads/")
	v.SetDefault("DEFAULT_TEACHER_USERNAME", "admin")
	v.SetDefault("DEFAULT_TEACHER_PASSWORD", "123456")
	v.SetDefault("DEFAULT_TEACHER_NAME", "Admin Teacher")
	v.AutomaticEnv()
	return v
}

func apply() {
	Port = Conf.GetString("PORT")
	JWTSecret = strings.TrimSpace(Conf.GetString("JWT_SECRET"))
	JWTTTL = Conf.GetDuration("JWT_TTL")
	UploadDir = Conf.GetString("UPLOAD_DIR")
	UploadPublicPath = "/" + strings.Trim(Conf.GetString("UPLOAD_PUBLIC_PATH"), "/")
	MaxUploadMB = Conf.GetInt("MAX_UPLOAD_MB")
	StorageDriver = strings.ToLower(Conf.GetString("STORAGE_DRIVER"))
	CorsAllowOrigins = Conf.GetString("CORS_ALLOW_ORIGINS")
	RateLimitPerMinute = Conf.GetInt("RATE_LIMIT_PER_MINUTE")
	TrustedProxies = splitList(Conf.GetString("TRUSTED_PROXIES"))
	DefaultTeacherUsername = Conf.GetString("DEFAULT_TEACHER_USERNAME")
	DefaultTeacherPassword = Conf.GetString("DEFAULT_TEACHER_PASSWORD")
	DefaultTeacherName = Conf.GetString("DEFAULT_TEACHER_NAME")
}

// splitList reads a comma separated env value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func GetEnv(key string, defaultValue ...string) string {
	if Conf != nil && Conf.IsSet(key) {
		if v := Conf.GetString(key); v != "" {
			return v
		}
	}
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// DSN prefers DATABASE_URL, otherwise builds one from the DB_* keys.
func DSN() string {
	if url := strings.TrimSpace(Conf.GetString("DATABASE_URL")); url != "" {
		return url
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=lms&options=-c statement_timeout=3000",
		Conf.GetString("DB_USER"),
		Conf.GetString("DB_PASSWORD"),
		Conf.GetString("DB_HOST"),
		Conf.GetString("DB_PORT"),
		Conf.GetString("DB_NAME"),
		Conf.GetString("DB_SSLMODE"),
	)
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	cp := *l
	cp.LogLevel = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && l.LogLevel >= gormLogger.Error:
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
