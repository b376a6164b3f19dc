package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Storage   StorageConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Catalog   CatalogConfig
	Scheduler SchedulerConfig
	Admin     AdminConfig
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
	LoginPath   string // where page navigations are sent when the admin session is missing
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	AccessSecret       string
	RefreshSecret      string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

// StorageConfig points the upload relay at an S3 compatible bucket.
type StorageConfig struct {
	Driver          string // s3 or memory
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // optional, for S3 compatible providers
	BaseURL         string // CDN or custom domain in front of the bucket
	Folder          string
	MaxUploadSize   int64
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	ContactPerHour int
	LoginPerMinute int
}

type CatalogConfig struct {
	// FallbackPartnershipCategoryID receives the partnerships of a deleted partnership category.
	FallbackPartnershipCategoryID uint
}

type SchedulerConfig struct {
	ContactDigestCron string
}

type AdminConfig struct {
	Email    string
	Password string
	Name     string
}

var (
	ErrMissingSecret = errors.New("token signing secret is not configured")
	ErrInvalidID     = errors.New("must be a positive integer id")
)

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	env := getEnv("ENVIRONMENT", "development")

	jwtCfg, err := loadJWT(env)
	if err != nil {
		return nil, err
	}

	fallbackID, err := parseID(getEnv("CATALOG_FALLBACK_PARTNERSHIP_CATEGORY_ID", "1"))
	if err != nil {
		return nil, fmt.Errorf("CATALOG_FALLBACK_PARTNERSHIP_CATEGORY_ID: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: env,
			LoginPath:   getEnv("ADMIN_LOGIN_PATH", "/login"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "admin"),
			Password: getEnv("DB_PASSWORD", "1234"),
			DBName:   getEnv("DB_NAME", "brandsite"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: jwtCfg,
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Storage: StorageConfig{
			Driver:          getEnv("STORAGE_DRIVER", "s3"),
			Region:          getEnv("STORAGE_REGION", "ap-northeast-2"),
			Bucket:          getEnv("STORAGE_BUCKET", "brandsite-uploads"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("STORAGE_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("STORAGE_ENDPOINT", ""),
			BaseURL:         strings.TrimRight(getEnv("STORAGE_BASE_URL", ""), "/"),
			Folder:          getEnv("STORAGE_FOLDER", "brandsite"),
			MaxUploadSize:   parseInt64(getEnv("STORAGE_MAX_UPLOAD_BYTES", "5242880"), 5<<20),
		},
		Redis: RedisConfig{
			Enabled:  parseBool(getEnv("REDIS_ENABLED", "false")),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       int(parseInt64(getEnv("REDIS_DB", "0"), 0)),
		},
		RateLimit: RateLimitConfig{
			ContactPerHour: int(parseInt64(getEnv("RATE_LIMIT_CONTACT_PER_HOUR", "5"), 5)),
			LoginPerMinute: int(parseInt64(getEnv("RATE_LIMIT_LOGIN_PER_MINUTE", "10"), 10)),
		},
		Catalog: CatalogConfig{
			FallbackPartnershipCategoryID: fallbackID,
		},
		Scheduler: SchedulerConfig{
			ContactDigestCron: getEnv("CONTACT_DIGEST_CRON", "0 9 * * *"),
		},
		Admin: AdminConfig{
			Email:    getEnv("ADMIN_EMAIL", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
			Name:     getEnv("ADMIN_NAME", "Administrator"),
		},
	}

	return config, nil
}

// loadJWT resolves the signing secrets. NEXTAUTH_SECRET stands in for JWT_SECRET
// when only the former is set. Development gets throwaway secrets instead of a
// hardcoded default; every other environment must configure both.
func loadJWT(env string) (JWTConfig, error) {
	access := getEnv("JWT_SECRET", os.Getenv("NEXTAUTH_SECRET"))
	refresh := getEnv("REFRESH_SECRET", "")

	if access == "" || refresh == "" {
		if env != "development" {
			return JWTConfig{}, fmt.Errorf("%w: set JWT_SECRET and REFRESH_SECRET", ErrMissingSecret)
		}
		log.Println("JWT_SECRET or REFRESH_SECRET missing, generating ephemeral development secrets")
		if access == "" {
			access = randomSecret()
		}
		if refresh == "" {
			refresh = randomSecret()
		}
	}

	return JWTConfig{
		AccessSecret:       access,
		RefreshSecret:      refresh,
		AccessTokenExpiry:  parseDuration(getEnv("JWT_ACCESS_TOKEN_EXPIRY", "15m"), 15*time.Minute),
		RefreshTokenExpiry: parseDuration(getEnv("JWT_REFRESH_TOKEN_EXPIRY", "168h"), 7*24*time.Hour),
	}, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("failed to generate secret: %v", err))
	}
	return hex.EncodeToString(buf)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseInt64(s string, fallback int64) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		log.Printf("Invalid integer %s, using default %d", s, fallback)
		return fallback
	}
	return v
}

// parseID accepts a positive row id that fits in uint.
func parseID(s string) (uint, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, strconv.IntSize)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return uint(v), nil
}

func parseBool(s string) bool {
	v, err := strconv.ParseBool(s)
	return err == nil && v
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
