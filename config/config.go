package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// MinDefaultAdminPasswordLength is the minimum accepted length for the bootstrap password in production
	MinDefaultAdminPasswordLength = 8
	// insecureDefaultAdminPassword is the development fallback for the bootstrap account
	insecureDefaultAdminPassword = "admin123"
)

// Storage backends
const (
	StorageBackendLocal = "local"
	StorageBackendS3    = "s3"
)

type Config struct {
	Environment string
	DBPath      string
	// Optional libsql remote (Turso) used instead of DBPath when set
	TursoDatabaseURL string
	TursoAuthToken   string

	// Document storage
	DocumentsDir    string
	MaxUploadSizeMB int64
	StorageBackend  string
	S3Bucket        string
	S3Region        string
	S3Endpoint      string
	S3AccessKeyID   string
	S3SecretKey     string

	// Local API
	ServerPort string
	SessionTTL time.Duration

	// Logging
	LogLevel  string
	LogFormat string

	// Bootstrap account
	DefaultAdminUsername string
	DefaultAdminPassword string

	// Email (Resend)
	ResendAPIKey  string
	EmailFrom     string
	EmailTestMode bool // When true, reminder emails are logged instead of sent

	// Headless Chrome for PDF reports
	ChromePath string
}

// Load reads configuration from a .env file (if present) and the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Environment:          v.GetString("ENVIRONMENT"),
		DBPath:               v.GetString("DB_PATH"),
		TursoDatabaseURL:     v.GetString("TURSO_DATABASE_URL"),
		TursoAuthToken:       v.GetString("TURSO_AUTH_TOKEN"),
		DocumentsDir:         v.GetString("DOCUMENTS_DIR"),
		MaxUploadSizeMB:      v.GetInt64("MAX_UPLOAD_SIZE_MB"),
		StorageBackend:       strings.ToLower(v.GetString("STORAGE_BACKEND")),
		S3Bucket:             v.GetString("S3_BUCKET"),
		S3Region:             v.GetString("S3_REGION"),
		S3Endpoint:           v.GetString("S3_ENDPOINT"),
		S3AccessKeyID:        v.GetString("S3_ACCESS_KEY_ID"),
		S3SecretKey:          v.GetString("S3_SECRET_ACCESS_KEY"),
		ServerPort:           v.GetString("SERVER_PORT"),
		SessionTTL:           v.GetDuration("SESSION_TTL"),
		LogLevel:             v.GetString("LOG_LEVEL"),
		LogFormat:            v.GetString("LOG_FORMAT"),
		DefaultAdminUsername: v.GetString("DEFAULT_ADMIN_USERNAME"),
		DefaultAdminPassword: v.GetString("DEFAULT_ADMIN_PASSWORD"),
		ResendAPIKey:         v.GetString("RESEND_API_KEY"),
		EmailFrom:            v.GetString("EMAIL_FROM"),
		EmailTestMode:        v.GetBool("EMAIL_TEST_MODE"),
		ChromePath:           v.GetString("CHROME_PATH"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("DB_PATH", "data/lexdesk.db")
	v.SetDefault("DOCUMENTS_DIR", "documentos")
	v.SetDefault("MAX_UPLOAD_SIZE_MB", 10)
	v.SetDefault("STORAGE_BACKEND", StorageBackendLocal)
	v.SetDefault("S3_REGION", "auto")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SESSION_TTL", "12h")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("DEFAULT_ADMIN_USERNAME", "admin")
	v.SetDefault("DEFAULT_ADMIN_PASSWORD", insecureDefaultAdminPassword)
	v.SetDefault("EMAIL_TEST_MODE", true)
}

// IsProduction reports whether the production environment is configured
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// MaxUploadSize returns the document size limit in bytes
func (c *Config) MaxUploadSize() int64 {
	return c.MaxUploadSizeMB * 1024 * 1024
}

// Validate checks settings that would otherwise fail later in a confusing way
func (c *Config) Validate() error {
	if c.DBPath == "" && c.TursoDatabaseURL == "" {
		return fmt.Errorf("either DB_PATH or TURSO_DATABASE_URL must be set")
	}
	if c.MaxUploadSizeMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE_MB must be positive (got %d)", c.MaxUploadSizeMB)
	}
	switch c.StorageBackend {
	case StorageBackendLocal:
	case StorageBackendS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when STORAGE_BACKEND=s3")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.IsProduction() {
		if c.DefaultAdminPassword == insecureDefaultAdminPassword || len(c.DefaultAdminPassword) < MinDefaultAdminPasswordLength {
			return fmt.Errorf("DEFAULT_ADMIN_PASSWORD must be changed in production (min %d characters)", MinDefaultAdminPasswordLength)
		}
	}
	return nil
}
