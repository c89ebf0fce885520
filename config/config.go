package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the immutable application configuration. It is built once at
// startup and handed to every component that needs a piece of it.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Queue    QueueConfig
	SMTP     SMTPConfig
	Mail     MailConfig
	Language LanguageConfig
	Auth     AuthConfig
	Upload   UploadConfig
}

type AppConfig struct {
	Name           string
	Version        string
	Env            string
	Host           string
	Port           string
	AllowedOrigins string
	LogDir         string
}

type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

type QueueConfig struct {
	Driver         string
	RedisURL       string
	Name           string
	EmbeddedWorker bool
	// RecoverOnStart requeues jobs left in the processing list when the worker
	// command starts. It assumes that worker is the only consumer of the queue.
	RecoverOnStart bool
	Concurrency    int
	MaxRetries     int
	RetryDelay     time.Duration
	SoftTimeLimit  time.Duration
	HardTimeLimit  time.Duration
	ResultHistory  int
}

type SMTPConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	FromEmail string
	UseTLS    bool
	Timeout   time.Duration
}

// MailConfig holds the fixed notification routing values.
type MailConfig struct {
	DirectorEmail string
	SiteURL       string
}

type LanguageConfig struct {
	Supported []string
	Default   string
}

type AuthConfig struct {
	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string
	JWTSecret         string
	JWTAlgorithm      string
	JWTExpire         time.Duration
}

type UploadConfig struct {
	Dir      string
	MaxBytes int64
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "Travel Agency API")
	v.SetDefault("APP_VERSION", "1.0.0")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_HOST", "")
	v.SetDefault("APP_PORT", "8000")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("LOG_DIR", "log/app")

	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_DATABASE", "travel_db")
	v.SetDefault("DB_USERNAME", "travel_user")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("QUEUE_DRIVER", "redis")
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("QUEUE_NAME", "travel_agency:notifications")
	v.SetDefault("QUEUE_EMBEDDED_WORKER", false)
	v.SetDefault("QUEUE_RECOVER_ON_START", true)
	v.SetDefault("JOB_CONCURRENCY", 4)
	v.SetDefault("JOB_MAX_RETRIES", 3)
	v.SetDefault("JOB_RETRY_DELAY", "60s")
	v.SetDefault("JOB_SOFT_TIME_LIMIT", "60s")
	v.SetDefault("JOB_HARD_TIME_LIMIT", "120s")
	v.SetDefault("JOB_RESULT_HISTORY", 1000)

	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_FROM_EMAIL", "noreply@travelagency.com")
	v.SetDefault("SMTP_USE_TLS", true)
	v.SetDefault("SMTP_TIMEOUT", "30s")

	v.SetDefault("DIRECTOR_EMAIL", "director@travelagency.com")
	v.SetDefault("SITE_URL", "http://localhost:5173")

	v.SetDefault("SUPPORTED_LANGUAGES", "ru,en,fr")
	v.SetDefault("DEFAULT_LANGUAGE", "en")

	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("ADMIN_PASSWORD_HASH", "")
	v.SetDefault("JWT_SECRET_KEY", "")
	v.SetDefault("JWT_ALGORITHM", "HS256")
	v.SetDefault("JWT_EXPIRE_MINUTES", 480)

	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("UPLOAD_MAX_BYTES", 10*1024*1024)
}

// Load reads an optional .env file and the process environment.
func Load() (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:           v.GetString("APP_NAME"),
			Version:        v.GetString("APP_VERSION"),
			Env:            v.GetString("APP_ENV"),
			Host:           v.GetString("APP_HOST"),
			Port:           v.GetString("APP_PORT"),
			AllowedOrigins: v.GetString("ALLOWED_ORIGINS"),
			LogDir:         v.GetString("LOG_DIR"),
		},
		Database: DatabaseConfig{
			URL:      v.GetString("DATABASE_URL"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_DATABASE"),
			User:     v.GetString("DB_USERNAME"),
			Password: v.GetString("DB_PASSWORD"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Queue: QueueConfig{
			Driver:         strings.ToLower(v.GetString("QUEUE_DRIVER")),
			RedisURL:       v.GetString("REDIS_URL"),
			Name:           v.GetString("QUEUE_NAME"),
			EmbeddedWorker: v.GetBool("QUEUE_EMBEDDED_WORKER"),
			RecoverOnStart: v.GetBool("QUEUE_RECOVER_ON_START"),
			Concurrency:    v.GetInt("JOB_CONCURRENCY"),
			MaxRetries:     v.GetInt("JOB_MAX_RETRIES"),
			RetryDelay:     v.GetDuration("JOB_RETRY_DELAY"),
			SoftTimeLimit:  v.GetDuration("JOB_SOFT_TIME_LIMIT"),
			HardTimeLimit:  v.GetDuration("JOB_HARD_TIME_LIMIT"),
			ResultHistory:  v.GetInt("JOB_RESULT_HISTORY"),
		},
		SMTP: SMTPConfig{
			Host:      v.GetString("SMTP_HOST"),
			Port:      v.GetInt("SMTP_PORT"),
			User:      v.GetString("SMTP_USER"),
			Password:  v.GetString("SMTP_PASSWORD"),
			FromEmail: v.GetString("SMTP_FROM_EMAIL"),
			UseTLS:    v.GetBool("SMTP_USE_TLS"),
			Timeout:   v.GetDuration("SMTP_TIMEOUT"),
		},
		Mail: MailConfig{
			DirectorEmail: v.GetString("DIRECTOR_EMAIL"),
			SiteURL:       strings.TrimRight(v.GetString("SITE_URL"), "/"),
		},
		Language: LanguageConfig{
			Supported: splitList(v.GetString("SUPPORTED_LANGUAGES")),
			Default:   strings.ToLower(strings.TrimSpace(v.GetString("DEFAULT_LANGUAGE"))),
		},
		Auth: AuthConfig{
			AdminUsername:     v.GetString("ADMIN_USERNAME"),
			AdminPassword:     v.GetString("ADMIN_PASSWORD"),
			AdminPasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
			JWTSecret:         v.GetString("JWT_SECRET_KEY"),
			JWTAlgorithm:      strings.ToUpper(v.GetString("JWT_ALGORITHM")),
			JWTExpire:         time.Duration(v.GetInt("JWT_EXPIRE_MINUTES")) * time.Minute,
		},
		Upload: UploadConfig{
			Dir:      v.GetString("UPLOAD_DIR"),
			MaxBytes: v.GetInt64("UPLOAD_MAX_BYTES"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.Language.Supported) == 0 {
		return fmt.Errorf("SUPPORTED_LANGUAGES must list at least one language")
	}
	if !c.Language.IsSupported(c.Language.Default) {
		return fmt.Errorf("DEFAULT_LANGUAGE %q is not in SUPPORTED_LANGUAGES", c.Language.Default)
	}
	switch c.Auth.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("JWT_ALGORITHM %q is not supported", c.Auth.JWTAlgorithm)
	}
	if c.Auth.JWTSecret == "" {
		if c.IsProduction() {
			return fmt.Errorf("JWT_SECRET_KEY is required in production")
		}
		c.Auth.JWTSecret = "travel-agency-development-secret"
	}
	if c.Auth.JWTExpire <= 0 {
		return fmt.Errorf("JWT_EXPIRE_MINUTES must be positive")
	}
	switch c.Queue.Driver {
	case "redis", "memory":
	default:
		return fmt.Errorf("QUEUE_DRIVER %q is not supported", c.Queue.Driver)
	}
	if c.Queue.Concurrency < 1 {
		return fmt.Errorf("JOB_CONCURRENCY must be at least 1")
	}
	if c.Queue.MaxRetries < 0 {
		return fmt.Errorf("JOB_MAX_RETRIES must not be negative")
	}
	if c.Queue.HardTimeLimit < c.Queue.SoftTimeLimit {
		return fmt.Errorf("JOB_HARD_TIME_LIMIT must be >= JOB_SOFT_TIME_LIMIT")
	}
	if c.Mail.DirectorEmail == "" {
		return fmt.Errorf("DIRECTOR_EMAIL is required")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// DSN returns DATABASE_URL when set, otherwise a key/value DSN built from the DB_* variables.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

func (l LanguageConfig) IsSupported(code string) bool {
	for _, s := range l.Supported {
		if s == code {
			return true
		}
	}
	return false
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
