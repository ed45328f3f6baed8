package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	S3     S3Config
	Log    LogConfig
	CORS   CORSConfig
	Render RenderConfig
	Queue  QueueConfig
	Notify NotifyConfig
}

// NotifyConfig holds render failure alert settings.
type NotifyConfig struct {
	Provider    string   `mapstructure:"provider"` // "noop" or "ses"
	Region      string   `mapstructure:"region"`
	FromAddress string   `mapstructure:"from_address"`
	FromName    string   `mapstructure:"from_name"`
	Recipients  []string `mapstructure:"recipients"`
	ItemURLBase string   `mapstructure:"item_url_base"`
}

// RenderConfig holds settings for the accessible rendering pipeline.
type RenderConfig struct {
	IDPrefix         string `mapstructure:"id_prefix"`
	MaxFragmentBytes int    `mapstructure:"max_fragment_bytes"`
	Minify           bool   `mapstructure:"minify"`
	Sanitize         bool   `mapstructure:"sanitize"`
}

// QueueConfig holds render queue worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	MaxAttempts      int `mapstructure:"max_attempts"`
	Concurrency      int `mapstructure:"concurrency"`
	TimeoutSecs      int `mapstructure:"timeout_secs"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret            string        `mapstructure:"secret"`
	AccessTokenExpiry time.Duration `mapstructure:"access_expiry"`
	Issuer            string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SlogLevel maps Level to a slog level, defaulting to info.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load reads configuration from environment variables with the QTIR_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("QTIR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "qtirender")
	v.SetDefault("db.password", "qtirender_secret")
	v.SetDefault("db.name", "qtirender_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "1h")
	v.SetDefault("jwt.issuer", "qtirender")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "qtirender-snapshots")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Render defaults
	v.SetDefault("render.id_prefix", "qti-a11y-")
	v.SetDefault("render.max_fragment_bytes", 512*1024)
	v.SetDefault("render.minify", true)
	v.SetDefault("render.sanitize", true)

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 5)
	v.SetDefault("queue.max_attempts", 3)
	v.SetDefault("queue.concurrency", 4)
	v.SetDefault("queue.timeout_secs", 60)

	// Notify defaults
	v.SetDefault("notify.provider", "noop")
	v.SetDefault("notify.region", "us-east-1")
	v.SetDefault("notify.from_address", "noreply@qtirender.local")
	v.SetDefault("notify.from_name", "QTI Render")
	v.SetDefault("notify.recipients", "")
	v.SetDefault("notify.item_url_base", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":               "QTIR_SERVER_PORT",
		"server.read_timeout":       "QTIR_SERVER_READ_TIMEOUT",
		"server.write_timeout":      "QTIR_SERVER_WRITE_TIMEOUT",
		"server.environment":        "QTIR_SERVER_ENVIRONMENT",
		"db.host":                   "QTIR_DB_HOST",
		"db.port":                   "QTIR_DB_PORT",
		"db.user":                   "QTIR_DB_USER",
		"db.password":               "QTIR_DB_PASSWORD",
		"db.name":                   "QTIR_DB_NAME",
		"db.sslmode":                "QTIR_DB_SSLMODE",
		"db.max_open":               "QTIR_DB_MAX_OPEN",
		"db.max_idle":               "QTIR_DB_MAX_IDLE",
		"jwt.secret":                "QTIR_JWT_SECRET",
		"jwt.access_expiry":         "QTIR_JWT_ACCESS_EXPIRY",
		"jwt.issuer":                "QTIR_JWT_ISSUER",
		"s3.region":                 "QTIR_S3_REGION",
		"s3.bucket":                 "QTIR_S3_BUCKET",
		"s3.endpoint":               "QTIR_S3_ENDPOINT",
		"s3.access_key":             "QTIR_S3_ACCESS_KEY",
		"s3.secret_key":             "QTIR_S3_SECRET_KEY",
		"s3.presign_expiry":         "QTIR_S3_PRESIGN_EXPIRY",
		"log.level":                 "QTIR_LOG_LEVEL",
		"log.format":                "QTIR_LOG_FORMAT",
		"cors.allowed_origins":      "QTIR_CORS_ALLOWED_ORIGINS",
		"render.id_prefix":          "QTIR_RENDER_ID_PREFIX",
		"render.max_fragment_bytes": "QTIR_RENDER_MAX_FRAGMENT_BYTES",
		"render.minify":             "QTIR_RENDER_MINIFY",
		"render.sanitize":           "QTIR_RENDER_SANITIZE",
		"queue.poll_interval_secs":  "QTIR_QUEUE_POLL_INTERVAL_SECS",
		"queue.max_attempts":        "QTIR_QUEUE_MAX_ATTEMPTS",
		"queue.concurrency":         "QTIR_QUEUE_CONCURRENCY",
		"queue.timeout_secs":        "QTIR_QUEUE_TIMEOUT_SECS",
		"notify.provider":           "QTIR_NOTIFY_PROVIDER",
		"notify.region":             "QTIR_NOTIFY_REGION",
		"notify.from_address":       "QTIR_NOTIFY_FROM_ADDRESS",
		"notify.from_name":          "QTIR_NOTIFY_FROM_NAME",
		"notify.recipients":         "QTIR_NOTIFY_RECIPIENTS",
		"notify.item_url_base":      "QTIR_NOTIFY_ITEM_URL_BASE",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if QTIR_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("QTIR_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:            v.GetString("jwt.secret"),
		AccessTokenExpiry: v.GetDuration("jwt.access_expiry"),
		Issuer:            v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Notify = NotifyConfig{
		Provider:    v.GetString("notify.provider"),
		Region:      v.GetString("notify.region"),
		FromAddress: v.GetString("notify.from_address"),
		FromName:    v.GetString("notify.from_name"),
		Recipients:  splitList(v.GetString("notify.recipients")),
		ItemURLBase: v.GetString("notify.item_url_base"),
	}

	cfg.Render = RenderConfig{
		IDPrefix:         v.GetString("render.id_prefix"),
		MaxFragmentBytes: v.GetInt("render.max_fragment_bytes"),
		Minify:           v.GetBool("render.minify"),
		Sanitize:         v.GetBool("render.sanitize"),
	}

	cfg.Queue = QueueConfig{
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		MaxAttempts:      v.GetInt("queue.max_attempts"),
		Concurrency:      v.GetInt("queue.concurrency"),
		TimeoutSecs:      v.GetInt("queue.timeout_secs"),
	}

	if cfg.Queue.Concurrency < 1 {
		return nil, fmt.Errorf("queue.concurrency must be at least 1, got %d", cfg.Queue.Concurrency)
	}
	if cfg.Notify.Provider != "noop" && cfg.Notify.Provider != "ses" {
		return nil, fmt.Errorf("notify.provider must be noop or ses, got %q", cfg.Notify.Provider)
	}
	if cfg.Render.MaxFragmentBytes < 0 {
		return nil, fmt.Errorf("render.max_fragment_bytes must not be negative, got %d", cfg.Render.MaxFragmentBytes)
	}

	return cfg, nil
}

// splitList parses a comma-separated list, dropping blank entries.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
