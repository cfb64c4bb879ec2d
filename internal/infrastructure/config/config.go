package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL,    default=24h"`
	CookieTTL time.Duration `env:"COOKIE_TTL, default=24h"`
	ResetTTL  time.Duration `env:"RESET_TTL,  default=10m"`

	Mongo     MongoConfig
	Redis     RedisConfig
	SMTP      SMTPConfig
	Upload    UploadConfig
	RateLimit RateLimitConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=bootcamp_directory"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SMTPConfig struct {
	Host      string `env:"SMTP_HOST, default=localhost"`
	Port      int    `env:"SMTP_PORT, default=25"`
	Username  string `env:"SMTP_USERNAME"`
	Password  string `env:"SMTP_PASSWORD"`
	FromEmail string `env:"FROM_EMAIL, default=noreply@devcamper.io"`
	FromName  string `env:"FROM_NAME,  default=DevCamper"`
}

type UploadConfig struct {
	MaxBytes int64  `env:"MAX_FILE_UPLOAD,  default=1000000"`
	Path     string `env:"FILE_UPLOAD_PATH, default=./public/uploads"`
}

type RateLimitConfig struct {
	Max    int           `env:"RATE_LIMIT_MAX,    default=100"`
	Window time.Duration `env:"RATE_LIMIT_WINDOW, default=10m"`
}

// Production reports whether the service runs in production mode, which
// enables the secure cookie flag and JSON log output.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
