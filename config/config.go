package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// AppConfig holds environment driven configuration values.
// Sensitive data never has defaults inside code and must be provided via the
// environment (or a local .env file in development).
type AppConfig struct {
	AppPort   string `envconfig:"APP_PORT" default:"8080"`
	GinMode   string `envconfig:"GIN_MODE" default:"release"`
	JWTSecret string `envconfig:"JWT_SECRET"`

	DatabaseURI string `envconfig:"DATABASE_URI"`
	DBHost      string `envconfig:"DB_HOST" default:"127.0.0.1"`
	DBPort      string `envconfig:"DB_PORT" default:"3306"`
	DBUser      string `envconfig:"DB_USER" default:"goblog"`
	DBPassword  string `envconfig:"DB_PASSWORD"`
	DBName      string `envconfig:"DB_NAME" default:"goblog"`

	RedisHost     string `envconfig:"REDIS_HOST" default:"127.0.0.1"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	AllowedOrigins     []string `envconfig:"ALLOWED_ORIGINS" default:"*"`
	RateLimitPerMinute int      `envconfig:"RATE_LIMIT_PER_MINUTE" default:"30"`

	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	LogPath       string `envconfig:"LOG_PATH" default:"logs/goblog.log"`
	GinLogPath    string `envconfig:"GIN_LOG_PATH" default:"logs/access.log"`
	LogMaxSizeMB  int    `envconfig:"LOG_MAX_SIZE_MB" default:"100"`
	LogMaxBackups int    `envconfig:"LOG_MAX_BACKUPS" default:"3"`
	LogMaxAgeDays int    `envconfig:"LOG_MAX_AGE_DAYS" default:"7"`
	LogCompress   bool   `envconfig:"LOG_COMPRESS" default:"false"`
}

var cfg AppConfig
var loaded bool

// Load reads the application configuration from the environment. It should be
// called once during boot. A missing JWT secret is a startup failure, never a
// silent insecure default.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	// Best effort: a .env file is a development convenience only.
	_ = godotenv.Load()

	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("failed to process configuration: %v", err)
	}

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set in environment variables")
	}

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

// Set replaces the cached configuration. Tests only.
func Set(c AppConfig) {
	cfg = c
	loaded = true
}
