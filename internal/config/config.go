package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server Configuration
	GinMode       string        `mapstructure:"GIN_MODE"`
	ServerHost    string        `mapstructure:"SERVER_HOST"`
	ServerPort    string        `mapstructure:"SERVER_PORT"`
	ServerTimeout time.Duration `mapstructure:"-"` // SERVER_TIMEOUT_SECONDS

	// Database Configuration
	DBDriver          string        `mapstructure:"DB_DRIVER"`
	DBSQLitePath      string        `mapstructure:"DB_SQLITE_PATH"`
	DBHost            string        `mapstructure:"DB_HOST"`
	DBPort            string        `mapstructure:"DB_PORT"`
	DBUser            string        `mapstructure:"DB_USER"`
	DBPassword        string        `mapstructure:"DB_PASSWORD"`
	DBName            string        `mapstructure:"DB_NAME"`
	DBSSLMode         string        `mapstructure:"DB_SSL_MODE"`
	DBTimezone        string        `mapstructure:"DB_TIMEZONE"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"-"` // DB_CONN_MAX_LIFETIME_MINUTES

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Durable slot storage
	StorageDriver     string `mapstructure:"STORAGE_DRIVER"`
	StorageQuotaBytes int    `mapstructure:"STORAGE_QUOTA_BYTES"`
	RedisAddr         string `mapstructure:"REDIS_ADDR"`
	RedisPassword     string `mapstructure:"REDIS_PASSWORD"`
	RedisDB           int    `mapstructure:"REDIS_DB"`

	// AI collaborator
	GeminiAPIKey    string        `mapstructure:"GEMINI_API_KEY"`
	GeminiFastModel string        `mapstructure:"GEMINI_FAST_MODEL"`
	GeminiChatModel string        `mapstructure:"GEMINI_CHAT_MODEL"`
	AITimeout       time.Duration `mapstructure:"-"` // AI_TIMEOUT_SECONDS
	AIRatePerMinute int           `mapstructure:"AI_RATE_PER_MINUTE"`
	AIRateBurst     int           `mapstructure:"AI_RATE_BURST"`

	// PIN gate
	PinHashCost          int           `mapstructure:"PIN_HASH_COST"`
	PinErrorTTL          time.Duration `mapstructure:"-"` // PIN_ERROR_TTL_SECONDS
	LegacyAdminNameMatch bool          `mapstructure:"LEGACY_ADMIN_NAME_MATCH"`

	// Booking and chat
	ChatReplyMinDelay      time.Duration `mapstructure:"-"` // CHAT_REPLY_MIN_DELAY_MS
	ChatReplyMaxDelay      time.Duration `mapstructure:"-"` // CHAT_REPLY_MAX_DELAY_MS
	ChatCancelReplyOnClose bool          `mapstructure:"CHAT_CANCEL_REPLY_ON_CLOSE"`
	PointsPerBooking       int           `mapstructure:"POINTS_PER_BOOKING"`
	DefaultLatitude        float64       `mapstructure:"DEFAULT_LATITUDE"`
	DefaultLongitude       float64       `mapstructure:"DEFAULT_LONGITUDE"`
	UploadMaxBytes         int64         `mapstructure:"UPLOAD_MAX_BYTES"`

	// Cron Jobs
	AssetSweepJobSchedule string        `mapstructure:"ASSET_SWEEP_JOB_SCHEDULE"`
	AssetSweepGrace       time.Duration `mapstructure:"-"` // ASSET_SWEEP_GRACE_MINUTES
}

// Load attempts to load configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	cfg.setDurations(v)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults registers every default on v. Exposed so tests can build a Config without the environment.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)

	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_SQLITE_PATH", "lsers_hub.db")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "lsers_hub_db")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 60)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("STORAGE_DRIVER", "gorm")
	v.SetDefault("STORAGE_QUOTA_BYTES", 5*1024*1024)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_FAST_MODEL", "gemini-1.5-flash")
	v.SetDefault("GEMINI_CHAT_MODEL", "gemini-1.5-pro")
	v.SetDefault("AI_TIMEOUT_SECONDS", 20)
	v.SetDefault("AI_RATE_PER_MINUTE", 30)
	v.SetDefault("AI_RATE_BURST", 5)

	v.SetDefault("PIN_HASH_COST", 10)
	v.SetDefault("PIN_ERROR_TTL_SECONDS", 4)
	v.SetDefault("LEGACY_ADMIN_NAME_MATCH", true)

	v.SetDefault("CHAT_REPLY_MIN_DELAY_MS", 1500)
	v.SetDefault("CHAT_REPLY_MAX_DELAY_MS", 2500)
	v.SetDefault("CHAT_CANCEL_REPLY_ON_CLOSE", false)
	v.SetDefault("POINTS_PER_BOOKING", 25)
	v.SetDefault("DEFAULT_LATITUDE", 6.315)
	v.SetDefault("DEFAULT_LONGITUDE", -10.804)
	v.SetDefault("UPLOAD_MAX_BYTES", 5*1024*1024)

	v.SetDefault("ASSET_SWEEP_JOB_SCHEDULE", "@daily")
	v.SetDefault("ASSET_SWEEP_GRACE_MINUTES", 60)
}

// Default returns a Config populated only from defaults.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	cfg.setDurations(v)
	return &cfg
}

// setDurations reads the plain-number *_SECONDS, *_MINUTES and *_MS keys. They are kept out of
// Unmarshal because viper's duration hook would demand a unit ("30s") for them.
func (c *Config) setDurations(v *viper.Viper) {
	c.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second
	c.DBConnMaxLifetime = time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME_MINUTES")) * time.Minute
	c.AITimeout = time.Duration(v.GetInt("AI_TIMEOUT_SECONDS")) * time.Second
	c.PinErrorTTL = time.Duration(v.GetInt("PIN_ERROR_TTL_SECONDS")) * time.Second
	c.ChatReplyMinDelay = time.Duration(v.GetInt("CHAT_REPLY_MIN_DELAY_MS")) * time.Millisecond
	c.ChatReplyMaxDelay = time.Duration(v.GetInt("CHAT_REPLY_MAX_DELAY_MS")) * time.Millisecond
	c.AssetSweepGrace = time.Duration(v.GetInt("ASSET_SWEEP_GRACE_MINUTES")) * time.Minute
}

func (c *Config) validate() error {
	switch strings.ToLower(c.DBDriver) {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("FATAL: unsupported DB_DRIVER %q (want sqlite or postgres)", c.DBDriver)
	}
	switch strings.ToLower(c.StorageDriver) {
	case "gorm", "redis", "memory":
	default:
		return fmt.Errorf("FATAL: unsupported STORAGE_DRIVER %q (want gorm, redis or memory)", c.StorageDriver)
	}
	if c.ChatReplyMaxDelay < c.ChatReplyMinDelay {
		return fmt.Errorf("FATAL: CHAT_REPLY_MAX_DELAY_MS must not be lower than CHAT_REPLY_MIN_DELAY_MS")
	}
	if c.PointsPerBooking <= 0 {
		return fmt.Errorf("FATAL: POINTS_PER_BOOKING must be positive")
	}
	return nil
}
