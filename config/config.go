package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configuration values. It is loaded once at startup and
// passed explicitly to the components that need it.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Shared secret expected from the calling platform. An empty value is a
	// deployment error; protected routes answer 500 until it is set.
	APIKey string `mapstructure:"API_KEY"`

	// Accepted credential header conventions. Different platforms send the
	// key under different names, so all three are checked.
	SharedSecretHeader string `mapstructure:"SHARED_SECRET_HEADER"`
	BearerHeader       string `mapstructure:"BEARER_HEADER"`
	AltTokenHeader     string `mapstructure:"ALT_TOKEN_HEADER"`

	// Extra unauthenticated paths beyond the built-in manifest/status set.
	OpenPaths      []string `mapstructure:"OPEN_PATHS"`
	HandshakePaths []string `mapstructure:"HANDSHAKE_PATHS"`

	// Calendar configuration.
	CalendarID            string `mapstructure:"CALENDAR_ID"`
	Timezone              string `mapstructure:"TIMEZONE"`
	GoogleCredentialsFile string `mapstructure:"GOOGLE_CREDENTIALS_FILE"`

	ManifestFile string `mapstructure:"MANIFEST_FILE"`

	// Reservation hold configuration.
	HoldTTLSeconds int `mapstructure:"HOLD_TTL_SECONDS"`

	// Redis configuration. An empty address selects the in-memory hold store.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisHoldDB   int    `mapstructure:"REDIS_HOLD_DB"`

	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`
}

// Load reads configuration from an optional config.yaml and the environment.
func Load() (*Config, error) {
	v := viper.New()

	// Look for a config file named "config.yaml" in the current and "config" directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	// Automatically use environment variables where available.
	v.AutomaticEnv()

	// Set default values.
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("API_KEY", "")
	v.SetDefault("SHARED_SECRET_HEADER", "x-api-key")
	v.SetDefault("BEARER_HEADER", "Authorization")
	v.SetDefault("ALT_TOKEN_HEADER", "x-auth-token")
	v.SetDefault("OPEN_PATHS", []string{})
	v.SetDefault("HANDSHAKE_PATHS", []string{"/validate"})
	v.SetDefault("CALENDAR_ID", "primary")
	v.SetDefault("TIMEZONE", "Pacific/Auckland")
	v.SetDefault("GOOGLE_CREDENTIALS_FILE", "")
	v.SetDefault("MANIFEST_FILE", "mcp.json")
	v.SetDefault("HOLD_TTL_SECONDS", 300)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_HOLD_DB", 0)
	v.SetDefault("MAX_REQUESTS_PER_MIN", 120)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// IsProduction reports whether the service runs with the production profile.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
