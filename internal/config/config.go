package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/quickfindr/devtool/internal/appdirs"
)

// Config holds the devtool configuration
type Config struct {
	SlintFile     string   `validate:"required"`
	FavoritesFile string   // empty means the app's config directory
	PrunePrefixes []string `validate:"required,min=1,dive,required"`
	RecentLimit   int      `validate:"min=0,max=1000"`
	Backup        bool
	LogLevel      string `validate:"oneof=debug info warn warning error"`
	LogFormat     string `validate:"oneof=json text"`
	Environment   string `validate:"required"`
	Version       string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		SlintFile:     getEnv(EnvSlintFile, DefaultSlintFile),
		FavoritesFile: getEnv(EnvFavoritesFile, ""),
		PrunePrefixes: getEnvAsList(EnvPrunePrefixes, DefaultPrunePrefixes),
		RecentLimit:   getEnvAsInt(EnvRecentLimit, DefaultRecentLimit),
		Backup:        getEnvAsBool(EnvBackup, false),
		LogLevel:      strings.ToLower(getEnv(EnvLogLevel, DefaultLogLevel)),
		LogFormat:     strings.ToLower(getEnv(EnvLogFormat, DefaultLogFormat)),
		Environment:   getEnv(EnvEnvironment, DefaultEnvironment),
		Version:       getEnv(EnvServiceVersion, DefaultVersion),
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FavoritesPath returns the favorites.json to operate on.
func (c *Config) FavoritesPath() (string, error) {
	if c.FavoritesFile != "" {
		return c.FavoritesFile, nil
	}
	return appdirs.FavoritesPath()
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma-separated variable, dropping blank items
func getEnvAsList(key, defaultValue string) []string {
	var out []string
	for _, item := range strings.Split(getEnv(key, defaultValue), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
