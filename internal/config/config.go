package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the console needs from the environment.
type Config struct {
	APIURL   string
	Token    string
	LogLevel string
	Env      string // "dev" or "prod"
	Dir      string // ~/.classdeck
}

// Load reads .env (if present) and the CLASSDECK_* environment variables.
// Token precedence: env var > token file under the config dir > empty.
func Load() (Config, error) {
	_ = godotenv.Load() //nolint:errcheck // a missing .env is fine

	dir, err := configDir()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIURL:   getenv("CLASSDECK_API_URL", "https://api.classdeck.dev"),
		LogLevel: getenv("CLASSDECK_LOG_LEVEL", "info"),
		Env:      getenv("CLASSDECK_ENV", "prod"),
		Dir:      dir,
	}

	if tok := os.Getenv("CLASSDECK_TOKEN"); tok != "" {
		cfg.Token = tok
	} else if data, err := os.ReadFile(cfg.TokenPath()); err == nil {
		cfg.Token = strings.TrimSpace(string(data))
	}

	return cfg, nil
}

// TokenPath returns the bearer-token file location.
func (c Config) TokenPath() string {
	return filepath.Join(c.Dir, "token")
}

// LogPath returns the log-file location. The terminal belongs to the TUI, so
// logs go to a file.
func (c Config) LogPath() string {
	return filepath.Join(c.Dir, "classdeck.log")
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".classdeck"), nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
