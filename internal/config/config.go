package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAPIURL      = "https://v2.api.noroff.dev"
	defaultHTTPTimeout = "15s"
	defaultPageLimit   = "12"
)

// Config is everything the client needs to talk to the remote API and to
// find its local session cache.
type Config struct {
	// APIURL is the base of the remote API, without a trailing slash.
	APIURL string
	// APIKey is sent as X-Noroff-API-Key on every request.
	APIKey string
	// SessionFile is where the session store persists its blob.
	SessionFile string
	HTTPTimeout time.Duration
	// PageLimit is the venues-per-page default for list views.
	PageLimit int
}

// Load reads configuration from the environment, picking up a .env file
// first when one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIURL: strings.TrimRight(strings.TrimSpace(getEnv("HOLIDAZE_API_URL", defaultAPIURL)), "/"),
		APIKey: strings.TrimSpace(os.Getenv("HOLIDAZE_API_KEY")),
	}

	var err error
	cfg.HTTPTimeout, err = parseDurationEnv("HOLIDAZE_HTTP_TIMEOUT", defaultHTTPTimeout)
	if err != nil {
		return nil, err
	}

	cfg.PageLimit, err = parseIntEnv("HOLIDAZE_PAGE_LIMIT", defaultPageLimit)
	if err != nil {
		return nil, err
	}

	cfg.SessionFile = strings.TrimSpace(os.Getenv("HOLIDAZE_SESSION_FILE"))
	if cfg.SessionFile == "" {
		cfg.SessionFile, err = defaultSessionFile()
		if err != nil {
			return nil, err
		}
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.APIURL == "" {
		return fmt.Errorf("HOLIDAZE_API_URL must not be empty")
	}
	if cfg.HTTPTimeout <= 0 {
		return fmt.Errorf("HOLIDAZE_HTTP_TIMEOUT must be > 0")
	}
	if cfg.PageLimit <= 0 || cfg.PageLimit > 100 {
		return fmt.Errorf("HOLIDAZE_PAGE_LIMIT must be in 1..100")
	}
	return nil
}

func defaultSessionFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve config dir: %w", err)
	}
	return filepath.Join(dir, "holidaze", "session.json"), nil
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
