package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	defaultServerURL      = "http://localhost:8080"
	defaultFetchLimit     = 20
	defaultPollInterval   = 30 * time.Second
	defaultRequestTimeout = 10 * time.Second
)

// Config holds runtime settings for the CLI app.
type Config struct {
	ServerURL      string
	FetchLimit     int
	PollInterval   time.Duration
	RequestTimeout time.Duration
	DBPath         string
	LogPath        string
	LogLevel       string
}

// fileConfig is the on-disk TOML shape. Durations are strings so the file
// can say "30s".
type fileConfig struct {
	ServerURL      string `toml:"server_url"`
	FetchLimit     int    `toml:"fetch_limit"`
	PollInterval   string `toml:"poll_interval"`
	RequestTimeout string `toml:"request_timeout"`
	DBPath         string `toml:"db_path"`
	LogPath        string `toml:"log_path"`
	LogLevel       string `toml:"log_level"`
}

func Defaults() Config {
	return Config{
		ServerURL:      defaultServerURL,
		FetchLimit:     defaultFetchLimit,
		PollInterval:   defaultPollInterval,
		RequestTimeout: defaultRequestTimeout,
		DBPath:         "fiets.db",
		LogPath:        "fiets.log",
		LogLevel:       "info",
	}
}

// DefaultPath is $XDG_CONFIG_HOME/fiets/config.toml, falling back to
// ~/.config.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "fiets", "config.toml")
}

// Load applies defaults, then the TOML file at path (a missing file is not an
// error), then FIETS_* environment variables, and validates the result.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.mergeEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&c.ServerURL, fc.ServerURL)
	setString(&c.DBPath, fc.DBPath)
	setString(&c.LogPath, fc.LogPath)
	setString(&c.LogLevel, fc.LogLevel)
	if fc.FetchLimit != 0 {
		c.FetchLimit = fc.FetchLimit
	}
	if err := setDuration(&c.PollInterval, "poll_interval", fc.PollInterval); err != nil {
		return err
	}
	return setDuration(&c.RequestTimeout, "request_timeout", fc.RequestTimeout)
}

func (c *Config) mergeEnv() error {
	setString(&c.ServerURL, os.Getenv("FIETS_SERVER_URL"))
	setString(&c.DBPath, os.Getenv("FIETS_DB_PATH"))
	setString(&c.LogPath, os.Getenv("FIETS_LOG_PATH"))
	setString(&c.LogLevel, os.Getenv("FIETS_LOG_LEVEL"))
	if raw := os.Getenv("FIETS_FETCH_LIMIT"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("FIETS_FETCH_LIMIT must be an integer: %s", raw)
		}
		c.FetchLimit = n
	}
	if err := setDuration(&c.PollInterval, "FIETS_POLL_INTERVAL", os.Getenv("FIETS_POLL_INTERVAL")); err != nil {
		return err
	}
	return setDuration(&c.RequestTimeout, "FIETS_REQUEST_TIMEOUT", os.Getenv("FIETS_REQUEST_TIMEOUT"))
}

func (c Config) Validate() error {
	if c.ServerURL == "" {
		return errors.New("ServerURL is required")
	}
	if !strings.HasPrefix(c.ServerURL, "http://") && !strings.HasPrefix(c.ServerURL, "https://") {
		return fmt.Errorf("ServerURL must be http or https: %s", c.ServerURL)
	}
	if c.ServerURL[len(c.ServerURL)-1] == '/' {
		return fmt.Errorf("ServerURL must not end with '/': %s", c.ServerURL)
	}
	if c.FetchLimit < 1 {
		return fmt.Errorf("FetchLimit must be positive: %d", c.FetchLimit)
	}
	if c.PollInterval < time.Second {
		return fmt.Errorf("PollInterval must be at least 1s: %s", c.PollInterval)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("RequestTimeout must not be negative: %s", c.RequestTimeout)
	}
	if c.DBPath == "" {
		return errors.New("DBPath is required")
	}
	if c.LogPath == "" {
		return errors.New("LogPath is required")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("LogLevel must be debug, info, warn or error: %s", c.LogLevel)
	}
	return nil
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("%s must be a duration like 30s: %s", key, raw)
	}
	*dst = d
	return nil
}
