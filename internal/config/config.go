package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/appdeck/internal/catalog"
	"github.com/five82/appdeck/internal/logging"
)

// Config captures everything appdeck reads from config.toml.
type Config struct {
	BaseURL         string
	Endpoint        string
	RequestTimeout  time.Duration
	RefreshInterval time.Duration // zero disables automatic refresh
	LogFile         string        // empty discards log output
	LogLevel        string
}

// DisableLogFile as log_file turns file logging off.
const DisableLogFile = "-"

const (
	defaultConfigPath = "~/.config/appdeck/config.toml"
	defaultLogFile    = "~/.local/state/appdeck/appdeck.log"
)

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		BaseURL:        catalog.DefaultBaseURL,
		Endpoint:       catalog.DefaultEndpoint,
		RequestTimeout: catalog.DefaultRequestTimeout,
		LogFile:        mustExpand(defaultLogFile),
		LogLevel:       logging.DefaultLevel,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL         string `toml:"base_url"`
		Endpoint        string `toml:"endpoint"`
		RequestTimeout  string `toml:"request_timeout"`
		RefreshInterval string `toml:"refresh_interval"`
		LogFile         string `toml:"log_file"`
		LogLevel        string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.BaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(raw.Endpoint); v != "" {
		cfg.Endpoint = v
	}
	if cfg.RequestTimeout, err = parseDuration("request_timeout", raw.RequestTimeout, cfg.RequestTimeout); err != nil {
		return Config{}, err
	}
	if cfg.RefreshInterval, err = parseDuration("refresh_interval", raw.RefreshInterval, cfg.RefreshInterval); err != nil {
		return Config{}, err
	}
	switch v := strings.TrimSpace(raw.LogFile); v {
	case "":
	case DisableLogFile:
		cfg.LogFile = ""
	default:
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Validate checks the values Load produced or a caller overrode.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required, validation.By(absoluteHTTPURL)),
		validation.Field(&c.Endpoint, validation.Required, validation.By(relativePath)),
		validation.Field(&c.RequestTimeout, validation.Min(time.Duration(0))),
		validation.Field(&c.RefreshInterval, validation.Min(time.Duration(0))),
		validation.Field(&c.LogLevel, validation.In(levelValues()...)),
	)
}

func absoluteHTTPURL(value any) error {
	s, _ := value.(string)
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return errors.New("must be a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("must use http or https")
	}
	if u.Host == "" {
		return errors.New("must include a host")
	}
	return nil
}

func relativePath(value any) error {
	s, _ := value.(string)
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return errors.New("must be a valid path")
	}
	if u.IsAbs() || u.Host != "" {
		return errors.New("must be relative to base_url")
	}
	return nil
}

func levelValues() []any {
	names := logging.Levels()
	out := make([]any, 0, len(names)+1)
	for _, name := range names {
		out = append(out, name)
	}
	return append(out, "warn")
}

func parseDuration(key, value string, fallback time.Duration) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, fmt.Errorf("parse config: %s: %w", key, err)
	}
	return d, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
