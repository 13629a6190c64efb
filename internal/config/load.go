package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const EnvPrefix = "MCVERSION_"

// Load builds the effective configuration: defaults, then the YAML file at
// path (a missing file is fine unless required), then .env, then
// MCVERSION_* variables.
func Load(path string, required bool) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := mergeFile(&cfg, path, required); err != nil {
			return Config{}, err
		}
	}

	// .env never overrides variables already set in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func mergeFile(cfg *Config, path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config file %s: %w", path, err)
	}
	return nil
}

type lookupFunc func(key string) (string, bool)

func applyEnv(cfg *Config, lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	dur := func(key string, dst *time.Duration) error {
		v, ok := lookup(EnvPrefix + key)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
		}
		*dst = d
		return nil
	}

	str("LISTEN", &cfg.Listen)
	str("MANIFEST_URL", &cfg.ManifestURL)
	str("WIKI_URL_TEMPLATE", &cfg.WikiURLTemplate)
	str("USER_AGENT", &cfg.UserAgent)
	str("TIME_LOCATION", &cfg.TimeLocation)
	str("WATCH_SERVER_URL", &cfg.Watch.ServerURL)
	str("WATCH_STATE_FILE", &cfg.Watch.StateFile)

	if err := dur("REQUEST_TIMEOUT", &cfg.RequestTimeout); err != nil {
		return err
	}
	if err := dur("WATCH_INTERVAL", &cfg.Watch.Interval); err != nil {
		return err
	}

	if v, ok := lookup(EnvPrefix + "MAX_ARCHIVE_BYTES"); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %sMAX_ARCHIVE_BYTES: %w", EnvPrefix, err)
		}
		cfg.MaxArchiveBytes = n
	}
	return nil
}

func (c Config) Validate() error {
	if c.ManifestURL == "" {
		return fmt.Errorf("manifest_url must not be empty")
	}
	if strings.Count(c.WikiURLTemplate, "%s") != 1 {
		return fmt.Errorf("wiki_url_template must contain exactly one %%s, got %q", c.WikiURLTemplate)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative")
	}
	if c.Watch.Interval <= 0 {
		return fmt.Errorf("watch.interval must be positive")
	}
	return nil
}
