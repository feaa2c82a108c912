package betterwpdb

import (
	"fmt"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config describes how to reach the database. If DSN is set it is used
// unchanged; otherwise the DSN is assembled from the individual fields.
type Config struct {
	// Driver overrides the sql driver name (e.g. "mysql" in production,
	// "sqlmock" in tests). Empty means "mysql".
	Driver   string            `yaml:"driver"`
	DSN      string            `yaml:"dsn"`
	Host     string            `yaml:"host"`
	Port     int               `yaml:"port"`
	Username string            `yaml:"username"`
	Password string            `yaml:"password"`
	Database string            `yaml:"database"`
	Params   map[string]string `yaml:"params"`
}

// dsnFromConfig returns the DSN for cfg. Params are serialized in sorted
// order so the result is deterministic.
func dsnFromConfig(cfg Config) (string, error) {
	if strings.TrimSpace(cfg.DSN) != "" {
		return cfg.DSN, nil
	}
	if cfg.Host == "" {
		return "", fmt.Errorf("betterwpdb: config needs a DSN or a host")
	}
	addr := cfg.Host
	if cfg.Port > 0 {
		addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	}
	var q string
	if len(cfg.Params) > 0 {
		keys := make([]string, 0, len(cfg.Params))
		for k := range cfg.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%s", k, url.QueryEscape(cfg.Params[k])))
		}
		q = strings.Join(parts, "&")
	}
	// The mysql driver expects the password raw, not URL-encoded.
	auth := ""
	if cfg.Username != "" {
		if cfg.Password != "" {
			auth = fmt.Sprintf("%s:%s@", cfg.Username, cfg.Password)
		} else {
			auth = cfg.Username + "@"
		}
	}
	dsn := fmt.Sprintf("%stcp(%s)/%s", auth, addr, url.PathEscape(cfg.Database))
	if q != "" {
		dsn += "?" + q
	}
	return dsn, nil
}

// ConfigFromEnv builds a Config from BETTER_WPDB_* environment variables:
// DRIVER, DSN, HOST, PORT, USERNAME, PASSWORD, DATABASE.
func ConfigFromEnv() Config {
	cfg := Config{
		Driver:   os.Getenv("BETTER_WPDB_DRIVER"),
		DSN:      os.Getenv("BETTER_WPDB_DSN"),
		Host:     os.Getenv("BETTER_WPDB_HOST"),
		Username: os.Getenv("BETTER_WPDB_USERNAME"),
		Password: os.Getenv("BETTER_WPDB_PASSWORD"),
		Database: os.Getenv("BETTER_WPDB_DATABASE"),
	}
	if p := os.Getenv("BETTER_WPDB_PORT"); p != "" {
		if port, err := strconv.Atoi(p); err == nil {
			cfg.Port = port
		}
	}
	return cfg
}

// LoadConfigFile reads a YAML config file into a Config.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("betterwpdb: parse config %s: %w", path, err)
	}
	return cfg, nil
}
