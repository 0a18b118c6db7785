// Package config loads codelens settings from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/sprite-ai/codelens/internal/gateway"
)

// Config holds server and client settings. An empty Model lets the
// gateway pick its provider's default.
type Config struct {
	Addr      string `yaml:"addr"`
	Port      int    `yaml:"port"`
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key"`
	BaseURL   string `yaml:"base_url"`
	ServerURL string `yaml:"server_url"`
	LogFile   string `yaml:"log_file"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Addr:      "127.0.0.1",
		Port:      6142,
		Provider:  gateway.ProviderGemini,
		ServerURL: "http://127.0.0.1:6142",
	}
}

// DefaultPath is ~/.codelens/config.yaml, or "" when the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".codelens", "config.yaml")
}

// Load reads path on top of the defaults and applies environment overrides.
// An explicit path must exist; with an empty path the default file is used
// only when present.
func Load(path string) (Config, error) {
	cfg := Defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse %s: %w", path, err)
			}
		case explicit || !errors.Is(err, fs.ErrNotExist):
			return Config{}, fmt.Errorf("read %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		if err := setPort(cfg, "PORT", v); err != nil {
			return err
		}
	}
	if v := os.Getenv("CODELENS_PORT"); v != "" {
		if err := setPort(cfg, "CODELENS_PORT", v); err != nil {
			return err
		}
	}
	if v := os.Getenv("CODELENS_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("CODELENS_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("CODELENS_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("CODELENS_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("CODELENS_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("CODELENS_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}

	if v := os.Getenv("CODELENS_API_KEY"); v != "" {
		cfg.APIKey = v
	} else if cfg.APIKey == "" {
		cfg.APIKey = providerKey(cfg.Provider)
	}
	return nil
}

// providerKey reads the provider's conventional key variable.
func providerKey(provider string) string {
	switch provider {
	case gateway.ProviderOpenAI:
		return os.Getenv("OPENAI_API_KEY")
	case gateway.ProviderMock:
		return ""
	default:
		return os.Getenv("GEMINI_API_KEY")
	}
}

func setPort(cfg *Config, name, v string) error {
	port, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: invalid port %q", name, v)
	}
	cfg.Port = port
	return nil
}

// ListenAddr is the host:port the server binds.
func (c Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Addr, c.Port)
}

// GatewayOptions maps the config to gateway settings.
func (c Config) GatewayOptions() gateway.Options {
	return gateway.Options{
		Provider: c.Provider,
		Model:    c.Model,
		APIKey:   c.APIKey,
		BaseURL:  c.BaseURL,
	}
}
