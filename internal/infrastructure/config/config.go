package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFile  = "hashdraft.yaml"
	DefaultSecretsFile = "secrets.yaml"

	defaultEndpoint = "https://api.openai.com/v1/completions"
	defaultModel    = "text-davinci-003"
)

// Config is built once at startup and handed to the wiring layer.
type Config struct {
	Provider     string `yaml:"provider"`
	Endpoint     string `yaml:"endpoint"`
	Model        string `yaml:"model"`
	MaxTokens    int    `yaml:"max_tokens"`
	TimeoutSec   int    `yaml:"timeout_sec"`
	MaxRetries   int    `yaml:"max_retries"`
	RetryDelayMs int    `yaml:"retry_delay_ms"`
	LogLevel     string `yaml:"log_level"`
	SecretsFile  string `yaml:"secrets_file"`

	// APIKey never round-trips through the config file.
	APIKey string `yaml:"-"`
}

// Secrets is the local, non-source-controlled credential file.
type Secrets struct {
	OpenAIAPI string `yaml:"openai_api"`
}

func Default() *Config {
	return &Config{
		Provider:     "openai",
		Endpoint:     defaultEndpoint,
		Model:        defaultModel,
		MaxTokens:    100,
		TimeoutSec:   30,
		MaxRetries:   0,
		RetryDelayMs: 500,
		LogLevel:     "info",
		SecretsFile:  DefaultSecretsFile,
	}
}

// Load reads path (missing is fine), the secrets file next to it and the
// environment overrides, then validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultConfigFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	secretsPath := cfg.SecretsFile
	if secretsPath != "" && !filepath.IsAbs(secretsPath) {
		secretsPath = filepath.Join(filepath.Dir(path), secretsPath)
	}
	secrets, err := LoadSecrets(secretsPath)
	if err != nil {
		return nil, err
	}
	if secrets != nil {
		cfg.APIKey = strings.TrimSpace(secrets.OpenAIAPI)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadSecrets returns nil, nil when the file does not exist.
func LoadSecrets(path string) (*Secrets, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read secrets: %w", err)
	}
	var s Secrets
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal secrets: %w", err)
	}
	return &s, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("HASHDRAFT_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("HASHDRAFT_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("HASHDRAFT_PROVIDER"); v != "" {
		cfg.Provider = v
	}
}

// Validate checks the tunables. An empty APIKey is valid: drafting then
// reports a missing credential.
func (c *Config) Validate() error {
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must not be negative, got %d", c.MaxRetries)
	}
	if c.TimeoutSec < 0 {
		return fmt.Errorf("timeout_sec must not be negative, got %d", c.TimeoutSec)
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("endpoint must be an absolute URL, got %q", c.Endpoint)
	}
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

// HasCredential reports whether drafting is enabled.
func (c *Config) HasCredential() bool {
	return c.APIKey != ""
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMs) * time.Millisecond
}

// Save writes cfg as YAML. The credential is never written.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}
