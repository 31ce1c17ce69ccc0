package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	OpenAI  OpenAIConfig
	Storage StorageConfig
	Records RecordsConfig
	Log     LogConfig
}

type OpenAIConfig struct {
	APIKey    string
	Endpoint  string
	Model     string
	MaxTokens int
}

type StorageConfig struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	// LocatorBase prefixes the "/o/<path>" locators handed out for uploads.
	LocatorBase string
}

type RecordsConfig struct {
	Table string
}

type LogConfig struct {
	Level string
}

// Load reads config.json (or path, when set) and overlays environment
// variables, where "openai.api_key" is read from OPENAI_API_KEY and so on.
// A missing default config file is not an error; a missing explicit one is.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.endpoint", "https://api.openai.com/v1/chat/completions")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.max_tokens", 150)
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.access_key_id", "")
	v.SetDefault("storage.secret_access_key", "")
	v.SetDefault("storage.locator_base", "")
	v.SetDefault("records.table", "artwork")
	v.SetDefault("log.level", "info")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("json")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		OpenAI: OpenAIConfig{
			APIKey:    v.GetString("openai.api_key"),
			Endpoint:  v.GetString("openai.endpoint"),
			Model:     v.GetString("openai.model"),
			MaxTokens: v.GetInt("openai.max_tokens"),
		},
		Storage: StorageConfig{
			Bucket:          v.GetString("storage.bucket"),
			Region:          v.GetString("storage.region"),
			Endpoint:        v.GetString("storage.endpoint"),
			AccessKeyID:     v.GetString("storage.access_key_id"),
			SecretAccessKey: v.GetString("storage.secret_access_key"),
			LocatorBase:     v.GetString("storage.locator_base"),
		},
		Records: RecordsConfig{
			Table: v.GetString("records.table"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
		},
	}

	if cfg.Storage.LocatorBase == "" {
		cfg.Storage.LocatorBase = "https://storage.local/v0/b/" + cfg.Storage.Bucket
	}

	return cfg, nil
}

// Validate checks the settings every entry point needs.
func (c *Config) Validate() error {
	if c.Storage.Bucket == "" {
		return errors.New("storage.bucket is required")
	}
	if c.Records.Table == "" {
		return errors.New("records.table is required")
	}
	return nil
}

// ValidateTrigger is Validate plus the inference credentials.
func (c *Config) ValidateTrigger() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.OpenAI.APIKey == "" {
		return errors.New("openai.api_key is required")
	}
	if c.OpenAI.MaxTokens <= 0 {
		return fmt.Errorf("openai.max_tokens must be positive, got %d", c.OpenAI.MaxTokens)
	}
	return nil
}
