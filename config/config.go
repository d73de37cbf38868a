package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the fulfillment backend and gateway.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Gateway   GatewayConfig   `mapstructure:"gateway"`
	AWS       AWSConfig       `mapstructure:"aws"`
	Knowledge KnowledgeConfig `mapstructure:"knowledge"`
	Session   SessionConfig   `mapstructure:"session"`
}

// ServerConfig contains the fulfillment API settings.
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// GatewayConfig contains the HTTP-to-bot proxy settings.
type GatewayConfig struct {
	Address    string `mapstructure:"address"`
	Bot        string `mapstructure:"bot"` // "local" or "lex"
	BotID      string `mapstructure:"bot_id"`
	BotAliasID string `mapstructure:"bot_alias_id"`
	LocaleID   string `mapstructure:"locale_id"`
}

// AWSConfig contains shared AWS client settings.
type AWSConfig struct {
	Region string `mapstructure:"region"`
}

// KnowledgeConfig describes the answer sources for fallback questions.
type KnowledgeConfig struct {
	KnowledgeBaseID string   `mapstructure:"knowledge_base_id"`
	ModelARNs       []string `mapstructure:"model_arns"`
	Bucket          string   `mapstructure:"bucket"`
	Key             string   `mapstructure:"key"`
	File            string   `mapstructure:"file"`
	UseDocumentKB   bool     `mapstructure:"use_document_kb"`
	LocalBaseURL    string   `mapstructure:"local_base_url"`
	LocalModel      string   `mapstructure:"local_model"`
}

// SessionConfig selects and configures the session store backend.
type SessionConfig struct {
	Backend      string        `mapstructure:"backend"` // memory, redis or dynamo
	Table        string        `mapstructure:"table"`
	HistoryLimit int           `mapstructure:"history_limit"`
	TTL          time.Duration `mapstructure:"ttl"`
	Redis        RedisConfig   `mapstructure:"redis"`
}

// RedisConfig contains redis connection settings for the session store.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (c SessionConfig) Validate() error {
	switch c.Backend {
	case "memory":
	case "redis":
		if strings.TrimSpace(c.Redis.Addr) == "" {
			return fmt.Errorf("session.redis.addr is required for the redis backend")
		}
	case "dynamo":
		if strings.TrimSpace(c.Table) == "" {
			return fmt.Errorf("session.table is required for the dynamo backend")
		}
	default:
		return fmt.Errorf("session.backend must be memory, redis or dynamo, got %q", c.Backend)
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("session.history_limit must be greater than zero")
	}
	return nil
}

func (c GatewayConfig) Validate() error {
	switch c.Bot {
	case "local":
	case "lex":
		if c.BotID == "" || c.BotAliasID == "" {
			return fmt.Errorf("gateway.bot_id and gateway.bot_alias_id are required for the lex bot")
		}
	default:
		return fmt.Errorf("gateway.bot must be local or lex, got %q", c.Bot)
	}
	return nil
}

// LoadConfig reads configuration from the given file, or from config.yaml
// found in the usual locations when path is empty. Environment variables
// with the CHATKB_ prefix override file values.
func LoadConfig(path string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("gateway.address", ":8081")
	viper.SetDefault("gateway.bot", "local")
	viper.SetDefault("gateway.locale_id", "en_US")
	viper.SetDefault("aws.region", "us-east-1")
	viper.SetDefault("knowledge.key", "aws_knowledge_base.pdf")
	viper.SetDefault("knowledge.use_document_kb", true)
	viper.SetDefault("knowledge.model_arns", []string{
		"anthropic.claude-3-sonnet-20240229-v1:0",
		"anthropic.claude-3-haiku-20240307-v1:0",
		"amazon.titan-text-premier-v1:0",
	})
	viper.SetDefault("session.backend", "memory")
	viper.SetDefault("session.table", "SessionTable")
	viper.SetDefault("session.history_limit", 10)

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("CHATKB")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing file is fine: defaults plus env cover every knob.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Session.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Gateway.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
