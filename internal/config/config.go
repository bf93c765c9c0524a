// Package config loads the service configuration from a YAML file
// with environment overrides. Secrets never live here; they are read
// from the environment through the credential source.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/eventsync-labs/agent/pkg/credential"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig               `yaml:"server"`
	LLM        LLMConfig                  `yaml:"llm"`
	Agent      AgentConfig                `yaml:"agent"`
	Storage    StorageConfig              `yaml:"storage"`
	POAP       UpstreamConfig             `yaml:"poap"`
	Eventbrite UpstreamConfig             `yaml:"eventbrite"`
	Refresh    credential.RefresherConfig `yaml:"refresh"`
	Wallet     WalletConfig               `yaml:"wallet"`
}

type ServerConfig struct {
	Addr            string   `yaml:"addr"`
	CORSOrigins     []string `yaml:"corsOrigins"`
	RootRedirectURL string   `yaml:"rootRedirectUrl"`
}

type LLMConfig struct {
	// Provider selects the backend: "anthropic" or "openai". The
	// openai provider accepts any OpenAI-compatible endpoint via
	// baseUrl.
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"baseUrl"`
	// APIKeyVar names the environment variable holding the key.
	APIKeyVar string `yaml:"apiKeyVar"`
}

type AgentConfig struct {
	MaxTokens    int           `yaml:"maxTokens"`
	Temperature  float64       `yaml:"temperature"`
	MaxTurns     int           `yaml:"maxTurns"`
	SystemPrompt string        `yaml:"systemPrompt"`
	Timeout      time.Duration `yaml:"timeout"`
}

type StorageConfig struct {
	// PostgresURL enables the durable session store; empty keeps
	// sessions in memory.
	PostgresURL string `yaml:"postgresUrl"`
}

type UpstreamConfig struct {
	BaseURL string `yaml:"baseUrl"`
}

type WalletConfig struct {
	DataFile string `yaml:"dataFile"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		LLM: LLMConfig{
			Provider: "anthropic",
			Model:    "claude-sonnet-4-5",
		},
		Agent: AgentConfig{
			MaxTokens:   4096,
			Temperature: 0.7,
			MaxTurns:    10,
		},
		Wallet: WalletConfig{
			DataFile: "wallet_data.txt",
		},
	}
}

// Load reads the YAML file at path on top of the defaults. A missing
// file is not an error; the defaults plus environment overrides apply.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Addr = ":" + port
	}
	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		c.LLM.Provider = provider
	}
	if model := os.Getenv("LLM_MODEL"); model != "" {
		c.LLM.Model = model
	}
	if base := os.Getenv("LLM_BASE_URL"); base != "" {
		c.LLM.BaseURL = base
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		c.Storage.PostgresURL = dsn
	}
}
