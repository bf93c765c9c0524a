package agent

import "time"

// Config holds agent configuration.
type Config struct {
	Model       string  `yaml:"model" json:"model"`
	MaxTokens   int     `yaml:"maxTokens" json:"maxTokens"`
	Temperature float64 `yaml:"temperature" json:"temperature"`
	MaxTurns    int     `yaml:"maxTurns" json:"maxTurns"`

	// SystemPrompt is the standing instruction handed to the LLM on
	// every turn.
	SystemPrompt string `yaml:"systemPrompt" json:"systemPrompt"`

	RequestTimeout time.Duration `yaml:"requestTimeout" json:"requestTimeout"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Model:          "claude-sonnet-4-5",
		MaxTokens:      4096,
		Temperature:    0.7,
		MaxTurns:       10,
		RequestTimeout: 60 * time.Second,
	}
}

// WithModel sets the model.
func (c Config) WithModel(model string) Config {
	c.Model = model
	return c
}

// WithMaxTurns sets max turns for the agent loop.
func (c Config) WithMaxTurns(turns int) Config {
	c.MaxTurns = turns
	return c
}

// WithSystemPrompt sets the standing system prompt.
func (c Config) WithSystemPrompt(prompt string) Config {
	c.SystemPrompt = prompt
	return c
}
