// File: internal/services/ai/config.go
package ai

import (
	"fmt"
	"time"
)

type Config struct {
	APIKey  string
	BaseURL string
	Model   string

	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
	MaxElapsedTime time.Duration

	Temperature float32
	MaxTokens   int
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return NewConfigError("VISION_API_KEY is required")
	}
	if c.Model == "" {
		return NewConfigError("VISION_MODEL_NAME is required")
	}
	if c.Timeout <= 0 {
		return NewConfigError("timeout must be positive")
	}
	if c.MaxRetries < 1 {
		return NewConfigError("max retries must be at least 1")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		Model:          "gpt-4o",
		Timeout:        2 * time.Minute,
		MaxRetries:     3,
		RetryDelay:     2 * time.Second,
		MaxElapsedTime: 90 * time.Second,
		Temperature:    0.7,
		MaxTokens:      700,
	}
}

func (c *Config) String() string {
	return fmt.Sprintf("ai.Config{Model: %s, Timeout: %s, MaxRetries: %d}",
		c.Model, c.Timeout, c.MaxRetries)
}
