package config

import "fmt"

// Validate checks the configuration for errors that would prevent the
// assistant from running.
func (c *Config) Validate() error {
	if c.OpenAI.APIKey == "" {
		return &ConfigError{Message: "openai.apiKey is required (set OPENAI_API_KEY or openai.apiKey in config.yaml)"}
	}
	if c.OpenAI.Model == "" {
		return &ConfigError{Message: "openai.model must not be empty"}
	}
	switch c.Session.Store {
	case "memory", "sqlite":
	default:
		return &ConfigError{Message: fmt.Sprintf("unknown session.store %q (must be \"memory\" or \"sqlite\")", c.Session.Store)}
	}
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error", "":
	default:
		return &ConfigError{Message: fmt.Sprintf("unknown logging.level %q", c.Logging.Level)}
	}
	return nil
}
