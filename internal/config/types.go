// Package config loads the YAML configuration with environment-variable
// expansion for credentials.
package config

// Config is the root configuration for Agendai.
type Config struct {
	OpenAI  OpenAIConfig  `yaml:"openai,omitempty"`
	Agent   AgentConfig   `yaml:"agent,omitempty"`
	Agenda  AgendaConfig  `yaml:"agenda,omitempty"`
	Session SessionConfig `yaml:"session,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// OpenAIConfig configures the completion-service client.
type OpenAIConfig struct {
	APIKey      string   `yaml:"apiKey,omitempty"` // supports ${ENV_VAR} references
	BaseURL     string   `yaml:"baseUrl,omitempty"`
	Model       string   `yaml:"model,omitempty"`
	MaxTokens   int      `yaml:"maxTokens,omitempty"`
	Temperature *float64 `yaml:"temperature,omitempty"`
}

// AgentConfig configures the assistant persona.
type AgentConfig struct {
	Name        string `yaml:"name,omitempty"`
	ExtraPrompt string `yaml:"extraPrompt,omitempty"`
}

// AgendaConfig configures the appointment store.
type AgendaConfig struct {
	Path string `yaml:"path,omitempty"` // defaults to <data dir>/agenda.json
}

// SessionConfig configures conversation persistence.
type SessionConfig struct {
	Store string `yaml:"store,omitempty"` // "memory" | "sqlite"
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"` // trace..error, silent
	Style string `yaml:"style,omitempty"` // "pretty" | "json"
}

// ConfigError indicates an unusable configuration file.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string { return e.Message }

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		OpenAI: OpenAIConfig{
			APIKey: "${OPENAI_API_KEY}",
			Model:  "gpt-4o-mini",
		},
		Agent: AgentConfig{
			Name: "Agendai",
		},
		Session: SessionConfig{
			Store: "memory",
		},
		Logging: LoggingConfig{
			Level: "info",
			Style: "pretty",
		},
	}
}
