package config

import (
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// envVarPattern matches ${VAR_NAME} patterns in strings.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvVars replaces ${VAR} patterns with environment variable values.
// Unset variables expand to the empty string so a missing credential is
// caught by validation instead of being sent to the API verbatim.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})
}

// expandSensitiveFields processes environment variable references in
// credential fields so the API key can be stored as ${OPENAI_API_KEY}.
func expandSensitiveFields(cfg *Config) {
	cfg.OpenAI.APIKey = expandEnvVars(cfg.OpenAI.APIKey)
}

// Load reads the config file, applies defaults and environment overrides,
// and returns a merged Config. A missing file produces defaults only.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(&cfg)
			expandSensitiveFields(&cfg)
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &ConfigError{Message: "failed to parse config: " + err.Error()}
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	expandSensitiveFields(&cfg)
	return cfg, nil
}

// applyDefaults fills zero-value fields with built-in defaults.
func applyDefaults(cfg *Config) {
	if cfg.OpenAI.APIKey == "" {
		cfg.OpenAI.APIKey = "${OPENAI_API_KEY}"
	}
	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = "gpt-4o-mini"
	}
	if cfg.Agent.Name == "" {
		cfg.Agent.Name = "Agendai"
	}
	if cfg.Session.Store == "" {
		cfg.Session.Store = "memory"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Style == "" {
		cfg.Logging.Style = "pretty"
	}
}

// applyEnvOverrides lets AGENDAI_* environment variables override file
// values for quick one-off runs.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("AGENDAI_MODEL"); v != "" {
		cfg.OpenAI.Model = v
	}
	if v := os.Getenv("AGENDAI_BASE_URL"); v != "" {
		cfg.OpenAI.BaseURL = v
	}
	if v := os.Getenv("AGENDAI_AGENDA_PATH"); v != "" {
		cfg.Agenda.Path = v
	}
	if v := os.Getenv("AGENDAI_SESSION_STORE"); v != "" {
		cfg.Session.Store = v
	}
	if v := os.Getenv("AGENDAI_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
