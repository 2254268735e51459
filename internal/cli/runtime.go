package cli

import (
	"github.com/agendai/agendai/internal/agent"
	"github.com/agendai/agendai/internal/config"
	"github.com/agendai/agendai/internal/llm"
	"github.com/agendai/agendai/internal/logging"
	"github.com/agendai/agendai/internal/schedule"
	"github.com/agendai/agendai/internal/store"
	"github.com/agendai/agendai/internal/tools"
)

// runtime bundles everything a conversational command needs.
type runtime struct {
	cfg    config.Config
	runner *agent.Runner
	agenda *schedule.Store
	db     *store.DB // nil when the session store is in-memory
}

// Close releases runtime resources.
func (rt *runtime) Close() {
	if rt.db != nil {
		rt.db.Close()
	}
}

// loadRuntimeConfig loads and validates the configuration, rebuilding the
// logger with the configured level when no --log-level flag was given.
func loadRuntimeConfig() (config.Config, error) {
	cfg, err := config.Load(paths.Config)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if logLevel == "" {
		log = logging.New(nil, cfg.Logging.Level, cfg.Logging.Style)
	}
	return cfg, nil
}

// buildRuntime wires the full assistant: completion client, agenda store,
// tool registry, session store and runner.
func buildRuntime() (*runtime, error) {
	cfg, err := loadRuntimeConfig()
	if err != nil {
		return nil, err
	}
	if err := paths.EnsureDirs(); err != nil {
		return nil, err
	}

	client, err := llm.NewOpenAIClient(llm.OpenAIOptions{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
	}, log)
	if err != nil {
		return nil, err
	}

	agendaPath := cfg.Agenda.Path
	if agendaPath == "" {
		agendaPath = paths.Agenda
	}
	agenda := schedule.NewStore(agendaPath, log)

	registry := agent.NewToolRegistry()
	registry.Register(tools.NewWeatherTool(log))
	registry.Register(tools.NewSpaceXTool(log))
	registry.Register(tools.NewCountryTool(log))
	registry.Register(tools.NewCheckAvailabilityTool(agenda, log))
	registry.Register(tools.NewScheduleAppointmentTool(agenda, log))

	rt := &runtime{cfg: cfg, agenda: agenda}

	var sessions agent.SessionStore
	switch cfg.Session.Store {
	case "sqlite":
		db, err := store.Open(paths.DB, log)
		if err != nil {
			return nil, err
		}
		rt.db = db
		sessions = store.NewSQLiteSessionStore(db)
	default:
		sessions = agent.NewMemorySessionStore()
	}

	rt.runner = agent.NewRunner(
		agent.RunnerConfig{
			AgentName:   cfg.Agent.Name,
			Model:       cfg.OpenAI.Model,
			MaxTokens:   cfg.OpenAI.MaxTokens,
			Temperature: cfg.OpenAI.Temperature,
			ExtraPrompt: cfg.Agent.ExtraPrompt,
		},
		client,
		sessions,
		registry,
		log,
	)

	return rt, nil
}
