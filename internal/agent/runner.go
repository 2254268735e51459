// Package agent implements the turn orchestration loop: one user
// utterance in, one decision by the completion service, at most one tool
// invocation (optionally chained into a booking), one synthesis, one
// reply out.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/agendai/agendai/internal/domain"
	"github.com/agendai/agendai/internal/llm"
	"github.com/agendai/agendai/internal/logging"
	"github.com/agendai/agendai/internal/schedule"
	"github.com/agendai/agendai/internal/tools"
)

// FallbackReply is returned for any turn that fails unexpectedly. Nothing
// is retried and the process never crashes on a turn.
const FallbackReply = "Ops, algo deu errado! Tente novamente."

// synthesisFallback substitutes an empty synthesis result.
const synthesisFallback = "Desculpe, não consegui gerar uma resposta."

// RunnerConfig configures the turn runner.
type RunnerConfig struct {
	AgentName   string
	Model       string
	MaxTokens   int
	Temperature *float64
	ExtraPrompt string
}

// RunResult is the outcome of one turn.
type RunResult struct {
	Reply     string        `json:"reply"`
	SessionID string        `json:"sessionId"`
	Model     string        `json:"model,omitempty"`
	ToolUsed  string        `json:"toolUsed,omitempty"`
	Chained   bool          `json:"chained,omitempty"`
	Usage     llm.Usage     `json:"usage"`
	Duration  time.Duration `json:"duration"`
}

// Runner drives turns to completion, one at a time.
type Runner struct {
	cfg      RunnerConfig
	client   llm.Client
	sessions SessionStore
	tools    *ToolRegistry
	log      *logging.Logger
	now      func() time.Time
}

// NewRunner creates a turn runner.
func NewRunner(
	cfg RunnerConfig,
	client llm.Client,
	sessions SessionStore,
	registry *ToolRegistry,
	log *logging.Logger,
) *Runner {
	return &Runner{
		cfg:      cfg,
		client:   client,
		sessions: sessions,
		tools:    registry,
		log:      log.Sub("agent"),
		now:      time.Now,
	}
}

// Run processes one user utterance and always produces a reply: any
// failure inside the turn is logged and converted into FallbackReply at
// this boundary.
func (r *Runner) Run(ctx context.Context, sessionKey, text string) *RunResult {
	start := r.now()
	session := r.sessions.GetOrCreate(sessionKey)

	result, err := r.turn(ctx, session.ID, text)
	if err != nil {
		r.log.Error().Err(err).Str("sessionId", session.ID).Msg("turn failed")
		return &RunResult{
			Reply:     FallbackReply,
			SessionID: session.ID,
			Duration:  time.Since(start),
		}
	}

	result.SessionID = session.ID
	result.Duration = time.Since(start)
	return result
}

// turn walks the state machine: decide, optionally invoke and chain, then
// synthesize.
func (r *Runner) turn(ctx context.Context, sessionID, text string) (*RunResult, error) {
	r.sessions.Append(sessionID, domain.Message{
		Role:      domain.RoleUser,
		Content:   text,
		Timestamp: r.now(),
	})

	system := BuildSystemPrompt(PromptConfig{
		AgentName:   r.cfg.AgentName,
		ExtraPrompt: r.cfg.ExtraPrompt,
		Now:         r.now,
	})

	// Decide: full tool catalog attached, selection left to the model.
	decision, err := r.client.Complete(ctx, llm.CompletionRequest{
		Model:       r.cfg.Model,
		System:      system,
		Messages:    r.sessions.History(sessionID),
		Tools:       r.definitions(),
		MaxTokens:   r.cfg.MaxTokens,
		Temperature: r.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("decision completion: %w", err)
	}

	// Direct answer: no tool requested, no second round-trip.
	if len(decision.ToolCalls) == 0 {
		r.sessions.Append(sessionID, domain.Message{
			Role:      domain.RoleAssistant,
			Content:   decision.Content,
			Timestamp: r.now(),
		})
		return &RunResult{
			Reply: decision.Content,
			Model: decision.Model,
			Usage: decision.Usage,
		}, nil
	}

	// Only the first requested invocation is honored.
	call := decision.ToolCalls[0]
	if extra := len(decision.ToolCalls) - 1; extra > 0 {
		r.log.Debug().Int("ignored", extra).Msg("ignoring additional tool calls")
	}

	args := map[string]any{}
	if call.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return nil, fmt.Errorf("parse arguments for tool %s: %w", call.Name, err)
		}
	}

	r.log.Info().Str("tool", call.Name).RawJSON("args", rawArgs(call.Arguments)).Msg("invoking tool")

	result, err := r.tools.Invoke(ctx, call.Name, args)
	if err != nil {
		return nil, fmt.Errorf("invoke tool %s: %w", call.Name, err)
	}

	// Check-then-book chaining: the booking result replaces the check
	// result under the original tool-call id, since the protocol tracks a
	// single outstanding call per turn.
	chained := false
	if call.Name == tools.NameCheckAvailability && wantsBooking(text) && slotReportedFree(result) {
		if booked, ok := r.chainBooking(ctx, args, text); ok {
			result = booked
			chained = true
		}
	}

	r.sessions.Append(sessionID, domain.Message{
		Role:    domain.RoleAssistant,
		Content: decision.Content,
		ToolCalls: []domain.ToolCall{{
			ID:        call.ID,
			Name:      call.Name,
			Arguments: call.Arguments,
		}},
		Timestamp: r.now(),
	})
	r.sessions.Append(sessionID, domain.Message{
		Role:       domain.RoleTool,
		Content:    result,
		ToolCallID: call.ID,
		Timestamp:  r.now(),
	})

	// Synthesize: no tool catalog attached.
	synthesis, err := r.client.Complete(ctx, llm.CompletionRequest{
		Model:       r.cfg.Model,
		System:      system,
		Messages:    r.sessions.History(sessionID),
		MaxTokens:   r.cfg.MaxTokens,
		Temperature: r.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("synthesis completion: %w", err)
	}

	reply := synthesis.Content
	if reply == "" {
		reply = synthesisFallback
	}

	r.sessions.Append(sessionID, domain.Message{
		Role:      domain.RoleAssistant,
		Content:   reply,
		Timestamp: r.now(),
	})

	return &RunResult{
		Reply:    reply,
		Model:    synthesis.Model,
		ToolUsed: call.Name,
		Chained:  chained,
		Usage: llm.Usage{
			InputTokens:  decision.Usage.InputTokens + synthesis.Usage.InputTokens,
			OutputTokens: decision.Usage.OutputTokens + synthesis.Usage.OutputTokens,
		},
	}, nil
}

// chainBooking invokes the booking tool directly, bypassing the decision
// round-trip. The timestamp is reused from the already-validated check
// arguments; the description comes from the utterance or the default
// placeholder. Returns ok=false when the chain cannot be built, leaving
// the check result untouched.
func (r *Runner) chainBooking(ctx context.Context, checkArgs map[string]any, utterance string) (string, bool) {
	raw, _ := checkArgs[tools.ArgDataHora].(string)
	timestamp, err := schedule.Normalize(raw)
	if err != nil {
		r.log.Warn().Err(err).Msg("chained booking skipped: check timestamp did not normalize")
		return "", false
	}

	description := extractDescription(utterance)

	result, err := r.tools.Invoke(ctx, tools.NameScheduleAppointment, map[string]any{
		tools.ArgDataHora:  timestamp,
		tools.ArgDescricao: description,
	})
	if err != nil {
		r.log.Warn().Err(err).Msg("chained booking failed")
		return "", false
	}

	r.log.Info().
		Str("timestamp", timestamp).
		Str("description", description).
		Msg("chained booking executed")

	return result, true
}

func (r *Runner) definitions() []llm.ToolDefinition {
	defs := r.tools.Definitions()
	out := make([]llm.ToolDefinition, 0, len(defs))
	for _, d := range defs {
		out = append(out, llm.ToolDefinition{
			Name:        d.Name,
			Description: d.Description,
			InputSchema: d.InputSchema,
		})
	}
	return out
}

// rawArgs guards RawJSON against empty payloads.
func rawArgs(s string) []byte {
	if s == "" {
		return []byte("{}")
	}
	return []byte(s)
}
