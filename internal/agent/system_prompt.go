package agent

import (
	"fmt"
	"strings"
	"time"
)

// PromptConfig controls system prompt generation.
type PromptConfig struct {
	AgentName   string
	ExtraPrompt string
	Now         func() time.Time
}

// BuildSystemPrompt constructs the system prompt for the LLM. Tool
// definitions travel separately in the request's tool catalog, so the
// prompt only carries identity and context.
func BuildSystemPrompt(cfg PromptConfig) string {
	now := time.Now
	if cfg.Now != nil {
		now = cfg.Now
	}

	name := strings.TrimSpace(cfg.AgentName)
	if name == "" {
		name = "Agendai"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Você é %s, um assistente pessoal que responde em português.\n", name)
	fmt.Fprintf(&b, "Data atual: %s\n\n", now().Format("2006-01-02"))
	b.WriteString("Diretrizes:\n")
	b.WriteString("- Use as ferramentas disponíveis quando a pergunta pedir dados externos ou a agenda.\n")
	b.WriteString("- Responda de forma curta e direta.\n")

	if cfg.ExtraPrompt != "" {
		b.WriteString("\n")
		b.WriteString(cfg.ExtraPrompt)
		b.WriteString("\n")
	}

	return b.String()
}
