package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/agendai/agendai/internal/logging"
)

const defaultRequestTimeout = 60 * time.Second

// OpenAIClient talks to an OpenAI-compatible chat completions endpoint.
type OpenAIClient struct {
	client openai.Client
	log    *logging.Logger
}

// OpenAIOptions configures the OpenAI provider.
type OpenAIOptions struct {
	APIKey  string
	BaseURL string        // empty = api.openai.com
	Timeout time.Duration // 0 = defaultRequestTimeout
}

// NewOpenAIClient creates an OpenAI chat completions client.
func NewOpenAIClient(opts OpenAIOptions, log *logging.Logger) (*OpenAIClient, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("openai: api key is required")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(timeout),
	}
	if base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"); base != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(base))
	}

	return &OpenAIClient{
		client: openai.NewClient(reqOpts...),
		log:    log.Sub("llm.openai"),
	}, nil
}

// Name returns the provider name.
func (c *OpenAIClient) Name() string { return "openai" }

// Complete sends a non-streaming chat completion request.
func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	start := time.Now()

	params, err := buildChatParams(req)
	if err != nil {
		return nil, err
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("openai: empty choices in completion response")
	}

	msg := completion.Choices[0].Message
	resp := &CompletionResponse{
		Content:  msg.Content,
		Model:    completion.Model,
		Duration: time.Since(start),
		Usage: Usage{
			InputTokens:  int(completion.Usage.PromptTokens),
			OutputTokens: int(completion.Usage.CompletionTokens),
		},
	}
	for _, tc := range msg.ToolCalls {
		resp.ToolCalls = append(resp.ToolCalls, ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}

	c.log.Debug().
		Str("model", resp.Model).
		Int("toolCalls", len(resp.ToolCalls)).
		Dur("duration", resp.Duration).
		Msg("completion received")

	return resp, nil
}

// buildChatParams maps the provider-neutral request onto SDK params.
func buildChatParams(req CompletionRequest) (openai.ChatCompletionNewParams, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(req.Model),
	}

	if req.System != "" {
		params.Messages = append(params.Messages, openai.SystemMessage(req.System))
	}

	for _, m := range req.Messages {
		switch m.Role {
		case "system":
			params.Messages = append(params.Messages, openai.SystemMessage(m.Content))
		case "user":
			params.Messages = append(params.Messages, openai.UserMessage(m.Content))
		case "assistant":
			params.Messages = append(params.Messages, assistantMessage(m))
		case "tool":
			params.Messages = append(params.Messages, openai.ToolMessage(m.Content, m.ToolCallID))
		default:
			return params, fmt.Errorf("openai: unsupported message role %q", m.Role)
		}
	}

	for _, def := range req.Tools {
		tool, err := toolParam(def)
		if err != nil {
			return params, err
		}
		params.Tools = append(params.Tools, tool)
	}

	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.Temperature != nil {
		params.Temperature = openai.Float(*req.Temperature)
	}

	return params, nil
}

func assistantMessage(m Message) openai.ChatCompletionMessageParamUnion {
	asst := openai.ChatCompletionAssistantMessageParam{}
	if m.Content != "" {
		asst.Content.OfString = openai.String(m.Content)
	}
	for _, tc := range m.ToolCalls {
		asst.ToolCalls = append(asst.ToolCalls, openai.ChatCompletionMessageToolCallParam{
			ID: tc.ID,
			Function: openai.ChatCompletionMessageToolCallFunctionParam{
				Name:      tc.Name,
				Arguments: tc.Arguments,
			},
		})
	}
	return openai.ChatCompletionMessageParamUnion{OfAssistant: &asst}
}

func toolParam(def ToolDefinition) (openai.ChatCompletionToolParam, error) {
	var schema map[string]any
	if strings.TrimSpace(def.InputSchema) != "" {
		if err := json.Unmarshal([]byte(def.InputSchema), &schema); err != nil {
			return openai.ChatCompletionToolParam{}, fmt.Errorf("openai: invalid schema for tool %s: %w", def.Name, err)
		}
	}

	return openai.ChatCompletionToolParam{
		Function: openai.FunctionDefinitionParam{
			Name:        def.Name,
			Description: openai.String(def.Description),
			Parameters:  openai.FunctionParameters(schema),
		},
	}, nil
}
