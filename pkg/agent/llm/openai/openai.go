// Package openai implements llm.Provider on the OpenAI chat API. A
// custom base URL allows any OpenAI-compatible endpoint (Gaia,
// OpenRouter, local inference) to serve as the backend.
package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/eventsync-labs/agent/pkg/agent/llm"
	oai "github.com/sashabaranov/go-openai"
)

type Provider struct {
	client *oai.Client
}

type Config struct {
	APIKey  string
	BaseURL string
}

func New(cfg Config) *Provider {
	clientCfg := oai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Provider{
		client: oai.NewClientWithConfig(clientCfg),
	}
}

// Chat sends one chat completion request and maps the response back to
// llm types.
func (p *Provider) Chat(ctx context.Context, req llm.Request) (*llm.Response, error) {
	resp, err := p.client.CreateChatCompletion(ctx, p.buildRequest(req))
	if err != nil {
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}

	choice := resp.Choices[0]

	result := &llm.Response{
		Content: choice.Message.Content,
		Usage: llm.Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		},
	}

	switch choice.FinishReason {
	case oai.FinishReasonToolCalls:
		result.StopReason = llm.StopReasonToolUse
	case oai.FinishReasonLength:
		result.StopReason = llm.StopReasonLength
	default:
		result.StopReason = llm.StopReasonEnd
	}

	for _, tc := range choice.Message.ToolCalls {
		input := make(map[string]any)
		_ = json.Unmarshal([]byte(tc.Function.Arguments), &input)
		result.ToolCalls = append(result.ToolCalls, llm.ToolCall{
			ID:    tc.ID,
			Name:  tc.Function.Name,
			Input: input,
		})
	}

	return result, nil
}

func (p *Provider) buildRequest(req llm.Request) oai.ChatCompletionRequest {
	messages := make([]oai.ChatCompletionMessage, 0, len(req.Messages)+1)

	if req.System != "" {
		messages = append(messages, oai.ChatCompletionMessage{
			Role:    oai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}

	for _, msg := range req.Messages {
		switch msg.Role {
		case llm.RoleUser:
			messages = append(messages, oai.ChatCompletionMessage{
				Role:    oai.ChatMessageRoleUser,
				Content: msg.Content,
			})

		case llm.RoleAssistant:
			m := oai.ChatCompletionMessage{
				Role:    oai.ChatMessageRoleAssistant,
				Content: msg.Content,
			}
			for _, tc := range msg.ToolCalls {
				args, _ := json.Marshal(tc.Input)
				m.ToolCalls = append(m.ToolCalls, oai.ToolCall{
					ID:   tc.ID,
					Type: oai.ToolTypeFunction,
					Function: oai.FunctionCall{
						Name:      tc.Name,
						Arguments: string(args),
					},
				})
			}
			messages = append(messages, m)

		case llm.RoleTool:
			if msg.ToolResult != nil {
				messages = append(messages, oai.ChatCompletionMessage{
					Role:       oai.ChatMessageRoleTool,
					Content:    msg.ToolResult.Content,
					ToolCallID: msg.ToolResult.ToolCallID,
				})
			}
		}
	}

	out := oai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: float32(req.Temperature),
	}

	for _, def := range req.Tools {
		out.Tools = append(out.Tools, oai.Tool{
			Type: oai.ToolTypeFunction,
			Function: &oai.FunctionDefinition{
				Name:        def.Name,
				Description: def.Description,
				Parameters:  def.Parameters,
			},
		})
	}

	return out
}
