// Package agent runs the LLM tool-calling loop over a conversation.
package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/eventsync-labs/agent/pkg/agent/conversation"
	"github.com/eventsync-labs/agent/pkg/agent/llm"
	"github.com/eventsync-labs/agent/pkg/agent/tools"
	"github.com/eventsync-labs/agent/pkg/agent/types"
)

// Re-export types for convenience.
type (
	Message      = types.Message
	ToolCall     = types.ToolCall
	Conversation = types.Conversation
	ChatRequest  = types.ChatRequest
	ChatResponse = types.ChatResponse
)

var NewConversation = types.NewConversation

// Agent orchestrates conversations with an LLM. Each user turn loads
// the session, runs the tool-calling loop until the model stops asking
// for tools, and saves the updated session.
type Agent struct {
	provider  llm.Provider
	convStore conversation.Store
	tools     *tools.Registry
	config    Config
	logger    *slog.Logger
}

// Option configures the agent.
type Option func(*Agent)

// WithConfig sets the agent config.
func WithConfig(cfg Config) Option {
	return func(a *Agent) { a.config = cfg }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Agent) { a.logger = logger }
}

// New creates a new agent.
func New(
	provider llm.Provider,
	convStore conversation.Store,
	toolRegistry *tools.Registry,
	opts ...Option,
) *Agent {
	a := &Agent{
		provider:  provider,
		convStore: convStore,
		tools:     toolRegistry,
		config:    DefaultConfig(),
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Chat handles one user turn.
func (a *Agent) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var conv *types.Conversation
	var err error

	if req.SessionID != "" {
		conv, err = a.convStore.Get(ctx, req.SessionID)
		if err != nil {
			return nil, fmt.Errorf("loading conversation: %w", err)
		}
	}

	if conv == nil {
		conv = NewConversation()
	}

	conv.AddUserMessage(req.Message)

	response, toolCalls, err := a.runLoop(ctx, conv.Messages)
	if err != nil {
		return nil, fmt.Errorf("agent loop: %w", err)
	}

	msg := conv.AddAssistantMessage(response, toolCalls)

	if err := a.convStore.Save(ctx, conv); err != nil {
		return nil, fmt.Errorf("saving conversation: %w", err)
	}

	return &ChatResponse{
		SessionID: conv.ID,
		MessageID: msg.ID,
		Response:  response,
		ToolCalls: toolCalls,
	}, nil
}

func (a *Agent) runLoop(ctx context.Context, messages []Message) (string, []ToolCall, error) {
	var allToolCalls []ToolCall

	llmMessages := a.toLLMMessages(messages)

	for turn := 0; turn < a.config.MaxTurns; turn++ {
		resp, err := a.provider.Chat(ctx, llm.Request{
			Model:       a.config.Model,
			System:      a.config.SystemPrompt,
			Messages:    llmMessages,
			Tools:       a.tools.Definitions(),
			MaxTokens:   a.config.MaxTokens,
			Temperature: a.config.Temperature,
		})
		if err != nil {
			return "", nil, err
		}

		if resp.StopReason != llm.StopReasonToolUse {
			return resp.Content, allToolCalls, nil
		}

		llmMessages = append(llmMessages, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		for _, tc := range resp.ToolCalls {
			output, err := a.tools.Execute(ctx, tc.Name, tc.Input)

			toolCall := ToolCall{
				ID:    tc.ID,
				Name:  tc.Name,
				Input: tc.Input,
			}

			// Transport errors are stringified here so every tool
			// failure reaches the model the same way; upstream
			// non-200s were already formatted by the handler.
			var resultContent string
			if err != nil {
				toolCall.Error = err.Error()
				resultContent = fmt.Sprintf("Error: %v", err)
				a.logger.Warn("tool execution failed",
					"tool", tc.Name,
					"error", err,
				)
			} else {
				toolCall.Output = output
				resultContent = fmt.Sprint(output)
			}

			allToolCalls = append(allToolCalls, toolCall)

			llmMessages = append(llmMessages, llm.Message{
				Role: llm.RoleTool,
				ToolResult: &llm.ToolResult{
					ToolCallID: tc.ID,
					Content:    resultContent,
					IsError:    err != nil,
				},
			})
		}
	}

	return "I wasn't able to complete your request in the allowed steps.", allToolCalls, nil
}

func (a *Agent) toLLMMessages(messages []Message) []llm.Message {
	result := make([]llm.Message, 0, len(messages))

	for _, msg := range messages {
		switch msg.Role {
		case types.RoleUser:
			result = append(result, llm.Message{
				Role:    llm.RoleUser,
				Content: msg.Content,
			})
		case types.RoleAssistant:
			result = append(result, llm.Message{
				Role:    llm.RoleAssistant,
				Content: msg.Content,
			})
		}
	}

	return result
}

// GetConversation returns a conversation by ID.
func (a *Agent) GetConversation(ctx context.Context, id string) (*types.Conversation, error) {
	return a.convStore.Get(ctx, id)
}

// DeleteConversation removes a conversation by ID.
func (a *Agent) DeleteConversation(ctx context.Context, id string) error {
	return a.convStore.Delete(ctx, id)
}
