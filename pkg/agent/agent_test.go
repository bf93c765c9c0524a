package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/eventsync-labs/agent/pkg/agent/conversation"
	"github.com/eventsync-labs/agent/pkg/agent/llm"
	"github.com/eventsync-labs/agent/pkg/agent/tools"
)

// scriptedProvider replays canned responses and records the requests
// it was given.
type scriptedProvider struct {
	responses []*llm.Response
	requests  []llm.Request
}

func (p *scriptedProvider) Chat(ctx context.Context, req llm.Request) (*llm.Response, error) {
	p.requests = append(p.requests, req)
	if len(p.requests) > len(p.responses) {
		return nil, errors.New("scripted provider exhausted")
	}
	return p.responses[len(p.requests)-1], nil
}

func endResponse(content string) *llm.Response {
	return &llm.Response{Content: content, StopReason: llm.StopReasonEnd}
}

func toolUseResponse(calls ...llm.ToolCall) *llm.Response {
	return &llm.Response{StopReason: llm.StopReasonToolUse, ToolCalls: calls}
}

func newTestAgent(provider llm.Provider, registry *tools.Registry) *Agent {
	return New(provider, conversation.NewMemoryStore(), registry,
		WithConfig(DefaultConfig().WithSystemPrompt("You manage events.")),
	)
}

func TestChat(t *testing.T) {
	t.Run("answers directly without tools", func(t *testing.T) {
		provider := &scriptedProvider{responses: []*llm.Response{
			endResponse("Hello! How can I help with your events?"),
		}}
		ag := newTestAgent(provider, tools.NewRegistry())

		resp, err := ag.Chat(context.Background(), ChatRequest{Message: "hi"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Response != "Hello! How can I help with your events?" {
			t.Errorf("unexpected response: %s", resp.Response)
		}
		if resp.SessionID == "" || resp.MessageID == "" {
			t.Error("expected session and message IDs")
		}
		if got := provider.requests[0].System; got != "You manage events." {
			t.Errorf("unexpected system prompt: %s", got)
		}
	})

	t.Run("executes a requested tool and feeds the result back", func(t *testing.T) {
		registry := tools.NewRegistry()
		registry.Register(tools.New("retrieve_event").
			StringParam("event_id", "Event ID", "12345", true).
			Handler(func(ctx context.Context, in tools.Input) (any, error) {
				return "Event retrieved successfully: {\"id\": \"" + in.String("event_id") + "\"}", nil
			}).
			Build())

		provider := &scriptedProvider{responses: []*llm.Response{
			toolUseResponse(llm.ToolCall{ID: "t1", Name: "retrieve_event", Input: map[string]any{"event_id": "12345"}}),
			endResponse("The event 12345 exists."),
		}}
		ag := newTestAgent(provider, registry)

		resp, err := ag.Chat(context.Background(), ChatRequest{Message: "Get event 12345"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(resp.ToolCalls) != 1 || resp.ToolCalls[0].Name != "retrieve_event" {
			t.Fatalf("unexpected tool calls: %v", resp.ToolCalls)
		}
		if resp.ToolCalls[0].Error != "" {
			t.Errorf("unexpected tool error: %s", resp.ToolCalls[0].Error)
		}

		// Second request must carry the tool result back to the model.
		second := provider.requests[1]
		last := second.Messages[len(second.Messages)-1]
		if last.ToolResult == nil || !strings.Contains(last.ToolResult.Content, "Event retrieved successfully") {
			t.Errorf("tool result not fed back: %+v", last)
		}
		if last.ToolResult.IsError {
			t.Error("tool result should not be marked as error")
		}
	})

	t.Run("transport error is stringified, not fatal", func(t *testing.T) {
		registry := tools.NewRegistry()
		registry.Register(tools.New("mint_poap").
			Handler(func(ctx context.Context, in tools.Input) (any, error) {
				return nil, errors.New("dial tcp: connection refused")
			}).
			Build())

		provider := &scriptedProvider{responses: []*llm.Response{
			toolUseResponse(llm.ToolCall{ID: "t1", Name: "mint_poap", Input: map[string]any{}}),
			endResponse("I couldn't reach the POAP API."),
		}}
		ag := newTestAgent(provider, registry)

		resp, err := ag.Chat(context.Background(), ChatRequest{Message: "mint it"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.ToolCalls[0].Error == "" {
			t.Error("expected recorded tool error")
		}

		second := provider.requests[1]
		last := second.Messages[len(second.Messages)-1]
		if last.ToolResult == nil || !last.ToolResult.IsError {
			t.Fatalf("expected error tool result, got: %+v", last)
		}
		if !strings.Contains(last.ToolResult.Content, "connection refused") {
			t.Errorf("unexpected tool result: %s", last.ToolResult.Content)
		}
	})

	t.Run("stops after max turns", func(t *testing.T) {
		registry := tools.NewRegistry()
		registry.Register(tools.New("loop").
			Handler(func(ctx context.Context, in tools.Input) (any, error) {
				return "again", nil
			}).
			Build())

		provider := &scriptedProvider{responses: []*llm.Response{
			toolUseResponse(llm.ToolCall{ID: "t1", Name: "loop", Input: map[string]any{}}),
			toolUseResponse(llm.ToolCall{ID: "t2", Name: "loop", Input: map[string]any{}}),
		}}
		ag := New(provider, conversation.NewMemoryStore(), registry,
			WithConfig(DefaultConfig().WithMaxTurns(2)),
		)

		resp, err := ag.Chat(context.Background(), ChatRequest{Message: "loop forever"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(resp.Response, "allowed steps") {
			t.Errorf("unexpected response: %s", resp.Response)
		}
		if len(resp.ToolCalls) != 2 {
			t.Errorf("expected 2 tool calls, got: %d", len(resp.ToolCalls))
		}
	})

	t.Run("continues an existing session", func(t *testing.T) {
		provider := &scriptedProvider{responses: []*llm.Response{
			endResponse("First answer."),
			endResponse("Second answer."),
		}}
		ag := newTestAgent(provider, tools.NewRegistry())

		first, err := ag.Chat(context.Background(), ChatRequest{Message: "first"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err = ag.Chat(context.Background(), ChatRequest{SessionID: first.SessionID, Message: "second"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		second := provider.requests[1]
		if len(second.Messages) != 3 {
			t.Fatalf("expected full history (3 messages), got: %d", len(second.Messages))
		}
		if second.Messages[0].Content != "first" || second.Messages[1].Content != "First answer." {
			t.Errorf("history replay mismatch: %+v", second.Messages)
		}
	})
}
