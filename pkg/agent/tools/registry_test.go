package tools

import (
	"context"
	"strings"
	"testing"
)

func TestRegistry(t *testing.T) {
	t.Run("registers and retrieves tools", func(t *testing.T) {
		registry := NewRegistry()

		registry.Register(New("retrieve_event").
			Description("Retrieve an event").
			StringParam("event_id", "Event ID", "12345", true).
			Handler(func(ctx context.Context, in Input) (any, error) {
				return "ok", nil
			}).
			Build())

		tool, ok := registry.Get("retrieve_event")
		if !ok {
			t.Fatal("expected to find tool")
		}
		if tool.Description != "Retrieve an event" {
			t.Errorf("unexpected description: %s", tool.Description)
		}
	})

	t.Run("preserves registration order", func(t *testing.T) {
		registry := NewRegistry()

		for _, name := range []string{"mint_poap", "get_claim_secret", "retrieve_event"} {
			registry.Register(New(name).Build())
		}

		names := registry.Names()
		want := []string{"mint_poap", "get_claim_secret", "retrieve_event"}
		for i, name := range want {
			if names[i] != name {
				t.Fatalf("expected %s at position %d, got: %s", name, i, names[i])
			}
		}

		defs := registry.Definitions()
		if len(defs) != 3 || defs[0].Name != "mint_poap" || defs[2].Name != "retrieve_event" {
			t.Errorf("definitions not in registration order: %v", defs)
		}
	})

	t.Run("executes a tool with its input", func(t *testing.T) {
		registry := NewRegistry()

		registry.Register(New("echo").
			StringParam("text", "Text to echo", "", true).
			Handler(func(ctx context.Context, in Input) (any, error) {
				return "echo: " + in.String("text"), nil
			}).
			Build())

		out, err := registry.Execute(context.Background(), "echo", map[string]any{"text": "hello"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out != "echo: hello" {
			t.Errorf("unexpected output: %v", out)
		}
	})

	t.Run("rejects missing required field", func(t *testing.T) {
		registry := NewRegistry()

		called := false
		registry.Register(New("mint_poap").
			StringParam("address", "Address", "", true).
			StringParam("qr_hash", "Claim code", "", true).
			Handler(func(ctx context.Context, in Input) (any, error) {
				called = true
				return nil, nil
			}).
			Build())

		_, err := registry.Execute(context.Background(), "mint_poap", map[string]any{"address": "a@b.c"})
		if err == nil {
			t.Fatal("expected error for missing required field")
		}
		if !strings.Contains(err.Error(), "qr_hash") {
			t.Errorf("error should name the missing field, got: %v", err)
		}
		if called {
			t.Error("handler must not run when required fields are missing")
		}
	})

	t.Run("returns error for unknown tool", func(t *testing.T) {
		registry := NewRegistry()

		_, err := registry.Execute(context.Background(), "nope", nil)
		if err == nil {
			t.Fatal("expected error for unknown tool")
		}
	})
}

func TestBuilder(t *testing.T) {
	t.Run("builds a JSON schema with examples", func(t *testing.T) {
		tool := New("create_event").
			Description("Create an event").
			StringParam("name", "Event name", "Go Meetup", true).
			StringParam("currency", "Currency", "USD", false).
			Build()

		props := tool.Parameters["properties"].(map[string]any)
		name := props["name"].(map[string]any)
		if name["type"] != "string" {
			t.Errorf("expected string type, got: %v", name["type"])
		}
		examples := name["examples"].([]string)
		if len(examples) != 1 || examples[0] != "Go Meetup" {
			t.Errorf("unexpected examples: %v", examples)
		}

		required := tool.Parameters["required"].([]string)
		if len(required) != 1 || required[0] != "name" {
			t.Errorf("expected only name required, got: %v", required)
		}
	})
}

func TestInput(t *testing.T) {
	in := Input{"event_id": "12345", "count": 3}

	if in.String("event_id") != "12345" {
		t.Errorf("unexpected value: %s", in.String("event_id"))
	}
	if in.String("count") != "" {
		t.Error("non-string field should read as empty string")
	}
	if in.StringOr("currency", "USD") != "USD" {
		t.Error("expected fallback value")
	}
	if !in.Has("event_id") || in.Has("missing") {
		t.Error("Has misreported field presence")
	}
}
