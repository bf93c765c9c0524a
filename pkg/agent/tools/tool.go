// Package tools defines the tool descriptor and registry handed to the
// LLM provider. A tool is a name, a natural-language usage prompt and a
// JSON-Schema input description; its handler performs one outbound call
// and returns a human-readable result string.
package tools

import "context"

// Tool describes one externally invokable action.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"` // JSON Schema
	Handler     Handler        `json:"-"`
}

// Handler executes a tool. The result is the string shown back to the
// LLM; an error is returned only for transport-level failures, never
// for upstream non-200 responses.
type Handler func(ctx context.Context, input Input) (any, error)

// Definition is the tool descriptor without the handler, as sent to
// the LLM provider.
type Definition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

func (t *Tool) Definition() Definition {
	return Definition{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  t.Parameters,
	}
}

// requiredFields returns the schema's required field names.
func (t *Tool) requiredFields() []string {
	req, _ := t.Parameters["required"].([]string)
	return req
}

// Input is the argument map extracted by the LLM, with typed accessors.
type Input map[string]any

// String returns the named field as a string, or "" when absent or of
// another type.
func (in Input) String(name string) string {
	s, _ := in[name].(string)
	return s
}

// StringOr returns the named field or the fallback when it is absent
// or empty.
func (in Input) StringOr(name, fallback string) string {
	if s := in.String(name); s != "" {
		return s
	}
	return fallback
}

// Has reports whether the field is present.
func (in Input) Has(name string) bool {
	_, ok := in[name]
	return ok
}
