package tools

// Builder provides a fluent API for declaring tools.
type Builder struct {
	tool *Tool
}

// New starts building a tool.
func New(name string) *Builder {
	return &Builder{
		tool: &Tool{
			Name:       name,
			Parameters: map[string]any{"type": "object", "properties": map[string]any{}, "required": []string{}},
		},
	}
}

// Description sets the natural-language usage prompt. This is the text
// the LLM matches user intent against, so it should name the action
// and give example trigger phrases.
func (b *Builder) Description(desc string) *Builder {
	b.tool.Description = desc
	return b
}

// StringParam adds a string field. The example value is carried in the
// schema so the LLM can see the expected shape of the argument.
func (b *Builder) StringParam(name, description, example string, required bool) *Builder {
	prop := map[string]any{"type": "string", "description": description}
	if example != "" {
		prop["examples"] = []string{example}
	}
	return b.addParam(name, prop, required)
}

// BoolParam adds a boolean field.
func (b *Builder) BoolParam(name, description string, required bool) *Builder {
	return b.addParam(name, map[string]any{"type": "boolean", "description": description}, required)
}

func (b *Builder) addParam(name string, prop map[string]any, required bool) *Builder {
	props := b.tool.Parameters["properties"].(map[string]any)
	props[name] = prop
	if required {
		req := b.tool.Parameters["required"].([]string)
		b.tool.Parameters["required"] = append(req, name)
	}
	return b
}

// Handler sets the tool handler.
func (b *Builder) Handler(h Handler) *Builder {
	b.tool.Handler = h
	return b
}

// Build returns the completed tool.
func (b *Builder) Build() *Tool {
	return b.tool
}
