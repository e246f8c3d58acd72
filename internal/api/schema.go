package api

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// sessionSchema describes the JSON shape of a logged lesson as sent over
// the wire. Domain rules beyond shape, such as the focus-skill minimum,
// are enforced by the session package after decoding.
var sessionSchema = map[string]any{
	"type":                 "object",
	"required":             []any{"date", "duration", "skills", "focus_skills"},
	"additionalProperties": false,
	"properties": map[string]any{
		"id":   map[string]any{"type": "string"},
		"date": map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`},
		"duration": map[string]any{
			"type":    "integer",
			"minimum": 1,
		},
		"instructor":         map[string]any{"type": "string"},
		"location":           map[string]any{"type": "string"},
		"weather_conditions": map[string]any{"type": "string"},
		"general_notes":      map[string]any{"type": "string"},
		"skills": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":                 "object",
				"required":             []any{"name", "rating"},
				"additionalProperties": false,
				"properties": map[string]any{
					"name":     map[string]any{"type": "string", "minLength": 1},
					"rating":   map[string]any{"type": "integer", "minimum": 0, "maximum": 5},
					"notes":    map[string]any{"type": "string"},
					"is_focus": map[string]any{"type": "boolean"},
				},
			},
		},
		"focus_skills": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string", "minLength": 1},
		},
	},
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validateBody validates raw JSON against the named schema definition.
func validateBody(name string, definition map[string]any, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := getCompiledSchema(name, definition)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// getCompiledSchema returns a cached compiled schema or compiles and caches it.
func getCompiledSchema(name string, definition map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value (any), not raw bytes.
	// Marshal then unmarshal to get a clean any representation.
	defBytes, err := json.Marshal(definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}
