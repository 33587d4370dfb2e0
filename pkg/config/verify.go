package config

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	// parse schema
	var schema map[string]any
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	if err := validateEnums(schema, cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// validateEnums checks enum-restricted string fields against the values listed in the schema
func validateEnums(schema map[string]any, cfg *Config) error {
	checks := []struct {
		def, field, value string
	}{
		{def: "LLMConfig", field: "response_format", value: cfg.LLM.ResponseFormat},
		{def: "FilterConfig", field: "on_error", value: cfg.Filter.OnError},
	}

	defs, _ := schema["$defs"].(map[string]any)
	for _, c := range checks {
		def, _ := defs[c.def].(map[string]any)
		props, _ := def["properties"].(map[string]any)
		prop, _ := props[c.field].(map[string]any)
		enum, ok := prop["enum"].([]any)
		if !ok {
			return fmt.Errorf("no enum for %s.%s in schema", c.def, c.field)
		}
		found := false
		for _, v := range enum {
			if s, ok := v.(string); ok && s == c.value {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%s value %q is not allowed", c.field, c.value)
		}
	}
	return nil
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return fmt.Errorf("server.timeout is required")
	}
	if cfg.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	if cfg.Cache.Size == 0 {
		return fmt.Errorf("cache.size is required")
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
