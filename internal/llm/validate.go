package llm

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const explanationSchemaURL = "schema://explanation.json"

const explanationSchema = `{
	"type": "object",
	"required": ["explanation"],
	"properties": {
		"explanation": {"type": "string", "minLength": 1},
		"key_points": {"type": "array", "items": {"type": "string"}},
		"exam_tips": {"type": "array", "items": {"type": "string"}},
		"answer_structure": {"type": "array", "items": {"type": "string"}},
		"time_allocation": {"type": "string"}
	}
}`

var (
	schemaOnce     sync.Once
	schemaErr      error
	compiledSchema *jsonschema.Schema
)

func explanationValidator() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		def, err := jsonschema.UnmarshalJSON(strings.NewReader(explanationSchema))
		if err != nil {
			schemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(explanationSchemaURL, def); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(explanationSchemaURL)
	})
	return compiledSchema, schemaErr
}

// validateExplanation checks a raw model reply against the explanation schema.
func validateExplanation(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON from LLM: %w", err)
	}
	schema, err := explanationValidator()
	if err != nil {
		return fmt.Errorf("compile explanation schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("LLM response failed schema validation: %w", err)
	}
	return nil
}
