package assessment

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// bankSchemaURL names the bank schema inside the compiler.
const bankSchemaURL = "schema://question-bank.json"

// bankSchema is the JSON schema every question bank file must satisfy.
var bankSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"moduleId": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"module": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id":               map[string]any{"type": "string", "minLength": 1},
				"title":            map[string]any{"type": "string", "minLength": 1},
				"description":      map[string]any{"type": "string"},
				"category":         map[string]any{"enum": []any{"fundamentals", "critical-care", "emergency", "specialty"}},
				"estimatedMinutes": map[string]any{"type": "integer", "minimum": 0},
				"questionCount":    map[string]any{"type": "integer", "minimum": 1},
				"passingScore":     map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
				"route":            map[string]any{"type": "string"},
				"topics":           map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"icon":             map[string]any{"type": "string"},
				"color":            map[string]any{"type": "string", "pattern": "^#[0-9A-Fa-f]{6}$"},
			},
			"required":             []any{"id", "title", "category", "questionCount", "passingScore"},
			"additionalProperties": false,
		},
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":       map[string]any{"type": "integer"},
					"category": map[string]any{"type": "string"},
					"question": map[string]any{"type": "string", "minLength": 1},
					"options": map[string]any{
						"type":     "array",
						"minItems": 2,
						"items":    map[string]any{"type": "string"},
					},
					"correctAnswer": map[string]any{"type": "integer", "minimum": 0},
				},
				"required":             []any{"id", "question", "options", "correctAnswer"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"moduleId", "questions"},
	"additionalProperties": false,
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// validateBankJSON checks raw against the bank schema.
func validateBankJSON(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	sch, err := getCompiledSchema()
	if err != nil {
		return fmt.Errorf("compile bank schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func getCompiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a parsed JSON value, not Go maps with typed slices.
		defBytes, err := json.Marshal(bankSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(bankSchemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(bankSchemaURL)
	})
	return compiledSchema, compileErr
}
