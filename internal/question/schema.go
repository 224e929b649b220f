package question

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const bankSchemaURL = "schema://question-bank.json"

// BankSchema describes a question bank file. Questions accept either the
// short keys ("q", "keys") or the long ones ("text", "key_phrases").
var BankSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"company":   map[string]any{"type": "string"},
		"job_title": map[string]any{"type": "string"},
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"q":           map[string]any{"type": "string", "minLength": 1},
					"text":        map[string]any{"type": "string", "minLength": 1},
					"tip":         map[string]any{"type": "string"},
					"keys":        keyListSchema(),
					"key_phrases": keyListSchema(),
				},
				"allOf": []any{
					map[string]any{"anyOf": []any{
						map[string]any{"required": []any{"q"}},
						map[string]any{"required": []any{"text"}},
					}},
					map[string]any{"anyOf": []any{
						map[string]any{"required": []any{"keys"}},
						map[string]any{"required": []any{"key_phrases"}},
					}},
				},
			},
		},
	},
	"required": []any{"questions"},
}

func keyListSchema() map[string]any {
	return map[string]any{
		"type":     "array",
		"minItems": 1,
		"items":    map[string]any{"type": "string", "minLength": 1},
	}
}

var (
	compiledOnce sync.Once
	compiled     *jsonschema.Schema
	compileErr   error
)

// validateSchema checks a decoded JSON document against BankSchema.
func validateSchema(doc any) error {
	compiledOnce.Do(func() {
		// The compiler wants plain JSON values, not Go ints and typed maps.
		defBytes, err := json.Marshal(BankSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(bankSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(bankSchemaURL)
	})
	if compileErr != nil {
		return fmt.Errorf("compile bank schema: %w", compileErr)
	}
	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
