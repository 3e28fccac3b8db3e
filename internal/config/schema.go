package config

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// configSchema constrains config.json: known keys only, positive
// integers for the session and streak settings.
const configSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"CARDS_DIR":         {"type": "string", "minLength": 1},
		"DATA_FILE":         {"type": "string"},
		"UNITS_PER_THEME":   {"type": "integer", "minimum": 1},
		"VALID_STREAK_DAYS": {"type": "integer", "minimum": 1},
		"REVIEW_VALIDATED":  {"type": "integer", "minimum": 1}
	}
}`

const schemaURL = "recall://config.schema.json"

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// validateSchema checks raw config bytes against the embedded schema.
func validateSchema(data []byte) error {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(configSchema)))
		if err != nil {
			compileErr = fmt.Errorf("parse embedded schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("register schema: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	if compileErr != nil {
		return compileErr
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := compiledSchema.Validate(inst); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
