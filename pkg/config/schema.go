package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "asteroids-config.schema.json"

// configSchema describes the shape of a config document. Every section and
// field is optional; unknown keys are rejected so typos do not silently fall
// back to defaults.
const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "world": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "width":  {"type": "number", "exclusiveMinimum": 0},
        "height": {"type": "number", "exclusiveMinimum": 0}
      }
    },
    "ship": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "radius":       {"type": "number", "exclusiveMinimum": 0},
        "thrust":       {"type": "number"},
        "topSpeed":     {"type": "number", "exclusiveMinimum": 0},
        "speedDecay":   {"type": "number", "minimum": 0},
        "turnRate":     {"type": "number"},
        "fireInterval": {"type": "number", "minimum": 0}
      }
    },
    "bullet": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "radius":      {"type": "number", "exclusiveMinimum": 0},
        "speed":       {"type": "number", "minimum": 0},
        "spawnOffset": {"type": "number", "minimum": 0}
      }
    },
    "asteroids": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "initialCount":   {"type": "integer", "minimum": 0},
        "minRadius":      {"type": "number", "exclusiveMinimum": 0},
        "maxRadius":      {"type": "number", "exclusiveMinimum": 0},
        "minSpeed":       {"type": "number", "minimum": 0},
        "maxSpeed":       {"type": "number", "minimum": 0},
        "spawnClearance": {"type": "number", "minimum": 0}
      }
    },
    "loop": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "maxTimeStep": {"type": "number", "exclusiveMinimum": 0},
        "targetFPS":   {"type": "integer", "minimum": 1},
        "broadPhase":  {"type": "boolean"}
      }
    },
    "seed": {"type": "integer", "minimum": 0}
  }
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func loadSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiledSchema, compileErr = jsonschema.CompileString(schemaURL, configSchema)
	})
	return compiledSchema, compileErr
}

// validateDocument checks raw JSON against the config schema.
func validateDocument(data []byte) error {
	schema, err := loadSchema()
	if err != nil {
		return fmt.Errorf("failed to compile config schema: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
