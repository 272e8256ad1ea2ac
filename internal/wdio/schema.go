package wdio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "record.schema.json"

// recordSchema describes what the launcher needs from an effective record. Unknown options are allowed.
const recordSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["runner", "specs", "capabilities"],
  "properties": {
    "runner": {"type": "string"},
    "specs": {"type": "array", "minItems": 1, "items": {"type": "string"}},
    "capabilities": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["platformName"],
        "properties": {"platformName": {"type": "string", "minLength": 1}}
      }
    },
    "maxInstances": {"type": "integer", "minimum": 1},
    "bail": {"type": "integer", "minimum": 0},
    "waitforTimeout": {"type": "integer", "minimum": 0},
    "connectionRetryTimeout": {"type": "integer", "minimum": 0},
    "connectionRetryCount": {"type": "integer", "minimum": 0},
    "port": {"type": "integer", "minimum": 1, "maximum": 65535},
    "logLevel": {"enum": ["trace", "debug", "info", "warn", "error", "silent"]}
  }
}`

var compiledSchema = jsonschema.MustCompileString(schemaURL, recordSchema)

// ValidationError lists every issue found in a record.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid record: %s", strings.Join(e.Issues, "; "))
}

// Validate checks r against the record schema.
func Validate(r Record) error {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("failed to decode record: %w", err)
	}

	err = compiledSchema.Validate(doc)
	if err == nil {
		return nil
	}

	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}

	var issues []string
	for _, c := range findRootCauses(verr) {
		if c.InstanceLocation != "" {
			issues = append(issues, fmt.Sprintf("%s in %s", c.Message, c.InstanceLocation))
			continue
		}
		issues = append(issues, c.Message)
	}
	return &ValidationError{Issues: issues}
}

func findRootCauses(validationError *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if validationError == nil {
		return []*jsonschema.ValidationError{}
	}

	if len(validationError.Causes) == 0 {
		return []*jsonschema.ValidationError{validationError}
	}

	var errors []*jsonschema.ValidationError
	for _, cause := range validationError.Causes {
		errors = append(errors, findRootCauses(cause)...)
	}
	return errors
}
