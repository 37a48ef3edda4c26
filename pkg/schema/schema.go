// pkg/schema/schema.go
package schema

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

const askRequestSchema = `{
	"type": "object",
	"properties": {
		"question": {
			"type": "string",
			"minLength": 1
		}
	},
	"required": ["question"]
}`

var askRequestLoader = gojsonschema.NewStringLoader(askRequestSchema)

// ValidateAskRequest checks a raw request body against the ask-request
// schema: a JSON object with a non-empty string "question" field.
func ValidateAskRequest(body []byte) error {
	result, err := gojsonschema.Validate(askRequestLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("request validation failed: %v", errs)
	}
	return nil
}
