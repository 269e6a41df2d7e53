package nodes

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// ApplyDefaults merges a node's declared input defaults under the provided
// inputs. The caller's map is never mutated.
func ApplyDefaults(meta *NodeMetadata, inputs map[string]any) map[string]any {
	if len(meta.Defaults) == 0 && inputs != nil {
		return inputs
	}
	merged := make(map[string]any, len(meta.Defaults)+len(inputs))
	for k, v := range meta.Defaults {
		merged[k] = v
	}
	for k, v := range inputs {
		merged[k] = v
	}
	return merged
}

// ValidateNodeInputs validates inputs against the node's input schema.
func ValidateNodeInputs(meta *NodeMetadata, inputs map[string]any) error {
	if len(meta.InputSchema) == 0 {
		// No schema defined, skip validation
		return nil
	}

	schemaJSON, err := json.Marshal(meta.InputSchema)
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	inputJSON, err := json.Marshal(inputs)
	if err != nil {
		return fmt.Errorf("failed to marshal inputs: %w", err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaJSON)
	documentLoader := gojsonschema.NewBytesLoader(inputJSON)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		var errMsg string
		for i, err := range result.Errors() {
			if i > 0 {
				errMsg += "; "
			}
			errMsg += err.String()
		}
		return fmt.Errorf("input validation failed: %s", errMsg)
	}

	return nil
}
