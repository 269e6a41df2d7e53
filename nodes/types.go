package nodes

// NodeMetadata describes a node type: identity, host-facing schemas, declared
// input defaults, and the ordered output contract.
type NodeMetadata struct {
	Type         string         `json:"type"`
	Name         string         `json:"name"`
	Category     string         `json:"category"`
	Description  string         `json:"description"`
	InputSchema  map[string]any `json:"inputSchema,omitempty"`
	OutputSchema map[string]any `json:"outputSchema,omitempty"`
	// Defaults holds declared input defaults, applied before validation.
	Defaults map[string]any `json:"defaults,omitempty"`
	// OutputNames fixes the order outputs are presented in.
	OutputNames []string `json:"outputNames"`
	// OutputIsList marks outputs the host treats as list-typed.
	OutputIsList map[string]bool `json:"outputIsList,omitempty"`
	Examples     []Example       `json:"examples,omitempty"`
	Since        string          `json:"since,omitempty"`
}

// Example shows how to use a node.
type Example struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Input       map[string]any `json:"input,omitempty"`
	Output      map[string]any `json:"output,omitempty"`
}
