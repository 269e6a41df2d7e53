// Package nodes holds the host-facing node table: every text, JSON, bounding
// box and segmentation node the module exposes, as a statically constructed
// registry. Nodes are stateless; each Invoke is an independent pure call, so
// hosts may run them concurrently without coordination.
//
// Two failure classes are kept strictly apart. Contract errors (unknown node
// type, inputs failing the schema) surface as Go errors from Invoke.
// Recoverable data errors (malformed JSON payloads, out-of-range indices)
// never do: they flow through is_valid / error_message / sentinel outputs so
// a running workflow degrades instead of aborting.
package nodes

import (
	"fmt"
	"sort"
)

// Node is one registry entry.
type Node interface {
	Metadata() NodeMetadata
	Invoke(inputs map[string]any) (map[string]any, error)
}

// Registry manages the node table.
type Registry struct {
	nodes map[string]Node
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{nodes: make(map[string]Node)}
}

// Register adds a node under its metadata type.
func (r *Registry) Register(n Node) {
	r.nodes[n.Metadata().Type] = n
}

// Get returns a node by type.
func (r *Registry) Get(nodeType string) (Node, bool) {
	n, exists := r.nodes[nodeType]
	return n, exists
}

// All returns all registered nodes keyed by type.
func (r *Registry) All() map[string]Node {
	return r.nodes
}

// Types returns the registered node types in sorted order.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.nodes))
	for t := range r.nodes {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Invoke looks up a node, applies its declared input defaults, validates the
// inputs against the node's schema, and calls it. Validation failures are
// contract errors; data-level failures are reported inside the outputs by the
// node itself.
func (r *Registry) Invoke(nodeType string, inputs map[string]any) (map[string]any, error) {
	n, exists := r.Get(nodeType)
	if !exists {
		return nil, fmt.Errorf("unknown node type: %s", nodeType)
	}

	meta := n.Metadata()
	merged := ApplyDefaults(&meta, inputs)
	if err := ValidateNodeInputs(&meta, merged); err != nil {
		return nil, fmt.Errorf("input validation failed for node '%s': %w", nodeType, err)
	}
	return n.Invoke(merged)
}

// RegisterAll builds the full node table.
func RegisterAll(verbose bool) *Registry {
	registry := NewRegistry()

	// String and list nodes
	registry.Register(&StringIndexSelectorNode{Verbose: verbose})
	registry.Register(&StringSplitterNode{Verbose: verbose})
	registry.Register(&ListIndexSelectorNode{Verbose: verbose})
	registry.Register(&StringJoinerNode{Verbose: verbose})

	// JSON and detection nodes
	registry.Register(&JSONPrettyPrinterNode{Verbose: verbose})
	registry.Register(&DetectionQueryNode{Verbose: verbose})
	registry.Register(&DetectionToBBoxNode{Verbose: verbose})
	registry.Register(&JSONToBBoxNode{Verbose: verbose})

	// Bounding box and mask nodes
	registry.Register(&BBoxToMaskNode{Verbose: verbose})
	registry.Register(&BBoxesToMaskNode{Verbose: verbose})
	registry.Register(&MaskToBBoxNode{Verbose: verbose})
	registry.Register(&BBoxToSAM3QueryNode{Verbose: verbose})

	// Segmentation nodes
	registry.Register(&SegsToMaskNode{Verbose: verbose})
	registry.Register(&SegsToSAM3QueryNode{Verbose: verbose})

	return registry
}
