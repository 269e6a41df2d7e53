package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	goyaml "github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/Nakamura2828/ComfyUI-JK-TextTools/nodes"
)

// nodesCmd represents the nodes command.
var nodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "List available node types",
	Long:  `List every node type in the registry, grouped by category.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNodesList(output)
	},
}

// nodesInfoCmd represents the nodes info command.
var nodesInfoCmd = &cobra.Command{
	Use:   "info <type>",
	Short: "Show detailed info about a node type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNodesInfo(args[0])
	},
}

func init() {
	nodesCmd.AddCommand(nodesInfoCmd)
	rootCmd.AddCommand(nodesCmd)
}

// allNodeMetadata returns the registry's metadata sorted by category then type.
func allNodeMetadata() []nodes.NodeMetadata {
	registry := nodes.RegisterAll(false)

	metas := make([]nodes.NodeMetadata, 0, len(registry.All()))
	for _, nodeType := range registry.Types() {
		n, _ := registry.Get(nodeType)
		metas = append(metas, n.Metadata())
	}
	sort.Slice(metas, func(i, j int) bool {
		if metas[i].Category != metas[j].Category {
			return metas[i].Category < metas[j].Category
		}
		return metas[i].Type < metas[j].Type
	})
	return metas
}

// runNodesList lists all available node types.
func runNodesList(format string) error {
	metas := allNodeMetadata()

	switch format {
	case jsonFormat:
		return outputJSON(metas)
	case yamlFormat:
		return outputYAML(metas)
	default:
		return outputTable(metas)
	}
}

// runNodesInfo shows detailed information about a specific node type.
func runNodesInfo(nodeType string) error {
	registry := nodes.RegisterAll(false)
	n, exists := registry.Get(nodeType)
	if !exists {
		return fmt.Errorf("node type '%s' not found", nodeType)
	}
	meta := n.Metadata()

	fmt.Printf("Node Type: %s\n", meta.Type)
	fmt.Printf("Name: %s\n", meta.Name)
	fmt.Printf("Category: %s\n", meta.Category)
	fmt.Printf("Description: %s\n", meta.Description)
	if meta.Since != "" {
		fmt.Printf("Since: %s\n", meta.Since)
	}
	fmt.Printf("Outputs: %s\n", strings.Join(meta.OutputNames, ", "))
	fmt.Println()

	if len(meta.InputSchema) > 0 {
		fmt.Println("Inputs:")
		schemaJSON, _ := json.MarshalIndent(meta.InputSchema, "  ", "  ")
		fmt.Printf("  %s\n", schemaJSON)
		fmt.Println()
	}

	if len(meta.Examples) > 0 {
		fmt.Println("Examples:")
		for i, example := range meta.Examples {
			fmt.Printf("  %d. %s\n", i+1, example.Name)
			if example.Description != "" {
				fmt.Printf("     %s\n", example.Description)
			}
			if len(example.Input) > 0 {
				inputYAML, _ := goyaml.Marshal(example.Input)
				fmt.Printf("     Input:\n")
				for _, line := range strings.Split(string(inputYAML), "\n") {
					if line != "" {
						fmt.Printf("       %s\n", line)
					}
				}
			}
		}
	}

	return nil
}

// outputTable outputs nodes in table format.
func outputTable(metas []nodes.NodeMetadata) error {
	// Group by category
	categories := make(map[string][]nodes.NodeMetadata)
	for _, meta := range metas {
		categories[meta.Category] = append(categories[meta.Category], meta)
	}

	categoryNames := make([]string, 0, len(categories))
	for cat := range categories {
		categoryNames = append(categoryNames, cat)
	}
	sort.Strings(categoryNames)

	for _, cat := range categoryNames {
		fmt.Printf("\n%s:\n", cat)
		fmt.Println(strings.Repeat("-", len(cat)+1))

		for _, meta := range categories[cat] {
			fmt.Printf("  %-22s %s\n", meta.Type, meta.Description)
		}
	}

	fmt.Printf("\nTotal: %d node types\n", len(metas))
	fmt.Println("\nUse 'texttools nodes info <type>' for detailed information about a specific node.")

	return nil
}

// outputJSON outputs nodes in JSON format.
func outputJSON(metas []nodes.NodeMetadata) error {
	data, err := json.MarshalIndent(metas, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// outputYAML outputs nodes in YAML format.
func outputYAML(metas []nodes.NodeMetadata) error {
	// Convert to YAML-friendly summaries
	summaries := make([]map[string]any, len(metas))
	for i, meta := range metas {
		summaries[i] = map[string]any{
			"type":        meta.Type,
			"name":        meta.Name,
			"category":    meta.Category,
			"description": meta.Description,
			"outputs":     meta.OutputNames,
		}
		if meta.Since != "" {
			summaries[i]["since"] = meta.Since
		}
	}

	yamlData, err := goyaml.Marshal(summaries)
	if err != nil {
		return err
	}

	fmt.Print(string(yamlData))
	return nil
}
