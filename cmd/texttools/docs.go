package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Nakamura2828/ComfyUI-JK-TextTools/nodes"
)

// docsCmd represents the docs command.
var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Generate node documentation",
	Long: `Generate reference documentation for every node in the registry.

The documentation includes descriptions, schemas, and examples for each node.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if output == jsonFormat {
			return generateJSONDocs(allNodeMetadata())
		}
		return generateMarkdownDocs(allNodeMetadata())
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)
}

// generateMarkdownDocs generates Markdown documentation.
func generateMarkdownDocs(metas []nodes.NodeMetadata) error {
	var sb strings.Builder

	sb.WriteString("# JK-TextTools Node Reference\n\n")
	sb.WriteString("Reference for every node in the registry.\n\n")
	sb.WriteString("## Table of Contents\n\n")

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
		sb.WriteString(fmt.Sprintf("- %s\n", cat))
		for _, meta := range categories[cat] {
			sb.WriteString(fmt.Sprintf("  - [%s](#%s)\n", meta.Type, meta.Type))
		}
	}

	sb.WriteString("\n---\n\n")

	for _, cat := range categoryNames {
		sb.WriteString(fmt.Sprintf("## %s\n\n", cat))

		for _, meta := range categories[cat] {
			sb.WriteString(fmt.Sprintf("### %s\n\n", meta.Type))
			sb.WriteString(fmt.Sprintf("**%s** — %s\n\n", meta.Name, meta.Description))

			if meta.Since != "" {
				sb.WriteString(fmt.Sprintf("**Since:** %s\n\n", meta.Since))
			}

			writeInputDocs(&sb, meta)

			sb.WriteString(fmt.Sprintf("**Outputs:** %s\n\n", strings.Join(meta.OutputNames, ", ")))
			if len(meta.OutputSchema) > 0 {
				sb.WriteString("```json\n")
				schemaJSON, _ := json.MarshalIndent(meta.OutputSchema, "", "  ")
				sb.WriteString(string(schemaJSON))
				sb.WriteString("\n```\n\n")
			}

			writeExampleDocs(&sb, meta)

			sb.WriteString("---\n\n")
		}
	}

	fmt.Print(sb.String())
	return nil
}

// writeInputDocs renders the per-property input documentation.
func writeInputDocs(sb *strings.Builder, meta nodes.NodeMetadata) {
	props, ok := meta.InputSchema["properties"].(map[string]any)
	if !ok {
		return
	}
	sb.WriteString("**Inputs:**\n\n")

	propNames := make([]string, 0, len(props))
	for name := range props {
		propNames = append(propNames, name)
	}
	sort.Strings(propNames)

	required := map[string]bool{}
	if reqList, ok := meta.InputSchema["required"].([]string); ok {
		for _, req := range reqList {
			required[req] = true
		}
	}

	for _, name := range propNames {
		prop, ok := props[name].(map[string]any)
		if !ok {
			continue
		}
		desc, _ := prop["description"].(string)

		sb.WriteString(fmt.Sprintf("- **%s**", name))
		if required[name] {
			sb.WriteString(" *(required)*")
		}
		sb.WriteString(fmt.Sprintf(": %s\n", desc))

		if t, ok := prop["type"].(string); ok {
			sb.WriteString(fmt.Sprintf("  - Type: `%s`\n", t))
		}
		if def, ok := prop["default"]; ok {
			sb.WriteString(fmt.Sprintf("  - Default: `%v`\n", def))
		}
		if enum, ok := prop["enum"].([]string); ok {
			values := make([]string, len(enum))
			for i, v := range enum {
				values[i] = fmt.Sprintf("`%s`", v)
			}
			sb.WriteString(fmt.Sprintf("  - Allowed values: %s\n", strings.Join(values, ", ")))
		}
	}
	sb.WriteString("\n")
}

// writeExampleDocs renders a node's examples.
func writeExampleDocs(sb *strings.Builder, meta nodes.NodeMetadata) {
	if len(meta.Examples) == 0 {
		return
	}
	sb.WriteString("**Examples:**\n\n")
	for i, example := range meta.Examples {
		sb.WriteString(fmt.Sprintf("Example %d: %s\n\n", i+1, example.Name))
		if example.Description != "" {
			sb.WriteString(fmt.Sprintf("%s\n\n", example.Description))
		}
		if example.Input != nil {
			sb.WriteString("Input:\n```json\n")
			inputJSON, _ := json.MarshalIndent(example.Input, "", "  ")
			sb.WriteString(string(inputJSON))
			sb.WriteString("\n```\n\n")
		}
		if example.Output != nil {
			sb.WriteString("Output:\n```json\n")
			outputJSON, _ := json.MarshalIndent(example.Output, "", "  ")
			sb.WriteString(string(outputJSON))
			sb.WriteString("\n```\n\n")
		}
	}
}

// generateJSONDocs generates JSON documentation.
func generateJSONDocs(metas []nodes.NodeMetadata) error {
	doc := map[string]any{
		"title":       "JK-TextTools Node Reference",
		"description": "Reference for every node in the registry",
		"version":     version,
		"nodes":       metas,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
