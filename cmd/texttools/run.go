package main

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	goyaml "github.com/goccy/go-yaml"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Nakamura2828/ComfyUI-JK-TextTools/bbox"
	"github.com/Nakamura2828/ComfyUI-JK-TextTools/nodes"
)

var runInputFiles []string

// runCmd represents the run command.
var runCmd = &cobra.Command{
	Use:   "run <type> [key=value ...]",
	Short: "Invoke a node",
	Long: `Invoke one node from the registry.

Inputs come from --input files (JSON or YAML) and/or key=value arguments;
key=value overrides win. Several --input files are invoked concurrently,
one call per file; every node is stateless so the calls are independent.`,
	Example: `  # Inline inputs
  texttools run string-splitter text=a,b,c

  # Inputs from a file
  texttools run detection-query --input detections.yaml

  # Fan out over several input files
  texttools run detection-query --input frame1.json --input frame2.json min_score=0.5`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNode(args[0], args[1:])
	},
}

func init() {
	runCmd.Flags().StringArrayVar(&runInputFiles, "input", nil, "Input file (JSON or YAML); repeatable")
	rootCmd.AddCommand(runCmd)
}

// runNode invokes a node once per input file (or once with no files),
// merging key=value overrides on top of each file's inputs.
func runNode(nodeType string, overrideArgs []string) error {
	registry := nodes.RegisterAll(verbose)
	n, exists := registry.Get(nodeType)
	if !exists {
		return fmt.Errorf("node type '%s' not found", nodeType)
	}
	meta := n.Metadata()

	overrides, err := parseOverrides(overrideArgs)
	if err != nil {
		return err
	}

	if len(runInputFiles) == 0 {
		out, err := registry.Invoke(nodeType, overrides)
		if err != nil {
			return err
		}
		return printOutputs(&meta, out)
	}

	// One invocation per file; calls are pure, so they run concurrently.
	results := make([]map[string]any, len(runInputFiles))
	var g errgroup.Group
	for i, file := range runInputFiles {
		i, file := i, file
		g.Go(func() error {
			inputs, err := loadInputFile(file)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			for k, v := range overrides {
				inputs[k] = v
			}
			if verbose {
				log.Printf("Invoking %s with inputs from %s", nodeType, file)
			}
			out, err := registry.Invoke(nodeType, inputs)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, out := range results {
		if len(runInputFiles) > 1 {
			fmt.Printf("=== %s ===\n", runInputFiles[i])
		}
		if err := printOutputs(&meta, out); err != nil {
			return err
		}
	}
	return nil
}

// parseOverrides reads key=value arguments, parsing each value as a YAML
// scalar so numbers and booleans arrive typed.
func parseOverrides(args []string) (map[string]any, error) {
	overrides := make(map[string]any, len(args))
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid input %q (want key=value)", arg)
		}
		var parsed any
		if err := goyaml.Unmarshal([]byte(value), &parsed); err != nil {
			parsed = value
		}
		overrides[key] = parsed
	}
	return overrides, nil
}

// loadInputFile reads node inputs from a JSON or YAML file.
func loadInputFile(path string) (map[string]any, error) {
	expanded, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("expand path: %w", err)
	}
	data, err := readFile(expanded)
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(expanded, ".json") {
		parsed, err := oj.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
		inputs, ok := parsed.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("input file is not an object")
		}
		return inputs, nil
	}

	var inputs map[string]any
	if err := goyaml.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	return inputs, nil
}

// printOutputs renders node outputs in the declared order.
func printOutputs(meta *nodes.NodeMetadata, out map[string]any) error {
	normalized := make(map[string]any, len(out))
	for k, v := range out {
		normalized[k] = normalizeValue(v)
	}

	switch output {
	case jsonFormat:
		data, err := json.MarshalIndent(normalized, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal outputs: %w", err)
		}
		fmt.Println(string(data))
	case yamlFormat:
		data, err := goyaml.Marshal(normalized)
		if err != nil {
			return fmt.Errorf("marshal outputs: %w", err)
		}
		fmt.Print(string(data))
	default: // text, one output per line in declared order
		for _, name := range meta.OutputNames {
			v, ok := normalized[name]
			if !ok {
				continue
			}
			if s, isString := v.(string); isString {
				fmt.Printf("%s: %s\n", name, s)
			} else {
				fmt.Printf("%s: %s\n", name, oj.JSON(v))
			}
		}
	}
	return nil
}

// normalizeValue flattens output values into plain data: masks become row
// arrays so every output format renders them the same way.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case *bbox.Mask:
		return t.Rows()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = normalizeValue(item)
		}
		return out
	}
	return v
}
