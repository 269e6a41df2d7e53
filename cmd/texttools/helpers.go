package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// expandPath expands ~ to home directory.
func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			return home, nil
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// readFile reads an input file after resolving it to an absolute path.
func readFile(path string) ([]byte, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("get absolute path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		return nil, fmt.Errorf("access file: %w", err)
	}
	data, err := os.ReadFile(absPath) // #nosec G304 - User-provided input file
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}
