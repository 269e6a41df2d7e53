package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Nakamura2828/ComfyUI-JK-TextTools/bbox"
)

func TestParseOverrides(t *testing.T) {
	overrides, err := parseOverrides([]string{"text=a,b,c", "index=2", "strip=false", "min_score=0.5"})
	if err != nil {
		t.Fatalf("parseOverrides failed: %v", err)
	}

	if overrides["text"] != "a,b,c" {
		t.Errorf("text = %v", overrides["text"])
	}
	// Values parse as YAML scalars, so numbers and booleans arrive typed.
	switch overrides["index"].(type) {
	case int, int64, uint64:
	default:
		t.Errorf("index = %v (%T), want an integer", overrides["index"], overrides["index"])
	}
	if overrides["strip"] != false {
		t.Errorf("strip = %v (%T)", overrides["strip"], overrides["strip"])
	}
	if overrides["min_score"] != 0.5 {
		t.Errorf("min_score = %v (%T)", overrides["min_score"], overrides["min_score"])
	}
}

func TestParseOverridesRejectsBareArgs(t *testing.T) {
	if _, err := parseOverrides([]string{"no-equals"}); err == nil {
		t.Error("Expected error for argument without =")
	}
	if _, err := parseOverrides([]string{"=value"}); err == nil {
		t.Error("Expected error for empty key")
	}
}

func TestLoadInputFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "inputs.json")
	if err := os.WriteFile(jsonPath, []byte(`{"text": "a,b", "index": 1}`), 0o600); err != nil {
		t.Fatal(err)
	}
	inputs, err := loadInputFile(jsonPath)
	if err != nil {
		t.Fatalf("JSON load failed: %v", err)
	}
	if inputs["text"] != "a,b" {
		t.Errorf("JSON inputs = %v", inputs)
	}

	yamlPath := filepath.Join(dir, "inputs.yaml")
	if err := os.WriteFile(yamlPath, []byte("text: x,y\nindex: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	inputs, err = loadInputFile(yamlPath)
	if err != nil {
		t.Fatalf("YAML load failed: %v", err)
	}
	if inputs["text"] != "x,y" {
		t.Errorf("YAML inputs = %v", inputs)
	}

	if _, err := loadInputFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestNormalizeValue(t *testing.T) {
	m := bbox.NewMask(2, 2)
	m.Set(0, 0, 1)

	rows, ok := normalizeValue(m).([][]float32)
	if !ok {
		t.Fatalf("Mask not normalized to rows: %T", normalizeValue(m))
	}
	if rows[0][0] != 1 || rows[1][1] != 0 {
		t.Errorf("Rows = %v", rows)
	}

	// Nested masks inside lists normalize too.
	nested := normalizeValue([]any{m, "s"}).([]any)
	if _, ok := nested[0].([][]float32); !ok {
		t.Errorf("Nested mask not normalized: %T", nested[0])
	}
	if nested[1] != "s" {
		t.Errorf("Scalar changed: %v", nested[1])
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	expanded, err := expandPath("~/inputs.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if expanded != filepath.Join(home, "inputs.yaml") {
		t.Errorf("Expanded = %s", expanded)
	}

	plain, err := expandPath("/tmp/inputs.yaml")
	if err != nil || plain != "/tmp/inputs.yaml" {
		t.Errorf("Plain path changed: %s, %v", plain, err)
	}
}
