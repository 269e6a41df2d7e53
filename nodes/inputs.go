package nodes

// Input readers tolerate the loose typing of host-supplied values: JSON and
// YAML decoders disagree on whether a number arrives as int, int64 or
// float64, so every numeric read coerces. A missing or mistyped input yields
// the fallback.

func stringInput(inputs map[string]any, key, fallback string) string {
	if v, ok := inputs[key].(string); ok {
		return v
	}
	return fallback
}

func intInput(inputs map[string]any, key string, fallback int) int {
	switch v := inputs[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		return int(v)
	case float32:
		return int(v)
	}
	return fallback
}

func floatInput(inputs map[string]any, key string, fallback float64) float64 {
	switch v := inputs[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	}
	return fallback
}

func boolInput(inputs map[string]any, key string, fallback bool) bool {
	if v, ok := inputs[key].(bool); ok {
		return v
	}
	return fallback
}

func listInput(inputs map[string]any, key string) []any {
	if v, ok := inputs[key].([]any); ok {
		return v
	}
	return nil
}
