package graph

// Attribute extraction helpers. Raw records come from YAML, JSON or TOML
// decoders, so numeric values arrive as assorted concrete types and every
// lookup has to tolerate absence.

// stringAttr returns the first non-empty string value found under keys.
func stringAttr(rec map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := rec[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// stringListAttr normalizes a scalar-or-list attribute into a list. The
// plural key wins when both are present; a scalar string under either key
// becomes a one-element list.
func stringListAttr(rec map[string]any, plural, singular string) []string {
	for _, key := range []string{plural, singular} {
		switch v := rec[key].(type) {
		case []any:
			return stringValues(v)
		case string:
			if v != "" {
				return []string{v}
			}
		}
	}
	return nil
}

func stringValues(items []any) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// floatAttr returns a numeric attribute as *float64, nil when absent or not
// numeric.
func floatAttr(rec map[string]any, key string) *float64 {
	switch v := rec[key].(type) {
	case float64:
		return &v
	case float32:
		f := float64(v)
		return &f
	case int:
		f := float64(v)
		return &f
	case int64:
		f := float64(v)
		return &f
	case uint64:
		f := float64(v)
		return &f
	}
	return nil
}
