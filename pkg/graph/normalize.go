package graph

import "fmt"

// Normalize converts every record section of raw into its canonical ID-keyed
// form and returns a new top-level mapping. Sections may arrive either as an
// ordered list of records carrying an "id" field or as a mapping already
// keyed by ID; both collapse to the keyed form. Records in list form without
// an "id" get a synthetic "item_N" key from their position.
//
// Normalization is idempotent: feeding its output back in returns an equal
// mapping. Sections not listed in RecordSections pass through untouched.
func Normalize(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for key, value := range raw {
		out[key] = value
	}
	for _, section := range RecordSections {
		value, ok := raw[section]
		if !ok {
			continue
		}
		out[section] = normalizeSection(value)
	}
	return out
}

// normalizeSection collapses one section into map[recordID]record form.
func normalizeSection(value any) map[string]any {
	switch v := value.(type) {
	case map[string]any:
		return v
	case []any:
		keyed := make(map[string]any, len(v))
		for i, item := range v {
			rec, ok := item.(map[string]any)
			if !ok {
				keyed[fmt.Sprintf("item_%d", i)] = map[string]any{"value": item}
				continue
			}
			if id, ok := rec["id"].(string); ok && id != "" {
				keyed[id] = rec
			} else {
				keyed[fmt.Sprintf("item_%d", i)] = rec
			}
		}
		return keyed
	default:
		// Unusable section shape; an empty map keeps downstream code simple
		// and the validator reports the missing content.
		return map[string]any{}
	}
}

// SectionRecords extracts a normalized section as ID-keyed records. Records
// that are not mappings are dropped.
func SectionRecords(normalized map[string]any, section string) map[string]map[string]any {
	value, ok := normalized[section].(map[string]any)
	if !ok {
		return nil
	}
	records := make(map[string]map[string]any, len(value))
	for id, raw := range value {
		if rec, ok := raw.(map[string]any); ok {
			records[id] = rec
		}
	}
	return records
}
