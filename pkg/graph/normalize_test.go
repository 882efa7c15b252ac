package graph

import (
	"reflect"
	"testing"
)

func TestNormalize_ListToMap(t *testing.T) {
	raw := map[string]any{
		"hosts": []any{
			map[string]any{"id": "web", "ip": "10.0.0.1"},
			map[string]any{"id": "db"},
		},
	}

	normalized := Normalize(raw)
	hosts := SectionRecords(normalized, SectionHosts)

	if len(hosts) != 2 {
		t.Fatalf("Expected 2 hosts, got %d", len(hosts))
	}
	if hosts["web"]["ip"] != "10.0.0.1" {
		t.Errorf("Expected web host to keep its attributes, got %v", hosts["web"])
	}
	if _, ok := hosts["db"]; !ok {
		t.Error("Expected db host to be keyed by its id")
	}
}

func TestNormalize_SyntheticKeys(t *testing.T) {
	raw := map[string]any{
		"hosts": []any{
			map[string]any{"ip": "10.0.0.1"}, // no id
			"just-a-string",                  // not even a record
		},
	}

	hosts := SectionRecords(Normalize(raw), SectionHosts)

	if _, ok := hosts["item_0"]; !ok {
		t.Errorf("Expected synthetic key item_0, got keys %v", keysOf(hosts))
	}
	if _, ok := hosts["item_1"]; !ok {
		t.Errorf("Expected synthetic key item_1, got keys %v", keysOf(hosts))
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	raw := map[string]any{
		"hosts": []any{
			map[string]any{"id": "a"},
			map[string]any{"id": "b"},
		},
		"vulnerabilities": map[string]any{
			"v1": map[string]any{"host": "a"},
		},
		"graph": map[string]any{"title": "demo"},
	}

	once := Normalize(raw)
	twice := Normalize(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Normalization is not idempotent:\nonce:  %v\ntwice: %v", once, twice)
	}
}

func TestNormalize_PassesThroughUnknownSections(t *testing.T) {
	raw := map[string]any{
		"graph":   map[string]any{"title": "demo"},
		"network": map[string]any{"a": []any{"b"}},
	}

	normalized := Normalize(raw)

	if !reflect.DeepEqual(normalized["graph"], raw["graph"]) {
		t.Error("Expected graph metadata to pass through untouched")
	}
	if !reflect.DeepEqual(normalized["network"], raw["network"]) {
		t.Error("Expected legacy network section to pass through untouched")
	}
}

func TestNormalize_UnusableSection(t *testing.T) {
	raw := map[string]any{"hosts": 42}

	hosts := SectionRecords(Normalize(raw), SectionHosts)
	if len(hosts) != 0 {
		t.Errorf("Expected unusable section to normalize empty, got %v", hosts)
	}
}

func keysOf(m map[string]map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
