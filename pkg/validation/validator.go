// Package validation cross-checks the referential integrity of normalized
// attack-graph data. Every violation produces one human-readable message;
// an empty result means the configuration is sound. Content problems are
// never errors here — the only failure mode is input that is not a mapping
// at all.
package validation

import (
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/kestrelsec/threatviz/pkg/cvss"
	"github.com/kestrelsec/threatviz/pkg/graph"
)

// Network-edge sources may name a well-known external origin that has no
// record of its own. Targets get no such bypass.
var sourceBypass = map[string]bool{
	"internet": true,
	"attacker": true,
}

var validate = validator.New()

// vulnerabilityShape holds the range-checked numeric fields of a
// vulnerability record.
type vulnerabilityShape struct {
	CVSS *float64 `validate:"omitempty,gte=0,lte=10"`
}

// serviceShape holds the range-checked numeric fields of a service record.
type serviceShape struct {
	Port *int `validate:"omitempty,gte=1,lte=65535"`
}

// Validate checks raw (or already-normalized) configuration data and
// returns one message per violation. It returns an error only when raw is
// not a mapping-like structure.
func Validate(raw any) ([]string, error) {
	data, ok := raw.(map[string]any)
	if !ok {
		return nil, &graph.GraphError{Op: "validate", Cause: graph.ErrNotMapping}
	}
	normalized := graph.Normalize(data)

	hosts := graph.SectionRecords(normalized, graph.SectionHosts)
	vulns := graph.SectionRecords(normalized, graph.SectionVulnerabilities)
	privileges := graph.SectionRecords(normalized, graph.SectionPrivileges)
	services := graph.SectionRecords(normalized, graph.SectionServices)
	exploits := graph.SectionRecords(normalized, graph.SectionExploits)

	// Exploits may chain through any declared entity except other exploits.
	declared := make(map[string]bool, len(hosts)+len(vulns)+len(privileges)+len(services))
	for id := range hosts {
		declared[id] = true
	}
	for id := range vulns {
		declared[id] = true
	}
	for id := range privileges {
		declared[id] = true
	}
	for id := range services {
		declared[id] = true
	}

	problems := make([]string, 0)

	if len(hosts) == 0 {
		problems = append(problems, "configuration declares no hosts")
	}

	problems = append(problems, checkHostRefs(vulns, hosts, "vulnerability")...)
	problems = append(problems, checkHostRefs(services, hosts, "service")...)
	problems = append(problems, checkHostRefs(privileges, hosts, "privilege")...)
	problems = append(problems, checkExploits(exploits, vulns, declared)...)
	problems = append(problems, checkNetworkEdges(normalized, declared)...)
	problems = append(problems, checkSeverities(vulns)...)
	problems = append(problems, checkServiceShapes(services)...)

	return problems, nil
}

// checkHostRefs verifies that each record's host/affected_host reference
// names a declared host.
func checkHostRefs(records map[string]map[string]any, hosts map[string]map[string]any, what string) []string {
	var problems []string
	for _, id := range sortedKeys(records) {
		host := hostRef(records[id])
		if host == "" {
			continue
		}
		if _, ok := hosts[host]; !ok {
			problems = append(problems, fmt.Sprintf("%s %q references unknown host %q", what, id, host))
		}
	}
	return problems
}

// checkExploits verifies exploit vulnerability references and that every
// pre/postcondition resolves to a declared host, vulnerability, privilege
// or service. Exploits themselves are not valid condition targets.
func checkExploits(exploits, vulns map[string]map[string]any, declared map[string]bool) []string {
	var problems []string
	for _, id := range sortedKeys(exploits) {
		rec := exploits[id]
		if ref, ok := rec["vulnerability"].(string); ok && ref != "" {
			if _, exists := vulns[ref]; !exists {
				problems = append(problems, fmt.Sprintf("exploit %q references unknown vulnerability %q", id, ref))
			}
		}
		for _, pre := range conditionList(rec, "preconditions", "precondition") {
			if !declared[pre] {
				problems = append(problems, fmt.Sprintf("exploit %q precondition %q does not match any declared host, vulnerability, privilege or service", id, pre))
			}
		}
		for _, post := range conditionList(rec, "postconditions", "postcondition") {
			if !declared[post] {
				problems = append(problems, fmt.Sprintf("exploit %q postcondition %q does not match any declared host, vulnerability, privilege or service", id, post))
			}
		}
	}
	return problems
}

// checkNetworkEdges verifies endpoints of both the network_edges records
// and the legacy source-keyed network section. Sources may use the
// well-known bypass names; targets may not.
func checkNetworkEdges(normalized map[string]any, declared map[string]bool) []string {
	var problems []string

	edges := graph.SectionRecords(normalized, graph.SectionNetworkEdges)
	for _, key := range sortedKeys(edges) {
		rec := edges[key]
		from, _ := rec["from"].(string)
		to, _ := rec["to"].(string)
		if from != "" && !declared[from] && !sourceBypass[from] {
			problems = append(problems, fmt.Sprintf("network edge %q has unknown source %q", key, from))
		}
		if to != "" && !declared[to] {
			problems = append(problems, fmt.Sprintf("network edge %q has unknown target %q", key, to))
		}
	}

	legacy, ok := normalized[graph.SectionNetwork].(map[string]any)
	if !ok {
		return problems
	}
	for _, source := range sortedKeys(legacy) {
		if !declared[source] && !sourceBypass[source] {
			problems = append(problems, fmt.Sprintf("network edge source %q is not declared", source))
		}
		for _, target := range legacyTargetList(legacy[source]) {
			if !declared[target] {
				problems = append(problems, fmt.Sprintf("network edge %q -> %q has unknown target", source, target))
			}
		}
	}
	return problems
}

// checkSeverities surfaces malformed CVSS inputs, keyed by the owning
// vulnerability ID. Resolution itself is delegated to pkg/cvss; the range
// check on explicit numeric scores goes through the struct validator.
func checkSeverities(vulns map[string]map[string]any) []string {
	var problems []string
	for _, id := range sortedKeys(vulns) {
		rec := vulns[id]
		score := numericField(rec, "cvss")
		vector, _ := rec["cvss_vector"].(string)

		if err := validate.Struct(vulnerabilityShape{CVSS: score}); err != nil {
			problems = append(problems, fmt.Sprintf("vulnerability %q: cvss score %v outside valid range [0.0, 10.0]", id, *score))
			continue
		}
		if _, err := cvss.Resolve(score, vector); err != nil {
			problems = append(problems, fmt.Sprintf("vulnerability %q: %v", id, err))
		}
	}
	return problems
}

// checkServiceShapes range-checks declared service ports.
func checkServiceShapes(services map[string]map[string]any) []string {
	var problems []string
	for _, id := range sortedKeys(services) {
		port := intField(services[id], "port")
		if err := validate.Struct(serviceShape{Port: port}); err != nil {
			problems = append(problems, fmt.Sprintf("service %q: port %d outside valid range [1, 65535]", id, *port))
		}
	}
	return problems
}

func hostRef(rec map[string]any) string {
	for _, key := range []string{"host", "affected_host"} {
		if s, ok := rec[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func conditionList(rec map[string]any, plural, singular string) []string {
	for _, key := range []string{plural, singular} {
		switch v := rec[key].(type) {
		case []any:
			var out []string
			for _, item := range v {
				if s, ok := item.(string); ok && s != "" {
					out = append(out, s)
				}
			}
			return out
		case string:
			if v != "" {
				return []string{v}
			}
		}
	}
	return nil
}

func legacyTargetList(value any) []string {
	switch v := value.(type) {
	case []any:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case map[string]any:
		return legacyTargetList(v["targets"])
	case string:
		return []string{v}
	}
	return nil
}

func numericField(rec map[string]any, key string) *float64 {
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
	}
	return nil
}

func intField(rec map[string]any, key string) *int {
	switch v := rec[key].(type) {
	case int:
		return &v
	case int64:
		n := int(v)
		return &n
	case float64:
		n := int(v)
		return &n
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
