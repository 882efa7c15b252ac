package graph

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/kestrelsec/threatviz/pkg/cvss"
	"github.com/kestrelsec/threatviz/pkg/logging"
)

// BuildOptions tunes graph construction. The zero value is usable.
type BuildOptions struct {
	// Logger receives a build summary and per-record severity warnings.
	// Nil means no logging.
	Logger logging.Logger
}

// Build normalizes raw configuration data and constructs the adjacency
// model. It fails only when raw is not a mapping at the top level; dangling
// references and malformed CVSS inputs are content problems left to
// pkg/validation.
func Build(raw any) (*Model, error) {
	return BuildWithOptions(raw, BuildOptions{})
}

// BuildWithOptions is Build with explicit options.
func BuildWithOptions(raw any, opts BuildOptions) (*Model, error) {
	log := opts.Logger
	if log == nil {
		log = logging.NewNopLogger()
	}
	start := time.Now()

	data, ok := raw.(map[string]any)
	if !ok {
		return nil, &GraphError{Op: "build", Cause: ErrNotMapping}
	}
	normalized := Normalize(data)

	m := NewModel()
	m.BuildID = uuid.NewString()
	b := &builder{model: m}

	// Declared nodes first, so edges added later find their kinds in place.
	for _, section := range []string{SectionHosts, SectionVulnerabilities, SectionPrivileges, SectionServices} {
		kind := sectionKinds[section]
		records := SectionRecords(normalized, section)
		for _, id := range sortedKeys(records) {
			b.ensureNode(id, kind)
			m.Records[id] = records[id]
		}
	}

	b.addNetworkEdges(normalized)
	b.addExploitChains(normalized)
	b.addOwnershipLinks(normalized)

	resolveSeverities(m, SectionRecords(normalized, SectionVulnerabilities), log)

	log.Info("attack graph built",
		logging.Component("builder"),
		logging.BuildID(m.BuildID),
		logging.Nodes(m.NodeCount()),
		logging.Edges(m.EdgeCount()),
		logging.Latency(time.Since(start)))

	return m, nil
}

type builder struct {
	model *Model
}

// ensureNode creates the forward/reverse entries for id and records its kind.
// A node's kind is immutable: if id already exists, the existing kind wins.
func (b *builder) ensureNode(id string, kind Kind) {
	m := b.model
	if m.Forward[id] == nil {
		m.Forward[id] = make(map[string]bool)
	}
	if m.Reverse[id] == nil {
		m.Reverse[id] = make(map[string]bool)
	}
	if _, exists := m.Kinds[id]; !exists {
		m.Kinds[id] = kind
	}
}

// addEdge records the directed edge from -> to in both adjacency maps,
// auto-creating either endpoint if it has not been declared.
func (b *builder) addEdge(from, to string) {
	b.ensureNode(from, KindImplicit)
	b.ensureNode(to, KindImplicit)
	b.model.Forward[from][to] = true
	b.model.Reverse[to][from] = true
}

// addNetworkEdges folds both the network_edges records and the legacy
// source-keyed network section into the adjacency maps. Undeclared endpoints
// such as "attacker" are created on the fly.
func (b *builder) addNetworkEdges(normalized map[string]any) {
	edges := SectionRecords(normalized, SectionNetworkEdges)
	for _, key := range sortedKeys(edges) {
		rec := edges[key]
		from := stringAttr(rec, "from")
		to := stringAttr(rec, "to")
		if from == "" || to == "" {
			continue
		}
		b.addEdge(from, to)
	}

	legacy, ok := normalized[SectionNetwork].(map[string]any)
	if !ok {
		return
	}
	for _, source := range sortedKeys(legacy) {
		for _, target := range legacyTargets(legacy[source]) {
			b.addEdge(source, target)
		}
	}
}

// legacyTargets extracts the target list of one legacy network entry, which
// is either a plain list of IDs or a record holding one under "targets".
func legacyTargets(value any) []string {
	switch v := value.(type) {
	case []any:
		return stringValues(v)
	case map[string]any:
		if targets, ok := v["targets"].([]any); ok {
			return stringValues(targets)
		}
	case string:
		return []string{v}
	}
	return nil
}

// addExploitChains materializes precondition -> exploit -> postcondition
// edges. Scalar and plural pre/postcondition forms are normalized to lists
// first so both produce identical adjacency.
func (b *builder) addExploitChains(normalized map[string]any) {
	exploits := SectionRecords(normalized, SectionExploits)
	for _, id := range sortedKeys(exploits) {
		rec := exploits[id]
		b.ensureNode(id, KindExploit)
		b.model.Records[id] = rec
		for _, pre := range stringListAttr(rec, "preconditions", "precondition") {
			b.addEdge(pre, id)
		}
		for _, post := range stringListAttr(rec, "postconditions", "postcondition") {
			b.addEdge(id, post)
		}
	}
}

// addOwnershipLinks ties vulnerabilities and services to their hosts
// (host -> X) and privileges to theirs with the reversed direction
// (privilege -> host): a host exposes a vulnerability or service, while a
// privilege grants access to a host. The asymmetry is deliberate domain
// semantics; do not unify the directions.
//
// Unlike network edges and exploit chains, an ownership link whose host is
// not already in the model is dropped without creating the host. The
// validator reports such references; the builder stays lenient.
func (b *builder) addOwnershipLinks(normalized map[string]any) {
	vulns := SectionRecords(normalized, SectionVulnerabilities)
	for _, id := range sortedKeys(vulns) {
		if host := stringAttr(vulns[id], "host", "affected_host"); host != "" && b.exists(host) {
			b.addEdge(host, id)
		}
	}
	services := SectionRecords(normalized, SectionServices)
	for _, id := range sortedKeys(services) {
		if host := stringAttr(services[id], "host", "affected_host"); host != "" && b.exists(host) {
			b.addEdge(host, id)
		}
	}
	privileges := SectionRecords(normalized, SectionPrivileges)
	for _, id := range sortedKeys(privileges) {
		if host := stringAttr(privileges[id], "host", "affected_host"); host != "" && b.exists(host) {
			b.addEdge(id, host)
		}
	}
}

func (b *builder) exists(id string) bool {
	_, ok := b.model.Forward[id]
	return ok
}

// resolveSeverities runs each vulnerability's raw CVSS inputs through the
// resolver once at build time. Resolution failures are logged and skipped;
// the validator surfaces them as content errors.
func resolveSeverities(m *Model, vulns map[string]map[string]any, log logging.Logger) {
	for _, id := range sortedKeys(vulns) {
		rec := vulns[id]
		score := floatAttr(rec, "cvss")
		vector := stringAttr(rec, "cvss_vector")
		resolved, err := cvss.Resolve(score, vector)
		if err != nil {
			log.Warn("cvss resolution failed",
				logging.Component("builder"),
				logging.Node(id),
				logging.Error(err))
			continue
		}
		if resolved != nil {
			m.Severities[id] = *resolved
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
