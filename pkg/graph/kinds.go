package graph

// Kind classifies a node in the attack graph. A node's kind is assigned when
// the node is first created and never changes afterwards.
type Kind string

const (
	KindHost          Kind = "host"
	KindVulnerability Kind = "vulnerability"
	KindPrivilege     Kind = "privilege"
	KindService       Kind = "service"
	KindExploit       Kind = "exploit"

	// KindImplicit marks nodes created because something referenced them
	// (a network edge endpoint, an exploit pre/postcondition) without a
	// declaration of their own, e.g. "attacker" or "internet".
	KindImplicit Kind = "implicit"
)

// Recognized top-level record sections and the kind each declares.
// The vulnerability kind is spelled out explicitly: stripping a trailing "s"
// from "vulnerabilities" would produce the wrong word.
var sectionKinds = map[string]Kind{
	SectionHosts:           KindHost,
	SectionVulnerabilities: KindVulnerability,
	SectionPrivileges:      KindPrivilege,
	SectionServices:        KindService,
}

// Section names recognized in raw configuration data.
const (
	SectionHosts           = "hosts"
	SectionVulnerabilities = "vulnerabilities"
	SectionPrivileges      = "privileges"
	SectionServices        = "services"
	SectionExploits        = "exploits"
	SectionNetworkEdges    = "network_edges"
	SectionNetwork         = "network" // legacy: source ID -> list of targets
)

// RecordSections lists the sections normalized into ID-keyed record maps.
// The legacy "network" section keeps its source-keyed shape and the "graph"
// section is metadata, so neither appears here.
var RecordSections = []string{
	SectionHosts,
	SectionVulnerabilities,
	SectionPrivileges,
	SectionServices,
	SectionExploits,
	SectionNetworkEdges,
}
