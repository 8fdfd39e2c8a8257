package plan

import (
	"github.com/deploygen/deploygen/internal/descriptor"
)

// RoutingRule is one entry in a resolved plan: the route a reverse proxy
// must serve and the backend it maps to. Rules carry the descriptor they
// were built from; the path is already normalized.
type RoutingRule struct {
	Domain string                `json:"domain"`
	Path   string                `json:"path"`
	App    descriptor.Descriptor `json:"app"`
}

// DomainGroup holds the routing rules for one domain, ordered
// longest-prefix-first so that a renderer can emit location blocks
// without re-sorting.
type DomainGroup struct {
	Domain string        `json:"domain"`
	Rules  []RoutingRule `json:"rules"`
}

// Plan is a conflict-free routing plan: domain groups in alphabetical
// order, each group's rules in evaluation order. A Plan is immutable once
// produced and owned by the caller that requested it.
type Plan struct {
	Groups []DomainGroup `json:"groups"`
}

// Domains returns the distinct domain set of the plan, in the plan's
// alphabetical order. This is the input the certificate provisioner needs.
func (p *Plan) Domains() []string {
	domains := make([]string, 0, len(p.Groups))
	for _, g := range p.Groups {
		domains = append(domains, g.Domain)
	}
	return domains
}

// Rules returns all routing rules of the plan in output order.
func (p *Plan) Rules() []RoutingRule {
	var rules []RoutingRule
	for _, g := range p.Groups {
		rules = append(rules, g.Rules...)
	}
	return rules
}

// ProxyApps returns the descriptors of all proxy backends in the plan, in
// output order. These are the applications that need supervisor units.
func (p *Plan) ProxyApps() []descriptor.Descriptor {
	var apps []descriptor.Descriptor
	for _, g := range p.Groups {
		for _, r := range g.Rules {
			if r.App.Kind == descriptor.KindProxy {
				apps = append(apps, r.App)
			}
		}
	}
	return apps
}
