package plan

import (
	"sort"

	"github.com/deploygen/deploygen/internal/descriptor"
	"github.com/deploygen/deploygen/internal/errors"
)

// Resolve turns a set of validated descriptors into a conflict-free
// routing plan. If any two descriptors claim the same domain+path, two
// proxy backends claim the same local port, or two apps carry the same
// name, resolution fails with a *errors.ConflictError listing every
// conflict found; no partial plan is ever returned.
//
// Within a domain, rules are ordered by normalized path length descending
// (longest-prefix-first), ties broken by input order, so path routes
// shadow the domain's catch-all. Domains are ordered alphabetically for
// deterministic output. Callers may run Resolve concurrently on
// independent sets; the input is only read.
func Resolve(ds []descriptor.Descriptor) (*Plan, error) {
	conflicts := detectConflicts(ds)
	if len(conflicts) > 0 {
		return nil, &errors.ConflictError{Conflicts: conflicts}
	}

	type indexedRule struct {
		rule  RoutingRule
		index int
	}

	byDomain := make(map[string][]indexedRule)
	for i, d := range ds {
		byDomain[d.Domain] = append(byDomain[d.Domain], indexedRule{
			rule: RoutingRule{
				Domain: d.Domain,
				Path:   d.NormalizedPath(),
				App:    d,
			},
			index: i,
		})
	}

	domains := make([]string, 0, len(byDomain))
	for domain := range byDomain {
		domains = append(domains, domain)
	}
	sort.Strings(domains)

	plan := &Plan{Groups: make([]DomainGroup, 0, len(domains))}
	for _, domain := range domains {
		group := byDomain[domain]
		// Longest prefix first; SliceStable keeps input order for equal lengths.
		sort.SliceStable(group, func(a, b int) bool {
			return len(group[a].rule.Path) > len(group[b].rule.Path)
		})
		rules := make([]RoutingRule, len(group))
		for i, r := range group {
			rules[i] = r.rule
		}
		plan.Groups = append(plan.Groups, DomainGroup{Domain: domain, Rules: rules})
	}
	return plan, nil
}

// detectConflicts scans the full set and collects every duplicate route,
// port collision, and duplicate app name. Routes are compared per domain
// on normalized paths; ports and names are compared globally, ports
// because they are a single-server resource and names because they key
// the generated supervisor units. Empty names are skipped; the manifest
// loader fills them in before resolution.
func detectConflicts(ds []descriptor.Descriptor) []errors.Conflict {
	var conflicts []errors.Conflict

	type routeKey struct {
		domain string
		path   string
	}
	routes := make(map[routeKey]int)
	ports := make(map[int]int)
	names := make(map[string]int)

	for i, d := range ds {
		key := routeKey{domain: d.Domain, path: d.NormalizedPath()}
		if first, seen := routes[key]; seen {
			conflicts = append(conflicts, errors.Conflict{
				Kind:   errors.ConflictDuplicateRoute,
				IndexA: first,
				IndexB: i,
				Domain: key.domain,
				Path:   key.path,
			})
		} else {
			routes[key] = i
		}

		if d.Kind == descriptor.KindProxy {
			if first, seen := ports[d.Port]; seen {
				conflicts = append(conflicts, errors.Conflict{
					Kind:   errors.ConflictPortCollision,
					IndexA: first,
					IndexB: i,
					Port:   d.Port,
				})
			} else {
				ports[d.Port] = i
			}
		}

		if d.Name != "" {
			if first, seen := names[d.Name]; seen {
				conflicts = append(conflicts, errors.Conflict{
					Kind:   errors.ConflictDuplicateName,
					IndexA: first,
					IndexB: i,
					Name:   d.Name,
				})
			} else {
				names[d.Name] = i
			}
		}
	}
	return conflicts
}
