// Package plan contains the planning core of deploygen: per-descriptor
// validation and set-wide conflict resolution.
//
// The package is deliberately free of side effects. Validate and Resolve
// are pure functions over their input; given the same descriptor set they
// always produce the same output, so there is nothing to retry and no
// state to clean up. Rendering, file system changes, and certificate
// requests all live outside this package and consume the Plan it emits.
//
// # Resolution
//
// Resolve groups descriptors by domain and orders each group by
// normalized path length, longest first, with input order breaking ties.
// This mirrors how a reverse proxy must evaluate longest-prefix-match
// before falling through to the catch-all route. Domains are emitted
// alphabetically so repeated runs yield byte-identical plans.
//
// Two kinds of conflict block a plan:
//   - duplicate-route: two descriptors claim the same domain and
//     normalized path
//   - port-collision: two proxy backends claim the same local port,
//     regardless of domain (ports are per-server, not per-domain)
//
// All conflicts in a set are reported together so an operator can fix the
// manifest in one pass. A plan and a conflict report are mutually
// exclusive outputs: Resolve never returns both.
package plan
