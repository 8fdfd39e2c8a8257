// Package render turns a resolved routing plan into textual configuration
// using embedded Go templates.
//
// Two kinds of artifact are produced:
//   - site configurations: one reverse-proxy config block per domain, for
//     nginx, apache, or caddy
//   - supervisor units: one systemd service per proxy application that
//     declares a command
//
// # Template Organization
//
//	templates/nginx/site.tmpl
//	templates/apache/site.tmpl
//	templates/caddy/site.tmpl
//	templates/systemd/service.tmpl
//
// # Ordering Contract
//
// Renderers emit location/handle blocks in exactly the order the plan
// provides them (longest prefix first within a domain). The renderer never
// re-sorts; plan resolution is the single source of route ordering.
//
// # Rendering
//
//	content, err := render.Site("nginx", group, render.Options{SSL: true})
//	unit, err := render.Unit(app)
package render
