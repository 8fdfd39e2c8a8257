package cli

import (
	"testing"
)

func TestRunPlan(t *testing.T) {
	t.Run("resolvable manifest", func(t *testing.T) {
		writeManifest(t, `apps:
  - name: web
    domain: example.com
    kind: static
    root: /srv/www
  - name: api
    domain: example.com
    path: /api
    kind: proxy
    port: 3000
  - name: blog
    domain: blog.example.com
    kind: static
    root: /srv/blog
`)

		oldDeps := deps
		deps = NewMockDeps().Build()
		defer func() { deps = oldDeps }()

		if err := runPlan(nil, nil); err != nil {
			t.Fatalf("runPlan failed: %v", err)
		}
	})

	t.Run("json output", func(t *testing.T) {
		writeManifest(t, `apps:
  - name: web
    domain: example.com
    kind: static
    root: /srv/www
`)

		oldDeps := deps
		deps = NewMockDeps().Build()
		defer func() { deps = oldDeps }()

		jsonOutput = true
		defer func() { jsonOutput = false }()

		if err := runPlan(nil, nil); err != nil {
			t.Fatalf("runPlan failed: %v", err)
		}
	})

	t.Run("conflicting manifest fails", func(t *testing.T) {
		writeManifest(t, `apps:
  - name: a
    domain: example.com
    kind: proxy
    port: 3000
  - name: b
    domain: example.com
    kind: proxy
    port: 3001
`)

		oldDeps := deps
		deps = NewMockDeps().Build()
		defer func() { deps = oldDeps }()

		if err := runPlan(nil, nil); err == nil {
			t.Error("expected error for duplicate root route")
		}
	})
}
