package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/deploygen/deploygen/internal/config"
	"github.com/deploygen/deploygen/internal/descriptor"
	"github.com/deploygen/deploygen/internal/driver"
	pkgerrors "github.com/deploygen/deploygen/internal/errors"
	"github.com/deploygen/deploygen/internal/platform"
)

// writeManifest writes manifest content to a temp file and points the
// -f flag at it for the duration of the test.
func writeManifest(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "deploy.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	old := manifestFlag
	manifestFlag = path
	t.Cleanup(func() { manifestFlag = old })

	return path
}

func TestManifestPath(t *testing.T) {
	cfg := config.New()
	cfg.Manifest = "configured.yaml"

	t.Run("flag wins", func(t *testing.T) {
		old := manifestFlag
		manifestFlag = "flagged.yaml"
		defer func() { manifestFlag = old }()

		if got := manifestPath(cfg); got != "flagged.yaml" {
			t.Errorf("expected flagged.yaml, got %s", got)
		}
	})

	t.Run("config fallback", func(t *testing.T) {
		old := manifestFlag
		manifestFlag = ""
		defer func() { manifestFlag = old }()

		if got := manifestPath(cfg); got != "configured.yaml" {
			t.Errorf("expected configured.yaml, got %s", got)
		}
	})
}

func TestDriverPaths(t *testing.T) {
	t.Run("config override", func(t *testing.T) {
		cfg := config.New()
		cfg.Paths = &config.PathOverrides{
			Available: "/custom/available",
			Enabled:   "/custom/enabled",
		}

		paths, err := driverPaths(cfg)
		if err != nil {
			t.Fatalf("driverPaths failed: %v", err)
		}
		if paths.Available != "/custom/available" {
			t.Errorf("expected /custom/available, got %s", paths.Available)
		}
		if paths.Enabled != "/custom/enabled" {
			t.Errorf("expected /custom/enabled, got %s", paths.Enabled)
		}
	})

	t.Run("override without enabled reuses available", func(t *testing.T) {
		cfg := config.New()
		cfg.Paths = &config.PathOverrides{Available: "/custom/conf.d"}

		paths, err := driverPaths(cfg)
		if err != nil {
			t.Fatalf("driverPaths failed: %v", err)
		}
		if paths.Enabled != "/custom/conf.d" {
			t.Errorf("expected /custom/conf.d, got %s", paths.Enabled)
		}
	})

	t.Run("detected paths", func(t *testing.T) {
		oldDeps := deps
		deps = NewMockDeps().Build()
		defer func() { deps = oldDeps }()

		cfg := config.New()
		paths, err := driverPaths(cfg)
		if err != nil {
			t.Fatalf("driverPaths failed: %v", err)
		}
		if paths.Available != "/etc/nginx/sites-available" {
			t.Errorf("expected detected nginx path, got %s", paths.Available)
		}
	})

	t.Run("detection failure", func(t *testing.T) {
		oldDeps := deps
		deps = NewMockDeps().WithPlatformError(errors.New("unsupported")).Build()
		defer func() { deps = oldDeps }()

		cfg := config.New()
		if _, err := driverPaths(cfg); err == nil {
			t.Error("expected error when detection fails")
		}
	})
}

func TestUnitDir(t *testing.T) {
	t.Run("config override", func(t *testing.T) {
		cfg := config.New()
		cfg.Paths = &config.PathOverrides{Units: "/custom/units"}

		dir, err := unitDir(cfg)
		if err != nil {
			t.Fatalf("unitDir failed: %v", err)
		}
		if dir != "/custom/units" {
			t.Errorf("expected /custom/units, got %s", dir)
		}
	})

	t.Run("detected", func(t *testing.T) {
		oldDeps := deps
		deps = NewMockDeps().WithPlatformPaths(&platform.PlatformPaths{
			Units: "/run/systemd/system",
		}).Build()
		defer func() { deps = oldDeps }()

		cfg := config.New()
		dir, err := unitDir(cfg)
		if err != nil {
			t.Fatalf("unitDir failed: %v", err)
		}
		if dir != "/run/systemd/system" {
			t.Errorf("expected /run/systemd/system, got %s", dir)
		}
	})
}

func TestResolvePlanReportsAllProblems(t *testing.T) {
	t.Run("validation failures", func(t *testing.T) {
		ds := []descriptor.Descriptor{
			{Name: "bad-domain", Domain: "", Kind: descriptor.KindStatic, Root: "/srv/www"},
			{Name: "bad-port", Domain: "example.com", Kind: descriptor.KindProxy, Port: 0},
		}

		_, err := resolvePlan(ds)
		if err == nil {
			t.Fatal("expected error for invalid descriptors")
		}
		if !strings.Contains(err.Error(), "2 invalid") {
			t.Errorf("error should count both failures: %v", err)
		}
	})

	t.Run("conflicts", func(t *testing.T) {
		ds := []descriptor.Descriptor{
			{Name: "a", Domain: "example.com", PathPrefix: "/api", Kind: descriptor.KindProxy, Port: 3000},
			{Name: "b", Domain: "example.com", PathPrefix: "/api/", Kind: descriptor.KindProxy, Port: 3001},
		}

		_, err := resolvePlan(ds)
		if err == nil {
			t.Fatal("expected error for conflicting routes")
		}
		if !strings.Contains(err.Error(), "conflict") {
			t.Errorf("error should mention conflicts: %v", err)
		}
	})

	t.Run("clean set resolves", func(t *testing.T) {
		ds := []descriptor.Descriptor{
			{Name: "web", Domain: "example.com", PathPrefix: "/", Kind: descriptor.KindStatic, Root: "/srv/www"},
			{Name: "api", Domain: "example.com", PathPrefix: "/api", Kind: descriptor.KindProxy, Port: 3000},
		}

		p, err := resolvePlan(ds)
		if err != nil {
			t.Fatalf("resolvePlan failed: %v", err)
		}
		if len(p.Rules()) != 2 {
			t.Errorf("expected 2 rules, got %d", len(p.Rules()))
		}
	})
}

func TestCreateDriverWithPaths(t *testing.T) {
	paths := driver.Paths{Available: "/tmp/a", Enabled: "/tmp/e"}

	tests := []struct {
		name    string
		wantErr bool
	}{
		{"nginx", false},
		{"apache", false},
		{"caddy", false},
		{"lighttpd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drv, err := createDriverWithPaths(tt.name, paths)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error for unknown driver")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if drv.Name() != tt.name {
				t.Errorf("expected %s, got %s", tt.name, drv.Name())
			}
		})
	}
}

func TestSiteFileName(t *testing.T) {
	if got := siteFileName("apache", "example.com"); got != "example.com.conf" {
		t.Errorf("expected example.com.conf, got %s", got)
	}
	if got := siteFileName("nginx", "example.com"); got != "example.com" {
		t.Errorf("expected example.com, got %s", got)
	}
	if got := siteFileName("caddy", "example.com"); got != "example.com" {
		t.Errorf("expected example.com, got %s", got)
	}
}

func TestBackendLabel(t *testing.T) {
	proxy := descriptor.Descriptor{Kind: descriptor.KindProxy, Port: 3000}
	if got := backendLabel(proxy); got != "127.0.0.1:3000" {
		t.Errorf("expected 127.0.0.1:3000, got %s", got)
	}

	static := descriptor.Descriptor{Kind: descriptor.KindStatic, Root: "/srv/www"}
	if got := backendLabel(static); got != "/srv/www" {
		t.Errorf("expected /srv/www, got %s", got)
	}
}

func TestRequireRoot(t *testing.T) {
	t.Run("without root returns the sentinel", func(t *testing.T) {
		oldDeps := deps
		deps = NewMockDeps().WithRootAccess(false).Build()
		defer func() { deps = oldDeps }()

		err := requireRoot()
		if !pkgerrors.Is(err, pkgerrors.ErrRootRequired) {
			t.Errorf("expected ErrRootRequired, got %v", err)
		}
	})

	t.Run("with root passes", func(t *testing.T) {
		oldDeps := deps
		deps = NewMockDeps().WithRootAccess(true).Build()
		defer func() { deps = oldDeps }()

		if err := requireRoot(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"yes", "y\n", true},
		{"full yes", "yes\n", true},
		{"no", "n\n", false},
		{"empty", "\n", false},
		{"uppercase", "Y\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldDeps := deps
			deps = NewMockDeps().WithStdinInput(tt.input).Build()
			defer func() { deps = oldDeps }()

			if got := confirm("proceed?"); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
