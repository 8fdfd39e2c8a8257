package cli

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/deploygen/deploygen/internal/config"
	"github.com/deploygen/deploygen/internal/driver"
)

const applyManifest = `apps:
  - name: web
    domain: example.com
    path: /
    kind: static
    root: /srv/www/example
  - name: api
    domain: example.com
    path: /api
    kind: proxy
    port: 3000
    command: /usr/bin/node server.js
`

func TestRunApply(t *testing.T) {
	tests := []struct {
		name        string
		manifest    string
		dryRun      bool
		noReload    bool
		skipConfirm bool
		stdin       string
		isRoot      bool
		setupDriver func(*driver.MockDriver)
		wantErr     bool
		errContains string
		validate    func(*testing.T, *driver.MockDriver, *MockUnitInstaller)
	}{
		{
			name:        "apply installs sites and units",
			manifest:    applyManifest,
			skipConfirm: true,
			isRoot:      true,
			validate: func(t *testing.T, mockDrv *driver.MockDriver, units *MockUnitInstaller) {
				if len(mockDrv.InstallCalls) != 1 {
					t.Fatalf("expected 1 Install call, got %d", len(mockDrv.InstallCalls))
				}
				if mockDrv.InstallCalls[0].Domain != "example.com" {
					t.Errorf("expected example.com, got %s", mockDrv.InstallCalls[0].Domain)
				}
				if !strings.Contains(mockDrv.InstallCalls[0].Content, "proxy_pass http://127.0.0.1:3000") {
					t.Error("installed config should proxy to port 3000")
				}
				if len(mockDrv.EnableCalls) != 1 {
					t.Errorf("expected 1 Enable call, got %d", len(mockDrv.EnableCalls))
				}
				if mockDrv.TestCalls != 1 {
					t.Errorf("expected 1 Test call, got %d", mockDrv.TestCalls)
				}
				if mockDrv.ReloadCalls != 1 {
					t.Errorf("expected 1 Reload call, got %d", mockDrv.ReloadCalls)
				}
				if _, ok := units.Units["api.service"]; !ok {
					t.Error("api.service unit should be installed")
				}
				if units.ReloadCalls != 1 {
					t.Errorf("expected 1 daemon-reload, got %d", units.ReloadCalls)
				}
				if len(units.EnabledUnits) != 1 || units.EnabledUnits[0] != "api.service" {
					t.Errorf("expected api.service enabled, got %v", units.EnabledUnits)
				}
			},
		},
		{
			name:        "dry run touches nothing",
			manifest:    applyManifest,
			dryRun:      true,
			skipConfirm: true,
			isRoot:      false, // dry run must not require root
			validate: func(t *testing.T, mockDrv *driver.MockDriver, units *MockUnitInstaller) {
				if len(mockDrv.InstallCalls) != 0 {
					t.Errorf("dry run should not install, got %d calls", len(mockDrv.InstallCalls))
				}
				if units.ReloadCalls != 0 {
					t.Errorf("dry run should not reload systemd")
				}
			},
		},
		{
			name:        "without root fails",
			manifest:    applyManifest,
			skipConfirm: true,
			isRoot:      false,
			wantErr:     true,
			errContains: "root privileges",
		},
		{
			name:     "declined confirmation aborts cleanly",
			manifest: applyManifest,
			stdin:    "n\n",
			isRoot:   true,
			validate: func(t *testing.T, mockDrv *driver.MockDriver, units *MockUnitInstaller) {
				if len(mockDrv.InstallCalls) != 0 {
					t.Errorf("declined apply should not install, got %d calls", len(mockDrv.InstallCalls))
				}
			},
		},
		{
			name:        "no-reload skips reload",
			manifest:    applyManifest,
			skipConfirm: true,
			noReload:    true,
			isRoot:      true,
			validate: func(t *testing.T, mockDrv *driver.MockDriver, units *MockUnitInstaller) {
				if mockDrv.TestCalls != 1 {
					t.Errorf("Test should still be called, got %d", mockDrv.TestCalls)
				}
				if mockDrv.ReloadCalls != 0 {
					t.Errorf("expected 0 Reload calls, got %d", mockDrv.ReloadCalls)
				}
			},
		},
		{
			name:        "test failure rolls back installed sites",
			manifest:    applyManifest,
			skipConfirm: true,
			isRoot:      true,
			setupDriver: func(mockDrv *driver.MockDriver) {
				mockDrv.TestFunc = func() error {
					return errors.New("syntax error")
				}
			},
			wantErr:     true,
			errContains: "configuration test failed",
			validate: func(t *testing.T, mockDrv *driver.MockDriver, units *MockUnitInstaller) {
				if len(mockDrv.DisableCalls) != 1 {
					t.Errorf("expected 1 Disable call for rollback, got %d", len(mockDrv.DisableCalls))
				}
				if len(mockDrv.RemoveCalls) != 1 {
					t.Errorf("expected 1 Remove call for rollback, got %d", len(mockDrv.RemoveCalls))
				}
			},
		},
		{
			name: "conflicting manifest fails before any install",
			manifest: `apps:
  - name: a
    domain: example.com
    path: /api
    kind: proxy
    port: 3000
  - name: b
    domain: example.com
    path: /api/
    kind: proxy
    port: 3001
`,
			skipConfirm: true,
			isRoot:      true,
			wantErr:     true,
			errContains: "conflict",
			validate: func(t *testing.T, mockDrv *driver.MockDriver, units *MockUnitInstaller) {
				if len(mockDrv.InstallCalls) != 0 {
					t.Errorf("conflicting plan should not install anything")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			availableDir := filepath.Join(tempDir, "sites-available")
			enabledDir := filepath.Join(tempDir, "sites-enabled")

			mockDrv := driver.NewMockDriver("nginx", availableDir, enabledDir)
			if tt.setupDriver != nil {
				tt.setupDriver(mockDrv)
			}
			mockUnits := &MockUnitInstaller{}

			writeManifest(t, tt.manifest)

			dryRun = tt.dryRun
			noReload = tt.noReload
			skipConfirm = tt.skipConfirm
			defer func() {
				dryRun = false
				noReload = false
				skipConfirm = false
			}()

			cfg := config.New()
			cfg.Paths = &config.PathOverrides{
				Available: availableDir,
				Enabled:   enabledDir,
				Units:     filepath.Join(tempDir, "units"),
			}

			stdin := tt.stdin
			if stdin == "" {
				stdin = "y\n"
			}

			oldDeps := deps
			deps = NewMockDeps().
				WithConfig(cfg).
				WithDriver(mockDrv).
				WithUnitInstaller(mockUnits).
				WithRootAccess(tt.isRoot).
				WithStdinInput(stdin).
				Build()
			defer func() { deps = oldDeps }()

			err := runApply(nil, nil)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.validate != nil {
				tt.validate(t, mockDrv, mockUnits)
			}
		})
	}
}
