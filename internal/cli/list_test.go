package cli

import (
	"path/filepath"
	"testing"

	"github.com/deploygen/deploygen/internal/driver"
)

func TestRunList(t *testing.T) {
	tempDir := t.TempDir()
	availableDir := filepath.Join(tempDir, "sites-available")
	enabledDir := filepath.Join(tempDir, "sites-enabled")

	t.Run("lists installed sites", func(t *testing.T) {
		mockDrv := driver.NewMockDriver("nginx", availableDir, enabledDir)
		mockDrv.ListFunc = func() ([]string, error) {
			return []string{"b.example.com", "a.example.com"}, nil
		}
		mockDrv.IsEnabledFunc = func(domain string) (bool, error) {
			return domain == "a.example.com", nil
		}

		oldDeps := deps
		deps = NewMockDeps().WithDriver(mockDrv).Build()
		defer func() { deps = oldDeps }()

		if err := runList(nil, nil); err != nil {
			t.Fatalf("runList failed: %v", err)
		}

		if mockDrv.ListCalls != 1 {
			t.Errorf("expected 1 List call, got %d", mockDrv.ListCalls)
		}
	})

	t.Run("empty list", func(t *testing.T) {
		mockDrv := driver.NewMockDriver("nginx", availableDir, enabledDir)
		mockDrv.ListFunc = func() ([]string, error) {
			return []string{}, nil
		}

		oldDeps := deps
		deps = NewMockDeps().WithDriver(mockDrv).Build()
		defer func() { deps = oldDeps }()

		if err := runList(nil, nil); err != nil {
			t.Fatalf("runList failed: %v", err)
		}
	})
}
