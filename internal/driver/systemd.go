package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/deploygen/deploygen/internal/executor"
)

// Systemd installs rendered service units for proxy applications.
type Systemd struct {
	unitDir string
	exec    executor.CommandExecutor
}

// NewSystemd creates a Systemd installer with the default unit directory.
func NewSystemd() *Systemd {
	return &Systemd{
		unitDir: "/etc/systemd/system",
		exec:    executor.NewSystemExecutor(),
	}
}

// NewSystemdWithDir creates a Systemd installer with a custom unit directory.
func NewSystemdWithDir(unitDir string) *Systemd {
	return &Systemd{
		unitDir: unitDir,
		exec:    executor.NewSystemExecutor(),
	}
}

// NewSystemdWithExecutor creates a Systemd installer with a custom unit directory and executor (for testing)
func NewSystemdWithExecutor(unitDir string, exec executor.CommandExecutor) *Systemd {
	return &Systemd{
		unitDir: unitDir,
		exec:    exec,
	}
}

// UnitDir returns the unit file directory.
func (s *Systemd) UnitDir() string {
	return s.unitDir
}

// Install writes a rendered unit file.
func (s *Systemd) Install(unitName string, content string) error {
	if err := os.MkdirAll(s.unitDir, 0755); err != nil {
		return fmt.Errorf("failed to create unit directory: %w", err)
	}

	unitPath := filepath.Join(s.unitDir, unitName)
	if err := os.WriteFile(unitPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write unit file: %w", err)
	}

	return nil
}

// Remove deletes a unit file.
func (s *Systemd) Remove(unitName string) error {
	unitPath := filepath.Join(s.unitDir, unitName)
	if err := os.Remove(unitPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("unit %s not found", unitName)
		}
		return fmt.Errorf("failed to remove unit file: %w", err)
	}
	return nil
}

// List returns all service unit names in the unit directory.
func (s *Systemd) List() ([]string, error) {
	entries, err := os.ReadDir(s.unitDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read unit directory: %w", err)
	}

	units := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".service") {
			units = append(units, entry.Name())
		}
	}
	return units, nil
}

// DaemonReload makes systemd pick up new or changed unit files.
func (s *Systemd) DaemonReload() error {
	output, err := s.exec.Execute("systemctl", "daemon-reload")
	if err != nil {
		return fmt.Errorf("systemctl daemon-reload failed: %s", string(output))
	}
	return nil
}

// Enable enables and starts a unit.
func (s *Systemd) Enable(unitName string) error {
	output, err := s.exec.Execute("systemctl", "enable", "--now", unitName)
	if err != nil {
		return fmt.Errorf("failed to enable unit %s: %s", unitName, string(output))
	}
	return nil
}

// Disable stops and disables a unit.
func (s *Systemd) Disable(unitName string) error {
	output, err := s.exec.Execute("systemctl", "disable", "--now", unitName)
	if err != nil {
		return fmt.Errorf("failed to disable unit %s: %s", unitName, string(output))
	}
	return nil
}
