package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/deploygen/deploygen/internal/executor"
)

// CaddyDriver implements the Driver interface for Caddy
type CaddyDriver struct {
	paths Paths
	exec  executor.CommandExecutor
}

// NewCaddy creates a new Caddy driver with default paths
func NewCaddy() *CaddyDriver {
	return &CaddyDriver{
		paths: Paths{
			Available: "/etc/caddy/sites-available",
			Enabled:   "/etc/caddy/sites-enabled",
		},
		exec: executor.NewSystemExecutor(),
	}
}

// NewCaddyWithPaths creates a new Caddy driver with custom paths
func NewCaddyWithPaths(available, enabled string) *CaddyDriver {
	return &CaddyDriver{
		paths: Paths{
			Available: available,
			Enabled:   enabled,
		},
		exec: executor.NewSystemExecutor(),
	}
}

// NewCaddyWithExecutor creates a new Caddy driver with custom paths and executor (for testing)
func NewCaddyWithExecutor(available, enabled string, exec executor.CommandExecutor) *CaddyDriver {
	return &CaddyDriver{
		paths: Paths{
			Available: available,
			Enabled:   enabled,
		},
		exec: exec,
	}
}

// Name returns the driver name
func (c *CaddyDriver) Name() string {
	return "caddy"
}

// Paths returns the config paths
func (c *CaddyDriver) Paths() Paths {
	return c.paths
}

// Install writes a rendered site config to sites-available
func (c *CaddyDriver) Install(domain string, content string) error {
	// Create sites-available directory if it doesn't exist
	if err := os.MkdirAll(c.paths.Available, 0755); err != nil {
		return fmt.Errorf("failed to create sites-available directory: %w", err)
	}

	// Create sites-enabled directory if it doesn't exist
	if err := os.MkdirAll(c.paths.Enabled, 0755); err != nil {
		return fmt.Errorf("failed to create sites-enabled directory: %w", err)
	}

	// Write config file to sites-available
	configPath := filepath.Join(c.paths.Available, domain)
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Remove deletes a site config
func (c *CaddyDriver) Remove(domain string) error {
	// First disable the site
	if enabled, _ := c.IsEnabled(domain); enabled {
		if err := c.Disable(domain); err != nil {
			return err
		}
	}

	// Remove config file from sites-available
	configPath := filepath.Join(c.paths.Available, domain)
	if err := os.Remove(configPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("site %s not found", domain)
		}
		return fmt.Errorf("failed to remove config file: %w", err)
	}

	return nil
}

// Enable activates a site by creating a symlink
func (c *CaddyDriver) Enable(domain string) error {
	source := filepath.Join(c.paths.Available, domain)
	target := filepath.Join(c.paths.Enabled, domain)

	// Check if source exists
	if _, err := os.Stat(source); os.IsNotExist(err) {
		return fmt.Errorf("site %s not found in sites-available", domain)
	}

	// Check if already enabled
	if _, err := os.Lstat(target); err == nil {
		return fmt.Errorf("site %s is already enabled", domain)
	}

	// Create symlink
	if err := os.Symlink(source, target); err != nil {
		return fmt.Errorf("failed to enable site: %w", err)
	}

	return nil
}

// Disable deactivates a site by removing the symlink
func (c *CaddyDriver) Disable(domain string) error {
	target := filepath.Join(c.paths.Enabled, domain)

	// Check if symlink exists
	info, err := os.Lstat(target)
	if os.IsNotExist(err) {
		return fmt.Errorf("site %s is not enabled", domain)
	}
	if err != nil {
		return fmt.Errorf("failed to check site status: %w", err)
	}

	// Verify it's a symlink
	if info.Mode()&os.ModeSymlink == 0 {
		return fmt.Errorf("site %s is not a symlink, refusing to remove", domain)
	}

	// Remove symlink
	if err := os.Remove(target); err != nil {
		return fmt.Errorf("failed to disable site: %w", err)
	}

	return nil
}

// List returns all site domains from sites-available
func (c *CaddyDriver) List() ([]string, error) {
	entries, err := os.ReadDir(c.paths.Available)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read sites-available: %w", err)
	}

	domains := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			domains = append(domains, entry.Name())
		}
	}

	return domains, nil
}

// IsEnabled checks if a site is enabled
func (c *CaddyDriver) IsEnabled(domain string) (bool, error) {
	target := filepath.Join(c.paths.Enabled, domain)
	_, err := os.Lstat(target)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check site status: %w", err)
	}
	return true, nil
}

// Test validates the caddy config syntax
func (c *CaddyDriver) Test() error {
	output, err := c.exec.Execute("caddy", "validate", "--config", "/etc/caddy/Caddyfile")
	if err != nil {
		return fmt.Errorf("caddy config test failed: %s", string(output))
	}
	return nil
}

// Reload reloads caddy to apply changes
func (c *CaddyDriver) Reload() error {
	output, err := c.exec.Execute("systemctl", "reload", "caddy")
	if err != nil {
		// Try caddy reload as fallback
		output, err = c.exec.Execute("caddy", "reload", "--config", "/etc/caddy/Caddyfile")
		if err != nil {
			return fmt.Errorf("failed to reload caddy: %s", string(output))
		}
	}
	return nil
}
