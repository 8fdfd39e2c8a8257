package driver

import (
	"fmt"

	"github.com/deploygen/deploygen/internal/errors"
)

// Driver installs rendered site configurations for one web server. The
// content it installs comes from the render package; drivers never build
// configuration themselves.
type Driver interface {
	// Name returns the driver name (nginx, apache, caddy)
	Name() string

	// Install writes a rendered site config to sites-available
	Install(domain string, content string) error

	// Remove deletes a site config
	Remove(domain string) error

	// Enable activates a site
	Enable(domain string) error

	// Disable deactivates a site
	Disable(domain string) error

	// List returns all installed site domains
	List() ([]string, error)

	// IsEnabled checks if a site is enabled
	IsEnabled(domain string) (bool, error)

	// Test validates the web server config syntax
	Test() error

	// Reload reloads the web server
	Reload() error

	// Paths returns the driver's config paths
	Paths() Paths
}

// Paths contains the web server config directory paths
type Paths struct {
	Available string // config available directory
	Enabled   string // config enabled directory
}

// New creates the driver for the given target with the given paths.
func New(name string, paths Paths) (Driver, error) {
	switch name {
	case "nginx":
		return NewNginxWithPaths(paths.Available, paths.Enabled), nil
	case "apache":
		return NewApacheWithPaths(paths.Available, paths.Enabled), nil
	case "caddy":
		return NewCaddyWithPaths(paths.Available, paths.Enabled), nil
	default:
		return nil, errors.Wrap(errors.ErrCodeDriver,
			fmt.Sprintf("driver %s not found", name), nil)
	}
}

// Available returns all supported driver names.
func Available() []string {
	return []string{"nginx", "apache", "caddy"}
}
