// Package driver installs rendered deployment artifacts across different
// web servers (Nginx, Apache, Caddy) and systemd.
//
// The driver package implements a unified interface for web server file
// operations, allowing deploygen to apply a rendered plan without code
// duplication per server. Drivers only manage files and server lifecycle;
// the configuration text itself comes from the render package.
//
// # Supported Targets
//
//   - Nginx: Standard sites-available/sites-enabled pattern
//   - Apache: .conf extension with symlink activation
//   - Caddy: Caddyfile-based configuration
//   - Systemd: service unit installation for proxy application processes
//
// # Basic Usage
//
// Create a driver instance with platform-specific paths:
//
//	import "github.com/deploygen/deploygen/internal/driver"
//
//	drv, err := driver.New("nginx", driver.Paths{
//	    Available: "/etc/nginx/sites-available",
//	    Enabled:   "/etc/nginx/sites-enabled",
//	})
//
//	// Install a rendered site config
//	err = drv.Install("example.com", siteContent)
//	err = drv.Enable("example.com")
//
// Supervisor units are installed through the Systemd type:
//
//	sysd := driver.NewSystemdWithDir("/etc/systemd/system")
//	err := sysd.Install("api.service", unitContent)
//	err = sysd.DaemonReload()
//	err = sysd.Enable("api.service")
//
// # Testing
//
// Each implementation provides a WithExecutor constructor that accepts a
// mock executor.CommandExecutor for testing without actual system calls:
//
//	mockExec := &executor.MockExecutor{}
//	drv := driver.NewNginxWithExecutor(availablePath, enabledPath, mockExec)
//
// # Error Handling
//
// All driver methods return descriptive errors that include context about
// the operation that failed. Errors are wrapped using fmt.Errorf with %w
// to maintain the error chain.
package driver
