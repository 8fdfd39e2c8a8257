package cli

import (
	"bufio"
	"os"

	"github.com/deploygen/deploygen/internal/config"
	"github.com/deploygen/deploygen/internal/driver"
	"github.com/deploygen/deploygen/internal/errors"
	"github.com/deploygen/deploygen/internal/platform"
)

// Dependencies aggregates all CLI external dependencies for testability
type Dependencies struct {
	ConfigLoader     ConfigLoader
	PlatformDetector PlatformDetector
	DriverFactory    DriverFactory
	UnitFactory      UnitFactory
	RootChecker      RootChecker
	StdinReader      StdinReader
}

// ConfigLoader handles configuration loading and saving
type ConfigLoader interface {
	Load() (*config.Config, error)
	Save(cfg *config.Config) error
}

// PlatformDetector handles platform path detection
type PlatformDetector interface {
	DetectPaths() (*platform.PlatformPaths, error)
}

// DriverFactory creates driver instances
type DriverFactory interface {
	Create(name string, paths driver.Paths) (driver.Driver, error)
}

// UnitInstaller manages systemd units for proxied apps
type UnitInstaller interface {
	Install(unitName string, content string) error
	Remove(unitName string) error
	DaemonReload() error
	Enable(unitName string) error
	Disable(unitName string) error
}

// UnitFactory creates unit installers bound to a unit directory
type UnitFactory interface {
	Create(unitDir string) UnitInstaller
}

// RootChecker checks root privileges
type RootChecker interface {
	RequireRoot() error
}

// StdinReader reads from stdin
type StdinReader interface {
	ReadString(delim byte) (string, error)
}

// Package-level dependencies (can be overridden for testing)
var deps = &Dependencies{
	ConfigLoader:     &realConfigLoader{},
	PlatformDetector: &realPlatformDetector{},
	DriverFactory:    &realDriverFactory{},
	UnitFactory:      &realUnitFactory{},
	RootChecker:      &realRootChecker{},
	StdinReader:      &realStdinReader{},
}

// SetDeps replaces the package dependencies (for testing)
func SetDeps(d *Dependencies) {
	deps = d
}

// GetDeps returns the current dependencies (for testing)
func GetDeps() *Dependencies {
	return deps
}

// Real implementations that delegate to existing functions

type realConfigLoader struct{}

func (r *realConfigLoader) Load() (*config.Config, error) {
	return config.Load()
}

func (r *realConfigLoader) Save(cfg *config.Config) error {
	return cfg.Save()
}

type realPlatformDetector struct{}

func (r *realPlatformDetector) DetectPaths() (*platform.PlatformPaths, error) {
	return platform.DetectPaths()
}

type realDriverFactory struct{}

func (r *realDriverFactory) Create(name string, paths driver.Paths) (driver.Driver, error) {
	return createDriverWithPaths(name, paths)
}

type realUnitFactory struct{}

func (r *realUnitFactory) Create(unitDir string) UnitInstaller {
	return driver.NewSystemdWithDir(unitDir)
}

type realRootChecker struct{}

func (r *realRootChecker) RequireRoot() error {
	if os.Geteuid() != 0 {
		return errors.ErrRootRequired
	}
	return nil
}

type realStdinReader struct {
	reader *bufio.Reader
}

func (r *realStdinReader) ReadString(delim byte) (string, error) {
	if r.reader == nil {
		r.reader = bufio.NewReader(os.Stdin)
	}
	return r.reader.ReadString(delim)
}
