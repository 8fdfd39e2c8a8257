package cli

import (
	"errors"
	"strings"

	"github.com/deploygen/deploygen/internal/config"
	"github.com/deploygen/deploygen/internal/driver"
	pkgerrors "github.com/deploygen/deploygen/internal/errors"
	"github.com/deploygen/deploygen/internal/platform"
)

// MockConfigLoader is a test double for ConfigLoader
type MockConfigLoader struct {
	Cfg       *config.Config
	LoadErr   error
	SaveErr   error
	SaveCalls int
}

func (m *MockConfigLoader) Load() (*config.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Cfg == nil {
		m.Cfg = config.New()
	}
	return m.Cfg, nil
}

func (m *MockConfigLoader) Save(cfg *config.Config) error {
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Cfg = cfg
	return nil
}

// MockPlatformDetector is a test double for PlatformDetector
type MockPlatformDetector struct {
	Paths *platform.PlatformPaths
	Err   error
}

func (m *MockPlatformDetector) DetectPaths() (*platform.PlatformPaths, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Paths != nil {
		return m.Paths, nil
	}
	// Return default mock paths
	return &platform.PlatformPaths{
		Nginx: platform.PathConfig{
			Available: "/etc/nginx/sites-available",
			Enabled:   "/etc/nginx/sites-enabled",
		},
		Apache: platform.PathConfig{
			Available: "/etc/apache2/sites-available",
			Enabled:   "/etc/apache2/sites-enabled",
		},
		Caddy: platform.PathConfig{
			Available: "/etc/caddy/sites-available",
			Enabled:   "/etc/caddy/sites-enabled",
		},
		Units: "/etc/systemd/system",
	}, nil
}

// MockDriverFactory is a test double for DriverFactory
type MockDriverFactory struct {
	Driver driver.Driver
	Err    error
}

func (m *MockDriverFactory) Create(name string, paths driver.Paths) (driver.Driver, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Driver != nil {
		return m.Driver, nil
	}
	// Return a default mock driver if none provided
	return driver.NewMockDriver(name, paths.Available, paths.Enabled), nil
}

// MockUnitInstaller is a test double for UnitInstaller
type MockUnitInstaller struct {
	Units         map[string]string
	ReloadCalls   int
	EnabledUnits  []string
	DisabledUnits []string
	Err           error
}

func (m *MockUnitInstaller) Install(unitName string, content string) error {
	if m.Err != nil {
		return m.Err
	}
	if m.Units == nil {
		m.Units = make(map[string]string)
	}
	m.Units[unitName] = content
	return nil
}

func (m *MockUnitInstaller) Remove(unitName string) error {
	if m.Err != nil {
		return m.Err
	}
	delete(m.Units, unitName)
	return nil
}

func (m *MockUnitInstaller) DaemonReload() error {
	m.ReloadCalls++
	return m.Err
}

func (m *MockUnitInstaller) Enable(unitName string) error {
	if m.Err != nil {
		return m.Err
	}
	m.EnabledUnits = append(m.EnabledUnits, unitName)
	return nil
}

func (m *MockUnitInstaller) Disable(unitName string) error {
	if m.Err != nil {
		return m.Err
	}
	m.DisabledUnits = append(m.DisabledUnits, unitName)
	return nil
}

// MockUnitFactory is a test double for UnitFactory
type MockUnitFactory struct {
	Installer *MockUnitInstaller
}

func (m *MockUnitFactory) Create(unitDir string) UnitInstaller {
	if m.Installer == nil {
		m.Installer = &MockUnitInstaller{}
	}
	return m.Installer
}

// MockRootChecker is a test double for RootChecker
type MockRootChecker struct {
	IsRoot bool
	Calls  int
}

func (m *MockRootChecker) RequireRoot() error {
	m.Calls++
	if !m.IsRoot {
		return pkgerrors.ErrRootRequired
	}
	return nil
}

// MockStdinReader is a test double for StdinReader
type MockStdinReader struct {
	Input string
	pos   int
}

func (m *MockStdinReader) ReadString(delim byte) (string, error) {
	if m.pos >= len(m.Input) {
		return "", errors.New("EOF")
	}
	idx := strings.IndexByte(m.Input[m.pos:], delim)
	if idx == -1 {
		result := m.Input[m.pos:]
		m.pos = len(m.Input)
		return result, nil
	}
	result := m.Input[m.pos : m.pos+idx+1]
	m.pos += idx + 1
	return result, nil
}

// MockDependenciesBuilder helps create mock dependencies for tests
type MockDependenciesBuilder struct {
	deps *Dependencies
}

// NewMockDeps creates a new MockDependenciesBuilder with sensible defaults
func NewMockDeps() *MockDependenciesBuilder {
	return &MockDependenciesBuilder{
		deps: &Dependencies{
			ConfigLoader:     &MockConfigLoader{Cfg: config.New()},
			PlatformDetector: &MockPlatformDetector{},
			DriverFactory:    &MockDriverFactory{},
			UnitFactory:      &MockUnitFactory{},
			RootChecker:      &MockRootChecker{IsRoot: true},
			StdinReader:      &MockStdinReader{Input: "y\n"},
		},
	}
}

// WithConfig sets the config for the mock
func (b *MockDependenciesBuilder) WithConfig(cfg *config.Config) *MockDependenciesBuilder {
	b.deps.ConfigLoader = &MockConfigLoader{Cfg: cfg}
	return b
}

// WithConfigLoader sets a custom config loader
func (b *MockDependenciesBuilder) WithConfigLoader(loader ConfigLoader) *MockDependenciesBuilder {
	b.deps.ConfigLoader = loader
	return b
}

// WithDriver sets the driver for the mock
func (b *MockDependenciesBuilder) WithDriver(drv driver.Driver) *MockDependenciesBuilder {
	b.deps.DriverFactory = &MockDriverFactory{Driver: drv}
	return b
}

// WithDriverFactory sets a custom driver factory
func (b *MockDependenciesBuilder) WithDriverFactory(factory DriverFactory) *MockDependenciesBuilder {
	b.deps.DriverFactory = factory
	return b
}

// WithRootAccess sets whether root access is available
func (b *MockDependenciesBuilder) WithRootAccess(isRoot bool) *MockDependenciesBuilder {
	b.deps.RootChecker = &MockRootChecker{IsRoot: isRoot}
	return b
}

// WithStdinInput sets the stdin input for the mock
func (b *MockDependenciesBuilder) WithStdinInput(input string) *MockDependenciesBuilder {
	b.deps.StdinReader = &MockStdinReader{Input: input}
	return b
}

// WithUnitInstaller sets the unit installer for the mock
func (b *MockDependenciesBuilder) WithUnitInstaller(installer *MockUnitInstaller) *MockDependenciesBuilder {
	b.deps.UnitFactory = &MockUnitFactory{Installer: installer}
	return b
}

// WithPlatformPaths sets custom platform paths
func (b *MockDependenciesBuilder) WithPlatformPaths(paths *platform.PlatformPaths) *MockDependenciesBuilder {
	b.deps.PlatformDetector = &MockPlatformDetector{Paths: paths}
	return b
}

// WithPlatformError sets an error for platform detection
func (b *MockDependenciesBuilder) WithPlatformError(err error) *MockDependenciesBuilder {
	b.deps.PlatformDetector = &MockPlatformDetector{Err: err}
	return b
}

// Build returns the configured Dependencies
func (b *MockDependenciesBuilder) Build() *Dependencies {
	return b.deps
}

// TestHelper provides utilities for CLI tests
type TestHelper struct {
	T interface {
		Helper()
		Cleanup(func())
	}
	OldDeps    *Dependencies
	MockDriver *driver.MockDriver
	MockConfig *MockConfigLoader
}

// NewTestHelper creates a new test helper with mock dependencies
func NewTestHelper(t interface {
	Helper()
	Cleanup(func())
}, availableDir, enabledDir string) *TestHelper {
	t.Helper()

	mockDriver := driver.NewMockDriver("nginx", availableDir, enabledDir)
	mockConfig := &MockConfigLoader{Cfg: config.New()}

	helper := &TestHelper{
		T:          t,
		OldDeps:    deps,
		MockDriver: mockDriver,
		MockConfig: mockConfig,
	}

	// Set up mock dependencies
	mockDeps := NewMockDeps().
		WithDriver(mockDriver).
		WithConfigLoader(mockConfig).
		Build()

	deps = mockDeps

	// Cleanup function to restore original deps
	t.Cleanup(func() {
		deps = helper.OldDeps
	})

	return helper
}

// SetRootAccess sets whether root access is available
func (h *TestHelper) SetRootAccess(isRoot bool) {
	deps.RootChecker = &MockRootChecker{IsRoot: isRoot}
}

// SetStdinInput sets the stdin input
func (h *TestHelper) SetStdinInput(input string) {
	deps.StdinReader = &MockStdinReader{Input: input}
}

// GetConfig returns the current mock config
func (h *TestHelper) GetConfig() *config.Config {
	return h.MockConfig.Cfg
}
