package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/deploygen/deploygen/internal/config"
	"github.com/deploygen/deploygen/internal/descriptor"
	"github.com/deploygen/deploygen/internal/driver"
	pkgerrors "github.com/deploygen/deploygen/internal/errors"
	"github.com/deploygen/deploygen/internal/manifest"
	"github.com/deploygen/deploygen/internal/output"
	"github.com/deploygen/deploygen/internal/plan"
)

// loadConfig loads the tool configuration through the injected loader.
func loadConfig() (*config.Config, error) {
	cfg, err := deps.ConfigLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// manifestPath picks the manifest to load. The -f flag wins, then the
// config setting, then deploy.yaml in the working directory.
func manifestPath(cfg *config.Config) string {
	if manifestFlag != "" {
		return manifestFlag
	}
	return cfg.Manifest
}

// loadDescriptors reads the manifest and returns its app descriptors.
func loadDescriptors(cfg *config.Config) ([]descriptor.Descriptor, error) {
	path := manifestPath(cfg)
	ds, err := manifest.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest %s: %w", path, err)
	}
	return ds, nil
}

// resolvePlan validates every descriptor and resolves the set into a
// routing plan. Validation failures and conflicts are reported together
// on stderr before the error is returned, so commands can just bail.
func resolvePlan(ds []descriptor.Descriptor) (*plan.Plan, error) {
	if errs := plan.ValidateAll(ds); len(errs) > 0 {
		indexes := make([]int, 0, len(errs))
		for i := range errs {
			indexes = append(indexes, i)
		}
		sort.Ints(indexes)
		for _, i := range indexes {
			output.Error("app #%d (%s): %v", i, ds[i].Name, errs[i])
		}
		return nil, fmt.Errorf("%d invalid app descriptor(s)", len(errs))
	}

	p, err := plan.Resolve(ds)
	if err != nil {
		var conflicts *pkgerrors.ConflictError
		if pkgerrors.As(err, &conflicts) {
			for _, c := range conflicts.Conflicts {
				output.Error("%s", c.String())
			}
			return nil, fmt.Errorf("%d routing conflict(s)", len(conflicts.Conflicts))
		}
		return nil, err
	}

	return p, nil
}

// resolveDriver builds the web server driver for the configured target,
// using detected platform paths unless the config overrides them.
func resolveDriver(cfg *config.Config) (driver.Driver, error) {
	paths, err := driverPaths(cfg)
	if err != nil {
		return nil, err
	}
	return deps.DriverFactory.Create(cfg.Target, paths)
}

// driverPaths returns the site directories for the configured target.
func driverPaths(cfg *config.Config) (driver.Paths, error) {
	if cfg.Paths != nil && cfg.Paths.Available != "" {
		enabled := cfg.Paths.Enabled
		if enabled == "" {
			enabled = cfg.Paths.Available
		}
		return driver.Paths{Available: cfg.Paths.Available, Enabled: enabled}, nil
	}

	detected, err := deps.PlatformDetector.DetectPaths()
	if err != nil {
		return driver.Paths{}, fmt.Errorf("failed to detect platform paths: %w", err)
	}
	pc, err := detected.GetPathsForDriver(cfg.Target)
	if err != nil {
		return driver.Paths{}, err
	}
	return driver.Paths{Available: pc.Available, Enabled: pc.Enabled}, nil
}

// unitDir returns the systemd unit directory, honoring config overrides.
func unitDir(cfg *config.Config) (string, error) {
	if cfg.Paths != nil && cfg.Paths.Units != "" {
		return cfg.Paths.Units, nil
	}
	detected, err := deps.PlatformDetector.DetectPaths()
	if err != nil {
		return "", fmt.Errorf("failed to detect platform paths: %w", err)
	}
	return detected.Units, nil
}

// createDriverWithPaths creates a concrete driver for the given target.
func createDriverWithPaths(name string, paths driver.Paths) (driver.Driver, error) {
	return driver.New(name, paths)
}

// requireRoot checks for root privileges through the injected checker.
func requireRoot() error {
	return deps.RootChecker.RequireRoot()
}

// confirm prompts the user and returns true on y/yes.
func confirm(prompt string) bool {
	output.Print("%s [y/N]: ", prompt)
	answer, err := deps.StdinReader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// testAndReload tests config and reloads the web server
// If rollback is provided, it will be called on test failure
func testAndReload(drv driver.Driver, reload bool, rollback func() error) error {
	output.Info("Testing configuration...")
	if err := drv.Test(); err != nil {
		if rollback != nil {
			if rbErr := rollback(); rbErr != nil {
				output.Warn("Rollback failed: %v", rbErr)
			}
		}
		return fmt.Errorf("configuration test failed: %w", err)
	}

	if reload {
		output.Info("Reloading %s...", drv.Name())
		if err := drv.Reload(); err != nil {
			return fmt.Errorf("failed to reload %s: %w", drv.Name(), err)
		}
	}

	return nil
}

// saveConfig saves the config and returns error instead of just warning
func saveConfig(cfg *config.Config) error {
	if err := deps.ConfigLoader.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// outputResult handles JSON or human-readable output
func outputResult(data interface{}, successMsg string, args ...interface{}) error {
	if jsonOutput {
		return output.JSON(data)
	}
	output.Success(successMsg, args...)
	return nil
}

// siteFileName returns the installed config file name for a domain.
// Apache configs carry a .conf extension, nginx and caddy use the bare
// domain.
func siteFileName(target, domain string) string {
	if target == "apache" {
		return domain + ".conf"
	}
	return domain
}

// backendLabel describes where a rule sends traffic, for tables.
func backendLabel(d descriptor.Descriptor) string {
	if d.Kind == descriptor.KindProxy {
		return fmt.Sprintf("127.0.0.1:%d", d.Port)
	}
	return d.Root
}

// DryRunOperation is one side effect an apply would perform.
type DryRunOperation struct {
	Action  string `json:"action"`
	Target  string `json:"target"`
	Details string `json:"details,omitempty"`
}

// DryRunResult lists everything an apply would do without doing it.
type DryRunResult struct {
	Target     string            `json:"target"`
	Operations []DryRunOperation `json:"operations"`
}

// outputDryRun prints a dry-run result as JSON or a readable listing.
func outputDryRun(result *DryRunResult) error {
	if jsonOutput {
		return output.JSON(result)
	}

	output.Info("Dry run: no changes will be made")
	for _, op := range result.Operations {
		if op.Details != "" {
			output.Print("  %-16s %s (%s)", op.Action, op.Target, op.Details)
		} else {
			output.Print("  %-16s %s", op.Action, op.Target)
		}
	}
	return nil
}
