package cli

import (
	"fmt"
	"sort"

	"github.com/deploygen/deploygen/internal/config"
	"github.com/deploygen/deploygen/internal/output"
	"github.com/deploygen/deploygen/internal/render"
	"github.com/spf13/cobra"
)

var (
	dryRun      bool
	noReload    bool
	skipConfirm bool
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Install the generated configuration on this machine",
	Long: `Resolve the manifest, render the configuration, and install it:
site configs into the web server's sites-available directory, enabled
via symlink, and systemd units for proxied apps.

The web server config is tested before reload. If the test fails, the
sites installed by this run are rolled back.

Examples:
  deploygen apply
  deploygen apply --dry-run
  deploygen apply --yes --no-reload`,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without making changes")
	applyCmd.Flags().BoolVar(&noReload, "no-reload", false, "Don't reload the web server")
	applyCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ds, err := loadDescriptors(cfg)
	if err != nil {
		return err
	}

	p, err := resolvePlan(ds)
	if err != nil {
		return err
	}

	// Render everything before touching the system.
	opts := render.Options{SSL: cfg.SSL}
	sites := make(map[string]string, len(p.Groups))
	for _, group := range p.Groups {
		content, err := render.Site(cfg.Target, group, opts)
		if err != nil {
			return fmt.Errorf("failed to render site for %s: %w", group.Domain, err)
		}
		sites[group.Domain] = content
	}

	units := make(map[string]string)
	for _, app := range p.ProxyApps() {
		content, err := render.Unit(app)
		if err != nil {
			return fmt.Errorf("failed to render unit for %s: %w", app.Name, err)
		}
		if content != "" {
			units[render.UnitName(app)] = content
		}
	}

	if dryRun {
		return outputApplyDryRun(cfg.Target, p.Domains(), units)
	}

	if err := requireRoot(); err != nil {
		return err
	}

	if !skipConfirm {
		prompt := fmt.Sprintf("Apply %d site(s) and %d unit(s) to %s?", len(sites), len(units), cfg.Target)
		if !confirm(prompt) {
			output.Info("Aborted")
			return nil
		}
	}

	drv, err := resolveDriver(cfg)
	if err != nil {
		return err
	}

	// Install and enable sites, tracking what this run touched so a
	// failed config test can undo it.
	installed := make([]string, 0, len(sites))
	rollback := func() error {
		output.Info("Rolling back changes...")
		for _, domain := range installed {
			if err := drv.Disable(domain); err != nil {
				output.Warn("Rollback disable %s failed: %v", domain, err)
			}
			if err := drv.Remove(domain); err != nil {
				output.Warn("Rollback remove %s failed: %v", domain, err)
			}
		}
		return nil
	}

	for _, domain := range p.Domains() {
		output.Info("Installing site %s...", domain)
		if err := drv.Install(domain, sites[domain]); err != nil {
			_ = rollback()
			return fmt.Errorf("failed to install site %s: %w", domain, err)
		}
		installed = append(installed, domain)

		if err := drv.Enable(domain); err != nil {
			_ = rollback()
			return fmt.Errorf("failed to enable site %s: %w", domain, err)
		}
	}

	if len(units) > 0 {
		if err := applyUnits(cfg, units); err != nil {
			_ = rollback()
			return err
		}
	}

	if err := testAndReload(drv, !noReload, rollback); err != nil {
		return err
	}

	return outputResult(
		map[string]interface{}{
			"success": true,
			"target":  cfg.Target,
			"sites":   len(sites),
			"units":   len(units),
		},
		"Applied %d site(s) and %d unit(s) to %s", len(sites), len(units), cfg.Target,
	)
}

func applyUnits(cfg *config.Config, units map[string]string) error {
	dir, err := unitDir(cfg)
	if err != nil {
		return err
	}

	installer := deps.UnitFactory.Create(dir)

	names := sortedKeys(units)
	for _, name := range names {
		output.Info("Installing unit %s...", name)
		if err := installer.Install(name, units[name]); err != nil {
			return fmt.Errorf("failed to install unit %s: %w", name, err)
		}
	}

	if err := installer.DaemonReload(); err != nil {
		return err
	}

	for _, name := range names {
		if err := installer.Enable(name); err != nil {
			return fmt.Errorf("failed to enable unit %s: %w", name, err)
		}
	}

	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// outputApplyDryRun lists every side effect an apply would have.
func outputApplyDryRun(target string, domains []string, units map[string]string) error {
	operations := make([]DryRunOperation, 0)

	for _, domain := range domains {
		operations = append(operations,
			DryRunOperation{
				Action:  "install_site",
				Target:  siteFileName(target, domain),
				Details: fmt.Sprintf("site config for %s", domain),
			},
			DryRunOperation{
				Action: "enable_site",
				Target: domain,
			},
		)
	}

	for _, name := range sortedKeys(units) {
		operations = append(operations, DryRunOperation{
			Action:  "install_unit",
			Target:  name,
			Details: "systemd service for proxied app",
		})
	}
	if len(units) > 0 {
		operations = append(operations, DryRunOperation{
			Action: "daemon_reload",
			Target: "systemd",
		})
	}

	operations = append(operations, DryRunOperation{
		Action:  "test_config",
		Target:  target,
		Details: "validate configuration syntax",
	})
	if !noReload {
		operations = append(operations, DryRunOperation{
			Action:  "reload_server",
			Target:  target,
			Details: "apply configuration changes",
		})
	}

	return outputDryRun(&DryRunResult{
		Target:     target,
		Operations: operations,
	})
}
