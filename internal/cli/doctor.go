package cli

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/deploygen/deploygen/internal/config"
	"github.com/deploygen/deploygen/internal/executor"
	"github.com/deploygen/deploygen/internal/manifest"
	"github.com/deploygen/deploygen/internal/output"
	"github.com/deploygen/deploygen/internal/plan"
	"github.com/deploygen/deploygen/internal/ssl"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system status and diagnose issues",
	Long: `Run diagnostic checks on the system and the manifest.

Checks:
  - Web server installation (nginx, apache, caddy)
  - systemd availability
  - Certbot installation
  - Configuration file
  - Manifest validity and plan resolution

Examples:
  deploygen doctor
  deploygen doctor --json`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// CheckResult represents a single diagnostic check result
type CheckResult struct {
	Status  string `json:"status"` // "success", "warning", "error"
	Message string `json:"message"`
}

// DoctorReport contains all diagnostic results
type DoctorReport struct {
	SystemRequirements []CheckResult `json:"system_requirements"`
	Configuration      []CheckResult `json:"configuration"`
	Manifest           []CheckResult `json:"manifest"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	// Create executor for system commands
	exec := executor.NewSystemExecutor()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Run all checks
	report := &DoctorReport{}
	report.SystemRequirements = checkSystemRequirements(exec, cfg)
	report.Configuration = checkConfiguration(cfg)
	report.Manifest = checkManifest(cfg)

	// Output results
	if jsonOutput {
		return output.JSON(report)
	}

	displayDoctorResults(report)
	return nil
}

func checkSystemRequirements(exec executor.CommandExecutor, cfg *config.Config) []CheckResult {
	results := []CheckResult{}

	// Version extraction patterns
	versionPatterns := map[string]*regexp.Regexp{
		"nginx":   regexp.MustCompile(`nginx/(\d+\.\d+\.\d+)`),
		"apache2": regexp.MustCompile(`Apache/(\d+\.\d+\.\d+)`),
		"caddy":   regexp.MustCompile(`v?(\d+\.\d+\.\d+)`),
	}

	// Check web servers
	webServers := []struct {
		name        string
		binary      string
		versionFlag string
		optional    bool
	}{
		{"Nginx", "nginx", "-v", cfg.Target != "nginx"},
		{"Apache", "apache2", "-v", cfg.Target != "apache"},
		{"Caddy", "caddy", "version", cfg.Target != "caddy"},
	}

	for _, ws := range webServers {
		if _, err := exec.LookPath(ws.binary); err == nil {
			// Get version
			versionOutput, err := exec.Execute(ws.binary, ws.versionFlag)
			version := "unknown"
			if err == nil {
				if pattern, ok := versionPatterns[ws.binary]; ok {
					if matches := pattern.FindStringSubmatch(string(versionOutput)); len(matches) >= 2 {
						version = matches[1]
					}
				}
			}
			results = append(results, CheckResult{
				Status:  "success",
				Message: fmt.Sprintf("%s installed (%s)", ws.name, version),
			})
		} else {
			status := "error"
			suffix := ""
			if ws.optional {
				status = "warning"
				suffix = " (optional)"
			}
			results = append(results, CheckResult{
				Status:  status,
				Message: fmt.Sprintf("%s not installed%s", ws.name, suffix),
			})
		}
	}

	// Check systemd, needed for proxied apps
	if _, err := exec.LookPath("systemctl"); err == nil {
		results = append(results, CheckResult{
			Status:  "success",
			Message: "systemd available",
		})
	} else {
		results = append(results, CheckResult{
			Status:  "warning",
			Message: "systemctl not found, proxied apps cannot be supervised",
		})
	}

	// Check Certbot
	if ssl.IsInstalled() {
		results = append(results, CheckResult{
			Status:  "success",
			Message: "Certbot installed",
		})
	} else {
		status := "warning"
		if cfg.SSL {
			status = "error"
		}
		results = append(results, CheckResult{
			Status:  status,
			Message: "Certbot not installed",
		})
	}

	return results
}

func checkConfiguration(cfg *config.Config) []CheckResult {
	results := []CheckResult{}

	// Check config file exists
	configPath, pathErr := config.ConfigPath()
	if pathErr == nil {
		if _, err := os.Stat(configPath); err == nil {
			// Use ~ notation for display
			displayPath := strings.Replace(configPath, os.Getenv("HOME"), "~", 1)
			results = append(results, CheckResult{
				Status:  "success",
				Message: fmt.Sprintf("Config file exists (%s)", displayPath),
			})
		} else {
			results = append(results, CheckResult{
				Status:  "warning",
				Message: "Config file not found, using defaults",
			})
		}
	} else {
		results = append(results, CheckResult{
			Status:  "error",
			Message: "Could not determine config path",
		})
	}

	// Check the target has site directories
	if _, err := driverPaths(cfg); err == nil {
		results = append(results, CheckResult{
			Status:  "success",
			Message: fmt.Sprintf("Site directories resolved for %s", cfg.Target),
		})
	} else {
		results = append(results, CheckResult{
			Status:  "error",
			Message: fmt.Sprintf("Site directories for %s: %v", cfg.Target, err),
		})
	}

	return results
}

func checkManifest(cfg *config.Config) []CheckResult {
	results := []CheckResult{}

	path := manifestPath(cfg)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		results = append(results, CheckResult{
			Status:  "warning",
			Message: fmt.Sprintf("Manifest %s not found", path),
		})
		return results
	}

	ds, err := manifest.Load(path)
	if err != nil {
		results = append(results, CheckResult{
			Status:  "error",
			Message: fmt.Sprintf("Manifest %s: %v", path, err),
		})
		return results
	}
	results = append(results, CheckResult{
		Status:  "success",
		Message: fmt.Sprintf("Manifest %s parsed (%d apps)", path, len(ds)),
	})

	if errs := plan.ValidateAll(ds); len(errs) > 0 {
		results = append(results, CheckResult{
			Status:  "error",
			Message: fmt.Sprintf("%d invalid app descriptor(s)", len(errs)),
		})
		return results
	}

	p, err := plan.Resolve(ds)
	if err != nil {
		results = append(results, CheckResult{
			Status:  "error",
			Message: fmt.Sprintf("Plan resolution failed: %v", err),
		})
		return results
	}

	results = append(results, CheckResult{
		Status:  "success",
		Message: fmt.Sprintf("Plan resolves: %d rule(s), %d domain(s)", len(p.Rules()), len(p.Domains())),
	})

	return results
}

func displayDoctorResults(report *DoctorReport) {
	output.Print("Checking system requirements...")
	for _, check := range report.SystemRequirements {
		displayCheck(check)
	}
	output.Print("")

	output.Print("Checking configuration...")
	for _, check := range report.Configuration {
		displayCheck(check)
	}
	output.Print("")

	output.Print("Checking manifest...")
	for _, check := range report.Manifest {
		displayCheck(check)
	}
}

func displayCheck(check CheckResult) {
	switch check.Status {
	case "success":
		output.Success("%s", check.Message)
	case "warning":
		output.Warn("%s", check.Message)
	case "error":
		output.Error("%s", check.Message)
	}
}
