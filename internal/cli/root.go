package cli

import (
	"os"

	"github.com/deploygen/deploygen/internal/logger"
	"github.com/spf13/cobra"
)

var (
	jsonOutput   bool
	verbose      bool
	manifestFlag string
	version      = "dev"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "deploygen",
	Short: "Deployment configuration generator",
	Long: `deploygen turns a declarative application manifest into a conflict-free
routing plan and generates the web server and service configuration to run it.

Describe each app once (domain, path prefix, static files or a proxied port)
and deploygen validates the set, resolves the routes, and renders Nginx,
Apache, or Caddy sites plus systemd units for proxied apps.`,
}

// Execute runs the root command
func Execute() {
	// Initialize logger based on verbose flag (parsed by cobra)
	cobra.OnInitialize(func() {
		logger.Init(verbose)
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging for debugging")
	rootCmd.PersistentFlags().StringVarP(&manifestFlag, "file", "f", "", "Manifest file (default: config setting, then deploy.yaml)")
}
