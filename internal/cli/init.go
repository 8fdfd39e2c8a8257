package cli

import (
	"fmt"

	"github.com/deploygen/deploygen/internal/driver"
	"github.com/spf13/cobra"
)

var (
	initTarget    string
	initManifest  string
	initCertEmail string
	initSSL       bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the tool configuration",
	Long: `Write the deploygen configuration file with the chosen web server
target and defaults. Run once per machine; later commands read it.

Examples:
  deploygen init --target nginx
  deploygen init --target caddy --ssl --email admin@example.com`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVarP(&initTarget, "target", "t", "nginx", "Web server target (nginx, apache, caddy)")
	initCmd.Flags().StringVarP(&initManifest, "manifest", "m", "", "Default manifest path")
	initCmd.Flags().StringVarP(&initCertEmail, "email", "e", "", "Email for Let's Encrypt registration")
	initCmd.Flags().BoolVar(&initSSL, "ssl", false, "Render TLS listeners by default")

	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	valid := false
	for _, name := range driver.Available() {
		if name == initTarget {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown target %q, expected one of: %v", initTarget, driver.Available())
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cfg.Target = initTarget
	cfg.SSL = initSSL
	if initManifest != "" {
		cfg.Manifest = initManifest
	}
	if initCertEmail != "" {
		cfg.CertEmail = initCertEmail
	}

	if err := saveConfig(cfg); err != nil {
		return err
	}

	return outputResult(
		map[string]interface{}{
			"success": true,
			"target":  cfg.Target,
			"ssl":     cfg.SSL,
		},
		"Configuration saved (target: %s)", cfg.Target,
	)
}
