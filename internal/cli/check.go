package cli

import (
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the manifest without generating anything",
	Long: `Validate every app descriptor in the manifest and check the set for
routing conflicts. Nothing is rendered or installed.

Exits non-zero when any descriptor is invalid or any two apps claim the
same route or port. All problems are reported, not just the first.

Examples:
  deploygen check
  deploygen check -f staging.yaml`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
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

	return outputResult(
		map[string]interface{}{
			"valid":   true,
			"apps":    len(ds),
			"domains": len(p.Domains()),
		},
		"Manifest OK: %d app(s), %d domain(s)", len(ds), len(p.Domains()),
	)
}
