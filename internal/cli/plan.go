package cli

import (
	"github.com/deploygen/deploygen/internal/output"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Resolve the manifest into a routing plan",
	Long: `Validate the app manifest and resolve it into a routing plan.

Rules are grouped by domain (alphabetical) and ordered longest path
first within each domain, matching how the generated configs route
requests. Conflicting routes or ports fail the command and print the
full conflict report.

Examples:
  deploygen plan
  deploygen plan -f staging.yaml
  deploygen plan --json`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
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

	if jsonOutput {
		return output.JSON(p)
	}

	headers := []string{"DOMAIN", "PATH", "KIND", "BACKEND", "APP"}
	rows := make([][]string, 0)
	for _, group := range p.Groups {
		for _, rule := range group.Rules {
			rows = append(rows, []string{
				rule.Domain,
				rule.Path,
				rule.App.Kind,
				backendLabel(rule.App),
				rule.App.Name,
			})
		}
	}

	output.Table(headers, rows)
	output.Print("")
	output.Success("%d rule(s) across %d domain(s)", len(p.Rules()), len(p.Domains()))
	return nil
}
