package cli

import (
	"sort"

	"github.com/deploygen/deploygen/internal/output"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List installed sites",
	Long: `List the site configurations installed for the configured target.

Examples:
  deploygen list
  deploygen ls
  deploygen list --json`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

type siteListItem struct {
	Domain  string `json:"domain"`
	Enabled bool   `json:"enabled"`
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	drv, err := resolveDriver(cfg)
	if err != nil {
		return err
	}

	domains, err := drv.List()
	if err != nil {
		return err
	}

	items := make([]siteListItem, 0, len(domains))
	for _, domain := range domains {
		enabled, _ := drv.IsEnabled(domain)
		items = append(items, siteListItem{
			Domain:  domain,
			Enabled: enabled,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Domain < items[j].Domain
	})

	if len(items) == 0 {
		if jsonOutput {
			return output.JSON([]siteListItem{})
		}
		output.Info("No sites installed for %s", drv.Name())
		return nil
	}

	if jsonOutput {
		return output.JSON(items)
	}

	headers := []string{"DOMAIN", "ENABLED"}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		enabled := "no"
		if item.Enabled {
			enabled = "yes"
		}
		rows = append(rows, []string{item.Domain, enabled})
	}

	output.Table(headers, rows)
	return nil
}
