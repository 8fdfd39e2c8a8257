package cli

import (
	"fmt"

	"github.com/deploygen/deploygen/internal/config"
	"github.com/deploygen/deploygen/internal/output"
	"github.com/deploygen/deploygen/internal/ssl"
	"github.com/spf13/cobra"
)

var (
	certEmail   string
	certRun     bool
	certWebroot string
)

var certCmd = &cobra.Command{
	Use:   "cert",
	Short: "Provision certificates for the plan's domains",
	Long: `Build the certbot invocation covering every domain the routing plan
serves. By default the command is printed so it can be reviewed or run
elsewhere; --run executes certbot directly.

Examples:
  deploygen cert --email admin@example.com
  deploygen cert --run`,
	RunE: runCert,
}

var certIssueCmd = &cobra.Command{
	Use:   "issue <domain>",
	Short: "Issue a certificate for a single domain",
	Long: `Obtain a certificate for one domain, outside the plan flow. Uses the
nginx certbot plugin when nginx is the target, webroot mode when
--webroot is given, standalone mode otherwise.

Examples:
  deploygen cert issue example.com --email admin@example.com
  deploygen cert issue example.com --webroot /srv/www/example`,
	Args: cobra.ExactArgs(1),
	RunE: runCertIssue,
}

var certRenewCmd = &cobra.Command{
	Use:   "renew [domain]",
	Short: "Renew managed certificates",
	Long: `Renew certificates certbot manages on this machine. With a domain
argument only that certificate is renewed.

Examples:
  deploygen cert renew
  deploygen cert renew example.com`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCertRenew,
}

var certDeleteCmd = &cobra.Command{
	Use:   "delete <domain>",
	Short: "Delete a managed certificate",
	Long: `Delete the certificate certbot manages for a domain.

Examples:
  deploygen cert delete example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runCertDelete,
}

var certStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show managed certificates",
	Long: `List the certificates certbot currently manages.

Examples:
  deploygen cert status`,
	RunE: runCertStatus,
}

func init() {
	certCmd.PersistentFlags().StringVarP(&certEmail, "email", "e", "", "Email for Let's Encrypt registration (default: config setting)")
	certCmd.Flags().BoolVar(&certRun, "run", false, "Run certbot instead of printing the command")
	certIssueCmd.Flags().StringVarP(&certWebroot, "webroot", "w", "", "Issue via webroot mode using this directory")

	certCmd.AddCommand(certIssueCmd)
	certCmd.AddCommand(certRenewCmd)
	certCmd.AddCommand(certDeleteCmd)
	certCmd.AddCommand(certStatusCmd)

	rootCmd.AddCommand(certCmd)
}

func runCert(cmd *cobra.Command, args []string) error {
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

	domains := p.Domains()
	if len(domains) == 0 {
		return fmt.Errorf("manifest has no domains to certify")
	}

	email, err := resolveCertEmail(cfg)
	if err != nil {
		return err
	}

	if !certRun {
		command := ssl.CommandLine(domains, email, cfg.Target)
		if jsonOutput {
			return output.JSON(map[string]interface{}{
				"domains": domains,
				"command": command,
			})
		}
		output.Print("%s", command)
		return nil
	}

	if !ssl.IsInstalled() {
		return fmt.Errorf("certbot is not installed. Install it with: apt install certbot")
	}

	output.Info("Issuing certificates for %d domain(s)...", len(domains))
	certs, err := ssl.IssuePlan(domains, email, cfg.Target)
	if err != nil {
		return fmt.Errorf("failed to issue certificates: %w", err)
	}

	if jsonOutput {
		return output.JSON(certs)
	}

	output.Success("Certificates issued for %d domain(s)", len(certs))
	for _, cert := range certs {
		output.Print("  %s", cert.Domain)
		output.Print("    Certificate: %s", cert.CertPath)
		output.Print("    Private Key: %s", cert.KeyPath)
	}
	return nil
}

// resolveCertEmail picks the registration email: the --email flag wins,
// then the config setting.
func resolveCertEmail(cfg *config.Config) (string, error) {
	if certEmail != "" {
		return certEmail, nil
	}
	if cfg.CertEmail != "" {
		return cfg.CertEmail, nil
	}
	return "", fmt.Errorf("no email configured; pass --email or set cert_email in the config")
}

func runCertIssue(cmd *cobra.Command, args []string) error {
	domain := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	email, err := resolveCertEmail(cfg)
	if err != nil {
		return err
	}

	if !ssl.IsInstalled() {
		return fmt.Errorf("certbot is not installed. Install it with: apt install certbot")
	}

	output.Info("Issuing certificate for %s...", domain)
	var cert *ssl.Cert
	switch {
	case certWebroot != "":
		cert, err = ssl.Issue(domain, email, certWebroot)
	case cfg.Target == "nginx":
		cert, err = ssl.IssueNginx(domain, email)
	default:
		cert, err = ssl.IssueStandalone(domain, email)
	}
	if err != nil {
		return fmt.Errorf("failed to issue certificate for %s: %w", domain, err)
	}

	if jsonOutput {
		return output.JSON(cert)
	}

	output.Success("Certificate issued for %s", domain)
	output.Print("  Certificate: %s", cert.CertPath)
	output.Print("  Private Key: %s", cert.KeyPath)
	return nil
}

func runCertRenew(cmd *cobra.Command, args []string) error {
	if !ssl.IsInstalled() {
		return fmt.Errorf("certbot is not installed")
	}

	if len(args) == 1 {
		domain := args[0]
		output.Info("Renewing certificate for %s...", domain)
		if err := ssl.Renew(domain); err != nil {
			return err
		}
		return outputResult(
			map[string]interface{}{
				"success": true,
				"renewed": domain,
			},
			"Certificate for %s renewed", domain,
		)
	}

	output.Info("Renewing all certificates...")
	if err := ssl.RenewAll(); err != nil {
		return err
	}

	return outputResult(
		map[string]interface{}{
			"success": true,
			"renewed": "all",
		},
		"All certificates renewed",
	)
}

func runCertDelete(cmd *cobra.Command, args []string) error {
	domain := args[0]

	if !ssl.IsInstalled() {
		return fmt.Errorf("certbot is not installed")
	}

	if err := ssl.Delete(domain); err != nil {
		return err
	}

	return outputResult(
		map[string]interface{}{
			"success": true,
			"deleted": domain,
		},
		"Certificate for %s deleted", domain,
	)
}

func runCertStatus(cmd *cobra.Command, args []string) error {
	if !ssl.IsInstalled() {
		return fmt.Errorf("certbot is not installed")
	}

	domains, err := ssl.List()
	if err != nil {
		return err
	}

	if len(domains) == 0 {
		output.Info("No certificates found")
		return nil
	}

	if jsonOutput {
		return output.JSON(domains)
	}

	output.Print("Managed certificates:")
	for _, domain := range domains {
		output.Print("  - %s", domain)
	}

	return nil
}
