// Package config manages the deploygen tool configuration stored in YAML
// format.
//
// Configuration is stored in the user's home directory at
// ~/.config/deploygen/config.yaml and covers tool-level settings only; the
// applications themselves live in the deployment manifest, not here.
//
// Example config.yaml:
//
//	target: nginx
//	manifest: deploy.yaml
//	cert_email: admin@example.com
//	ssl: true
//	paths:
//	  available: /opt/nginx/sites-available
//	  enabled: /opt/nginx/sites-enabled
//	  units: /etc/systemd/system
//
// Settings:
//   - Target selects the web server the plan is rendered and applied for
//     (nginx, apache, caddy).
//   - Manifest is the default manifest file name when the command line
//     does not name one.
//   - CertEmail registers the account certbot uses for issuance.
//   - SSL makes rendered sites include a TLS listener by default.
//   - Paths overrides platform-detected configuration directories.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg.Target = "caddy"
//	err = cfg.Save()
//
// # Thread Safety
//
// Config operations are NOT thread-safe. Callers must implement their own
// synchronization if accessing Config from multiple goroutines.
package config
