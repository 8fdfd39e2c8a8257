// Package manifest loads the deployment manifest: the YAML file listing
// every application to host on the server.
//
// Example manifest:
//
//	apps:
//	  - name: blog
//	    domain: example.com
//	    kind: static
//	    root: /var/www/blog
//	    cache:
//	      "jpg|jpeg|png|gif|svg": 30d
//	      "css|js": 7d
//	  - name: api
//	    domain: example.com
//	    path: /api
//	    kind: proxy
//	    port: 8000
//	    command: npm start
//	    working_dir: /srv/api
//	    restart: always
//
// The manifest maps one-to-one onto descriptor.Descriptor values; all
// semantic checks happen later in the plan package.
package manifest

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/deploygen/deploygen/internal/descriptor"
	"github.com/deploygen/deploygen/internal/errors"
)

// Manifest is the top-level structure of a deployment manifest file.
type Manifest struct {
	Apps []descriptor.Descriptor `yaml:"apps"`
}

// defaultRestart is applied to proxy apps that carry a command but no
// explicit restart policy.
const defaultRestart = "always"

// Load reads and parses a manifest file, returning the descriptor set in
// file order. Per-app defaults (name from domain and path, restart
// policy) are applied here so the planner sees complete descriptors.
func Load(path string) ([]descriptor.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeManifest, "failed to read manifest", err)
	}
	return Parse(data)
}

// Parse parses manifest bytes. Split out from Load for testability.
func Parse(data []byte) ([]descriptor.Descriptor, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeManifest, "failed to parse manifest", err)
	}
	if len(m.Apps) == 0 {
		return nil, errors.Validation(errors.ErrCodeManifest, "manifest contains no apps")
	}

	for i := range m.Apps {
		applyDefaults(&m.Apps[i], i)
	}
	return m.Apps, nil
}

func applyDefaults(d *descriptor.Descriptor, index int) {
	if d.PathPrefix == "" {
		d.PathPrefix = "/"
	}
	if d.Name == "" {
		d.Name = defaultName(d, index)
	}
	if d.Kind == descriptor.KindProxy && d.Command != "" && d.Restart == "" {
		d.Restart = defaultRestart
	}
}

// defaultName derives a name unique per route: the bare domain for the
// catch-all path, domain plus path segments for everything else. The
// name keys the app's systemd unit, so two unnamed apps on one domain
// must not collapse into one.
func defaultName(d *descriptor.Descriptor, index int) string {
	if d.Domain == "" {
		return fmt.Sprintf("app-%d", index)
	}
	path := descriptor.NormalizePath(d.PathPrefix)
	if path == "/" {
		return d.Domain
	}
	return d.Domain + strings.ReplaceAll(path, "/", "-")
}
