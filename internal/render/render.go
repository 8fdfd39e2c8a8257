package render

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/deploygen/deploygen/internal/descriptor"
	"github.com/deploygen/deploygen/internal/errors"
	"github.com/deploygen/deploygen/internal/plan"
)

// letsencryptDir is where certbot places issued certificates.
const letsencryptDir = "/etc/letsencrypt/live"

// Options controls rendering of site configurations.
type Options struct {
	SSL bool // emit TLS listener using Let's Encrypt cert paths
}

// SiteData is the template input for one domain's server configuration.
type SiteData struct {
	Domain  string
	SSL     bool
	SSLCert string
	SSLKey  string
	Rules   []RuleData
}

// RuleData is the template input for one routing rule.
type RuleData struct {
	Path      string
	IsRoot    bool
	Kind      string
	Root      string
	Port      int
	Cache     []CacheRule
	LogPrefix string
}

// CacheRule is one expires directive for a static backend.
type CacheRule struct {
	Pattern  string
	Duration string
}

// UnitData is the template input for one supervisor unit.
type UnitData struct {
	Name       string
	Domain     string
	Port       int
	Command    string
	WorkingDir string
	Restart    string
}

// Site renders the server configuration for one domain group using the
// given target's template. Rules are emitted in the group's order; the
// plan already sorted them longest-prefix-first.
func Site(target string, group plan.DomainGroup, opts Options) (string, error) {
	fs, err := templateFS(target)
	if err != nil {
		return "", err
	}

	tmplPath := fmt.Sprintf("templates/%s/site.tmpl", target)
	content, err := fs.ReadFile(tmplPath)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeRender,
			fmt.Sprintf("site template not found for target %s", target), err)
	}

	tmpl, err := template.New("site").Funcs(funcMap()).Parse(string(content))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeRender, "failed to parse site template", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, siteData(group, opts)); err != nil {
		return "", errors.Wrap(errors.ErrCodeRender, "failed to render site template", err)
	}
	return buf.String(), nil
}

// Unit renders the systemd service unit for one proxy application.
// Apps without a command have no unit; Unit returns an empty string for them.
func Unit(app descriptor.Descriptor) (string, error) {
	if app.Kind != descriptor.KindProxy || app.Command == "" {
		return "", nil
	}

	content, err := systemdTemplates.ReadFile("templates/systemd/service.tmpl")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeRender, "unit template not found", err)
	}

	tmpl, err := template.New("unit").Funcs(funcMap()).Parse(string(content))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeRender, "failed to parse unit template", err)
	}

	data := UnitData{
		Name:       app.Name,
		Domain:     app.Domain,
		Port:       app.Port,
		Command:    app.Command,
		WorkingDir: app.WorkingDir,
		Restart:    app.Restart,
	}
	if data.Restart == "" {
		data.Restart = "always"
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrap(errors.ErrCodeRender, "failed to render unit template", err)
	}
	return buf.String(), nil
}

// UnitName returns the systemd unit file name for an application.
func UnitName(app descriptor.Descriptor) string {
	return app.Name + ".service"
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"replace": strings.ReplaceAll,
	}
}

func siteData(group plan.DomainGroup, opts Options) SiteData {
	data := SiteData{
		Domain: group.Domain,
		SSL:    opts.SSL,
	}
	if opts.SSL {
		data.SSLCert = filepath.Join(letsencryptDir, group.Domain, "fullchain.pem")
		data.SSLKey = filepath.Join(letsencryptDir, group.Domain, "privkey.pem")
	}

	for _, rule := range group.Rules {
		rd := RuleData{
			Path:      rule.Path,
			IsRoot:    rule.Path == "/",
			Kind:      rule.App.Kind,
			Root:      rule.App.Root,
			Port:      rule.App.Port,
			LogPrefix: rule.App.Name,
		}
		// Sorted for deterministic output; Cache is a map in the manifest.
		patterns := make([]string, 0, len(rule.App.Cache))
		for p := range rule.App.Cache {
			patterns = append(patterns, p)
		}
		sort.Strings(patterns)
		for _, p := range patterns {
			rd.Cache = append(rd.Cache, CacheRule{Pattern: p, Duration: rule.App.Cache[p]})
		}
		data.Rules = append(data.Rules, rd)
	}
	return data
}
