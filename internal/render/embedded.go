package render

import (
	"embed"
	"fmt"

	"github.com/deploygen/deploygen/internal/errors"
)

//go:embed templates/nginx/*.tmpl
var nginxTemplates embed.FS

//go:embed templates/apache/*.tmpl
var apacheTemplates embed.FS

//go:embed templates/caddy/*.tmpl
var caddyTemplates embed.FS

//go:embed templates/systemd/*.tmpl
var systemdTemplates embed.FS

// templateFS returns the embed.FS for the given render target
func templateFS(target string) (embed.FS, error) {
	switch target {
	case "nginx":
		return nginxTemplates, nil
	case "apache":
		return apacheTemplates, nil
	case "caddy":
		return caddyTemplates, nil
	default:
		return embed.FS{}, errors.Validation(errors.ErrCodeRender,
			fmt.Sprintf("unknown render target: %s", target))
	}
}

// Targets returns all supported site render targets.
func Targets() []string {
	return []string{"nginx", "apache", "caddy"}
}
