package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/deploygen/deploygen/internal/output"
	"github.com/deploygen/deploygen/internal/render"
	"github.com/spf13/cobra"
)

var (
	renderTarget string
	renderSSL    bool
	renderOut    string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the generated configuration files",
	Long: `Resolve the manifest and render the resulting web server sites and
systemd units. Output goes to stdout by default, or to a directory with
--out, one file per domain or unit.

Examples:
  deploygen render
  deploygen render --target caddy
  deploygen render --ssl --out ./generated`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderTarget, "target", "t", "", "Web server target (nginx, apache, caddy); defaults to config")
	renderCmd.Flags().BoolVar(&renderSSL, "ssl", false, "Render TLS listeners with Let's Encrypt cert paths")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Write files to this directory instead of stdout")

	rootCmd.AddCommand(renderCmd)
}

type renderedFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	target := cfg.Target
	if renderTarget != "" {
		target = renderTarget
	}

	ds, err := loadDescriptors(cfg)
	if err != nil {
		return err
	}

	p, err := resolvePlan(ds)
	if err != nil {
		return err
	}

	opts := render.Options{SSL: renderSSL || cfg.SSL}

	files := make([]renderedFile, 0, len(p.Groups))
	for _, group := range p.Groups {
		content, err := render.Site(target, group, opts)
		if err != nil {
			return fmt.Errorf("failed to render site for %s: %w", group.Domain, err)
		}
		files = append(files, renderedFile{
			Name:    siteFileName(target, group.Domain),
			Content: content,
		})
	}

	for _, app := range p.ProxyApps() {
		content, err := render.Unit(app)
		if err != nil {
			return fmt.Errorf("failed to render unit for %s: %w", app.Name, err)
		}
		if content == "" {
			continue
		}
		files = append(files, renderedFile{
			Name:    render.UnitName(app),
			Content: content,
		})
	}

	if renderOut != "" {
		return writeRendered(renderOut, files)
	}

	if jsonOutput {
		return output.JSON(files)
	}

	for _, f := range files {
		output.Print("# %s", f.Name)
		output.Print("%s", f.Content)
	}
	return nil
}

func writeRendered(dir string, files []renderedFile) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, f := range files {
		path := filepath.Join(dir, f.Name)
		if err := os.WriteFile(path, []byte(f.Content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	return outputResult(
		map[string]interface{}{
			"success": true,
			"dir":     dir,
			"files":   len(files),
		},
		"Wrote %d file(s) to %s", len(files), dir,
	)
}
