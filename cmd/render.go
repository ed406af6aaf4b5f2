package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio-cms/internal/config"
	"github.com/Zachkp/portfolio-cms/internal/loader"
	"github.com/Zachkp/portfolio-cms/internal/render"
)

var (
	renderOut   string
	renderShell string
	renderLocal string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the portfolio page to a static HTML file",
	Long: `render loads the content document from the API, then the static
content file (with a cache-busting query), then the built-in content, and
writes the page shell with every section container filled in.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		shellPath := appConfig.ShellPath
		if renderShell != "" {
			shellPath = renderShell
		}
		_, err := renderPage(cmd.Context(), appConfig, shellPath, renderLocal, renderOut)
		return err
	},
}

// renderSources lists the fallback chain: API, cache-busted static file,
// then an optional local file.
func renderSources(cfg *config.Config, localFile string) []loader.Source {
	sources := []loader.Source{
		&loader.HTTPSource{URL: cfg.APIURL},
		&loader.HTTPSource{URL: cfg.StaticURL, CacheBust: true},
	}
	if localFile != "" {
		sources = append(sources, &loader.FileSource{Path: localFile})
	}
	return sources
}

// renderPage writes the rendered page to out and reports which tier the
// content came from.
func renderPage(ctx context.Context, cfg *config.Config, shellPath, localFile, out string) (loader.Tier, error) {
	shell, err := os.ReadFile(shellPath)
	if err != nil {
		return loader.Tier{}, fmt.Errorf("reading page shell: %w", err)
	}

	doc, tier := loader.New(renderSources(cfg, localFile)...).Load(ctx)
	log.Printf("Rendering content from %s", tier.Name)

	r, err := render.New()
	if err != nil {
		return tier, err
	}
	page, err := r.Page(shell, doc, cfg.Minify)
	if err != nil {
		return tier, err
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return tier, fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(out, page, 0o644); err != nil {
		return tier, fmt.Errorf("writing %s: %w", out, err)
	}
	log.Printf("Wrote %s (%d bytes)", out, len(page))
	return tier, nil
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "public/index.html", "output file")
	renderCmd.Flags().StringVar(&renderShell, "shell", "", "page shell (defaults to shell_path from config)")
	renderCmd.Flags().StringVar(&renderLocal, "file", "", "local content file tried after the remote sources")
	rootCmd.AddCommand(renderCmd)
}
