package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vango-dev/sitekit/internal/config"
	"github.com/vango-dev/sitekit/internal/errors"
	"github.com/vango-dev/sitekit/internal/templates"
)

func initCmd() *cobra.Command {
	var opts initOptions

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default sitekit configuration",
		Long: `Write sitekit.json (or sitekit.yaml) with every default filled in.

When the page does not exist yet, a starter page is written from a
template.

Examples:
  sitekit init
  sitekit init site --page=home.html --name="La Terraza"
  sitekit init --yaml --template=minimal`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			_, err := runInit(dir, opts)
			return err
		},
	}

	cmd.Flags().BoolVar(&opts.yaml, "yaml", false, "Write YAML instead of JSON")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite existing files")
	cmd.Flags().StringVar(&opts.page, "page", "", "Page file (default index.html)")
	cmd.Flags().StringVarP(&opts.template, "template", "t", "restaurant", "Starter page when the page is missing (restaurant, minimal, none)")
	cmd.Flags().StringVar(&opts.name, "name", "", "Site name")

	return cmd
}

type initOptions struct {
	yaml     bool
	force    bool
	page     string
	template string
	name     string
}

func runInit(dir string, opts initOptions) (string, error) {
	name := config.ConfigFileName
	if opts.yaml {
		name = "sitekit.yaml"
	}
	path := filepath.Join(dir, name)

	if _, err := os.Stat(path); err == nil && !opts.force {
		return "", errors.New("E301").
			WithDetailf("%s already exists", path).
			WithSuggestion("Use --force to overwrite it")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.New("E301").Wrap(err)
	}

	cfg := config.New()
	cfg.Name = opts.name
	if opts.page != "" {
		cfg.Page = opts.page
	}
	if err := cfg.SaveTo(path); err != nil {
		return "", err
	}
	success("Wrote %s", path)

	_, statErr := os.Stat(cfg.PagePath())
	pageExists := statErr == nil
	switch {
	case pageExists && !opts.force:
		info("Keeping existing page %s", cfg.PagePath())
	case opts.template == "" || opts.template == "none":
		if !pageExists {
			warn("Page %s does not exist yet", cfg.PagePath())
		}
	default:
		tmpl, err := templates.Get(opts.template)
		if err != nil {
			return path, err
		}
		written, err := tmpl.Create(dir, templates.Config{SiteName: opts.name, PageFile: cfg.Page})
		if err != nil {
			return path, err
		}
		for _, f := range written {
			success("Wrote %s", f)
		}
	}
	return path, nil
}
