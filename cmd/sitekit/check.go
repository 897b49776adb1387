package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vango-dev/sitekit/internal/config"
	"github.com/vango-dev/sitekit/internal/errors"
	"github.com/vango-dev/sitekit/pkg/features/validate"
	"github.com/vango-dev/sitekit/pkg/page"
)

type checkOptions struct {
	configPath string
	form       string
	set        []string
	html       bool
}

func checkCmd() *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check [page.html]",
		Short: "Validate the forms of a page",
		Long: `Load a page, fill in values and submit its forms through the validator.

Each field is printed with its state. The command fails when any
checked form is invalid.

Examples:
  sitekit check
  sitekit check index.html --form "#reservation" --set name=Ana --set email=ana@example.com
  sitekit check index.html --set guests=20 --html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			path := cfg.PagePath()
			if len(args) == 1 {
				path = args[0]
			}
			return runCheck(cmd.OutOrStdout(), cfg, path, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default sitekit.json if present)")
	cmd.Flags().StringVar(&opts.form, "form", "", "Selector of the form to check (default all forms)")
	cmd.Flags().StringArrayVar(&opts.set, "set", nil, "Set a control value, name=value (repeatable)")
	cmd.Flags().BoolVar(&opts.html, "html", false, "Print the page after validation")

	return cmd
}

func runCheck(out io.Writer, cfg *config.Config, path string, opts checkOptions) error {
	values, err := parseSet(opts.set)
	if err != nil {
		return err
	}

	doc, err := page.Load(path)
	if err != nil {
		return err
	}
	p, err := page.Mount(doc, cfg)
	if err != nil {
		return err
	}

	forms := p.Forms
	if opts.form != "" {
		b, err := p.FindForm(opts.form)
		if err != nil {
			return err
		}
		forms = []*validate.Binding{b}
	}
	if len(forms) == 0 {
		return errors.New("E402").WithDetailf("%s has no forms", path)
	}

	failed := 0
	for _, b := range forms {
		page.Fill(b.Form(), func(name string) (string, bool) {
			v, ok := values[name]
			return v, ok
		})
		if !b.Validate(nil) {
			failed++
		}
		printForm(out, b)
	}

	if opts.html {
		fmt.Fprintln(out, doc.HTML())
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d forms failed validation", failed, len(forms))
	}
	return nil
}

// parseSet parses name=value pairs.
func parseSet(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q, want name=value", pair)
		}
		values[name] = value
	}
	return values, nil
}

func printForm(out io.Writer, b *validate.Binding) {
	form := b.Form()
	name := form.ID()
	if name == "" {
		name = form.GetAttr("name")
	}
	status := errors.Green("valid")
	if form.HasClass(b.Config().ErrorClass) {
		status = errors.Red("invalid")
	}
	fmt.Fprintf(out, "form %s: %s\n", name, status)

	for _, r := range b.Fields() {
		if r.State.Valid {
			fmt.Fprintf(out, "  %s %s\n", errors.Green("✓"), r.Field)
			continue
		}
		fmt.Fprintf(out, "  %s %s: %s (%s)\n", errors.Red("✗"), r.Field, r.State.Message, r.State.Kind)
	}
}
