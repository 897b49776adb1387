package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/vango-dev/sitekit/internal/config"
	"github.com/vango-dev/sitekit/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌─┐┬┌┬┐┌─┐┬┌─┬┌┬┐
  └─┐│ │ ├┤ ├┴┐│ │
  └─┘┴ ┴ └─┘┴ ┴┴ ┴
`

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sitekit",
		Short: "Interactive behaviors for restaurant sites",
		Long: `sitekit runs the interactive behaviors of a restaurant site
against its HTML page: form validation, the mobile menu, smooth
anchor scrolling, the sticky header, menu tabs and cart
notifications.

Use it to check a page's forms from the command line or to serve
the page with live validation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var noColor bool
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if !useColor(noColor, os.Stdout.Fd()) {
			errors.DisableColors()
		}
	}

	rootCmd.AddCommand(
		initCmd(),
		checkCmd(),
		serveCmd(),
		versionCmd(),
	)
	return rootCmd
}

// loadConfig loads path, or sitekit.json from the working directory when
// it exists, or the defaults.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if _, err := os.Stat(config.ConfigFileName); err == nil {
			path = config.ConfigFileName
		}
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()})))
	return cfg, nil
}

// printBanner prints the sitekit ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("%s %s\n", errors.Green("✓"), fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("%s %s\n", errors.Yellow("⚠"), fmt.Sprintf(format, args...))
}

// useColor reports whether output to fd should be colored. NO_COLOR and
// non-terminal output turn colors off.
func useColor(noColor bool, fd uintptr) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
