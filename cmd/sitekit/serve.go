package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vango-dev/sitekit/internal/config"
	"github.com/vango-dev/sitekit/internal/dev"
	"github.com/vango-dev/sitekit/internal/errors"
	"github.com/vango-dev/sitekit/pkg/middleware"
	"github.com/vango-dev/sitekit/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		configPath  string
		port        int
		host        string
		openBrowser bool
		watch       bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the page with live validation",
		Long: `Serve the configured page over HTTP.

Routes:
  GET  /                        the page
  POST /forms/{index}/validate  validate form values, returns JSON
  GET  /ws                      live session
  GET  /metrics                 Prometheus metrics
  GET  /healthz                 health check
  GET  /*                       files next to the page

With --watch, saving the page swaps it in and tells live sessions
to reload.

Examples:
  sitekit serve
  sitekit serve --port=8080 --watch
  sitekit serve --config=site/sitekit.yaml --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Dev.Port = port
			}
			if host != "" {
				cfg.Dev.Host = host
			}
			return runServe(cfg, openBrowser, watch)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (default sitekit.json if present)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().BoolVarP(&openBrowser, "open", "o", false, "Open browser on start")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload the page when it changes on disk")

	return cmd
}

func runServe(cfg *config.Config, openBrowser, watch bool) error {
	source, err := os.ReadFile(cfg.PagePath())
	if err != nil {
		return errors.New("E401").WithDetailf("read %s", cfg.PagePath()).Wrap(err)
	}

	siteDir := filepath.Dir(cfg.PagePath())
	opts := []server.Option{
		server.WithTracing(middleware.OpenTelemetry()),
		server.WithStaticDir(siteDir),
	}
	if cfg.MetricsEnabled() {
		opts = append(opts, server.WithMetrics(middleware.Prometheus(
			middleware.WithNamespace(cfg.Metrics.Namespace),
		)))
	}
	srv, err := server.New(cfg, source, opts...)
	if err != nil {
		return err
	}

	printBanner()
	fmt.Println("  serve")
	fmt.Println()
	url := "http://" + cfg.DevAddress()
	success("Serving %s", cfg.PagePath())
	info("Local: %s", url)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if watch {
		w := dev.NewWatcher(dev.WatcherConfig{Paths: []string{siteDir}})
		r := dev.NewReloader(srv, cfg.PagePath())
		r.OnReload = func() { success("Reloaded %s", cfg.PagePath()) }
		w.OnChange(r.Handle)
		go func() { _ = w.Start(ctx) }()
		info("Watching %s", siteDir)
	}
	if openBrowser {
		go openURL(url)
	}
	return srv.Run(ctx)
}

// openURL opens a URL in the default browser.
func openURL(url string) {
	var cmd *exec.Cmd

	switch {
	case commandExists("xdg-open"):
		cmd = exec.Command("xdg-open", url)
	case commandExists("open"):
		cmd = exec.Command("open", url)
	case commandExists("start"):
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return
	}

	_ = cmd.Start()
}

// commandExists checks if a command exists in PATH.
func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
