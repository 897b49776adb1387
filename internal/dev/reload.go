package dev

import (
	"log/slog"
	"os"
	"path/filepath"
)

// Reloadable accepts a new page source.
type Reloadable interface {
	Reload(source []byte) error
}

// Reloader swaps the page into a server when it changes on disk.
type Reloader struct {
	target Reloadable
	page   string
	logger *slog.Logger

	// OnReload is called after a successful reload.
	OnReload func()

	// OnError is called when the page cannot be read or mounted.
	OnError func(error)
}

// NewReloader creates a Reloader for the page at path.
func NewReloader(target Reloadable, path string) *Reloader {
	return &Reloader{
		target: target,
		page:   filepath.Clean(path),
		logger: slog.Default().With("component", "reload"),
	}
}

// Handle reacts to a watcher change. Only the watched page is reloaded;
// config changes need a restart and are only reported.
func (r *Reloader) Handle(c Change) {
	switch {
	case c.Type == ChangeConfig:
		r.logger.Warn("config changed, restart to apply", "path", c.Path)
	case c.Type == ChangePage && filepath.Clean(c.Path) == r.page:
		r.reload()
	default:
		r.logger.Debug("file changed", "path", c.Path, "type", c.Type.String())
	}
}

func (r *Reloader) reload() {
	source, err := os.ReadFile(r.page)
	if err == nil {
		err = r.target.Reload(source)
	}
	if err != nil {
		r.logger.Error("reload failed", "path", r.page, "error", err)
		if r.OnError != nil {
			r.OnError(err)
		}
		return
	}
	r.logger.Info("page reloaded", "path", r.page)
	if r.OnReload != nil {
		r.OnReload()
	}
}
