package dev

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ChangeType represents the type of file change.
type ChangeType int

const (
	ChangePage ChangeType = iota
	ChangeConfig
	ChangeStyle
	ChangeAsset
)

func (t ChangeType) String() string {
	switch t {
	case ChangePage:
		return "page"
	case ChangeConfig:
		return "config"
	case ChangeStyle:
		return "style"
	default:
		return "asset"
	}
}

// Change represents a detected file change.
type Change struct {
	Path string
	Type ChangeType
}

// WatcherConfig configures the file watcher.
type WatcherConfig struct {
	// Paths are the files or directories to watch.
	Paths []string

	// Ignore lists base-name globs and path segments to skip.
	Ignore []string

	// Interval is the polling period.
	Interval time.Duration
}

// DefaultIgnore contains default patterns to ignore.
var DefaultIgnore = []string{
	".git",
	"node_modules",
	"*.tmp",
	"*.swp",
	"*~",
}

// Watcher polls files for changes.
type Watcher struct {
	config     WatcherConfig
	onChange   func(Change)
	mu         sync.Mutex
	running    bool
	stopCh     chan struct{}
	timestamps map[string]time.Time
}

// NewWatcher creates a new file watcher.
func NewWatcher(config WatcherConfig) *Watcher {
	if config.Interval == 0 {
		config.Interval = 200 * time.Millisecond
	}
	if len(config.Ignore) == 0 {
		config.Ignore = DefaultIgnore
	}
	return &Watcher{
		config:     config,
		timestamps: make(map[string]time.Time),
	}
}

// OnChange sets the callback for file changes.
func (w *Watcher) OnChange(fn func(Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start polls until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	stopCh := w.stopCh
	w.mu.Unlock()

	w.Scan()

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-ticker.C:
			w.Poll()
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		close(w.stopCh)
		w.running = false
	}
}

// IsRunning returns whether the watcher is running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Scan records the current modification times without reporting.
func (w *Watcher) Scan() {
	seen := w.walk()
	w.mu.Lock()
	w.timestamps = seen
	w.mu.Unlock()
}

// Poll compares the files against the last scan and reports the first
// change of each type.
func (w *Watcher) Poll() []Change {
	seen := w.walk()

	w.mu.Lock()
	var changes []Change
	for p, mod := range seen {
		if last, ok := w.timestamps[p]; !ok || mod.After(last) {
			changes = append(changes, Change{Path: p, Type: classifyChange(p)})
		}
	}
	for p := range w.timestamps {
		if _, ok := seen[p]; !ok {
			changes = append(changes, Change{Path: p, Type: classifyChange(p)})
		}
	}
	w.timestamps = seen
	callback := w.onChange
	w.mu.Unlock()

	reported := make(map[ChangeType]bool)
	var out []Change
	for _, c := range changes {
		if reported[c.Type] {
			continue
		}
		reported[c.Type] = true
		out = append(out, c)
		if callback != nil {
			callback(c)
		}
	}
	return out
}

func (w *Watcher) walk() map[string]time.Time {
	seen := make(map[string]time.Time)
	for _, root := range w.config.Paths {
		_ = filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if w.shouldIgnore(p) {
				if info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !info.IsDir() {
				seen[p] = info.ModTime()
			}
			return nil
		})
	}
	return seen
}

// shouldIgnore checks the base name against globs and every path segment
// against plain names.
func (w *Watcher) shouldIgnore(fullPath string) bool {
	name := filepath.Base(fullPath)
	segments := strings.Split(filepath.ToSlash(fullPath), "/")

	for _, pattern := range w.config.Ignore {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if strings.ContainsAny(pattern, "*?[") {
			if matched, _ := filepath.Match(pattern, name); matched {
				return true
			}
			continue
		}
		for _, seg := range segments {
			if seg == pattern {
				return true
			}
		}
	}
	return false
}

// classifyChange determines the type of change from the file name.
func classifyChange(path string) ChangeType {
	switch strings.ToLower(filepath.Base(path)) {
	case "sitekit.json", "sitekit.yaml", "sitekit.yml":
		return ChangeConfig
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return ChangePage
	case ".css", ".scss":
		return ChangeStyle
	default:
		return ChangeAsset
	}
}
