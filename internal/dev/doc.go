// Package dev provides development-time helpers for sitekit serve.
//
// A Watcher polls the page, its config and its assets for modification and
// reports changes by kind. Reloader connects a Watcher to a running server
// so that saving the page swaps it in without a restart:
//
//	w := dev.NewWatcher(dev.WatcherConfig{Paths: []string{siteDir}})
//	r := dev.NewReloader(srv, cfg.PagePath())
//	w.OnChange(r.Handle)
//	go w.Start(ctx)
package dev
