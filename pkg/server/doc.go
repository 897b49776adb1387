// Package server serves a sitekit page over HTTP and WebSocket.
//
// Every request and every live session gets its own dom.Document with the
// page behaviors mounted, so no state is shared between clients.
//
// # Routes
//
//	GET  /                       the page, rendered after mounting
//	POST /forms/{index}/validate validate urlencoded values against a form
//	GET  /ws                     live session
//	GET  /metrics                Prometheus exposition
//	GET  /healthz                liveness
//
// # Live Sessions
//
// A session receives JSON messages:
//
//	{"type": "input", "target": "[name=email]", "value": "ana@example.com"}
//	{"type": "blur", "target": "[name=email]"}
//	{"type": "submit", "target": "#reservation"}
//	{"type": "scroll", "scrollY": 900}
//	{"type": "tick", "elapsedMs": 500}
//
// and answers each with the rendered document and the field states:
//
//	{"session": "…", "html": "<html>…", "fields": [...]}
//
// The session's virtual clock advances by elapsedMs, or by the wall-clock
// time since the previous message when elapsedMs is absent, so timers such
// as toast expiry and smooth scrolling progress between messages.
//
// # Example Usage
//
//	srv, err := server.New(cfg, source,
//	    server.WithMetrics(middleware.Prometheus()),
//	)
//	if err != nil {
//	    return err
//	}
//	return srv.Run(ctx)
package server
