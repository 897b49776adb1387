// Package middleware provides observability for sitekit: Prometheus metrics
// and OpenTelemetry tracing.
//
// Both are validate.Observer implementations, so they plug into any form
// binding:
//
//	metrics := middleware.Prometheus(middleware.WithNamespace("site"))
//	tracing := middleware.OpenTelemetry(middleware.WithTracerName("site"))
//
//	validate.Attach(form, validate.Config{
//	    Observer: validate.Observers{metrics, tracing},
//	})
//
// Metrics collected:
//   - sitekit_field_validations_total: field validations by form, trigger and outcome
//   - sitekit_rule_failures_total: failed rules by form and rule
//   - sitekit_submits_total: form submissions by form and outcome
//   - sitekit_submit_duration_seconds: submit validation duration
//   - sitekit_active_sessions: live websocket sessions
//   - sitekit_session_events_total: events received by live sessions, by type
//   - sitekit_websocket_errors_total: websocket errors by type
//
// HTTP handlers can be traced with Trace:
//
//	r := chi.NewRouter()
//	r.Use(tracing.Trace)
package middleware
