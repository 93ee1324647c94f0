// Package middleware provides attach middleware for the behaviour scanner.
//
// This package includes:
//   - Prometheus metrics for attaches and scans
//   - OpenTelemetry spans around each attach
//   - Recovery and logging utilities
//
// Middleware is installed on a Scanner and wraps every single attach:
//
//	sc := behavior.NewScanner(reg, doc)
//	sc.Use(
//	    middleware.Logging(logger),
//	    middleware.Prometheus(middleware.WithNamespace("myapp")),
//	    middleware.OpenTelemetry(),
//	    middleware.Recover(),
//	)
//
// The first middleware is outermost. Put Recover last so the others see a
// panicking behaviour as an ordinary error.
//
// # Prometheus Metrics
//
// The Prometheus middleware collects:
//   - canon_attach_total: attaches by attribute, kind and status
//   - canon_attach_duration_seconds: attach duration histogram
//   - canon_attach_errors_total: failed attaches by attribute and error type
//   - canon_scans_total: scans run (when RecordScan is called)
//   - canon_component_states: live component states (when RecordComponentStates is called)
//
// Expose them with promhttp:
//
//	http.Handle("/metrics", promhttp.Handler())
//
// # OpenTelemetry
//
// OpenTelemetry starts one span per attach as a child of the scan span in
// AttachContext.Context. Configure the global tracer provider in main()
// before starting the scanner.
package middleware
