// Package config provides configuration parsing for canon.
//
// The configuration is stored in canon.yaml at the project root. Every
// field is optional; missing fields keep their defaults.
//
// # Configuration File Structure
//
//	root: "#app"
//	marker_prefix: data-canon-attached-
//	window:
//	  item_height: 36
//	  viewport_height: 600
//	  overscan: 5
//	log:
//	  level: info
//	  format: text
//	metrics:
//	  enabled: true
//	  namespace: canon
//	  addr: localhost:9464
//	telemetry:
//	  limit: 1000
//	watch:
//	  debounce: 100ms
//
// CANON_LOG_LEVEL and CANON_METRICS_ADDR override log.level and
// metrics.addr.
//
// # Usage
//
//	cfg, err := config.LoadFromWorkingDir()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	logger := cfg.Log.NewLogger(os.Stderr)
package config
