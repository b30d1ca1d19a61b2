// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production).
// Components receive the logger by injection and attach their own fields.
//
// # Correlation
//
// Two helpers attach correlation ids:
//   - WithRayID extracts the RayID of an HTTP request from a Fiber context.
//   - WithCycle tags every entry emitted during one sync cycle with its cycle_id.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Mirror sync started")
//
//	l := logger.WithCycle(log, cycleID)
//	l.Error("Product sync failed", zap.Error(err))
package logger
