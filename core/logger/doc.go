// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production)
// and integrates with the Fiber web framework.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID from a Fiber context and attaches it to the
// log entry, so every log line of an on-demand sync triggered over HTTP can be
// correlated with the request that started it.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Scheduler started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Sync failed", zap.Error(err))
package logger
