// Package logger builds the zap logger shared by commands, services and handlers.
//
// Config selects the level (debug, info, warn, error) and the encoding (json or
// console). The debug level switches to zap's development preset.
//
// Request handlers log through WithRayID so every entry of one request carries
// its ray_id, and Requests is the Fiber middleware that logs each request.
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	app.Use(rayid.New(), logger.Requests(log))
//
//	// In a request handler:
//	logger.WithRayID(log, c).Error("Handler failed", zap.Error(err))
package logger
