// Package log builds the slog loggers used by wikigraph.
//
// All loggers wrap their output handler in a SecureHandler, which masks
// credentials before they are written. Crawls against private wikis are
// configured with Authorization or Cookie headers and proxies may carry a
// user:password pair, so these values must never reach a log file that is
// shared in a bug report.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose, false)
//	slog.SetDefault(logger)
//
//	logger.Debug("request headers", "authorization", "Bearer abc") // masked
package log
