// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports a console encoding
// for interactive use and a JSON encoding for machine consumption.
//
// # Run Correlation
//
// Every sync run gets an identifier. The WithRunID helper attaches it to
// the log entry so that all logs of one run can be correlated with its
// journal record.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json or console
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Loading workbook")
//
//	l := logger.WithRunID(log, runID)
//	l.Error("Save failed", zap.Error(err))
package logger
