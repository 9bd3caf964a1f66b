// Package logging provides structured logging utilities for packcfg components.
//
// # Overview
//
// This package wraps the standard library slog package with packcfg-specific defaults
// and conventions for consistent logging across all components. It supports
// environment-based log level configuration, module/version context injection,
// and automatic source location tracking for debug logs.
//
// # Features
//
//   - Structured JSON logging to stderr
//   - Environment-based log level configuration (LOG_LEVEL)
//   - Automatic module, version and run_id context
//   - Source location tracking for debug logs
//   - Flexible log level parsing
//   - Integration with standard library log package
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("packcfg", "v1.0.0")
//	    defer slog.Info("application started")
//
//	    // Use slog as normal
//	    slog.Info("processing request", "id", "req-123")
//	    slog.Debug("detailed state", "data", complexObject)
//	    slog.Error("operation failed", "error", err)
//	}
//
// Creating a custom logger:
//
//	logger := logging.NewStructuredLogger("merger", "v2.0.0", "debug")
//	logger.Info("merge started", "configs", 2)
//
// Setting explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("packcfg", "v1.0.0", "warn")
//
// Converting standard library logger:
//
//	stdLogger := logging.NewLogLogger(slog.LevelInfo, false)
//	stdLogger.Println("legacy log message")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity:
//
//	LOG_LEVEL=debug packcfg build
//	LOG_LEVEL=error packcfg add
//
// If LOG_LEVEL is not set, defaults to INFO level.
//
// # Output Format
//
// All logs are written to stderr in JSON format:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "config loaded",
//	    "module": "packcfg",
//	    "version": "v1.0.0",
//	    "run_id": "7f1c0e52-9a1e-4c4b-bb1e-3d2f0f9d2c11",
//	    "path": "webpack.config.yaml"
//	}
//
// Debug logs include source location:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "DEBUG",
//	    "source": {
//	        "function": "merger.(*Merger).applyFlags",
//	        "file": "merger.go",
//	        "line": 45
//	    },
//	    "msg": "flag applied",
//	    "module": "packcfg",
//	    "version": "v1.0.0"
//	}
//
// # Best Practices
//
// 1. Set default logger early in main():
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("myapp", version)
//	    defer slog.Info("application started")
//	    // ...
//	}
//
// 2. Include context in log messages:
//
//	slog.Info("config loaded",
//	    "path", path,
//	    "extension", ext,
//	    "duration_ms", 12,
//	)
//
// 3. Use appropriate log levels:
//
//	slog.Debug("flag applied", "flag", name)   // Development/troubleshooting
//	slog.Info("config loaded")                 // Normal operations
//	slog.Warn("compiler registration failed")  // Potential issues
//	slog.Error("plugin load failed")           // Errors requiring action
//
// 4. Log errors with context:
//
//	slog.Error("failed to load config",
//	    "error", err,
//	    "path", path,
//	)
//
// # Integration
//
// This package is used by:
//   - pkg/cli - command logging and logger setup
//   - pkg/config - config location and loading
//   - pkg/merger - flag handler tracing and plugin load failures
//   - pkg/wizard - config file edits
//
// All components share consistent logging format and configuration.
package logging
