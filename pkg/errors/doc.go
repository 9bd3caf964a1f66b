// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// The configuration pipeline never terminates the process itself. Every
// failure is returned as a StructuredError and the command layer turns it
// into an exit status with ExitCode.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodePluginLoad,
//	    "cannot instantiate plugin",
//	    cause,
//	    map[string]any{
//	        "plugin": name,
//	        "path":   path,
//	    },
//	)
//	os.Exit(errors.ExitCode(err))
package errors
