// Package log provides privacy-aware logging built on top of the
// standard slog package.
//
// This package extends slog to provide:
//   - Automatic masking of email addresses in log attributes
//   - Sanitization of credential-bearing HTTP headers
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Privacy Features
//
// Harvested addresses belong in the report, not in log streams that may
// be shipped to aggregators or shared for debugging. The MaskHandler
// rewrites any email-shaped attribute value so only a hint of the local
// part survives ("o***@sample.test"), and fully redacts attributes whose
// keys indicate credentials (Authorization, Cookie, tokens).
//
// Even in verbose mode, masked values stay masked.
//
// # Usage
//
//	// Create a privacy-aware logger
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Info("address accepted",
//	    "email", "owner@sample.test", // logged as "o***@sample.test"
//	    "url", "https://sample.test/contact",
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
