// Package logger builds structured loggers on log/slog with context
// extraction and optional Sentry reporting.
//
// # Usage
//
//	log := logger.New(logger.Config{Level: slog.LevelDebug},
//		logger.FlowIDExtractor,
//		logger.ProviderExtractor,
//	)
//
//	ctx = logger.WithFlowID(ctx, state)
//	ctx = logger.WithProvider(ctx, "github")
//	log.InfoContext(ctx, "callback received")
//	// {"level":"INFO","msg":"callback received","flow_id":"...","oauth_provider":"github"}
//
// # Sentry
//
// Set Config.Sentry.DSN to also ship records to Sentry: errors become
// issues, records at or above Sentry.MinLevel are stored as logs. With an
// empty DSN, or when Sentry fails to initialize, only stdout is used.
//
// # Libraries
//
// Packages that accept an optional *slog.Logger default to NewNope.
package logger
