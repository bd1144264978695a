// Package logger builds the slog loggers used across transync.
//
// Libraries default to [NewNope]; the daemon uses [New] or [NewWithSentry]:
//
//	log := logger.New(
//		logger.WithLevelName(os.Getenv("LOG_LEVEL")),
//		logger.WithExtractors(logger.LocaleExtractor(), logger.RequestIDExtractor()),
//	)
//
//	ctx = logger.WithLocale(ctx, "pl")
//	log.InfoContext(ctx, "translations loaded") // {"msg":"translations loaded","locale":"pl"}
//
// Context extractors let request-scoped values reach log records without
// threading them through every call.
package logger
