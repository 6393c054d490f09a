// Package logger is a thin factory around log/slog adding functional options,
// attribute helpers with consistent keys, and transparent injection of
// request-scoped values from context.Context.
//
// New builds a *slog.Logger whose handler is wrapped by ContextHandler: on
// every log call the registered ContextExtractor functions run against the
// call's context and append attributes such as the bound tenant or the acting
// principal. The tenant and principal packages export ready-made extractors:
//
//	log := logger.New(
//		logger.WithProduction("api"),
//		logger.WithContextExtractors(
//			tenant.LoggerExtractor(),
//			principal.LoggerExtractor(),
//		),
//	)
//
// Handlers then log with the Context variants and the tenant shows up
// automatically:
//
//	log.InfoContext(r.Context(), "record created", logger.Duration(elapsed))
package logger
