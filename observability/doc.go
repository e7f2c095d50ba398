// Package observability provides OpenTelemetry tracing and component
// health reporting.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, cfg, "aurascribe", "1.0.0")
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, "session.create")
//	defer span.End()
//
// Health, where store and registry implement HealthChecker:
//
//	health := observability.Evaluate(ctx, "aurascribe", "1.0.0", store, registry)
//	c.JSON(health.HTTPStatus(), health)
package observability
