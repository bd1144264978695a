// Package health serves liveness and readiness probes.
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler([]health.Check{
//		health.Required("database", db.Healthcheck(pool)),
//		health.Optional("remote", svc.Healthcheck),
//	}, health.WithLogger(log)))
//
// Readiness is "healthy" when every check passes, "degraded" when only
// optional checks fail (still HTTP 200) and "unhealthy" otherwise (HTTP 503).
// Responses are plain text unless the client asks for JSON with
// "Accept: application/json" or "?format=json".
package health
