// Package health runs dependency checks for liveness and readiness
// endpoints.
//
// [Report] runs named [Checks] concurrently under a shared timeout and
// returns a [Response] with per-check status, ready to be sent as JSON:
//
//	checks := health.Checks{
//	    "redis": redis.Healthcheck(client),
//	}
//	resp := health.Report(ctx, checks, health.WithTimeout(2*time.Second))
//
// [Run] executes the same checks outside HTTP, for example from a
// startup hook, and reports failures as errors wrapping [ErrCheckFailed]
// or [ErrCheckTimeout].
//
// The mvc application serves these reports on /health/live and
// /health/ready; see mvc.WithHealthChecks.
package health
