// Package health serves liveness and readiness checks.
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "redis":    redis.Healthcheck(client),
//	    "postgres": db.Healthcheck(pool),
//	}, health.WithTimeout(2*time.Second)))
//
// Readiness runs all checks in parallel and answers 503 with the failing
// check's error text when any of them fails.
package health
