// Package redis opens go-redis clients for the site settings store.
//
// The client returned by [Open] backs config.FromRedis, the readiness
// probe ([Healthcheck]) and is closed by the [Shutdown] hook:
//
//	client, err := redis.Open(ctx, os.Getenv("REDIS_URL"))
//	if err != nil {
//		return err
//	}
//	remote, err := config.FromRedis(ctx, client, "site:config")
//
//	app := mvc.New(
//		mvc.WithConfig(remote),
//		mvc.WithHealthChecks(mvc.WithReadinessCheck("redis", redis.Healthcheck(client))),
//	)
//	return app.Run(":8080", mvc.ShutdownHook(redis.Shutdown(client)))
//
// Errors are joined with the sentinel values in errors.go so callers can
// match them with errors.Is.
package redis
