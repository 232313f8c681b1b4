// Package redis opens the optional Redis connection used as the shared
// draft store, and exposes a readiness probe and a shutdown hook for it.
//
//	client, err := redis.Open(ctx, cfg, log)
//	if err != nil {
//	    return err
//	}
//	app := mailpreview.New(
//	    mailpreview.WithHealthChecks(
//	        mailpreview.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	    ),
//	)
//	defer redis.Shutdown(client)(ctx)
package redis
