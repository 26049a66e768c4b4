// Package resilience retries operations that fail while a backend is still
// starting, such as the first connection to a freshly started container.
//
//	client, err := resilience.Retry(ctx, cfg.Connect, func() (*redis.Client, error) {
//	    return redis.NewClient(cfg.Redis, log)
//	})
package resilience
