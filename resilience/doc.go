// Package resilience retries transient failures with capped exponential
// backoff. It is used for startup work such as opening the database, never
// for request handling: API operations fail fast and leave retries to the
// caller.
//
//	db, err := resilience.Retry(ctx, resilience.RetryConfig{
//	    MaxAttempts:    5,
//	    InitialBackoff: time.Second,
//	}, func() (*gorm.DB, error) {
//	    return open(ctx)
//	})
package resilience
