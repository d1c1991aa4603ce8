// Package httputil provides transport helpers shared by the API clients.
//
// [Retry] re-runs an operation only when its error is wrapped in
// [RetryableError]. Clients mark transport failures and 5xx responses as
// retryable; everything else (4xx, decode errors) fails immediately.
//
//	err := httputil.Retry(ctx, cfg.Attempts, time.Second, func() error {
//	    return doRequest(ctx, url)
//	})
//
// An attempts value of 1 (the ghprofile default) runs fn exactly once, so
// wrapping a call in Retry never changes behavior unless more attempts are
// configured explicitly.
package httputil
