package profile

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// fanOut calls fn for every repository with at most limit calls in flight.
// results[i] and errs[i] belong to repos[i]. Non-fatal errors are returned in
// errs; the first fatal error cancels the remaining calls and is returned as
// err.
func fanOut[T any](ctx context.Context, limit int, repos []Repository, fn func(context.Context, Repository) (T, error)) (results []T, errs []error, err error) {
	results = make([]T, len(repos))
	errs = make([]error, len(repos))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))

	for i, r := range repos {
		i, r := i, r
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := fn(gctx, r)
			if err != nil && isFatal(err) {
				return err
			}
			results[i], errs[i] = res, err
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return results, errs, nil
}
