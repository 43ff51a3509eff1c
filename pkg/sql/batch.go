package sql

import (
	"context"

	"github.com/leapstack-labs/sqlfront/pkg/dialect"
	"golang.org/x/sync/errgroup"
)

// BatchResult is the outcome of one text of a batch. Exactly one of Result
// and Err is set.
type BatchResult struct {
	Index  int
	Result *Result
	Err    error
}

// ParseBatch parses texts concurrently, each as a single statement. Results
// are returned in input order. A failing text does not stop the others; the
// returned error is reserved for an unknown dialect and for ctx being done
// before every parse started.
func ParseBatch(ctx context.Context, texts []string, dialectName string, opts ...Option) ([]BatchResult, error) {
	d, err := dialect.Resolve(dialectName)
	if err != nil {
		return nil, err
	}
	o := buildOptions(opts)

	results := make([]BatchResult, len(texts))
	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(o.Concurrency)

	for i, text := range texts {
		if egctx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			res, err := parseWith(text, d, o)
			results[i] = BatchResult{Index: i, Result: res, Err: err}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return results, err
	}
	for _, r := range results {
		if r.Result == nil && r.Err == nil {
			return results, ctx.Err()
		}
	}
	return results, nil
}
