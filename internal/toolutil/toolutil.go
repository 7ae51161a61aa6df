// Package toolutil provides shared helpers for go_tube MCP tools.
package toolutil

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/anatolykoptev/go_tube/internal/engine"
)

// Cached returns the cached value under key, or runs fn and caches its result.
// Errors are never cached.
func Cached[T any](ctx context.Context, key string, fn func(context.Context) (T, error)) (T, error) {
	if out, ok := engine.CacheLoadJSON[T](ctx, key); ok {
		return out, nil
	}
	out, err := fn(ctx)
	if err != nil {
		return out, err
	}
	engine.CacheStoreJSON(ctx, key, out)
	return out, nil
}

// MapParallel runs fn over inputs with at most limit calls in flight and
// returns the outputs in input order. fn reports its own failures in Out.
func MapParallel[In, Out any](ctx context.Context, inputs []In, limit int, fn func(context.Context, In) Out) []Out {
	out := make([]Out, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, in := range inputs {
		g.Go(func() error {
			out[i] = fn(gctx, in)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		slog.Debug("toolutil: parallel map", slog.Any("error", err))
	}
	return out
}
