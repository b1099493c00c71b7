package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/ptyoiy/tracker-sub000/internal/ports"
)

// attempt runs one provider fetch under its own timeout and absorbs any
// failure. Isolation is structural: every fetch in the pipeline goes through
// this wrapper, so a timeout, transport error or no-route response can only
// ever cost its own candidate, never the request.
func attempt[T any](ctx context.Context, logger *zap.Logger, name string, timeout time.Duration, fn func(context.Context) (T, error)) (T, bool) {
	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := fn(fetchCtx)
	if err != nil {
		if errors.Is(err, ports.ErrNoRoute) {
			logger.Debug("provider returned no route", zap.String("fetch", name))
		} else {
			logger.Warn("provider fetch failed", zap.String("fetch", name), zap.Error(err))
		}
		var zero T
		return zero, false
	}
	return result, true
}
