package blob

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	"github.com/gigmarket/backend/pkg/logger"
)

type retrying struct {
	next     Storage
	maxTries uint
	interval time.Duration
}

// WithRetry retries failed Put and Delete calls with exponential backoff, at most maxTries attempts.
// Client errors from the backend are not retried.
func WithRetry(next Storage, maxTries uint, interval time.Duration) Storage {
	if maxTries == 0 {
		maxTries = 1
	}
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}
	return &retrying{next: next, maxTries: maxTries, interval: interval}
}

func (r *retrying) Put(ctx context.Context, obj Object) (string, error) {
	return backoff.Retry(ctx, func() (string, error) {
		url, err := r.next.Put(ctx, obj)
		return url, classify(err)
	}, r.options(obj.Key)...)
}

func (r *retrying) Delete(ctx context.Context, url string) error {
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, classify(r.next.Delete(ctx, url))
	}, r.options(url)...)
	return err
}

func (r *retrying) options(target string) []backoff.RetryOption {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.interval
	b.MaxInterval = 10 * r.interval

	return []backoff.RetryOption{
		backoff.WithBackOff(b),
		backoff.WithMaxTries(r.maxTries),
		backoff.WithNotify(func(err error, wait time.Duration) {
			logger.Warn("storage call failed, retrying",
				zap.String("target", target),
				zap.Duration("wait", wait),
				zap.Error(err),
			)
		}),
	}
}

func classify(err error) error {
	if err == nil {
		return nil
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) &&
		statusErr.StatusCode >= 400 && statusErr.StatusCode < 500 &&
		statusErr.StatusCode != http.StatusTooManyRequests {
		return backoff.Permanent(err)
	}
	if errors.Is(err, ErrInvalidKey) {
		return backoff.Permanent(err)
	}
	return err
}
