package cache

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// retryDelay is the first backoff interval; it doubles after every attempt.
var retryDelay = 250 * time.Millisecond

// retry calls fn up to attempts times with exponential backoff, stopping
// early on success, on cancellation, or on an error retryable rejects.
func retry(ctx context.Context, attempts int, retryable func(error) bool, fn func() error) error {
	delay := retryDelay
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil || !retryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return err
}

// Server replies that clear up by themselves.
var transientReplies = []string{"LOADING", "BUSY", "TRYAGAIN", "MASTERDOWN"}

// redisTransient reports whether a failed command may succeed later: the
// server is unreachable, dropped the connection, or is still starting.
// Authentication and configuration errors are permanent.
func redisTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var rerr redis.Error
	if errors.As(err, &rerr) {
		for _, prefix := range transientReplies {
			if strings.HasPrefix(rerr.Error(), prefix) {
				return true
			}
		}
		return false
	}
	var nerr net.Error
	return errors.As(err, &nerr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
