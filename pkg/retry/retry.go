// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
// Package retry runs an operation again after failures, waiting between
// attempts according to a backoff.
package retry

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// Func must respect ctx.
type Func func(ctx context.Context) error

// Backoff returns the wait before retry number attempt (0 based).
type Backoff func(attempt int) time.Duration

// Fixed waits interval between attempts.
func Fixed(interval time.Duration) Backoff {
	return func(int) time.Duration { return interval }
}

// Exponential doubles base on every attempt, capped at max when max > 0.
func Exponential(base, max time.Duration) Backoff {
	return func(attempt int) time.Duration {
		d := base << min(attempt, 30)
		if d <= 0 || (max > 0 && d > max) {
			return max
		}
		return d
	}
}

// FullJitter picks a wait in [0, d).
func FullJitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return rand.N(d)
}

type options struct {
	attempts int
	backoff  Backoff
	jitter   func(time.Duration) time.Duration
	retryIf  func(error) bool
	onRetry  func(attempt int, err error)
}

type Option func(*options)

// WithAttempts sets the total number of attempts, the first one included.
func WithAttempts(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.attempts = n
		}
	}
}

func WithBackoff(b Backoff) Option {
	return func(o *options) {
		if b != nil {
			o.backoff = b
		}
	}
}

func WithJitter(j func(time.Duration) time.Duration) Option {
	return func(o *options) {
		if j != nil {
			o.jitter = j
		}
	}
}

// WithRetryIf stops retrying once fn returns false for an error.
func WithRetryIf(fn func(error) bool) Option {
	return func(o *options) {
		if fn != nil {
			o.retryIf = fn
		}
	}
}

// OnRetry is called before each wait.
func OnRetry(fn func(attempt int, err error)) Option {
	return func(o *options) { o.onRetry = fn }
}

// Do runs fn until it succeeds, the attempts run out, the error is not
// retryable or ctx is done. It returns the last error of fn, or the context
// error when ctx ended a wait.
func Do(ctx context.Context, fn Func, opts ...Option) error {
	o := options{
		attempts: 3,
		backoff:  Fixed(time.Second),
		jitter:   func(d time.Duration) time.Duration { return d },
		retryIf:  Retryable,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var err error
	for attempt := 0; attempt < o.attempts; attempt++ {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if err = fn(ctx); err == nil {
			return nil
		}
		if !o.retryIf(err) || attempt == o.attempts-1 {
			return err
		}
		if o.onRetry != nil {
			o.onRetry(attempt+1, err)
		}

		wait := o.jitter(o.backoff(attempt))
		if wait <= 0 {
			continue
		}
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
	return err
}

// Retryable retries everything except context cancellation and deadlines.
func Retryable(err error) bool {
	return err != nil &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}
