// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package resilience

import (
	"context"
	"math"
	"time"

	"github.com/cenkalti/backoff/v4"

	gerrors "github.com/poptimizer/actors/errors"
	"github.com/poptimizer/actors/internal/errorschain"
	"github.com/poptimizer/actors/log"
)

// Policy describes how RetryOnError retries. It is immutable.
type Policy struct {
	attempts int
	initial  time.Duration
	factor   float64
	kinds    []Kind
}

// NewPolicy creates a Policy making at most attempts calls, sleeping initial,
// then initial*factor, and so on between them. Only failures matching kinds are
// retried; an empty list retries every failure.
func NewPolicy(attempts int, initial time.Duration, factor float64, kinds ...Kind) (*Policy, error) {
	chain := errorschain.New(errorschain.ReturnAll()).
		AddErrorIf(attempts < 2, gerrors.NewErrInvalidPolicy("attempts must be at least 2")).
		AddErrorIf(initial <= 0, gerrors.NewErrInvalidPolicy("initial backoff must be positive")).
		AddErrorIf(factor < 1 || math.IsNaN(factor), gerrors.NewErrInvalidPolicy("factor must be at least 1"))
	if err := chain.Error(); err != nil {
		return nil, err
	}

	return &Policy{
		attempts: attempts,
		initial:  initial,
		factor:   factor,
		kinds:    append([]Kind(nil), kinds...),
	}, nil
}

// Attempts returns the maximum number of calls
func (p *Policy) Attempts() int {
	return p.attempts
}

// InitialBackoff returns the sleep before the second call
func (p *Policy) InitialBackoff() time.Duration {
	return p.initial
}

// Factor returns the backoff multiplier
func (p *Policy) Factor() float64 {
	return p.factor
}

// Retryable reports whether err is worth another attempt
func (p *Policy) Retryable(err error) bool {
	return matches(err, p.kinds)
}

func (p *Policy) backOff(ctx context.Context) backoff.BackOff {
	exponential := &backoff.ExponentialBackOff{
		InitialInterval:     p.initial,
		RandomizationFactor: 0,
		Multiplier:          p.factor,
		MaxInterval:         time.Duration(math.MaxInt64),
		MaxElapsedTime:      0,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}
	exponential.Reset()

	return backoff.WithContext(backoff.WithMaxRetries(exponential, uint64(p.attempts-1)), ctx)
}

type retryConfig struct {
	timer backoff.Timer
}

// retryOption is only used by tests to observe the sleeps
type retryOption func(*retryConfig)

func withTimer(timer backoff.Timer) retryOption {
	return func(config *retryConfig) {
		config.timer = timer
	}
}

// RetryOnError returns an Operation that calls op up to policy.Attempts() times.
//
// Retryable failures are followed by a sleep, never after the last attempt.
// Other failures are returned at once. When every attempt fails the last
// failure is returned. A canceled ctx interrupts the sleep and its error is
// returned.
func RetryOnError[T any](op Operation[T], policy *Policy, logger log.Logger, opts ...retryOption) Operation[T] {
	config := new(retryConfig)
	for _, opt := range opts {
		opt(config)
	}

	return func(ctx context.Context) (T, error) {
		attempt := 0
		operation := func() (T, error) {
			attempt++
			value, err := op(ctx)
			if err != nil && !policy.Retryable(err) {
				return value, backoff.Permanent(err)
			}
			return value, err
		}

		notify := func(err error, next time.Duration) {
			logger.Debugf("attempt %d/%d failed, retrying in %s: %v", attempt, policy.attempts, next, err)
		}

		return backoff.RetryNotifyWithTimerAndData(operation, policy.backOff(ctx), notify, config.timer)
	}
}
