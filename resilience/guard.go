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
	"time"

	"github.com/poptimizer/actors/log"
)

const (
	// DefaultAttempts is the number of calls made by the default policy
	DefaultAttempts = 3
	// DefaultInitialBackoff is the first sleep of the default policy
	DefaultInitialBackoff = time.Minute
	// DefaultFactor is the backoff multiplier of the default policy
	DefaultFactor = 2
)

// DefaultPolicy returns the policy used around data updates: three calls, one
// and then two minutes apart.
func DefaultPolicy(kinds ...Kind) *Policy {
	return &Policy{
		attempts: DefaultAttempts,
		initial:  DefaultInitialBackoff,
		factor:   DefaultFactor,
		kinds:    append([]Kind(nil), kinds...),
	}
}

// Guard bundles the decorators applied around one family of operations:
// failures are translated into the target kind, retried according to a policy,
// and finally suppressed.
type Guard struct {
	target error
	logger log.Logger
	policy *Policy
	kinds  []Kind
}

// GuardOption configures a Guard
type GuardOption func(*Guard)

// WithPolicy replaces the default retry policy
func WithPolicy(policy *Policy) GuardOption {
	return func(g *Guard) {
		g.policy = policy
	}
}

// WithKinds restricts the failures that get translated. Every failure is
// translated by default.
func WithKinds(kinds ...Kind) GuardOption {
	return func(g *Guard) {
		g.kinds = kinds
	}
}

// NewGuard creates a Guard translating failures into target.
// By default translated and transient failures are retried with DefaultPolicy.
func NewGuard(target error, logger log.Logger, opts ...GuardOption) *Guard {
	guard := &Guard{
		target: target,
		logger: logger,
		policy: DefaultPolicy(Is(target), Transient()),
	}

	for _, opt := range opts {
		opt(guard)
	}
	return guard
}

// Target returns the error kind produced by the Guard
func (g *Guard) Target() error {
	return g.target
}

// Guarded decorates op with g: translate, then retry, then suppress.
// Failures that were not translated are neither suppressed nor hidden.
func Guarded[T any](g *Guard, message string, op Operation[T]) Operation[Optional[T]] {
	translated := WrapErrors(op, g.target, message, g.kinds...)
	retried := RetryOnError(translated, g.policy, g.logger)
	return SuppressErrors(retried, g.logger, Is(g.target))
}
