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

package actor

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/multierr"

	gerrors "github.com/poptimizer/actors/errors"
	"github.com/poptimizer/actors/eventstream"
	"github.com/poptimizer/actors/log"
)

// DefaultShutdownTimeout bounds the shutdown that follows the cancellation of a Root's context
const DefaultShutdownTimeout = 30 * time.Second

// Root binds an actor tree to the lifetime of a context.
//
// The top-level behavior runs as the only child of an anonymous supervising
// actor. Canceling the context given to NewRoot runs the shutdown cascade.
type Root struct {
	logger          log.Logger
	meterProvider   metric.MeterProvider
	events          eventstream.Stream
	shutdownTimeout time.Duration

	system *system
	node   *node
	top    Address

	mu           sync.Mutex
	stopWatching func() bool
	shutdownOnce sync.Once
	shutdownErr  error
	done         chan struct{}
}

// NewRoot builds a tree around behavior and starts it.
func NewRoot(ctx context.Context, behavior Behavior, opts ...Option) (*Root, error) {
	if behavior == nil {
		return nil, gerrors.ErrUndefinedBehavior
	}

	root := &Root{
		logger:          log.DefaultLogger,
		meterProvider:   otel.GetMeterProvider(),
		shutdownTimeout: DefaultShutdownTimeout,
		done:            make(chan struct{}),
	}

	for _, opt := range opts {
		opt.Apply(root)
	}

	registry := newRegistry()
	metrics, err := newMetrics(root.meterProvider, registry)
	if err != nil {
		return nil, err
	}

	sys := &system{
		registry: registry,
		logger:   root.logger,
		metrics:  metrics,
		events:   root.events,
	}

	scheduler, err := newScheduler(root.logger, sys.send)
	if err != nil {
		return nil, multierr.Append(err, metrics.close())
	}
	sys.scheduler = scheduler
	root.system = sys

	// the tree is stopped through Shutdown only
	base := context.WithoutCancel(ctx)
	scheduler.start(base)

	root.node = newNode(base, sys, BehaviorFunc(func(Context, any) error { return nil }), &spawnConfig{name: "root"})
	root.node.start()

	top, err := root.node.Spawn(behavior)
	if err != nil {
		_ = root.Shutdown(base)
		return nil, err
	}
	root.top = top

	root.mu.Lock()
	root.stopWatching = context.AfterFunc(ctx, func() {
		shutdownCtx, cancel := context.WithTimeout(base, root.shutdownTimeout)
		defer cancel()
		_ = root.Shutdown(shutdownCtx)
	})
	root.mu.Unlock()

	return root, nil
}

// Address returns the address of the top-level actor
func (r *Root) Address() Address {
	return r.top
}

// Spawn starts another actor next to the top-level one
func (r *Root) Spawn(behavior Behavior, opts ...SpawnOption) (Address, error) {
	return r.node.Spawn(behavior, opts...)
}

// Send enqueues message on the mailbox of to
func (r *Root) Send(message any, to Address) {
	r.system.send(message, to)
}

// Scheduler returns the message scheduler of the tree
func (r *Root) Scheduler() *Scheduler {
	return r.system.scheduler
}

// Wait blocks until the tree has shut down and returns the shutdown error.
func (r *Root) Wait() error {
	<-r.done
	return r.shutdownErr
}

// Shutdown stops the scheduler, runs the shutdown cascade and flushes the logger.
// It is safe to call more than once; later calls return the first result.
func (r *Root) Shutdown(ctx context.Context) error {
	r.shutdownOnce.Do(func() {
		r.mu.Lock()
		if r.stopWatching != nil {
			r.stopWatching()
		}
		r.mu.Unlock()

		r.logger.Debug("shutting down the actors tree")
		r.system.scheduler.stop(ctx)

		err := r.node.shutdown(ctx)
		r.shutdownErr = multierr.Combine(err, r.system.metrics.close(), r.logger.Flush())
		close(r.done)
	})

	<-r.done
	return r.shutdownErr
}

// Run runs behavior until SIGINT or SIGTERM is received or ctx is canceled,
// then waits for the tree to shut down.
func Run(ctx context.Context, behavior Behavior, opts ...Option) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, err := NewRoot(ctx, behavior, opts...)
	if err != nil {
		return err
	}

	return root.Wait()
}
