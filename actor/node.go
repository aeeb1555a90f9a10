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
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	gerrors "github.com/poptimizer/actors/errors"
	"github.com/poptimizer/actors/log"
)

// node runs one Behavior and supervises its children.
type node struct {
	address  Address
	behavior Behavior
	system   *system
	mailbox  *mailbox
	logger   log.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	children mapset.Set[*node]

	shuttingDown *atomic.Bool
	shutdownOnce sync.Once
	shutdownErr  error

	// closed when the loop has exited
	stopped chan struct{}
}

// enforce compilation error
var _ Context = (*node)(nil)

// newNode creates a node and registers its mailbox. The caller starts it.
func newNode(parent context.Context, sys *system, behavior Behavior, config *spawnConfig) *node {
	label := config.name
	if label == "" {
		label = labelOf(behavior)
	}

	address := newAddress(label)
	ctx, cancel := context.WithCancel(parent)

	return &node{
		address:      address,
		behavior:     behavior,
		system:       sys,
		mailbox:      sys.registry.register(address),
		logger:       sys.logger.With("address", address.String()),
		ctx:          ctx,
		cancel:       cancel,
		children:     mapset.NewThreadUnsafeSet[*node](),
		shuttingDown: atomic.NewBool(false),
		stopped:      make(chan struct{}),
	}
}

// start enqueues Starting ahead of anything else and launches the loop
func (n *node) start() {
	n.mailbox.Enqueue(Starting)
	n.system.metrics.actorStarted(n.ctx, n.address.Label())
	n.system.publish(&ActorStarted{Address: n.address, StartedAt: time.Now()})
	go n.loop()
}

// Self returns the address of the actor
func (n *node) Self() Address {
	return n.address
}

// Spawn starts a child actor supervised by n
func (n *node) Spawn(behavior Behavior, opts ...SpawnOption) (Address, error) {
	if behavior == nil {
		return NoAddress, gerrors.ErrUndefinedBehavior
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	// the flag flips under the same lock the shutdown snapshots children with
	if n.shuttingDown.Load() {
		return NoAddress, gerrors.ErrShuttingDown
	}

	child := newNode(n.ctx, n.system, behavior, newSpawnConfig(opts...))
	n.children.Add(child)
	child.start()

	n.logger.Debugf("spawned child %s", child.address)
	return child.address, nil
}

// Send enqueues message on the mailbox of to
func (n *node) Send(message any, to Address) {
	n.system.send(message, to)
}

// Done is closed when the shutdown of the actor starts
func (n *node) Done() <-chan struct{} {
	return n.ctx.Done()
}

// Context returns the actor's context
func (n *node) Context() context.Context {
	return n.ctx
}

// Logger returns the actor's logger
func (n *node) Logger() log.Logger {
	return n.logger
}

// Scheduler returns the message scheduler of the tree
func (n *node) Scheduler() *Scheduler {
	return n.system.scheduler
}

// shutdown stops the children concurrently, then the node itself. It never
// returns before every child's shutdown has returned. It is idempotent.
func (n *node) shutdown(ctx context.Context) error {
	n.shutdownOnce.Do(func() {
		n.mu.Lock()
		n.shuttingDown.Store(true)
		children := n.children.ToSlice()
		n.mu.Unlock()

		n.cancel()
		n.logger.Debugf("shutdown started, freeing %d children", len(children))

		errs := make([]error, len(children))
		eg := new(errgroup.Group)
		for i, child := range children {
			eg.Go(func() error {
				errs[i] = child.shutdown(ctx)
				return nil
			})
		}
		_ = eg.Wait()

		err := multierr.Combine(errs...)

		n.mailbox.Enqueue(stopRequest{})
		select {
		case <-n.stopped:
		case <-ctx.Done():
			err = multierr.Append(err, fmt.Errorf("actor %s did not stop in time: %w", n.address, ctx.Err()))
		}

		if err != nil {
			n.logger.Errorf("failed to cleanly shutdown: %v", err)
		}
		n.shutdownErr = err
	})
	return n.shutdownErr
}

// loop processes messages until a stop request has been received and the
// mailbox is drained. Stopping is handed to the behavior last.
func (n *node) loop() {
	defer close(n.stopped)

	stopping := false
	for {
		message, ok := n.mailbox.Dequeue()
		if !ok {
			if !stopping {
				<-n.mailbox.Ready()
				continue
			}

			// refuse new messages, then handle whatever was accepted before
			n.mailbox.Close()
			if !n.mailbox.IsEmpty() {
				continue
			}
			break
		}

		if _, ok := message.(stopRequest); ok {
			stopping = true
			continue
		}

		n.handle(message)
	}

	n.handle(Stopping)
	n.system.registry.deregister(n.address, n.mailbox)
	n.system.metrics.actorStopped(context.Background(), n.address.Label())
	n.system.publish(&ActorStopped{Address: n.address, StoppedAt: time.Now()})
	n.logger.Debug("stopped")
}

// handle invokes the behavior; failures are logged and swallowed
func (n *node) handle(message any) {
	start := time.Now()
	err := n.receive(message)
	n.system.metrics.messageHandled(context.Background(), n.address.Label(), time.Since(start), err != nil)

	if err != nil {
		n.logger.With("message", fmt.Sprintf("%T", message)).
			Warnf("failed to handle message %+v: %v", message, err)
	}
}

func (n *node) receive(message any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = toPanicError(r)
		}
	}()
	return n.behavior.Receive(n, message)
}

// toPanicError wraps a recovered value with the location of the panic
func toPanicError(r any) error {
	if err, ok := r.(error); ok {
		var pe *gerrors.PanicError
		if errors.As(err, &pe) {
			return pe
		}

		pc, fn, line, _ := runtime.Caller(3)
		return gerrors.NewPanicError(fmt.Errorf("%w at %s[%s:%d]", err, runtime.FuncForPC(pc).Name(), fn, line))
	}

	pc, fn, line, _ := runtime.Caller(3)
	return gerrors.NewPanicError(fmt.Errorf("%#v at %s[%s:%d]", r, runtime.FuncForPC(pc).Name(), fn, line))
}
