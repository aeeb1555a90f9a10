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

package updater

import (
	"context"
	"errors"
	"time"

	"github.com/poptimizer/actors/actor"
	gerrors "github.com/poptimizer/actors/errors"
	"github.com/poptimizer/actors/resilience"
)

// Source returns the last published trading day
type Source interface {
	LastTradingDay(ctx context.Context) (time.Time, error)
}

const (
	// DefaultCheckInterval is the delay between two successful checks
	DefaultCheckInterval = time.Minute
	// DefaultMaxCheckInterval caps the delay after repeated failures
	DefaultMaxCheckInterval = 24 * time.Hour

	backoffFactor = 2
)

// Watcher polls a Source and sends NewTradingDay to its subscribers each time
// the exchange publishes a new session.
//
// After a failed check the next one is delayed twice as long, up to the
// configured maximum. A successful check restores the initial interval.
type Watcher struct {
	source      Source
	subscribers []actor.Address
	policy      *resilience.Policy
	interval    time.Duration
	maxInterval time.Duration
	now         func() time.Time

	guard   *resilience.Guard
	checked time.Time
	current time.Duration
	pending actor.ScheduleReference
}

// enforce compilation error
var _ actor.Behavior = (*Watcher)(nil)

// NewWatcher creates a Watcher notifying subscribers
func NewWatcher(source Source, subscribers []actor.Address, opts ...WatcherOption) *Watcher {
	watcher := &Watcher{
		source:      source,
		subscribers: append([]actor.Address(nil), subscribers...),
		interval:    DefaultCheckInterval,
		maxInterval: DefaultMaxCheckInterval,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(watcher)
	}

	if watcher.policy == nil {
		watcher.policy = resilience.DefaultPolicy(resilience.Is(ErrDataUpdate), resilience.Transient())
	}
	if watcher.maxInterval < watcher.interval {
		watcher.maxInterval = watcher.interval
	}
	watcher.current = watcher.interval
	return watcher
}

// Receive implements actor.Behavior
func (w *Watcher) Receive(ctx actor.Context, message any) error {
	switch message.(type) {
	case actor.Lifecycle:
		if message == actor.Starting {
			return w.start(ctx)
		}
		return w.stop(ctx)
	case Check:
		// a check left in the mailbox at shutdown would fail on the canceled context
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		w.check(ctx)
		return w.schedule(ctx)
	default:
		return gerrors.NewErrUnhandled(message)
	}
}

// Interval returns the delay before the next check
func (w *Watcher) Interval() time.Duration {
	return w.current
}

func (w *Watcher) start(ctx actor.Context) error {
	w.guard = resilience.NewGuard(ErrDataUpdate, ctx.Logger(), resilience.WithPolicy(w.policy))
	ctx.Logger().Infof("last update on %s", w.checked.Format(time.DateOnly))
	ctx.Send(Check{}, ctx.Self())
	return nil
}

func (w *Watcher) stop(ctx actor.Context) error {
	ctx.Logger().Infof("last update on %s", w.checked.Format(time.DateOnly))
	if w.pending == "" {
		return nil
	}

	err := ctx.Scheduler().Cancel(w.pending)
	w.pending = ""
	return ignoreStopped(err)
}

func (w *Watcher) schedule(ctx actor.Context) error {
	select {
	case <-ctx.Done():
		return nil
	default:
	}

	reference, err := ctx.Scheduler().ScheduleOnce(Check{}, ctx.Self(), w.current)
	if err != nil {
		return ignoreStopped(err)
	}
	w.pending = reference
	return nil
}

func (w *Watcher) check(ctx actor.Context) {
	logger := ctx.Logger()
	expected := expectedTradingDay(w.now())
	if !w.checked.Before(expected) {
		w.current = w.interval
		return
	}

	logger.Infof("checking new trading data on %s", expected.Format(time.DateOnly))

	fetch := resilience.Guarded(w.guard, "can't download trading dates", resilience.Operation[time.Time](w.source.LastTradingDay))
	result, err := fetch(ctx.Context())
	day, ok := result.Get()
	if err != nil || !ok {
		w.current = min(w.current*backoffFactor, w.maxInterval)
		logger.Warnf("can't complete update, waiting %s", w.current)
		return
	}
	w.current = w.interval

	if !day.After(w.checked) {
		w.checked = expected
		logger.Info("update not required")
		return
	}

	for _, subscriber := range w.subscribers {
		ctx.Send(NewTradingDay{Date: day}, subscriber)
	}
	w.checked = expected
	logger.Infof("new trading day %s", day.Format(time.DateOnly))
}

// ignoreStopped drops the errors of a scheduler already stopped by the shutdown
// or of a delivery already made
func ignoreStopped(err error) error {
	if errors.Is(err, gerrors.ErrSchedulerNotStarted) || errors.Is(err, gerrors.ErrScheduledReferenceNotFound) {
		return nil
	}
	return err
}
