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
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/reugn/go-quartz/job"
	quartzlogger "github.com/reugn/go-quartz/logger"
	"github.com/reugn/go-quartz/quartz"
	"go.uber.org/atomic"

	gerrors "github.com/poptimizer/actors/errors"
	"github.com/poptimizer/actors/log"
)

// ScheduleReference identifies a scheduled delivery so that it can be canceled
type ScheduleReference string

// Scheduler delivers messages to actors in the future.
// Deliveries go through the same path as Context.Send.
type Scheduler struct {
	// helps lock concurrent access
	mu sync.Mutex
	// underlying Scheduler
	quartzScheduler quartz.Scheduler
	// states whether the quartzScheduler has started or not
	started *atomic.Bool
	logger  log.Logger
	send    func(message any, to Address)
}

// newScheduler creates an instance of Scheduler
func newScheduler(logger log.Logger, send func(message any, to Address)) (*Scheduler, error) {
	// create an instance of quartz scheduler with logger off
	quartzScheduler, err := quartz.NewStdScheduler(quartz.WithLogger(quartzlogger.NewSimpleLogger(nil, quartzlogger.LevelOff)))
	if err != nil {
		return nil, fmt.Errorf("failed to create the messages scheduler: %w", err)
	}

	return &Scheduler{
		quartzScheduler: quartzScheduler,
		started:         atomic.NewBool(false),
		logger:          logger,
		send:            send,
	}, nil
}

// start starts the scheduler
func (x *Scheduler) start(ctx context.Context) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.quartzScheduler.Start(ctx)
	x.started.Store(x.quartzScheduler.IsStarted())
	x.logger.Debug("messages scheduler started")
}

// stop drops every pending delivery and waits for running jobs
func (x *Scheduler) stop(ctx context.Context) {
	if !x.started.Load() {
		return
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	_ = x.quartzScheduler.Clear()
	x.quartzScheduler.Stop()
	x.started.Store(x.quartzScheduler.IsStarted())
	x.quartzScheduler.Wait(ctx)
	x.logger.Debug("messages scheduler stopped")
}

// ScheduleOnce delivers message to the actor after the given delay.
func (x *Scheduler) ScheduleOnce(message any, to Address, delay time.Duration) (ScheduleReference, error) {
	return x.schedule(message, to, func() (quartz.Trigger, error) {
		return quartz.NewRunOnceTrigger(delay), nil
	})
}

// Schedule delivers message to the actor every interval until canceled.
func (x *Scheduler) Schedule(message any, to Address, interval time.Duration) (ScheduleReference, error) {
	return x.schedule(message, to, func() (quartz.Trigger, error) {
		return quartz.NewSimpleTrigger(interval), nil
	})
}

// ScheduleWithCron delivers message to the actor following a cron expression
// evaluated in the local time zone.
func (x *Scheduler) ScheduleWithCron(message any, to Address, cronExpression string) (ScheduleReference, error) {
	return x.schedule(message, to, func() (quartz.Trigger, error) {
		trigger, err := quartz.NewCronTriggerWithLoc(cronExpression, time.Now().Location())
		if err != nil {
			x.logger.Errorf("failed to schedule message: %v", err)
			return nil, err
		}
		return trigger, nil
	})
}

// Cancel removes a scheduled delivery.
func (x *Scheduler) Cancel(reference ScheduleReference) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.started.Load() {
		return gerrors.ErrSchedulerNotStarted
	}

	if err := x.quartzScheduler.DeleteJob(quartz.NewJobKey(string(reference))); err != nil {
		return fmt.Errorf("%s: %w", reference, gerrors.ErrScheduledReferenceNotFound)
	}
	return nil
}

func (x *Scheduler) schedule(message any, to Address, newTrigger func() (quartz.Trigger, error)) (ScheduleReference, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if !x.started.Load() {
		return "", gerrors.ErrSchedulerNotStarted
	}

	trigger, err := newTrigger()
	if err != nil {
		return "", err
	}

	deliver := job.NewFunctionJob[bool](
		func(context.Context) (bool, error) {
			x.send(message, to)
			return true, nil
		},
	)

	key := newJobKey()
	detail := quartz.NewJobDetail(deliver, quartz.NewJobKey(key))
	if err := x.quartzScheduler.ScheduleJob(detail, trigger); err != nil {
		return "", err
	}
	return ScheduleReference(key), nil
}

// newJobKey creates a new job key
func newJobKey() string {
	return uuid.NewString()
}
