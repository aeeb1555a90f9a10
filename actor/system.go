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
	"time"

	gerrors "github.com/poptimizer/actors/errors"
	"github.com/poptimizer/actors/eventstream"
	"github.com/poptimizer/actors/log"
)

// system is the state shared by every node of one tree
type system struct {
	registry  *registry
	logger    log.Logger
	metrics   *metrics
	events    eventstream.Stream
	scheduler *Scheduler
}

// send delivers message to the mailbox of to or records a dead letter
func (s *system) send(message any, to Address) {
	if signal, ok := message.(Lifecycle); ok {
		s.logger.Warnf("dropped %s sent to %s: %v", signal, to, gerrors.ErrReservedMessage)
		return
	}

	if s.registry.send(message, to) {
		return
	}

	s.deadletter(message, to)
}

func (s *system) deadletter(message any, to Address) {
	s.logger.Warnf("dropped message %T sent to %s: %v", message, to, gerrors.ErrDead)
	s.metrics.deadletter(context.Background())
	s.publish(&Deadletter{
		To:         to,
		Message:    message,
		Reason:     gerrors.ErrDead,
		OccurredAt: time.Now(),
	})
}

// publish forwards event to the stream when someone listens on EventsTopic
func (s *system) publish(event any) {
	if s.events == nil || s.events.SubscribersCount(EventsTopic) == 0 {
		return
	}
	s.events.Publish(EventsTopic, event)
}
