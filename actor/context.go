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

	"github.com/poptimizer/actors/log"
)

// Context is handed to a Behavior on every message.
//
// It is bound to the actor that receives the message and is safe to retain and use
// from other goroutines started by the behavior.
type Context interface {
	// Self returns the address of the receiving actor
	Self() Address
	// Spawn starts a child actor. It fails with errors.ErrShuttingDown once the
	// receiving actor has begun its shutdown.
	Spawn(behavior Behavior, opts ...SpawnOption) (Address, error)
	// Send enqueues message on the mailbox of to. It never blocks and never fails;
	// undeliverable messages become dead letters.
	Send(message any, to Address)
	// Done is closed when the actor's shutdown starts
	Done() <-chan struct{}
	// Context returns a context.Context canceled when the actor's shutdown starts.
	// Messages handled while the mailbox drains, Stopping included, already see it
	// canceled, so blocking calls bound to it fail at once.
	Context() context.Context
	// Logger returns the actor's logger, annotated with its address
	Logger() log.Logger
	// Scheduler returns the message scheduler of the tree
	Scheduler() *Scheduler
}
