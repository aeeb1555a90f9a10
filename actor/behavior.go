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
	"fmt"
	"reflect"

	gerrors "github.com/poptimizer/actors/errors"
)

// Behavior is the message handler of an actor.
//
// Receive is never called concurrently for the same actor. A returned error is
// logged with the actor's address and the message, then the actor moves on.
type Behavior interface {
	Receive(ctx Context, message any) error
}

// BehaviorFunc adapts an ordinary function to a Behavior.
type BehaviorFunc func(ctx Context, message any) error

// Receive calls f(ctx, message)
func (f BehaviorFunc) Receive(ctx Context, message any) error {
	return f(ctx, message)
}

// Typed builds a Behavior that only accepts messages of type M.
//
// Any other message fails with errors.ErrUnhandled. Lifecycle signals are skipped
// silently unless M can hold them, so a behavior that cares about Starting or
// Stopping declares M as an interface that Lifecycle satisfies, usually a sealed
// union of its own messages plus Lifecycle.
func Typed[M any](fn func(ctx Context, message M) error) Behavior {
	return typed[M]{fn: fn}
}

type typed[M any] struct {
	fn func(ctx Context, message M) error
}

func (t typed[M]) Receive(ctx Context, message any) error {
	msg, ok := message.(M)
	if !ok {
		if _, lifecycle := message.(Lifecycle); lifecycle {
			return nil
		}
		return gerrors.NewErrUnhandled(message)
	}
	return t.fn(ctx, msg)
}

func (t typed[M]) name() string {
	return fmt.Sprintf("Typed[%s]", reflect.TypeFor[M]().String())
}

// labelOf returns the display name used in addresses and metrics
func labelOf(behavior Behavior) string {
	if named, ok := behavior.(interface{ name() string }); ok {
		return named.name()
	}

	kind := reflect.TypeOf(behavior)
	for kind.Kind() == reflect.Pointer {
		kind = kind.Elem()
	}

	if kind.Name() == "" {
		return kind.String()
	}
	return kind.Name()
}
