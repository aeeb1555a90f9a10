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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	gerrors "github.com/poptimizer/actors/errors"
	"github.com/poptimizer/actors/eventstream"
	"github.com/poptimizer/actors/log"
)

func TestRoot(t *testing.T) {
	t.Run("With context cancellation", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		logger, _ := newObservedLogger()
		received := new(recorder)

		ctx, cancel := context.WithCancel(context.Background())
		root, err := NewRoot(ctx, received, WithLogger(logger), WithShutdownTimeout(waitFor))
		require.NoError(t, err)

		root.Send("hello", root.Address())
		cancel()

		require.NoError(t, root.Wait())
		assert.Equal(t, []any{Starting, "hello", Stopping}, received.Messages())
	})
	t.Run("With explicit shutdown called twice", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		root, err := NewRoot(context.Background(), new(recorder), WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		shutdownRoot(t, root)
		shutdownRoot(t, root)
		require.NoError(t, root.Wait())
	})
	t.Run("With nil behavior", func(t *testing.T) {
		root, err := NewRoot(context.Background(), nil)
		require.ErrorIs(t, err, gerrors.ErrUndefinedBehavior)
		require.Nil(t, root)
	})
	t.Run("With shutdown timeout", func(t *testing.T) {
		logger, _ := newObservedLogger()
		release := make(chan struct{})
		root, err := NewRoot(context.Background(), BehaviorFunc(func(_ Context, message any) error {
			if message == "block" {
				<-release
			}
			return nil
		}), WithLogger(logger))
		require.NoError(t, err)

		root.Send("block", root.Address())
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		err = root.Shutdown(ctx)
		require.ErrorIs(t, err, context.DeadlineExceeded)

		close(release)
	})
	t.Run("With lifecycle events published", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		logger, _ := newObservedLogger()
		stream := eventstream.New()
		subscriber := stream.AddSubscriber()
		stream.Subscribe(subscriber, EventsTopic)

		root, err := NewRoot(context.Background(), new(recorder), WithLogger(logger), WithEventStream(stream))
		require.NoError(t, err)
		shutdownRoot(t, root)

		var started, stopped []Address
		for message := range subscriber.Iterator() {
			switch event := message.Payload().(type) {
			case *ActorStarted:
				started = append(started, event.Address)
			case *ActorStopped:
				stopped = append(stopped, event.Address)
			}
		}

		// the anonymous supervisor and the top-level actor
		assert.Len(t, started, 2)
		assert.Len(t, stopped, 2)
		assert.Contains(t, started, root.Address())
		// the top-level actor stops before its supervisor
		assert.Equal(t, root.Address(), stopped[0])
		stream.Close()
	})
	t.Run("With Run returning once the context is done", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		logger, _ := newObservedLogger()
		received := new(recorder)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- Run(ctx, received, WithLogger(logger))
		}()

		require.Eventually(t, func() bool { return received.Count() == 1 }, waitFor, tick)
		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(waitFor):
			require.Fail(t, "Run did not return")
		}
		assert.Equal(t, []any{Starting, Stopping}, received.Messages())
	})
}
