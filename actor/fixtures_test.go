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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/poptimizer/actors/log"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

// newObservedLogger returns a logger capturing every entry at debug level and above
func newObservedLogger() (log.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return log.NewZapWithCore(core), logs
}

func warnings(logs *observer.ObservedLogs) int {
	return logs.FilterLevelExact(zapcore.WarnLevel).Len()
}

// recorder stores every message it receives, lifecycle signals included
type recorder struct {
	mu       sync.Mutex
	messages []any
}

func (r *recorder) Receive(_ Context, message any) error {
	r.mu.Lock()
	r.messages = append(r.messages, message)
	r.mu.Unlock()
	return nil
}

func (r *recorder) Messages() []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]any, len(r.messages))
	copy(out, r.messages)
	return out
}

func (r *recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

// journal records lines across several actors in a single order
type journal struct {
	mu    sync.Mutex
	lines []string
}

func (j *journal) add(line string) {
	j.mu.Lock()
	j.lines = append(j.lines, line)
	j.mu.Unlock()
}

func (j *journal) Lines() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]string, len(j.lines))
	copy(out, j.lines)
	return out
}

// spawner captures the addresses of the children it spawns on Starting
type spawner struct {
	children []Behavior
	spawned  chan Address
}

func (s *spawner) Receive(ctx Context, message any) error {
	if message != Starting {
		return nil
	}
	for _, child := range s.children {
		address, err := ctx.Spawn(child)
		if err != nil {
			return err
		}
		s.spawned <- address
	}
	return nil
}

var errFaulty = errors.New("faulty message")

// faulty fails on "error" and panics on "panic"
func faulty(received *recorder) Behavior {
	return BehaviorFunc(func(ctx Context, message any) error {
		switch message {
		case "error":
			return errFaulty
		case "panic":
			panic("boom")
		case "panic-error":
			panic(errFaulty)
		default:
			return received.Receive(ctx, message)
		}
	})
}

func shutdownRoot(t *testing.T, root *Root) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()
	require.NoError(t, root.Shutdown(ctx))
}

func newManualReader() (*sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	reader := sdkmetric.NewManualReader()
	return reader, sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
}

// sumOf adds up every data point of the named int64 sum instrument
func sumOf(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	return sumWhere(t, reader, name, func(attribute.Set) bool { return true })
}

// sumOfBehavior adds up the data points of the named int64 sum instrument
// recorded for the given behavior label
func sumOfBehavior(t *testing.T, reader *sdkmetric.ManualReader, name, label string) int64 {
	t.Helper()
	return sumWhere(t, reader, name, func(attrs attribute.Set) bool {
		value, ok := attrs.Value(behaviorAttribute)
		return ok && value.AsString() == label
	})
}

func sumWhere(t *testing.T, reader *sdkmetric.ManualReader, name string, keep func(attribute.Set) bool) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var total int64
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "%s is not an int64 sum", name)
			for _, point := range sum.DataPoints {
				if keep(point.Attributes) {
					total += point.Value
				}
			}
		}
	}
	return total
}

// gaugeOf returns the value of the named int64 gauge for the given behavior label
func gaugeOf(t *testing.T, reader *sdkmetric.ManualReader, name, label string) (int64, bool) {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != name {
				continue
			}
			gauge, ok := m.Data.(metricdata.Gauge[int64])
			require.True(t, ok, "%s is not an int64 gauge", name)
			for _, point := range gauge.DataPoints {
				if value, ok := point.Attributes.Value(behaviorAttribute); ok && value.AsString() == label {
					return point.Value, true
				}
			}
		}
	}
	return 0, false
}
