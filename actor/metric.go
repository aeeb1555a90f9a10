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
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	instrumentationName = "github.com/poptimizer/actors"

	actorsCounterName      = "actors.count"
	processedCounterName   = "actors.messages.processed"
	failuresCounterName    = "actors.messages.failures"
	deadlettersCounterName = "actors.messages.deadletters"
	latencyHistogramName   = "actors.messages.latency"
	mailboxDepthName       = "actors.mailbox.depth"

	behaviorAttribute = "actor.behavior"
)

// metrics holds the synchronous instruments shared by every node of a tree
type metrics struct {
	actors      metric.Int64UpDownCounter
	processed   metric.Int64Counter
	failures    metric.Int64Counter
	deadletters metric.Int64Counter
	latency     metric.Float64Histogram
	depth       metric.Int64ObservableGauge

	registration metric.Registration
}

func newMetrics(provider metric.MeterProvider, registry *registry) (*metrics, error) {
	meter := provider.Meter(instrumentationName)
	metrics := new(metrics)
	var err error

	if metrics.actors, err = meter.Int64UpDownCounter(
		actorsCounterName,
		metric.WithDescription("The number of live actors"),
	); err != nil {
		return nil, fmt.Errorf("failed to create actors count instrument, %w", err)
	}

	if metrics.processed, err = meter.Int64Counter(
		processedCounterName,
		metric.WithDescription("The total number of messages handed to behaviors"),
	); err != nil {
		return nil, fmt.Errorf("failed to create processed count instrument, %w", err)
	}

	if metrics.failures, err = meter.Int64Counter(
		failuresCounterName,
		metric.WithDescription("The total number of messages whose handling failed or panicked"),
	); err != nil {
		return nil, fmt.Errorf("failed to create failures count instrument, %w", err)
	}

	if metrics.deadletters, err = meter.Int64Counter(
		deadlettersCounterName,
		metric.WithDescription("The total number of undeliverable messages"),
	); err != nil {
		return nil, fmt.Errorf("failed to create deadletters count instrument, %w", err)
	}

	if metrics.latency, err = meter.Float64Histogram(
		latencyHistogramName,
		metric.WithDescription("The latency of message handling in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, fmt.Errorf("failed to create latency instrument, %w", err)
	}

	if metrics.depth, err = meter.Int64ObservableGauge(
		mailboxDepthName,
		metric.WithDescription("The number of messages waiting in the mailboxes of live actors"),
	); err != nil {
		return nil, fmt.Errorf("failed to create mailbox depth instrument, %w", err)
	}

	if metrics.registration, err = meter.RegisterCallback(func(_ context.Context, observer metric.Observer) error {
		depths := make(map[string]int64)
		registry.each(func(address Address, box *mailbox) {
			depths[address.Label()] += box.Len()
		})
		for label, depth := range depths {
			observer.ObserveInt64(metrics.depth, depth, metric.WithAttributes(attribute.String(behaviorAttribute, label)))
		}
		return nil
	}, metrics.depth); err != nil {
		return nil, fmt.Errorf("failed to register mailbox depth callback, %w", err)
	}

	return metrics, nil
}

// close stops observing the mailboxes
func (m *metrics) close() error {
	return m.registration.Unregister()
}

func (m *metrics) actorStarted(ctx context.Context, label string) {
	m.actors.Add(ctx, 1, metric.WithAttributes(attribute.String(behaviorAttribute, label)))
}

func (m *metrics) actorStopped(ctx context.Context, label string) {
	m.actors.Add(ctx, -1, metric.WithAttributes(attribute.String(behaviorAttribute, label)))
}

func (m *metrics) messageHandled(ctx context.Context, label string, took time.Duration, failed bool) {
	attrs := metric.WithAttributes(attribute.String(behaviorAttribute, label))
	m.processed.Add(ctx, 1, attrs)
	m.latency.Record(ctx, float64(took)/float64(time.Millisecond), attrs)
	if failed {
		m.failures.Add(ctx, 1, attrs)
	}
}

func (m *metrics) deadletter(ctx context.Context) {
	m.deadletters.Add(ctx, 1)
}
