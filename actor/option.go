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
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/poptimizer/actors/eventstream"
	"github.com/poptimizer/actors/log"
)

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(root *Root)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*Root)

// Apply applies the Root's option
func (f OptionFunc) Apply(r *Root) {
	f(r)
}

// WithLogger sets the logger shared by every actor of the tree
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(r *Root) {
		r.logger = logger
	})
}

// WithMeterProvider sets the OpenTelemetry meter provider.
// otel.GetMeterProvider() is used by default.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return OptionFunc(func(r *Root) {
		r.meterProvider = provider
	})
}

// WithEventStream enables the publication of Deadletter, ActorStarted and
// ActorStopped events on EventsTopic
func WithEventStream(stream eventstream.Stream) Option {
	return OptionFunc(func(r *Root) {
		r.events = stream
	})
}

// WithShutdownTimeout bounds the shutdown triggered by the cancellation of the
// Root's context
func WithShutdownTimeout(timeout time.Duration) Option {
	return OptionFunc(func(r *Root) {
		r.shutdownTimeout = timeout
	})
}

// SpawnOption configures a single spawn
type SpawnOption func(*spawnConfig)

type spawnConfig struct {
	name string
}

// WithName overrides the label of the spawned actor's Address
func WithName(name string) SpawnOption {
	return func(config *spawnConfig) {
		config.name = name
	}
}

func newSpawnConfig(opts ...SpawnOption) *spawnConfig {
	config := new(spawnConfig)
	for _, opt := range opts {
		opt(config)
	}
	return config
}
