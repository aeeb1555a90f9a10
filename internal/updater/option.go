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
	"time"

	"github.com/poptimizer/actors/resilience"
)

// WatcherOption configures a Watcher
type WatcherOption func(*Watcher)

// WithCheckInterval sets the delay between two successful checks
func WithCheckInterval(interval time.Duration) WatcherOption {
	return func(w *Watcher) {
		if interval > 0 {
			w.interval = interval
		}
	}
}

// WithMaxCheckInterval caps the delay after repeated failures
func WithMaxCheckInterval(interval time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.maxInterval = interval
	}
}

// WithPolicy sets the retry policy of a single check
func WithPolicy(policy *resilience.Policy) WatcherOption {
	return func(w *Watcher) {
		w.policy = policy
	}
}

// WithLastUpdate sets the trading day already known to subscribers
func WithLastUpdate(day time.Time) WatcherOption {
	return func(w *Watcher) {
		w.checked = day
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) WatcherOption {
	return func(w *Watcher) {
		w.now = now
	}
}
