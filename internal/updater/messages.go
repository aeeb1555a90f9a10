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

// Package updater watches the exchange for new trading days and notifies the
// actors that depend on fresh market data.
package updater

import (
	"errors"
	"time"
)

// ErrDataUpdate is the kind of every failure met while fetching market data
var ErrDataUpdate = errors.New("data update failed")

// Check asks the Watcher to look for a new trading day
type Check struct{}

// NewTradingDay is sent to subscribers once trading results of Date are published
type NewTradingDay struct {
	Date time.Time
}

// moscow is the exchange time zone. Russia has no daylight saving time.
var moscow = time.FixedZone("MSK", 3*60*60)

// publishedBy is the time of day, Moscow time, after which the results of the
// previous session are available
const publishedBy = 45 * time.Minute

// expectedTradingDay returns the latest day whose results may be published at now.
// The result is a UTC midnight, comparable with the dates returned by the exchange.
func expectedTradingDay(now time.Time) time.Time {
	local := now.In(moscow)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, moscow)

	lag := 2
	if local.After(midnight.Add(publishedBy)) {
		lag = 1
	}

	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -lag)
}
