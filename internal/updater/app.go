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

	"github.com/poptimizer/actors/actor"
)

// NewJournal returns a behavior logging every NewTradingDay it receives.
// It is the default subscriber of the Watcher.
func NewJournal() actor.Behavior {
	return actor.Typed(func(ctx actor.Context, message NewTradingDay) error {
		ctx.Logger().Infof("market data updated to %s", message.Date.Format(time.DateOnly))
		return nil
	})
}

// NewApp returns the top behavior of the poptimizer process: it starts the
// journal, then a Watcher notifying it.
func NewApp(source Source, opts ...WatcherOption) actor.Behavior {
	return actor.BehaviorFunc(func(ctx actor.Context, message any) error {
		if message != actor.Starting {
			return nil
		}

		journal, err := ctx.Spawn(NewJournal(), actor.WithName("journal"))
		if err != nil {
			return err
		}

		_, err = ctx.Spawn(NewWatcher(source, []actor.Address{journal}, opts...), actor.WithName("watcher"))
		return err
	})
}
