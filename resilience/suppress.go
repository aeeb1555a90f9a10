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

package resilience

import (
	"context"

	"github.com/poptimizer/actors/log"
)

// SuppressErrors returns an Operation that logs the failures of op matching
// kinds at warn level and yields an empty Optional instead.
func SuppressErrors[T any](op Operation[T], logger log.Logger, kinds ...Kind) Operation[Optional[T]] {
	return func(ctx context.Context) (Optional[T], error) {
		value, err := op(ctx)
		if err == nil {
			return Some(value), nil
		}

		if matches(err, kinds) {
			logger.Warnf("suppressed failure: %v", err)
			return None[T](), nil
		}
		return None[T](), err
	}
}
