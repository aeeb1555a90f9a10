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
	"errors"
	"io"
	"net"
)

// Kind classifies failures. A nil error never matches.
type Kind func(err error) bool

// Is matches errors for which errors.Is(err, target) holds
func Is(target error) Kind {
	return func(err error) bool {
		return errors.Is(err, target)
	}
}

// As matches errors that errors.As can convert to E
func As[E error]() Kind {
	return func(err error) bool {
		var target E
		return errors.As(err, &target)
	}
}

// Transient matches failures that are worth another attempt: network errors,
// expired deadlines and truncated responses.
func Transient() Kind {
	return Any(
		As[net.Error](),
		Is(context.DeadlineExceeded),
		Is(io.ErrUnexpectedEOF),
	)
}

// Any matches when at least one of kinds matches
func Any(kinds ...Kind) Kind {
	return func(err error) bool {
		for _, kind := range kinds {
			if kind(err) {
				return true
			}
		}
		return false
	}
}

// matches reports whether err belongs to one of kinds.
// An empty list matches every error.
func matches(err error, kinds []Kind) bool {
	if err == nil {
		return false
	}

	if len(kinds) == 0 {
		return true
	}

	return Any(kinds...)(err)
}
