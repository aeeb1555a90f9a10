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
	"fmt"
)

// Error is a translated failure: a domain error kind, a message, and the
// failure that caused it.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

// enforce compilation error
var _ error = (*Error)(nil)

// Error prints the chain most specific first: "kind: message -> cause"
func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%v: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%v: %s -> %v", e.Kind, e.Message, e.Cause)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// Cause returns the failure translated by WrapErrors, or err itself
// when err is not a translation.
func Cause(err error) error {
	var translated *Error
	if errors.As(err, &translated) && translated.Cause != nil {
		return translated.Cause
	}
	return err
}

// WrapErrors returns an Operation that translates the failures of op matching
// kinds into an *Error of the target kind. Other failures pass through.
func WrapErrors[T any](op Operation[T], target error, message string, kinds ...Kind) Operation[T] {
	return func(ctx context.Context) (T, error) {
		value, err := op(ctx)
		if matches(err, kinds) {
			return value, &Error{
				Kind:    target,
				Message: message,
				Cause:   err,
			}
		}
		return value, err
	}
}
