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

package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrUnhandled is returned when a behavior receives a message it cannot handle.
	ErrUnhandled = errors.New("unhandled message")

	// ErrDead indicates that the addressed actor is no longer alive or has never existed.
	ErrDead = errors.New("actor is not alive")

	// ErrShuttingDown is returned when spawning a child on a node that has begun its shutdown.
	ErrShuttingDown = errors.New("actor is shutting down")

	// ErrReservedMessage is returned when a lifecycle signal is sent as a regular message.
	// Lifecycle signals are delivered by the runtime only.
	ErrReservedMessage = errors.New("lifecycle signals are reserved for the runtime")

	// ErrUndefinedBehavior is returned when spawning a nil behavior.
	ErrUndefinedBehavior = errors.New("behavior is not defined")

	// ErrSchedulerNotStarted is returned when attempting to use the scheduler before it has started.
	ErrSchedulerNotStarted = errors.New("scheduler has not started")

	// ErrScheduledReferenceNotFound is returned when a reference to a scheduled job cannot be found.
	ErrScheduledReferenceNotFound = errors.New("scheduled reference not found")

	// ErrInvalidPolicy is returned when a retry policy is built with out of range values.
	ErrInvalidPolicy = errors.New("invalid retry policy")

	// ErrInvalidConfig is returned when the application configuration fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidTimeout is returned when a timeout value is less than or equal to zero.
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// NewErrUnhandled wraps the offending message type with ErrUnhandled.
func NewErrUnhandled(message any) error {
	return fmt.Errorf("message=(%T) %w", message, ErrUnhandled)
}

// NewErrInvalidPolicy formats an ErrInvalidPolicy with the rejected field.
func NewErrInvalidPolicy(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrInvalidPolicy)
}

// NewErrInvalidConfig wraps a validation failure with ErrInvalidConfig.
func NewErrInvalidConfig(err error) error {
	return errors.Join(ErrInvalidConfig, err)
}

// PanicError defines the panic error
// wrapping the underlying error
type PanicError struct {
	err error
}

// enforce compilation error
var _ error = (*PanicError)(nil)

// NewPanicError creates an instance of PanicError
func NewPanicError(err error) *PanicError {
	return &PanicError{err}
}

// Error implements the standard error interface
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.err)
}

func (e *PanicError) Unwrap() error {
	return e.err
}
