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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	err := errors.New("something went wrong")
	panicErr := NewPanicError(err)
	require.Error(t, panicErr)
	require.EqualError(t, panicErr, "panic: something went wrong")
	assert.ErrorIs(t, panicErr, err)

	unhandled := NewErrUnhandled(42)
	require.EqualError(t, unhandled, "message=(int) unhandled message")
	assert.ErrorIs(t, unhandled, ErrUnhandled)

	policyErr := NewErrInvalidPolicy("attempts must be at least 2")
	require.EqualError(t, policyErr, "attempts must be at least 2: invalid retry policy")
	assert.ErrorIs(t, policyErr, ErrInvalidPolicy)

	configErr := NewErrInvalidConfig(err)
	assert.ErrorIs(t, configErr, ErrInvalidConfig)
	assert.ErrorIs(t, configErr, err)
}
