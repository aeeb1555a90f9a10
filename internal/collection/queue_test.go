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

package collection

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue(t *testing.T) {
	t.Run("With FIFO order", func(t *testing.T) {
		q := NewQueue()
		require.True(t, q.IsEmpty())
		require.Nil(t, q.Dequeue())

		for i := range 10 {
			q.Enqueue(i)
		}
		assert.EqualValues(t, 10, q.Length())

		for i := range 10 {
			assert.Equal(t, i, q.Dequeue())
		}
		assert.True(t, q.IsEmpty())
	})
	t.Run("With concurrent producers", func(t *testing.T) {
		q := NewQueue()
		var wg sync.WaitGroup
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range 100 {
					q.Enqueue(i)
				}
			}()
		}
		wg.Wait()

		count := 0
		for q.Dequeue() != nil {
			count++
		}
		assert.Equal(t, 1000, count)
	})
}
