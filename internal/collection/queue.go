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
	"sync/atomic"
	"unsafe"
)

// Queue is a lock-free multi-producer multi-consumer FIFO queue based on
// the Michael-Scott algorithm. Nodes are recycled through a sync.Pool.
type Queue struct {
	head unsafe.Pointer
	tail unsafe.Pointer
	len  atomic.Int64
	pool sync.Pool
}

// NewQueue creates a new lock-free queue.
func NewQueue() *Queue {
	// head and tail start on the same sentinel
	sentinel := &item{}
	return &Queue{
		head: unsafe.Pointer(sentinel),
		tail: unsafe.Pointer(sentinel),
		pool: sync.Pool{
			New: func() any {
				return &item{}
			},
		},
	}
}

// Enqueue puts the given value v at the tail of the queue.
func (q *Queue) Enqueue(v any) {
	i := q.pool.Get().(*item)
	i.next = nil
	i.v = v

	for {
		last := loaditem(&q.tail)
		next := loaditem(&last.next)
		if loaditem(&q.tail) != last {
			continue
		}

		if next != nil {
			// tail is lagging behind
			casitem(&q.tail, last, next)
			continue
		}

		if casitem(&last.next, nil, i) {
			casitem(&q.tail, last, i)
			q.len.Add(1)
			return
		}
	}
}

// Dequeue removes and returns the value at the head of the queue.
// It returns nil if the queue is empty.
func (q *Queue) Dequeue() any {
	for {
		first := loaditem(&q.head)
		last := loaditem(&q.tail)
		next := loaditem(&first.next)
		if first != loaditem(&q.head) {
			continue
		}

		if first == last {
			if next == nil {
				return nil
			}
			casitem(&q.tail, last, next)
			continue
		}

		// read before the swing, another consumer may recycle next afterwards
		v := next.v
		if casitem(&q.head, first, next) {
			q.len.Add(-1)
			first.v = nil
			q.pool.Put(first)
			return v
		}
	}
}

// Length returns the length of the queue.
func (q *Queue) Length() int64 {
	return q.len.Load()
}

// IsEmpty reports whether the queue holds no element.
func (q *Queue) IsEmpty() bool {
	return q.Length() == 0
}

type item struct {
	next unsafe.Pointer
	v    any
}

func loaditem(p *unsafe.Pointer) *item {
	return (*item)(atomic.LoadPointer(p))
}

func casitem(p *unsafe.Pointer, old, new *item) bool {
	return atomic.CompareAndSwapPointer(p, unsafe.Pointer(old), unsafe.Pointer(new))
}
