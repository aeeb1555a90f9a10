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

package actor

import (
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"
)

// CacheLinePadding prevents false sharing between CPU cache lines
type CacheLinePadding [64]byte

type mailboxNode struct {
	value any
	next  unsafe.Pointer
}

var mailboxNodePool = sync.Pool{New: func() any { return new(mailboxNode) }}

// mailbox is a lock-free multi-producer, single-consumer FIFO queue.
//
// Producers never block: the queue is unbounded. The single consumer parks on
// the ready channel when the queue is empty. Once closed, the mailbox rejects
// new messages and the consumer drains what was accepted before.
//
// Reference: https://concurrencyfreaks.blogspot.com/2014/04/multi-producer-single-consumer-queue.html
type mailbox struct {
	head unsafe.Pointer // *mailboxNode, consumer side
	_    CacheLinePadding

	tail unsafe.Pointer // *mailboxNode, producer side
	_    CacheLinePadding

	closed   atomic.Bool
	inflight atomic.Int64
	ready    chan struct{}
}

func newMailbox() *mailbox {
	item := new(mailboxNode)
	return &mailbox{
		head:  unsafe.Pointer(item),
		tail:  unsafe.Pointer(item),
		ready: make(chan struct{}, 1),
	}
}

// Enqueue appends value to the tail of the mailbox and reports whether it was
// accepted. It is safe for concurrent use.
func (m *mailbox) Enqueue(value any) bool {
	m.inflight.Add(1)
	defer m.inflight.Add(-1)

	if m.closed.Load() {
		return false
	}

	tnode := mailboxNodePool.Get().(*mailboxNode)
	tnode.value = value
	atomic.StorePointer(&tnode.next, nil)

	// swap the tail first, then link the previous tail to this node
	prev := (*mailboxNode)(atomic.SwapPointer(&m.tail, unsafe.Pointer(tnode)))
	atomic.StorePointer(&prev.next, unsafe.Pointer(tnode))

	select {
	case m.ready <- struct{}{}:
	default:
	}
	return true
}

// Dequeue removes the message at the head of the mailbox.
// It must only be called by the consumer goroutine.
func (m *mailbox) Dequeue() (any, bool) {
	head := (*mailboxNode)(atomic.LoadPointer(&m.head))
	next := (*mailboxNode)(atomic.LoadPointer(&head.next))
	if next == nil {
		return nil, false
	}

	atomic.StorePointer(&m.head, unsafe.Pointer(next))
	value := next.value
	next.value = nil

	head.value = nil
	mailboxNodePool.Put(head)
	return value, true
}

// Ready is signaled after every successful Enqueue. It never fires for
// messages that have already been dequeued, so the consumer re-checks the
// queue after waking up.
func (m *mailbox) Ready() <-chan struct{} {
	return m.ready
}

// IsEmpty reports whether the mailbox currently holds no messages.
func (m *mailbox) IsEmpty() bool {
	head := (*mailboxNode)(atomic.LoadPointer(&m.head))
	return atomic.LoadPointer(&head.next) == nil
}

// Len returns a point-in-time estimate of the number of queued messages.
func (m *mailbox) Len() int64 {
	var count int64
	head := (*mailboxNode)(atomic.LoadPointer(&m.head))
	current := (*mailboxNode)(atomic.LoadPointer(&head.next))
	for current != nil {
		count++
		current = (*mailboxNode)(atomic.LoadPointer(&current.next))
	}
	return count
}

// Close rejects every later Enqueue and waits for the ones in flight to land.
// After Close returns the queue content is final.
func (m *mailbox) Close() {
	m.closed.Store(true)
	for m.inflight.Load() > 0 {
		runtime.Gosched()
	}
}
