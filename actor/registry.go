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
	"weak"

	"github.com/poptimizer/actors/internal/xsync"
)

// registry maps addresses to mailboxes without owning them.
//
// The owning node holds the only strong reference to its mailbox. An entry is
// removed when the node loop exits and, failing that, by a GC cleanup once the
// mailbox is unreachable.
type registry struct {
	entries *xsync.Map[Address, weak.Pointer[mailbox]]
}

func newRegistry() *registry {
	return &registry{
		entries: xsync.NewMap[Address, weak.Pointer[mailbox]](),
	}
}

// register returns the mailbox of address, creating it when absent
func (r *registry) register(address Address) *mailbox {
	for {
		if entry, ok := r.entries.Get(address); ok {
			if box := entry.Value(); box != nil {
				return box
			}
			// the previous mailbox has been collected, its cleanup has not run yet
			r.entries.DeleteIf(address, func(current weak.Pointer[mailbox]) bool {
				return current == entry
			})
			continue
		}

		box := newMailbox()
		entry := weak.Make(box)
		if r.entries.SetIfAbsent(address, entry) {
			runtime.AddCleanup(box, r.purge, registration{address: address, entry: entry})
			return box
		}
	}
}

// lookup returns the live mailbox of address
func (r *registry) lookup(address Address) (*mailbox, bool) {
	entry, ok := r.entries.Get(address)
	if !ok {
		return nil, false
	}

	box := entry.Value()
	return box, box != nil
}

// send enqueues message on the mailbox of to and reports whether it was accepted
func (r *registry) send(message any, to Address) bool {
	box, ok := r.lookup(to)
	if !ok {
		return false
	}
	return box.Enqueue(message)
}

// deregister removes the entry of address when it still points at box
func (r *registry) deregister(address Address, box *mailbox) {
	r.entries.DeleteIf(address, func(current weak.Pointer[mailbox]) bool {
		return current.Value() == box
	})
}

// each calls fn for every live mailbox
func (r *registry) each(fn func(address Address, box *mailbox)) {
	r.entries.Range(func(address Address, entry weak.Pointer[mailbox]) {
		if box := entry.Value(); box != nil {
			fn(address, box)
		}
	})
}

func (r *registry) len() int {
	return r.entries.Len()
}

type registration struct {
	address Address
	entry   weak.Pointer[mailbox]
}

func (r *registry) purge(reg registration) {
	r.entries.DeleteIf(reg.address, func(current weak.Pointer[mailbox]) bool {
		return current == reg.entry
	})
}
