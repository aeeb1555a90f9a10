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
	"fmt"

	"github.com/google/uuid"
)

// NoAddress is the zero Address. Nothing is ever registered under it.
var NoAddress = Address{}

// Address identifies a single actor instance.
//
// Addresses are comparable values and can be used as map keys. Two spawns of the
// same Behavior yield different Addresses; the label only helps humans read logs.
type Address struct {
	label string
	id    uuid.UUID
}

func newAddress(label string) Address {
	return Address{
		label: label,
		id:    uuid.New(),
	}
}

// Label returns the display name of the actor
func (a Address) Label() string {
	return a.label
}

// IsZero reports whether a is NoAddress
func (a Address) IsZero() bool {
	return a.id == uuid.Nil
}

// String returns the label followed by the first block of the identifier
func (a Address) String() string {
	if a.IsZero() {
		return "nobody"
	}
	return fmt.Sprintf("%s#%s", a.label, a.id.String()[:8])
}
