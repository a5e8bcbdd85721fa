// Copyright 2026 The gVisor Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package glthread

import (
	"fmt"
	"unsafe"
)

// OffsetOf returns the byte offset of the Link selected by field within T.
// field must return the address of a Link field of its argument, e.g.
//
//	glthread.OffsetOf(func(c *conn) *glthread.Link { return &c.link })
//
// It is equivalent to unsafe.Offsetof(c.link) for a value c of type conn.
func OffsetOf[T any](field func(*T) *Link) uintptr {
	var e T
	base := uintptr(unsafe.Pointer(&e))
	off := uintptr(unsafe.Pointer(field(&e))) - base
	checkLayout[T](off)
	return off
}

// checkLayout panics unless a Link at offset is aligned and lies entirely
// within T.
func checkLayout[T any](offset uintptr) {
	var (
		e T
		n Link
	)
	size := unsafe.Sizeof(e)
	if offset%unsafe.Alignof(n) != 0 || offset > size || size-offset < unsafe.Sizeof(n) {
		panic(fmt.Sprintf("glthread: offset %d does not locate a Link in %T (size %d)", offset, e, size))
	}
}

// Container returns the T that embeds n, or nil if n is nil.
//
// n must be embedded in a T at l's offset.
func (l *List[T]) Container(n *Link) *T {
	if n == nil {
		return nil
	}
	return (*T)(unsafe.Add(unsafe.Pointer(n), -int(l.offset)))
}

// linkOf returns the Link embedded in e at l's offset.
func (l *List[T]) linkOf(e *T) *Link {
	return (*Link)(unsafe.Add(unsafe.Pointer(e), l.offset))
}
