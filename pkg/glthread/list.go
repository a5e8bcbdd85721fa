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

// Package glthread provides an intrusive doubly-linked list.
//
// Objects join a list by embedding a Link. The list never allocates or frees
// the objects it links; it only rewires their embedded Links. A List records
// the byte offset of the Link within the owning type and uses it to recover
// the owning object from a Link:
//
//	type conn struct {
//		id   int
//		link glthread.Link
//	}
//
//	var l glthread.List[conn]
//	l.Init(glthread.OffsetOf(func(c *conn) *glthread.Link { return &c.link }))
//	l.InsertEntry(c)
//	for c := range l.All() {
//		// do something with c.
//	}
//
// Every Link in a List must be embedded in a T at the offset given to Init.
// Handing a List a Link that lives anywhere else is undefined behavior when
// the owning object is recovered.
//
// Lists are not safe for concurrent use.
package glthread

// Link is the embeddable element of a List. The zero value is an unlinked
// Link.
//
// Both neighbors are non-owning references; a Link knows nothing about the
// object embedding it.
type Link struct {
	left  *Link
	right *Link
}

// Left returns the Link preceding n, or nil.
//
//go:nosplit
func (n *Link) Left() *Link {
	return n.left
}

// Right returns the Link following n, or nil.
//
//go:nosplit
func (n *Link) Right() *Link {
	return n.right
}

// Reset clears both neighbors of n. A Link must be reset before it is linked
// again after removal.
func (n *Link) Reset() {
	n.left = nil
	n.right = nil
}

// LinkNext inserts n immediately after cur in whatever chain cur belongs to.
// It does not consult or update any List, so it must not be used to add a
// new head.
//
// LinkNext does nothing if either argument is nil. If cur is the tail of its
// chain, n.right is left untouched; this lets Insert splice a whole chain
// behind a new head.
//
//go:nosplit
func LinkNext(cur, n *Link) {
	if cur == nil || n == nil {
		return
	}

	next := cur.right
	cur.right = n
	n.left = cur
	if next == nil {
		return
	}
	n.right = next
	next.left = n
}

// List is an intrusive list of T, each T embedding a Link at a fixed offset.
//
// A List must be initialized with Init before use, unless the Link is the
// first field of T, in which case the zero value is an empty list ready to
// use.
type List[T any] struct {
	head   *Link
	offset uintptr
}

// Init empties l and records offset, the byte offset of the Link field in T.
// Calling Init on a non-empty list drops the chain; the linked objects keep
// whatever neighbors they had.
//
// Init panics if offset cannot locate a Link inside T.
func (l *List[T]) Init(offset uintptr) {
	checkLayout[T](offset)
	l.head = nil
	l.offset = offset
}

// Offset returns the offset l was initialized with.
func (l *List[T]) Offset() uintptr {
	return l.offset
}

// Empty returns true iff the list is empty.
func (l *List[T]) Empty() bool {
	return l.head == nil
}

// Head returns the first Link of l, or nil.
func (l *List[T]) Head() *Link {
	return l.head
}

// Front returns the first element of l, or nil.
func (l *List[T]) Front() *T {
	return l.Container(l.head)
}

// Len returns the number of elements in the list.
//
// NOTE: This is an O(n) operation.
func (l *List[T]) Len() (count int) {
	for n := l.head; n != nil; n = n.right {
		count++
	}
	return count
}

// Insert inserts n at the front of l. Any neighbors n had are discarded.
//
// n must not already be linked into l.
func (l *List[T]) Insert(n *Link) {
	n.left = nil
	n.right = nil

	if l.head == nil {
		l.head = n
		return
	}

	LinkNext(n, l.head)
	l.head = n
}

// InsertEntry inserts e at the front of l.
func (l *List[T]) InsertEntry(e *T) {
	l.Insert(l.linkOf(e))
}

// Remove removes target from l and reports whether it was found.
//
// Finding the predecessor requires a walk from the head, so Remove is O(n).
// If target is not in l, l is unchanged. The neighbors recorded in target
// itself are not cleared; call Reset before linking it again.
func (l *List[T]) Remove(target *Link) bool {
	if target == nil {
		return false
	}

	var prev *Link
	for n := range l.Links() {
		if n != target {
			prev = n
			continue
		}

		if prev == nil {
			l.head = n.right
			if l.head != nil {
				l.head.left = nil
			}
			return true
		}

		prev.right = n.right
		if n.right != nil {
			n.right.left = prev
		}
		return true
	}
	return false
}

// RemoveEntry removes e from l and reports whether it was found.
func (l *List[T]) RemoveEntry(e *T) bool {
	return l.Remove(l.linkOf(e))
}
