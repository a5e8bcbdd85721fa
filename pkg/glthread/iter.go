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

import "iter"

// Links returns an iterator over the Links of l, front to back.
//
// The successor of each Link is read before the Link is yielded, so the loop
// body may remove the current Link from l. Removing or inserting any other
// Link during iteration is not supported.
func (l *List[T]) Links() iter.Seq[*Link] {
	return func(yield func(*Link) bool) {
		for n := l.head; n != nil; {
			next := n.right
			if !yield(n) {
				return
			}
			n = next
		}
	}
}

// All returns an iterator over the elements of l, front to back. It has the
// same removal guarantee as Links.
func (l *List[T]) All() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for n := range l.Links() {
			if !yield(l.Container(n)) {
				return
			}
		}
	}
}
