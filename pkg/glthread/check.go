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
	"errors"
	"fmt"
)

// Errors returned by Check.
var (
	ErrHeadHasLeft = errors.New("head has a left neighbor")
	ErrAsymmetric  = errors.New("neighbors are not symmetric")
)

// Check verifies the structural invariants of l: the head has no left
// neighbor, every adjacent pair points at each other and the chain ends. It
// returns nil if l is well formed.
//
// A chain that loops back on itself always breaks symmetry at the point where
// it loops, so Check terminates on corrupted lists too. Check is O(n).
func Check[T any](l *List[T]) error {
	if l.head == nil {
		return nil
	}
	if l.head.left != nil {
		return fmt.Errorf("head %p: %w", l.head, ErrHeadHasLeft)
	}

	pos := 0
	for n := l.head; n != nil; n = n.right {
		if next := n.right; next != nil && next.left != n {
			return fmt.Errorf("position %d: %p.right = %p but %p.left = %p: %w", pos, n, next, next, next.left, ErrAsymmetric)
		}
		pos++
	}
	return nil
}
