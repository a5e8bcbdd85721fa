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

package glthread_test

import (
	"fmt"

	"gvisor.dev/glthread/pkg/glthread"
)

type route struct {
	prefix string
	metric int
	link   glthread.Link
}

func Example() {
	var routes glthread.List[route]
	routes.Init(glthread.OffsetOf(func(r *route) *glthread.Link { return &r.link }))

	table := []*route{
		{prefix: "10.0.0.0/8", metric: 10},
		{prefix: "192.168.0.0/16", metric: 5},
		{prefix: "0.0.0.0/0", metric: 100},
	}
	for _, r := range table {
		routes.InsertEntry(r)
	}

	// Drop expensive routes while walking the list.
	for r := range routes.All() {
		if r.metric > 50 {
			routes.RemoveEntry(r)
		}
	}

	for r := range routes.All() {
		fmt.Println(r.prefix, r.metric)
	}
	// Output:
	// 192.168.0.0/16 5
	// 10.0.0.0/8 10
}

func ExampleLinkNext() {
	var l glthread.List[route]
	l.Init(glthread.OffsetOf(func(r *route) *glthread.Link { return &r.link }))

	first := &route{prefix: "a"}
	last := &route{prefix: "c"}
	l.InsertEntry(last)
	l.InsertEntry(first)

	mid := &route{prefix: "b"}
	glthread.LinkNext(&first.link, &mid.link)

	for r := range l.All() {
		fmt.Print(r.prefix, " ")
	}
	fmt.Println()
	// Output: a b c
}
