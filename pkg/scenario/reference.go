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

package scenario

func boolp(b bool) *bool { return &b }

func payloads(v ...int) *[]int {
	if v == nil {
		v = []int{}
	}
	return &v
}

// Reference returns the reference removal scenario: records 1, 2 and 3 are
// inserted in that order and then removed from the middle, from the head and
// finally as the sole element.
func Reference() *Scenario {
	return &Scenario{
		Name:    "reference",
		Records: []int{1, 2, 3},
		Steps: []Step{
			{Op: OpInsert, Record: 1, Expect: payloads(1)},
			{Op: OpInsert, Record: 2, Expect: payloads(2, 1)},
			{Op: OpInsert, Record: 3, Expect: payloads(3, 2, 1)},
			{Op: OpRemove, Record: 2, Found: boolp(true), Expect: payloads(3, 1)},
			{Op: OpRemove, Record: 3, Found: boolp(true), Expect: payloads(1)},
			{Op: OpRemove, Record: 1, Found: boolp(true), Expect: payloads()},
		},
	}
}
