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

import (
	"context"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
	"gvisor.dev/glthread/pkg/glthread"
)

// record is the structure threaded onto the list. The Link deliberately does
// not start the struct so that container recovery is exercised with a
// non-zero offset.
type record struct {
	payload int
	link    glthread.Link
}

// StepResult is the outcome of a single step.
type StepResult struct {
	Index   int   `json:"index"`
	Op      Op    `json:"op"`
	Record  int   `json:"record,omitempty"`
	Removed *bool `json:"removed,omitempty"`
	Order   []int `json:"order"`
}

// Result is the outcome of a scenario run.
type Result struct {
	Name     string       `json:"name"`
	Steps    []StepResult `json:"steps"`
	Final    []int        `json:"final"`
	Failures []string     `json:"failures,omitempty"`
}

// Passed returns true iff the run recorded no failures.
func (r *Result) Passed() bool {
	return len(r.Failures) == 0
}

func (r *Result) failf(format string, v ...any) {
	r.Failures = append(r.Failures, fmt.Sprintf(format, v...))
}

// runner holds the list and records for a single run. It is not shared
// between goroutines.
type runner struct {
	list    glthread.List[record]
	records map[int]*record
}

func newRunner(s *Scenario) *runner {
	r := &runner{
		records: make(map[int]*record, len(s.Records)),
	}
	r.list.Init(glthread.OffsetOf(func(rec *record) *glthread.Link { return &rec.link }))
	for _, p := range s.Records {
		r.records[p] = &record{payload: p}
	}
	return r
}

// order returns the payloads of the list, front to back.
func (r *runner) order() []int {
	out := []int{}
	for rec := range r.list.All() {
		out = append(out, rec.payload)
	}
	return out
}

// apply executes st and returns whether a removal found its record.
func (r *runner) apply(st Step) *bool {
	switch st.Op {
	case OpInit:
		r.list.Init(r.list.Offset())
		// The dropped chain is still threaded through the records; unlink
		// them so they can be reused.
		for _, rec := range r.records {
			rec.link.Reset()
		}
	case OpInsert:
		r.list.InsertEntry(r.records[st.Record])
	case OpLinkNext:
		glthread.LinkNext(&r.records[st.After].link, &r.records[st.Record].link)
	case OpRemove:
		rec := r.records[st.Record]
		removed := r.list.RemoveEntry(rec)
		if removed {
			rec.link.Reset()
		}
		return &removed
	}
	return nil
}

// Run executes s against a fresh list. After every step it checks the list
// invariants and any expectation attached to the step. Expectation mismatches
// are recorded in the result and the run continues; a broken list ends the
// run since it can no longer be traversed safely.
//
// Run returns an error only if s is invalid or ctx is done.
func Run(ctx context.Context, s *Scenario, log logrus.FieldLogger) (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	log = log.WithField("scenario", s.Name)
	r := newRunner(s)
	res := &Result{
		Name:  s.Name,
		Steps: make([]StepResult, 0, len(s.Steps)),
		Final: []int{},
	}

	for i, st := range s.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		removed := r.apply(st)
		if err := glthread.Check(&r.list); err != nil {
			res.failf("step %d (%s %d): %v", i, st.Op, st.Record, err)
			log.WithFields(logrus.Fields{"step": i, "op": st.Op}).Warningf("List corrupted: %v", err)
			return res, nil
		}

		sr := StepResult{
			Index:   i,
			Op:      st.Op,
			Record:  st.Record,
			Removed: removed,
			Order:   r.order(),
		}
		res.Steps = append(res.Steps, sr)
		res.Final = sr.Order
		log.WithFields(logrus.Fields{
			"step":  i,
			"op":    st.Op,
			"order": sr.Order,
		}).Debug("Applied step")

		if st.Found != nil && removed != nil && *st.Found != *removed {
			res.failf("step %d (remove %d): found = %t, want %t", i, st.Record, *removed, *st.Found)
		}
		if st.Expect != nil && !slices.Equal(sr.Order, *st.Expect) {
			res.failf("step %d (%s %d): order = %v, want %v", i, st.Op, st.Record, sr.Order, *st.Expect)
		}
	}

	if res.Passed() {
		log.Infof("Scenario passed, final order %v", res.Final)
	} else {
		log.Warningf("Scenario failed with %d failure(s)", len(res.Failures))
	}
	return res, nil
}
