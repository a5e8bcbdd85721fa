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

// Package scenario drives glthread lists from declarative scenario files.
//
// A scenario declares a set of records, each identified by an integer
// payload, and a sequence of steps applied to a single list of those records.
// Scenarios are written in TOML or YAML:
//
//	name = "removal"
//	records = [1, 2, 3]
//
//	[[step]]
//	op = "insert"
//	record = 1
//
//	[[step]]
//	op = "remove"
//	record = 1
//	found = true
//	expect = []
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Op names a step operation.
type Op string

// Supported operations.
const (
	// OpInit re-initializes the list.
	OpInit Op = "init"
	// OpInsert inserts Record at the head.
	OpInsert Op = "insert"
	// OpLinkNext links Record immediately after After.
	OpLinkNext Op = "link_next"
	// OpRemove removes Record.
	OpRemove Op = "remove"
)

// Format is a scenario file encoding.
type Format string

// Supported formats.
const (
	TOML Format = "toml"
	YAML Format = "yaml"
)

// Errors returned while loading and validating scenarios.
var (
	ErrUnknownFormat   = errors.New("unknown scenario format")
	ErrUnknownField    = errors.New("unknown field")
	ErrUnknownOp       = errors.New("unknown operation")
	ErrUnknownRecord   = errors.New("undeclared record")
	ErrDuplicateRecord = errors.New("duplicate record")
)

// Step is a single operation applied to the list.
type Step struct {
	Op Op `toml:"op" yaml:"op" json:"op"`

	// Record is the payload of the record the step operates on.
	Record int `toml:"record" yaml:"record" json:"record,omitempty"`

	// After is the payload of the record that Record is linked after. Only
	// used by OpLinkNext.
	After int `toml:"after" yaml:"after" json:"after,omitempty"`

	// Found, if set, is the result OpRemove must report.
	Found *bool `toml:"found" yaml:"found" json:"found,omitempty"`

	// Expect, if set, is the order of payloads after the step.
	Expect *[]int `toml:"expect" yaml:"expect" json:"expect,omitempty"`
}

// Scenario is a decoded scenario file.
type Scenario struct {
	Name    string `toml:"name" yaml:"name" json:"name"`
	Records []int  `toml:"records" yaml:"records" json:"records"`
	Steps   []Step `toml:"step" yaml:"steps" json:"steps"`
}

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%q: %w", path, ErrUnknownFormat)
	}
}

// Load reads, decodes and validates the scenario at path. A scenario without
// a name is named after its file.
func Load(path string) (*Scenario, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Parse decodes and validates a scenario. Unknown keys are rejected.
func Parse(data []byte, format Format) (*Scenario, error) {
	var s Scenario
	switch format {
	case TOML:
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&s)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%q: %w", undecoded[0].String(), ErrUnknownField)
		}
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil {
			if strings.Contains(err.Error(), "not found in type") {
				return nil, fmt.Errorf("%v: %w", err, ErrUnknownField)
			}
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that every record is declared once and every step names a
// known operation and declared records.
func (s *Scenario) Validate() error {
	declared := make(map[int]struct{}, len(s.Records))
	for _, r := range s.Records {
		if _, ok := declared[r]; ok {
			return fmt.Errorf("record %d: %w", r, ErrDuplicateRecord)
		}
		declared[r] = struct{}{}
	}

	for i, st := range s.Steps {
		var refs []int
		switch st.Op {
		case OpInit:
		case OpInsert, OpRemove:
			refs = []int{st.Record}
		case OpLinkNext:
			refs = []int{st.After, st.Record}
		default:
			return fmt.Errorf("step %d: %q: %w", i, st.Op, ErrUnknownOp)
		}
		for _, r := range refs {
			if _, ok := declared[r]; !ok {
				return fmt.Errorf("step %d (%s): record %d: %w", i, st.Op, r, ErrUnknownRecord)
			}
		}
	}
	return nil
}
