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

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"gvisor.dev/glthread/pkg/scenario"
)

func testdata(name string) string {
	return filepath.Join("..", "..", "pkg", "scenario", "testdata", name)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	for _, tc := range []struct {
		level, format string
		wantErr       bool
		formatter     logrus.Formatter
	}{
		{level: "debug", format: "text", formatter: &logrus.TextFormatter{}},
		{level: "info", format: "json", formatter: &logrus.JSONFormatter{}},
		// A buffer is never a terminal.
		{level: "warning", format: "auto", formatter: &logrus.JSONFormatter{}},
		{level: "loud", format: "text", wantErr: true},
		{level: "info", format: "xml", wantErr: true},
	} {
		log, err := newLogger(&buf, tc.level, tc.format)
		if tc.wantErr {
			if err == nil {
				t.Errorf("newLogger(%q, %q) succeeded, want error", tc.level, tc.format)
			}
			continue
		}
		if err != nil {
			t.Fatalf("newLogger(%q, %q) failed: %v", tc.level, tc.format, err)
		}
		if got, want := log.GetLevel().String(), tc.level; got != want {
			t.Errorf("level = %q, want %q", got, want)
		}
		if got, want := typeName(log.Formatter), typeName(tc.formatter); got != want {
			t.Errorf("formatter = %s, want %s", got, want)
		}
	}
}

func typeName(f logrus.Formatter) string {
	switch f.(type) {
	case *logrus.TextFormatter:
		return "text"
	case *logrus.JSONFormatter:
		return "json"
	default:
		return "unknown"
	}
}

func TestRunFiles(t *testing.T) {
	log, _ := test.NewNullLogger()
	paths := []string{testdata("reference.toml"), testdata("link_next.yaml"), testdata("failing.toml")}
	results, err := runFiles(context.Background(), paths, 2, log)
	if err != nil {
		t.Fatalf("runFiles failed: %v", err)
	}

	var names []string
	var passed []bool
	for _, res := range results {
		names = append(names, res.Name)
		passed = append(passed, res.Passed())
	}
	if diff := cmp.Diff([]string{"reference", "link_next", "wrong expectation"}, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]bool{true, true, false}, passed); diff != "" {
		t.Errorf("passed mismatch (-want +got):\n%s", diff)
	}
}

func TestRunFilesInvalid(t *testing.T) {
	log, _ := test.NewNullLogger()
	_, err := runFiles(context.Background(), []string{testdata("reference.toml"), testdata("bad_op.yaml")}, 0, log)
	if !errors.Is(err, scenario.ErrUnknownOp) {
		t.Errorf("runFiles error = %v, want %v", err, scenario.ErrUnknownOp)
	}
}

func TestPrintResults(t *testing.T) {
	results := []*scenario.Result{
		{Name: "good", Final: []int{3, 1}},
		{Name: "bad", Final: []int{}, Failures: []string{"step 1: order = [8 7], want [7 8]"}},
	}

	var buf bytes.Buffer
	if err := printResults(&buf, results, false); err != nil {
		t.Fatalf("printResults failed: %v", err)
	}
	want := "ok\tgood\t[3 1]\nFAIL\tbad\t[]\n\tstep 1: order = [8 7], want [7 8]\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("text output mismatch (-want +got):\n%s", diff)
	}

	buf.Reset()
	if err := printResults(&buf, results, true); err != nil {
		t.Fatalf("printResults failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(results) {
		t.Fatalf("got %d JSON lines, want %d", len(lines), len(results))
	}
	var got scenario.Result
	if err := json.Unmarshal([]byte(lines[0]), &got); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}
	if diff := cmp.Diff(*results[0], got); diff != "" {
		t.Errorf("decoded result mismatch (-want +got):\n%s", diff)
	}
}
