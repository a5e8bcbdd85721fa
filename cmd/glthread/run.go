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
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gvisor.dev/glthread/pkg/scenario"
)

// Run implements subcommands.Command for the "run" command.
type Run struct {
	jobs int
	json bool
}

// Name implements subcommands.Command.Name.
func (*Run) Name() string {
	return "run"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Run) Synopsis() string {
	return "run scenario files and report the resulting list orders"
}

// Usage implements subcommands.Command.Usage.
func (*Run) Usage() string {
	return `run [flags] <scenario file>...

Scenario files are TOML (.toml) or YAML (.yaml, .yml). Each scenario runs
against its own list; scenarios run in parallel.
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (r *Run) SetFlags(f *flag.FlagSet) {
	f.IntVar(&r.jobs, "j", runtime.GOMAXPROCS(0), "number of scenarios to run in parallel.")
	f.BoolVar(&r.json, "json", false, "print results as JSON, one object per line.")
}

// Execute implements subcommands.Command.Execute.
func (r *Run) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	log := args[0].(*logrus.Logger)

	results, err := runFiles(ctx, f.Args(), r.jobs, log)
	if err != nil {
		return failure("%v", err)
	}
	if err := printResults(os.Stdout, results, r.json); err != nil {
		return failure("error writing results: %v", err)
	}
	for _, res := range results {
		if !res.Passed() {
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

// runFiles loads and runs every file with at most jobs scenarios in flight.
// Results are returned in the order of paths.
func runFiles(ctx context.Context, paths []string, jobs int, log logrus.FieldLogger) ([]*scenario.Result, error) {
	results := make([]*scenario.Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, path := range paths {
		g.Go(func() error {
			s, err := scenario.Load(path)
			if err != nil {
				return err
			}
			res, err := scenario.Run(ctx, s, log.WithField("file", path))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// printResults writes one line per result.
func printResults(w io.Writer, results []*scenario.Result, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		for _, res := range results {
			if err := enc.Encode(res); err != nil {
				return err
			}
		}
		return nil
	}
	for _, res := range results {
		status := "ok"
		if !res.Passed() {
			status = "FAIL"
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%v\n", status, res.Name, res.Final); err != nil {
			return err
		}
		for _, msg := range res.Failures {
			if _, err := fmt.Fprintf(w, "\t%s\n", msg); err != nil {
				return err
			}
		}
	}
	return nil
}

// failure prints the given failure message and returns ExitFailure.
func failure(format string, v ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+"\n", v...)
	return subcommands.ExitFailure
}
