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
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
	"gvisor.dev/glthread/pkg/scenario"
)

// Demo implements subcommands.Command for the "demo" command.
type Demo struct {
	json bool
}

// Name implements subcommands.Command.Name.
func (*Demo) Name() string {
	return "demo"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Demo) Synopsis() string {
	return "run the built-in reference removal scenario"
}

// Usage implements subcommands.Command.Usage.
func (*Demo) Usage() string {
	return "demo [flags]\n"
}

// SetFlags implements subcommands.Command.SetFlags.
func (d *Demo) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&d.json, "json", false, "print the result as JSON.")
}

// Execute implements subcommands.Command.Execute.
func (d *Demo) Execute(ctx context.Context, _ *flag.FlagSet, args ...any) subcommands.ExitStatus {
	log := args[0].(*logrus.Logger)

	res, err := scenario.Run(ctx, scenario.Reference(), log)
	if err != nil {
		return failure("%v", err)
	}
	if err := printResults(os.Stdout, []*scenario.Result{res}, d.json); err != nil {
		return failure("error writing results: %v", err)
	}
	if !res.Passed() {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
