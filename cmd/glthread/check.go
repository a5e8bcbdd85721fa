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
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
	"gvisor.dev/glthread/pkg/scenario"
)

// Check implements subcommands.Command for the "check" command.
type Check struct{}

// Name implements subcommands.Command.Name.
func (*Check) Name() string {
	return "check"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Check) Synopsis() string {
	return "validate scenario files without running them"
}

// Usage implements subcommands.Command.Usage.
func (*Check) Usage() string {
	return "check <scenario file>...\n"
}

// SetFlags implements subcommands.Command.SetFlags.
func (*Check) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.Execute.
func (*Check) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	log := args[0].(*logrus.Logger)

	status := subcommands.ExitSuccess
	for _, path := range f.Args() {
		s, err := scenario.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			status = subcommands.ExitFailure
			continue
		}
		log.WithField("file", path).Debugf("Scenario %q: %d records, %d steps", s.Name, len(s.Records), len(s.Steps))
	}
	return status
}
