// Copyright 2021 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"go.uber.org/multierr"

	"go.fuchsia.dev/ninjawctr/tools/build/ninjago/chrometrace"
	"go.fuchsia.dev/ninjawctr/tools/build/ninjago/ninjalog"
	"go.fuchsia.dev/ninjawctr/tools/lib/logger"
)

type traceCmd struct {
	logCmd

	output string
}

func (*traceCmd) Name() string {
	return "trace"
}

func (*traceCmd) Usage() string {
	return "trace [flags...] [ninja_log]\n\nflags:\n"
}

func (*traceCmd) Synopsis() string {
	return "writes a Chrome trace annotated with wall-clock time responsibility"
}

func (cmd *traceCmd) SetFlags(f *flag.FlagSet) {
	cmd.setCommonFlags(f)
	f.StringVar(&cmd.output, "o", "trace.json", "output path of the trace, - for stdout")
}

func (cmd *traceCmd) execute(ctx context.Context, paths []string) (err error) {
	if len(paths) != 1 {
		return fmt.Errorf("trace takes one ninja log, got %d", len(paths))
	}
	report, err := cmd.load(ctx, paths[0])
	if err != nil {
		return err
	}
	traces := ninjalog.ToTraces(ninjalog.Flow(report.Responsibilities), 1)

	var w io.Writer = cmd.out()
	if cmd.output != "-" {
		f, err := os.Create(cmd.output)
		if err != nil {
			return fmt.Errorf("creating trace output file %q: %w", cmd.output, err)
		}
		defer func() {
			err = multierr.Append(err, f.Close())
		}()
		w = f
	}
	if err := chrometrace.Encode(w, traces); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	logger.Infof(ctx, "wrote %d trace events to %s", len(traces), cmd.output)
	return nil
}

func (cmd *traceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := cmd.execute(ctx, paths(f)); err != nil {
		logger.Errorf(ctx, "%v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
