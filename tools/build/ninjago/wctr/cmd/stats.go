// Copyright 2021 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"go.fuchsia.dev/ninjawctr/tools/build/ninjago/ninjalog"
	"go.fuchsia.dev/ninjawctr/tools/build/ninjago/wctrreport"
	"go.fuchsia.dev/ninjawctr/tools/lib/logger"
)

type statsCmd struct {
	logCmd
}

func (*statsCmd) Name() string {
	return "stats"
}

func (*statsCmd) Usage() string {
	return "stats [flags...] [ninja_log]\n\nflags:\n"
}

func (*statsCmd) Synopsis() string {
	return "sums wall-clock time responsibility by output type"
}

func (cmd *statsCmd) SetFlags(f *flag.FlagSet) {
	cmd.setCommonFlags(f)
}

func (cmd *statsCmd) execute(ctx context.Context, paths []string) error {
	if len(paths) != 1 {
		return fmt.Errorf("stats takes one ninja log, got %d", len(paths))
	}
	report, err := cmd.load(ctx, paths[0])
	if err != nil {
		return err
	}
	stats := ninjalog.StatsByType(report.Responsibilities, func(r ninjalog.Responsibility) string {
		return ninjalog.Category(r.Out)
	})
	return wctrreport.WriteStats(cmd.out(), stats)
}

func (cmd *statsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := cmd.execute(ctx, paths(f)); err != nil {
		logger.Errorf(ctx, "%v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
