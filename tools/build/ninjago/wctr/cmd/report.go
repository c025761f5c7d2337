// Copyright 2021 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"

	"go.fuchsia.dev/ninjawctr/tools/build/ninjago/ninjalog"
	"go.fuchsia.dev/ninjawctr/tools/build/ninjago/wctrreport"
	"go.fuchsia.dev/ninjawctr/tools/lib/color"
	"go.fuchsia.dev/ninjawctr/tools/lib/logger"
)

type reportCmd struct {
	logCmd

	// Number of outputs to print, 0 for all.
	top int
	// Print JSON instead of a table.
	json bool
}

func (*reportCmd) Name() string {
	return "report"
}

func (*reportCmd) Usage() string {
	return "report [flags...] [ninja_log...]\n\nflags:\n"
}

func (*reportCmd) Synopsis() string {
	return "ranks outputs by wall-clock time responsibility"
}

func (cmd *reportCmd) SetFlags(f *flag.FlagSet) {
	cmd.setCommonFlags(f)
	f.IntVar(&cmd.top, "n", 0, "number of outputs to print, 0 for all")
	f.BoolVar(&cmd.json, "json", false, "print JSON instead of a table")
}

// execute analyzes every log concurrently and prints the reports in argument
// order. Nothing is printed unless every log was analyzed.
func (cmd *reportCmd) execute(ctx context.Context, paths []string, c color.Color) error {
	if cmd.top < 0 {
		return fmt.Errorf("-n must not be negative, got %d", cmd.top)
	}

	reports := make([]*ninjalog.Report, len(paths))
	eg, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		eg.Go(func() error {
			logger.Infof(ctx, "analyzing %s", path)
			report, err := cmd.load(ctx, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			reports[i] = report
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	w := cmd.out()
	for _, report := range reports {
		if len(reports) > 1 && !cmd.json {
			if _, err := fmt.Fprintf(w, "== %s\n", report.Filename); err != nil {
				return err
			}
		}
		var err error
		if cmd.json {
			err = wctrreport.WriteJSON(w, report, cmd.top)
		} else {
			err = wctrreport.WriteTable(w, report, cmd.top, c)
		}
		if err != nil {
			return fmt.Errorf("writing report for %s: %w", report.Filename, err)
		}
	}
	return nil
}

func (cmd *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if err := cmd.execute(ctx, paths(f), painterFrom(args)); err != nil {
		logger.Errorf(ctx, "%v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
