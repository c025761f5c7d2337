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

	"github.com/dustin/go-humanize"
	"go.uber.org/multierr"

	"go.fuchsia.dev/ninjawctr/tools/build/ninjago/logsource"
	"go.fuchsia.dev/ninjawctr/tools/build/ninjago/ninjalog"
	"go.fuchsia.dev/ninjawctr/tools/lib/color"
	"go.fuchsia.dev/ninjawctr/tools/lib/logger"
)

const defaultLog = ".ninja_log"

type opener interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// logCmd holds what every subcommand needs to load a log.
type logCmd struct {
	lastBuild bool

	// Overridden in tests.
	source opener
	stdout io.Writer
}

func (cmd *logCmd) setCommonFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.lastBuild, "last-build", false, "only analyze the most recent build recorded in the log")
}

func (cmd *logCmd) out() io.Writer {
	if cmd.stdout == nil {
		return os.Stdout
	}
	return cmd.stdout
}

// load reads the log at path and analyzes it.
func (cmd *logCmd) load(ctx context.Context, path string) (report *ninjalog.Report, err error) {
	src := cmd.source
	if src == nil {
		src = &logsource.Source{}
	}
	rc, err := src.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("closing %s: %w", path, cerr))
			report = nil
		}
	}()

	njl, err := ninjalog.Parse(path, rc)
	if err != nil {
		return nil, fmt.Errorf("parsing ninjalog: %w", err)
	}
	steps := njl.Steps
	if cmd.lastBuild {
		steps = njl.LastBuild()
	}
	logger.Debugf(ctx, "%s: %s records, %s analyzed", path, humanize.Comma(int64(len(njl.Steps))), humanize.Comma(int64(len(steps))))
	return ninjalog.Analyze(path, steps)
}

// paths returns the positional log paths, defaulting to .ninja_log.
func paths(f *flag.FlagSet) []string {
	if f.NArg() == 0 {
		return []string{defaultLog}
	}
	return f.Args()
}

// painterFrom returns the Color passed to subcommands.Execute.
func painterFrom(args []interface{}) color.Color {
	for _, a := range args {
		if c, ok := a.(color.Color); ok {
			return c
		}
	}
	return color.NewColor(color.ColorNever)
}
