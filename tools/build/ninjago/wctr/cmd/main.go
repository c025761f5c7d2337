// Copyright 2021 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// wctr ranks the outputs of a ninja build by wall-clock time responsibility:
// the time each output was building, with every stretch of the build divided
// evenly among the outputs building during it.
//
// usage:
//  $ wctr report -n 20 out/default/.ninja_log
//  $ wctr stats out/default/.ninja_log
//  $ wctr trace -o trace.json out/default/.ninja_log
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"

	"go.fuchsia.dev/ninjawctr/tools/lib/color"
	"go.fuchsia.dev/ninjawctr/tools/lib/logger"
)

var (
	colors = color.ColorAuto
	level  = logger.WarningLevel
)

func init() {
	flag.Var(&colors, "color", "use color in output, can be never, auto, always")
	flag.Var(&level, "level", "output verbosity, can be fatal, error, warning, info, debug or trace")
}

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&reportCmd{}, "")
	subcommands.Register(&statsCmd{}, "")
	subcommands.Register(&traceCmd{}, "")

	flag.Parse()

	painter := color.NewColor(colors)
	l := logger.NewLogger(level, painter, os.Stderr, os.Stderr, "wctr ")
	ctx := logger.WithLogger(context.Background(), l)

	os.Exit(int(subcommands.Execute(ctx, painter)))
}
