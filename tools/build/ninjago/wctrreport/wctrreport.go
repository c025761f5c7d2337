// Copyright 2021 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package wctrreport presents ranked wall-clock time responsibilities.
package wctrreport

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"go.fuchsia.dev/ninjawctr/tools/build/ninjago/ninjalog"
	"go.fuchsia.dev/ninjawctr/tools/lib/color"
)

// Outputs building with less parallelism than this are mostly serialized and
// get highlighted.
const serialThreshold = 1.5

// Header is the first line of a table written by WriteTable.
const Header = "      WCTR  wallclock parallel output"

// Top returns the first k responsibilities. k == 0 or k larger than the list
// means all of them.
func Top(rs []ninjalog.Responsibility, k int) []ninjalog.Responsibility {
	if k <= 0 || k > len(rs) {
		return rs
	}
	return rs[:k]
}

// errWriter remembers the first write error so formatting code can ignore it.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, a ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, a...)
}

// WriteTable writes the top k outputs of report, one per line, with WCTR and
// wall clock in seconds and the parallelism factor, followed by a summary.
// Mostly serialized outputs are painted red when c is enabled.
func WriteTable(w io.Writer, report *ninjalog.Report, k int, c color.Color) error {
	ew := &errWriter{w: w}
	ew.printf("%s\n", Header)
	for _, r := range Top(report.Responsibilities, k) {
		line := fmt.Sprintf("%10.3f %10.3f %8.1f %s", r.WCTR, r.WallClock().Seconds(), r.Parallelism(), r.Out)
		if r.WCTR > 0 && r.Parallelism() < serialThreshold {
			line = c.Red("%s", line)
		}
		ew.printf("%s\n", line)
	}
	ew.printf("%s outputs, %.3fs of build time, %.3fs of WCTR\n",
		humanize.Comma(int64(len(report.Responsibilities))), report.Span.Seconds(), report.TotalWCTR)
	return ew.err
}

// entry is the JSON form of one responsibility.
type entry struct {
	Output      string  `json:"output"`
	WCTR        float64 `json:"wctr_s"`
	WallClock   float64 `json:"wallclock_s"`
	Parallelism float64 `json:"parallelism"`
	StartMillis int64   `json:"start_ms"`
	EndMillis   int64   `json:"end_ms"`
}

// WriteJSON writes the top k outputs of report as a JSON array.
func WriteJSON(w io.Writer, report *ninjalog.Report, k int) error {
	entries := []entry{}
	for _, r := range Top(report.Responsibilities, k) {
		entries = append(entries, entry{
			Output:      r.Out,
			WCTR:        r.WCTR,
			WallClock:   r.WallClock().Seconds(),
			Parallelism: r.Parallelism(),
			StartMillis: r.Interval.Start.Milliseconds(),
			EndMillis:   r.Interval.End.Milliseconds(),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// WriteStats writes one line per output type: WCTR, summed wall clock, the
// number of outputs and the slowest one's wall clock.
func WriteStats(w io.Writer, stats []ninjalog.Stat) error {
	ew := &errWriter{w: w}
	ew.printf("      WCTR  wallclock    count    slowest type\n")
	for _, s := range stats {
		var slowest float64
		for _, t := range s.Times {
			if t.Seconds() > slowest {
				slowest = t.Seconds()
			}
		}
		ew.printf("%10.3f %10.3f %8s %10.3f %s\n", s.WCTR, s.Time.Seconds(), humanize.Comma(int64(s.Count)), slowest, s.Type)
	}
	return ew.err
}
