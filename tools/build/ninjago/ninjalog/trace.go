// Copyright 2014 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package ninjalog

import (
	"sort"

	"go.fuchsia.dev/ninjawctr/tools/build/ninjago/chrometrace"
)

// Flow packs responsibilities into lanes of outputs that do not overlap in
// time, so they can be drawn as threads. Each lane is ordered by start time.
func Flow(rs []Responsibility) [][]Responsibility {
	sorted := append([]Responsibility(nil), rs...)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i].Interval, sorted[j].Interval
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End < b.End
		}
		return sorted[i].Out < sorted[j].Out
	})

	var lanes [][]Responsibility
	for _, r := range sorted {
		lane := -1
		for i, l := range lanes {
			if l[len(l)-1].Interval.End <= r.Interval.Start {
				lane = i
				break
			}
		}
		if lane == -1 {
			lanes = append(lanes, nil)
			lane = len(lanes) - 1
		}
		lanes[lane] = append(lanes[lane], r)
	}
	return lanes
}

// ToTraces converts lanes from Flow into complete trace events, one thread
// per lane. Each event carries the output's WCTR and parallelism as args.
func ToTraces(lanes [][]Responsibility, pid int) []chrometrace.Trace {
	var traces []chrometrace.Trace
	for tid, lane := range lanes {
		for _, r := range lane {
			traces = append(traces, chrometrace.Trace{
				Name:            r.Out,
				Category:        Category(r.Out),
				EventType:       chrometrace.CompleteEvent,
				TimestampMicros: r.Interval.Start.Microseconds(),
				DurationMicros:  r.WallClock().Microseconds(),
				ProcessID:       pid,
				ThreadID:        tid,
				Args: map[string]interface{}{
					"wctr_s":      r.WCTR,
					"parallelism": r.Parallelism(),
				},
			})
		}
	}
	sort.Stable(chrometrace.ByStart(traces))
	return traces
}
