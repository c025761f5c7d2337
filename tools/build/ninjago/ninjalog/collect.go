// Copyright 2021 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package ninjalog

import (
	"sort"
	"time"
)

// Interval is the span during which one output was being built.
type Interval struct {
	Start time.Duration
	End   time.Duration
}

// Duration reports the wall-clock time of the interval.
func (i Interval) Duration() time.Duration {
	return i.End - i.Start
}

// Intervals maps an output to the interval it was built in.
type Intervals map[string]Interval

// Collect reduces steps to one interval per output. Ninja only compacts its
// log now and then, so an output can appear many times; the last record for
// it wins.
func Collect(steps []Step) Intervals {
	intervals := make(Intervals, len(steps))
	for _, s := range steps {
		intervals[s.Out] = Interval{Start: s.Start, End: s.End}
	}
	return intervals
}

// Span returns the total time during which at least one output was being
// built.
func (is Intervals) Span() time.Duration {
	sorted := make([]Interval, 0, len(is))
	for _, i := range is {
		sorted = append(sorted, i)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	var span time.Duration
	var cur Interval
	for n, i := range sorted {
		if n == 0 {
			cur = i
			continue
		}
		if i.Start > cur.End {
			span += cur.Duration()
			cur = i
			continue
		}
		if i.End > cur.End {
			cur.End = i.End
		}
	}
	if len(sorted) > 0 {
		span += cur.Duration()
	}
	return span
}
