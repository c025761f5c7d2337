// Copyright 2021 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package ninjalog

import (
	"sort"
	"time"
)

// action represents an event's action. "start" or "stop".
type action string

const (
	startAction action = "start"
	stopAction  action = "stop"
)

// event is a start or a stop of one output.
type event struct {
	time     time.Duration
	action   action
	target   string
	interval Interval
}

// rank orders events sharing a timestamp: stops first, so outputs that end
// at t never overlap outputs that begin at t, then starts, then the stops of
// zero-length intervals, which must follow their own start.
func (e event) rank() int {
	switch {
	case e.action == startAction:
		return 1
	case e.interval.Duration() == 0:
		return 2
	}
	return 0
}

// Events is a chronologically ordered sequence of start and stop events.
type Events []event

// Sequence expands every interval into a start and a stop event and orders
// them by time. Events at the same time are ordered by rank and then by
// output, so the order never depends on map iteration or sort stability.
func Sequence(intervals Intervals) Events {
	events := make(Events, 0, 2*len(intervals))
	for out, i := range intervals {
		events = append(events,
			event{time: i.Start, action: startAction, target: out, interval: i},
			event{time: i.End, action: stopAction, target: out, interval: i},
		)
	}
	sort.Slice(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.time != b.time {
			return a.time < b.time
		}
		if ra, rb := a.rank(), b.rank(); ra != rb {
			return ra < rb
		}
		return a.target < b.target
	})
	return events
}
