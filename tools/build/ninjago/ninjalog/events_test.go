// Copyright 2021 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package ninjalog

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// simpleEvent drops the interval so expectations stay readable.
type simpleEvent struct {
	Time   time.Duration
	Action action
	Target string
}

func simplify(events Events) []simpleEvent {
	var ret []simpleEvent
	for _, e := range events {
		ret = append(ret, simpleEvent{Time: e.time, Action: e.action, Target: e.target})
	}
	return ret
}

func TestSequence(t *testing.T) {
	for _, tc := range []struct {
		name      string
		intervals Intervals
		want      []simpleEvent
	}{
		{
			name: "empty",
		},
		{
			name: "chronological",
			intervals: Intervals{
				"b": {Start: 1 * time.Second, End: 4 * time.Second},
				"a": {Start: 0, End: 2 * time.Second},
			},
			want: []simpleEvent{
				{0, startAction, "a"},
				{1 * time.Second, startAction, "b"},
				{2 * time.Second, stopAction, "a"},
				{4 * time.Second, stopAction, "b"},
			},
		},
		{
			name: "stops before starts at the same time",
			intervals: Intervals{
				"a": {Start: 0, End: 10 * time.Second},
				"b": {Start: 0, End: 10 * time.Second},
				"c": {Start: 10 * time.Second, End: 20 * time.Second},
			},
			want: []simpleEvent{
				{0, startAction, "a"},
				{0, startAction, "b"},
				{10 * time.Second, stopAction, "a"},
				{10 * time.Second, stopAction, "b"},
				{10 * time.Second, startAction, "c"},
				{20 * time.Second, stopAction, "c"},
			},
		},
		{
			name: "zero length interval opens before it closes",
			intervals: Intervals{
				"a":     {Start: 0, End: 5 * time.Second},
				"stamp": {Start: 5 * time.Second, End: 5 * time.Second},
				"b":     {Start: 5 * time.Second, End: 6 * time.Second},
			},
			want: []simpleEvent{
				{0, startAction, "a"},
				{5 * time.Second, stopAction, "a"},
				{5 * time.Second, startAction, "b"},
				{5 * time.Second, startAction, "stamp"},
				{5 * time.Second, stopAction, "stamp"},
				{6 * time.Second, stopAction, "b"},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := Sequence(tc.intervals)
			if len(got) != 2*len(tc.intervals) {
				t.Errorf("Sequence() returned %d events for %d intervals", len(got), len(tc.intervals))
			}
			if diff := cmp.Diff(tc.want, simplify(got)); diff != "" {
				t.Errorf("Sequence() diff (-want +got):\n%s", diff)
			}
		})
	}
}
