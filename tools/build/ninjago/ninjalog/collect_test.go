// Copyright 2021 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package ninjalog

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestCollect(t *testing.T) {
	for _, tc := range []struct {
		name  string
		steps []Step
		want  Intervals
	}{
		{
			name: "empty",
			want: Intervals{},
		},
		{
			name: "unique outputs",
			steps: []Step{
				{Start: 0, End: 10 * time.Millisecond, Out: "a.o"},
				{Start: 5 * time.Millisecond, End: 20 * time.Millisecond, Out: "b.o"},
			},
			want: Intervals{
				"a.o": {Start: 0, End: 10 * time.Millisecond},
				"b.o": {Start: 5 * time.Millisecond, End: 20 * time.Millisecond},
			},
		},
		{
			name: "last record wins",
			steps: []Step{
				{Start: 0, End: 100 * time.Millisecond, Out: "a.o", CmdHash: "old"},
				{Start: 0, End: 100 * time.Millisecond, Out: "b.o"},
				{Start: 30 * time.Millisecond, End: 40 * time.Millisecond, Out: "a.o", CmdHash: "new"},
			},
			want: Intervals{
				"a.o": {Start: 30 * time.Millisecond, End: 40 * time.Millisecond},
				"b.o": {Start: 0, End: 100 * time.Millisecond},
			},
		},
		{
			name: "last record wins even if earlier",
			steps: []Step{
				{Start: 500 * time.Millisecond, End: 900 * time.Millisecond, Out: "a.o"},
				{Start: 10 * time.Millisecond, End: 20 * time.Millisecond, Out: "a.o"},
			},
			want: Intervals{
				"a.o": {Start: 10 * time.Millisecond, End: 20 * time.Millisecond},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, Collect(tc.steps)); diff != "" {
				t.Errorf("Collect() diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSpan(t *testing.T) {
	for _, tc := range []struct {
		name      string
		intervals Intervals
		want      time.Duration
	}{
		{name: "empty", want: 0},
		{
			name:      "single",
			intervals: Intervals{"a": {Start: 3 * time.Second, End: 7 * time.Second}},
			want:      4 * time.Second,
		},
		{
			name: "overlapping",
			intervals: Intervals{
				"a": {Start: 0, End: 10 * time.Second},
				"b": {Start: 2 * time.Second, End: 5 * time.Second},
				"c": {Start: 8 * time.Second, End: 12 * time.Second},
			},
			want: 12 * time.Second,
		},
		{
			name: "gap",
			intervals: Intervals{
				"a": {Start: 0, End: 2 * time.Second},
				"b": {Start: 5 * time.Second, End: 6 * time.Second},
			},
			want: 3 * time.Second,
		},
		{
			name: "touching",
			intervals: Intervals{
				"a": {Start: 0, End: 2 * time.Second},
				"b": {Start: 2 * time.Second, End: 3 * time.Second},
			},
			want: 3 * time.Second,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.intervals.Span(); got != tc.want {
				t.Errorf("Span() = %v, want %v", got, tc.want)
			}
		})
	}
}
