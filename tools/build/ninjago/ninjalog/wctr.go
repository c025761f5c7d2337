// Copyright 2021 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package ninjalog

import (
	"fmt"
	"sort"
	"time"
)

// Responsibility is the wall-clock time responsibility (WCTR) of one output:
// the build time it ran for, with every stretch divided evenly among all
// outputs running during it. A link that runs alone is responsible for all of
// its time; a compile running next to 999 others for only a thousandth.
type Responsibility struct {
	Out string
	// WCTR is in seconds.
	WCTR     float64
	Interval Interval
}

// WallClock reports how long the output took to build.
func (r Responsibility) WallClock() time.Duration {
	return r.Interval.Duration()
}

// Parallelism reports wall-clock time divided by WCTR, i.e. how many outputs
// were building alongside this one on average. Zero-length outputs have no
// WCTR and report 0.
func (r Responsibility) Parallelism() float64 {
	if r.WCTR == 0 {
		return 0
	}
	return r.WallClock().Seconds() / r.WCTR
}

// Apportion sweeps events in order and divides the time between consecutive
// events evenly among the outputs running at that moment. It returns every
// output's responsibility, largest first, with ties ordered by output.
//
// Events must come from Sequence or follow its order. A start for a running
// output or an output left running at the end yields an
// *InconsistentLogError, a stop for an output that is not running a
// *DanglingStopError. Either way no responsibilities are returned.
func Apportion(events Events) ([]Responsibility, error) {
	if len(events) == 0 {
		return nil, nil
	}

	// Outputs currently building, with their WCTR so far.
	running := make(map[string]float64)
	var finished []Responsibility

	lastTime := events[0].time
	for _, e := range events {
		if n := len(running); n > 0 {
			share := (e.time - lastTime).Seconds() / float64(n)
			for out := range running {
				running[out] += share
			}
		}
		switch e.action {
		case startAction:
			if _, ok := running[e.target]; ok {
				return nil, &InconsistentLogError{Out: e.target, Time: e.time, Reason: "started while already running"}
			}
			running[e.target] = 0
		case stopAction:
			wctr, ok := running[e.target]
			if !ok {
				return nil, &DanglingStopError{Out: e.target, Time: e.time}
			}
			delete(running, e.target)
			finished = append(finished, Responsibility{Out: e.target, WCTR: wctr, Interval: e.interval})
		default:
			return nil, fmt.Errorf("unknown action %q for %q", e.action, e.target)
		}
		lastTime = e.time
	}

	if len(running) > 0 {
		var outs []string
		for out := range running {
			outs = append(outs, out)
		}
		sort.Strings(outs)
		return nil, &InconsistentLogError{Out: outs[0], Time: lastTime, Reason: fmt.Sprintf("%d outputs never stopped", len(outs))}
	}

	sort.SliceStable(finished, func(i, j int) bool {
		if finished[i].WCTR != finished[j].WCTR {
			return finished[i].WCTR > finished[j].WCTR
		}
		return finished[i].Out < finished[j].Out
	})
	return finished, nil
}

// Report is the result of analyzing one log.
type Report struct {
	Filename string
	// Responsibilities holds one entry per output, largest WCTR first.
	Responsibilities []Responsibility
	// Span is the time during which at least one output was building.
	Span time.Duration
	// TotalWCTR is the sum of all responsibilities, in seconds. It equals
	// Span up to floating point error.
	TotalWCTR float64
}

// Analyze computes the WCTR of every output in steps. Steps are reduced to
// one interval per output first, the last record winning.
func Analyze(fname string, steps []Step) (*Report, error) {
	intervals := Collect(steps)
	rs, err := Apportion(Sequence(intervals))
	if err != nil {
		return nil, fmt.Errorf("apportioning build time of %s: %w", fname, err)
	}
	report := &Report{
		Filename:         fname,
		Responsibilities: rs,
		Span:             intervals.Span(),
	}
	for _, r := range rs {
		report.TotalWCTR += r.WCTR
	}
	return report, nil
}
