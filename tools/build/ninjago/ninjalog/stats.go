// Copyright 2021 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package ninjalog

import (
	"path"
	"sort"
	"time"
)

// Stat summarizes the outputs of one type.
type Stat struct {
	Type  string
	Count int
	// Time is the sum of wall-clock times.
	Time time.Duration
	// WCTR is the sum of responsibilities, in seconds.
	WCTR float64
	// Times holds every wall-clock time, in the order outputs were summed.
	Times []time.Duration
}

// Category classifies an output by its file extension, e.g. ".o" or
// ".stamp".
func Category(out string) string {
	if ext := path.Ext(out); ext != "" {
		return ext
	}
	return "(none)"
}

// StatsByType groups responsibilities with typeOf. Stats are sorted by WCTR,
// larger first.
func StatsByType(rs []Responsibility, typeOf func(Responsibility) string) []Stat {
	if len(rs) == 0 {
		return nil
	}
	m := make(map[string]int) // type to index of stats.
	var stats []Stat
	for _, r := range rs {
		t := typeOf(r)
		i, ok := m[t]
		if !ok {
			stats = append(stats, Stat{Type: t})
			i = len(stats) - 1
			m[t] = i
		}
		stats[i].Count++
		stats[i].Time += r.WallClock()
		stats[i].WCTR += r.WCTR
		stats[i].Times = append(stats[i].Times, r.WallClock())
	}
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].WCTR != stats[j].WCTR {
			return stats[i].WCTR > stats[j].WCTR
		}
		return stats[i].Type < stats[j].Type
	})
	return stats
}
