// Copyright 2021 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// package chrometrace contains utilities for working with Chrome traces.
package chrometrace

import (
	"encoding/json"
	"io"
)

// Trace is an entry of trace format.
//
// https://code.google.com/p/trace-viewer/
type Trace struct {
	Name            string                 `json:"name"`
	Category        string                 `json:"cat"`
	EventType       string                 `json:"ph"`
	TimestampMicros int64                  `json:"ts"`
	DurationMicros  int64                  `json:"dur"`
	ProcessID       int                    `json:"pid"`
	ThreadID        int                    `json:"tid"`
	Args            map[string]interface{} `json:"args,omitempty"`
}

// CompleteEvent is the event type of a span with a start and a duration.
//
// https://docs.google.com/document/d/1CvAClvFfyA5R-PhYUmn5OOQtYMH4h6I0nSsKchNAySU/edit#heading=h.puwqg050lyuy
const CompleteEvent = "X"

// ByStart is a wrapper type around a slice of Traces ordered by event start time.
//
// This type implements sort.Interface, see https://pkg.go.dev/sort#Interface.
type ByStart []Trace

func (t ByStart) Len() int           { return len(t) }
func (t ByStart) Swap(i, j int)      { t[i], t[j] = t[j], t[i] }
func (t ByStart) Less(i, j int) bool { return t[i].TimestampMicros < t[j].TimestampMicros }

// file is the JSON object format of a trace file.
type file struct {
	TraceEvents     []Trace `json:"traceEvents"`
	DisplayTimeUnit string  `json:"displayTimeUnit"`
}

// Encode writes traces to w as a trace file loadable by chrome://tracing and
// Perfetto.
func Encode(w io.Writer, traces []Trace) error {
	if traces == nil {
		traces = []Trace{}
	}
	return json.NewEncoder(w).Encode(file{TraceEvents: traces, DisplayTimeUnit: "ms"})
}
