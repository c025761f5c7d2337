// Copyright 2021 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package ninjalog

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrFormatMismatch means the log does not start with the v5 header.
	ErrFormatMismatch = errors.New("unexpected ninja log format")
	// ErrMalformedRecord means a record could not be split into its fields.
	ErrMalformedRecord = errors.New("malformed ninja log record")
	// ErrInconsistentLog means a task started while it was already running,
	// or never stopped.
	ErrInconsistentLog = errors.New("inconsistent ninja log")
	// ErrDanglingStop means a task stopped without having started.
	ErrDanglingStop = errors.New("stop without a matching start")
)

// MalformedRecordError reports the record at Line that could not be parsed.
type MalformedRecordError struct {
	Line   int
	Text   string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("%v at line %d (%q): %s", ErrMalformedRecord, e.Line, e.Text, e.Reason)
}

func (e *MalformedRecordError) Is(target error) bool { return target == ErrMalformedRecord }

// InconsistentLogError reports a task whose start and stop events do not
// pair up.
type InconsistentLogError struct {
	Out    string
	Time   time.Duration
	Reason string
}

func (e *InconsistentLogError) Error() string {
	return fmt.Sprintf("%v: %q at %v: %s", ErrInconsistentLog, e.Out, e.Time, e.Reason)
}

func (e *InconsistentLogError) Is(target error) bool { return target == ErrInconsistentLog }

// DanglingStopError reports a stop event for a task that was not running.
type DanglingStopError struct {
	Out  string
	Time time.Duration
}

func (e *DanglingStopError) Error() string {
	return fmt.Sprintf("%v: %q at %v", ErrDanglingStop, e.Out, e.Time)
}

func (e *DanglingStopError) Is(target error) bool { return target == ErrDanglingStop }
