// Copyright 2014 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package ninjalog reads .ninja_log files and computes how much of a build's
// wall-clock time each output is responsible for.
package ninjalog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	logHeader = "# ninja log v5"
	logFooter = "# end of ninja log"

	// Output paths can be long; allow lines well past bufio's default.
	maxLineSize = 1 << 20

	// Largest millisecond timestamp that fits in a time.Duration.
	maxMillis = math.MaxInt64 / int64(time.Millisecond)
)

// Step is one record in a .ninja_log file.
// Times are measured from ninja start time.
type Step struct {
	Start time.Duration
	End   time.Duration
	// modification time, but not convertable to absolute real time.
	// on POSIX, time_t is used, but on Windows different type is used.
	// htts://github.com/martine/ninja/blob/master/src/timestamp.h
	Restat  int64
	Out     string
	CmdHash string
}

// Duration reports step's duration.
func (s Step) Duration() time.Duration {
	return s.End - s.Start
}

// Metadata is data appended after the log by build wrappers.
type Metadata struct {
	// Platform is platform of the builder.
	Platform string `json:"platform"`

	// Argv is argv of the wrapper.
	Argv []string `json:"argv"`

	// Cwd is current working directory of the wrapper.
	Cwd string `json:"cwd"`

	// Cmdline is command line of ninja.
	Cmdline []string `json:"cmdline"`

	// Exit is exit status of ninja.
	Exit int `json:"exit"`

	// Env is environment variables.
	Env map[string]string `json:"env"`

	// Raw is raw string for metadata.
	Raw string `json:"-"`
	// Error is error message of parsing metadata.
	Error string `json:"-"`
}

// NinjaLog is parsed data of ninja_log file.
type NinjaLog struct {
	// Filename is a filename of ninja_log.
	Filename string

	// Steps contains every record in file order, including records left over
	// from earlier builds.
	Steps []Step

	// Metadata is additional data found in ninja_log file.
	Metadata Metadata
}

// LastBuild returns the records written by the most recent build. Ninja
// appends to the log, so a record ending before its predecessor marks the
// start of a newer build.
func (n *NinjaLog) LastBuild() []Step {
	start := 0
	for i := 1; i < len(n.Steps); i++ {
		if n.Steps[i].End < n.Steps[i-1].End {
			start = i
		}
	}
	return n.Steps[start:]
}

// Parse parses a .ninja_log file. It fails with ErrFormatMismatch if the
// version header is wrong and with a *MalformedRecordError for the first
// record that cannot be read.
func Parse(fname string, r io.Reader) (*NinjaLog, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, maxLineSize)
	nlog := &NinjaLog{Filename: fname}
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", fname, err)
		}
		return nil, fmt.Errorf("%w: %s is empty", ErrFormatMismatch, fname)
	}
	lineno := 1
	if line := scanner.Text(); line != logHeader {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrFormatMismatch, line, logHeader)
	}
	footer := false
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if line == logFooter {
			footer = true
			break
		}
		if line == "" {
			continue
		}
		step, err := lineToStep(line)
		if err != nil {
			return nil, &MalformedRecordError{Line: lineno, Text: line, Reason: err.Error()}
		}
		nlog.Steps = append(nlog.Steps, step)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s at line %d: %w", fname, lineno, err)
	}
	if !footer {
		return nlog, nil
	}
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading %s metadata: %w", fname, err)
		}
		// missing metadata?
		return nlog, nil
	}
	lineno++
	nlog.Metadata.Raw = scanner.Text()
	if err := json.Unmarshal([]byte(nlog.Metadata.Raw), &nlog.Metadata); err != nil {
		nlog.Metadata.Error = fmt.Sprintf("error at %d: %v", lineno, err)
	}
	return nlog, nil
}

func lineToStep(line string) (Step, error) {
	var step Step
	fields := strings.Split(line, "\t")
	if len(fields) != 5 {
		return step, fmt.Errorf("got %d fields, want 5", len(fields))
	}
	s, err := strconv.ParseUint(fields[0], 10, 63)
	if err != nil {
		return step, fmt.Errorf("bad start %q: %v", fields[0], err)
	}
	e, err := strconv.ParseUint(fields[1], 10, 63)
	if err != nil {
		return step, fmt.Errorf("bad end %q: %v", fields[1], err)
	}
	rs, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return step, fmt.Errorf("bad restat %q: %v", fields[2], err)
	}
	if s > uint64(maxMillis) {
		return step, fmt.Errorf("start %d out of range", s)
	}
	if e > uint64(maxMillis) {
		return step, fmt.Errorf("end %d out of range", e)
	}
	if e < s {
		return step, fmt.Errorf("end %d before start %d", e, s)
	}
	if fields[3] == "" {
		return step, fmt.Errorf("empty output")
	}
	step.Start = time.Duration(s) * time.Millisecond
	step.End = time.Duration(e) * time.Millisecond
	step.Restat = rs
	step.Out = fields[3]
	step.CmdHash = fields[4]
	return step, nil
}

func stepToLine(s Step) string {
	return fmt.Sprintf("%d\t%d\t%d\t%s\t%s",
		s.Start.Milliseconds(),
		s.End.Milliseconds(),
		s.Restat,
		s.Out,
		s.CmdHash)
}

// Dump dumps steps as ninja log v5 format in w.
func Dump(w io.Writer, steps []Step) error {
	if _, err := fmt.Fprintln(w, logHeader); err != nil {
		return err
	}
	for _, s := range steps {
		if _, err := fmt.Fprintln(w, stepToLine(s)); err != nil {
			return err
		}
	}
	return nil
}
