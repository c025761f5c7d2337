// Copyright 2021 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/subcommands"

	"go.fuchsia.dev/ninjawctr/tools/build/ninjago/ninjalog"
	"go.fuchsia.dev/ninjawctr/tools/build/ninjago/wctrreport"
	"go.fuchsia.dev/ninjawctr/tools/lib/color"
)

// a and b build together for 10s, then c builds alone. An older build of c
// is recorded first and must be ignored.
const testLog = "# ninja log v5\n" +
	"0\t50000\t0\tbin/c\tstale\n" +
	"0\t10000\t0\tobj/a.o\t1\n" +
	"0\t10000\t0\tobj/b.o\t2\n" +
	"10000\t20000\t0\tbin/c\t3\n"

type fakeSource map[string]string

func (s fakeSource) Open(_ context.Context, path string) (io.ReadCloser, error) {
	content, ok := s[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return ioutil.NopCloser(strings.NewReader(content)), nil
}

func newLogCmd(src fakeSource, out io.Writer) logCmd {
	return logCmd{source: src, stdout: out}
}

var noColor = color.NewColor(color.ColorNever)

func TestReport(t *testing.T) {
	ctx := context.Background()
	src := fakeSource{defaultLog: testLog, "other/.ninja_log": "# ninja log v5\n0\t1000\t0\tonly\tx\n"}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		cmd := reportCmd{logCmd: newLogCmd(src, &buf)}
		if err := cmd.execute(ctx, []string{defaultLog}, noColor); err != nil {
			t.Fatalf("execute() = %v", err)
		}
		want := wctrreport.Header + `
    10.000     10.000      1.0 bin/c
     5.000     10.000      2.0 obj/a.o
     5.000     10.000      2.0 obj/b.o
3 outputs, 20.000s of build time, 20.000s of WCTR
`
		if diff := cmp.Diff(want, buf.String()); diff != "" {
			t.Errorf("report diff (-want +got):\n%s", diff)
		}
	})

	t.Run("top", func(t *testing.T) {
		var buf bytes.Buffer
		cmd := reportCmd{logCmd: newLogCmd(src, &buf), top: 1}
		if err := cmd.execute(ctx, []string{defaultLog}, noColor); err != nil {
			t.Fatalf("execute() = %v", err)
		}
		if got := strings.Count(buf.String(), "\n"); got != 3 {
			t.Errorf("report printed %d lines, want header, one output and summary:\n%s", got, buf.String())
		}
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		cmd := reportCmd{logCmd: newLogCmd(src, &buf), json: true}
		if err := cmd.execute(ctx, []string{defaultLog}, noColor); err != nil {
			t.Fatalf("execute() = %v", err)
		}
		var got []map[string]interface{}
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("report is not JSON: %v\n%s", err, buf.String())
		}
		if len(got) != 3 || got[0]["output"] != "bin/c" {
			t.Errorf("report = %v, want bin/c first of 3", got)
		}
	})

	t.Run("several logs keep argument order", func(t *testing.T) {
		var buf bytes.Buffer
		cmd := reportCmd{logCmd: newLogCmd(src, &buf)}
		if err := cmd.execute(ctx, []string{"other/.ninja_log", defaultLog}, noColor); err != nil {
			t.Fatalf("execute() = %v", err)
		}
		out := buf.String()
		first, second := strings.Index(out, "== other/.ninja_log"), strings.Index(out, "== "+defaultLog)
		if first < 0 || second < 0 || first > second {
			t.Errorf("reports out of order:\n%s", out)
		}
	})

	t.Run("last build", func(t *testing.T) {
		var buf bytes.Buffer
		cmd := reportCmd{logCmd: newLogCmd(fakeSource{defaultLog: "# ninja log v5\n0\t9000\t0\told\tx\n0\t3000\t0\tnew\ty\n"}, &buf)}
		cmd.lastBuild = true
		if err := cmd.execute(ctx, []string{defaultLog}, noColor); err != nil {
			t.Fatalf("execute() = %v", err)
		}
		if strings.Contains(buf.String(), "old") || !strings.Contains(buf.String(), "new") {
			t.Errorf("report should only cover the last build:\n%s", buf.String())
		}
	})
}

func TestReportErrors(t *testing.T) {
	ctx := context.Background()
	for _, tc := range []struct {
		name    string
		src     fakeSource
		paths   []string
		top     int
		wantErr error
	}{
		{
			name:    "format mismatch",
			src:     fakeSource{defaultLog: "# ninja log v4\n"},
			paths:   []string{defaultLog},
			wantErr: ninjalog.ErrFormatMismatch,
		},
		{
			name:    "malformed record",
			src:     fakeSource{defaultLog: "# ninja log v5\n0\t10\n"},
			paths:   []string{defaultLog},
			wantErr: ninjalog.ErrMalformedRecord,
		},
		{
			name:    "missing log",
			src:     fakeSource{defaultLog: testLog},
			paths:   []string{defaultLog, "missing"},
			wantErr: os.ErrNotExist,
		},
		{
			name:  "negative count",
			src:   fakeSource{defaultLog: testLog},
			paths: []string{defaultLog},
			top:   -1,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			cmd := reportCmd{logCmd: newLogCmd(tc.src, &buf), top: tc.top}
			err := cmd.execute(ctx, tc.paths, noColor)
			if err == nil {
				t.Fatalf("execute() = nil, want error")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("execute() = %v, want %v", err, tc.wantErr)
			}
			if buf.Len() != 0 {
				t.Errorf("execute() printed partial output:\n%s", buf.String())
			}
		})
	}
}

func TestReportExecuteStatus(t *testing.T) {
	ctx := context.Background()
	f := flag.NewFlagSet("report", flag.ContinueOnError)
	if err := f.Parse([]string{"broken"}); err != nil {
		t.Fatal(err)
	}
	cmd := reportCmd{logCmd: newLogCmd(fakeSource{"broken": "not a ninja log\n"}, ioutil.Discard)}
	if got := cmd.Execute(ctx, f, noColor); got != subcommands.ExitFailure {
		t.Errorf("Execute() = %v, want %v", got, subcommands.ExitFailure)
	}
}

func TestStats(t *testing.T) {
	var buf bytes.Buffer
	cmd := statsCmd{logCmd: newLogCmd(fakeSource{defaultLog: testLog}, &buf)}
	if err := cmd.execute(context.Background(), []string{defaultLog}); err != nil {
		t.Fatalf("execute() = %v", err)
	}
	want := `      WCTR  wallclock    count    slowest type
    10.000     10.000        1     10.000 (none)
    10.000     20.000        2     10.000 .o
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("stats diff (-want +got):\n%s", diff)
	}

	if err := cmd.execute(context.Background(), []string{"a", "b"}); err == nil {
		t.Errorf("execute() with two logs = nil, want error")
	}
}

func TestTrace(t *testing.T) {
	out := filepath.Join(t.TempDir(), "trace.json")
	cmd := traceCmd{logCmd: newLogCmd(fakeSource{defaultLog: testLog}, nil), output: out}
	if err := cmd.execute(context.Background(), []string{defaultLog}); err != nil {
		t.Fatalf("execute() = %v", err)
	}
	b, err := ioutil.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		TraceEvents []struct {
			Name string                 `json:"name"`
			Tid  int                    `json:"tid"`
			Args map[string]interface{} `json:"args"`
		} `json:"traceEvents"`
	}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("trace is not JSON: %v", err)
	}
	if len(got.TraceEvents) != 3 {
		t.Fatalf("got %d trace events, want 3", len(got.TraceEvents))
	}
	for _, e := range got.TraceEvents {
		if e.Name == "bin/c" && e.Args["wctr_s"] != 10.0 {
			t.Errorf("bin/c wctr_s = %v, want 10", e.Args["wctr_s"])
		}
	}
}

func TestTraceToStdout(t *testing.T) {
	var buf bytes.Buffer
	cmd := traceCmd{logCmd: newLogCmd(fakeSource{defaultLog: testLog}, &buf), output: "-"}
	if err := cmd.execute(context.Background(), []string{defaultLog}); err != nil {
		t.Fatalf("execute() = %v", err)
	}
	if !json.Valid(buf.Bytes()) {
		t.Errorf("trace written to stdout is not JSON:\n%s", buf.String())
	}
}

func TestPaths(t *testing.T) {
	f := flag.NewFlagSet("report", flag.ContinueOnError)
	if err := f.Parse(nil); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{defaultLog}, paths(f)); diff != "" {
		t.Errorf("paths() without arguments diff (-want +got):\n%s", diff)
	}
}
