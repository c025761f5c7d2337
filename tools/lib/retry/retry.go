// Copyright 2018 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package retry runs operations again after failures, waiting according to a
// Backoff policy.
package retry

import (
	"context"
	"errors"
	"time"
)

type fatalError struct {
	error
}

func (e fatalError) Unwrap() error { return e.error }

// Fatal marks err as not worth retrying. Retry returns the underlying error
// immediately.
func Fatal(err error) error {
	return fatalError{err}
}

// Retry calls f until it succeeds, returns a Fatal error, the backoff says
// Stop, or ctx is done. The last error from f is returned.
func Retry(ctx context.Context, b Backoff, f func() error) error {
	b.Reset()
	for {
		err := f()
		if err == nil {
			return nil
		}
		var fe fatalError
		if errors.As(err, &fe) {
			return fe.error
		}
		wait := b.Next()
		if wait == Stop {
			return err
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
	}
}
