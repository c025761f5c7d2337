// Copyright 2022 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package gcsutil reads objects from Google Cloud Storage with retries.
package gcsutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"

	"go.fuchsia.dev/ninjawctr/tools/lib/retry"
)

// Scheme is the URL prefix of Cloud Storage object paths.
const Scheme = "gs://"

// TransientError wraps a failure that was retried until attempts ran out.
type TransientError struct {
	err error
}

func (e TransientError) Error() string { return e.err.Error() }

func (e TransientError) Unwrap() error { return e.err }

// Retry wraps a function that makes a GCS API call, adding retries for failures
// that might be transient.
func Retry(ctx context.Context, f func() error) error {
	const (
		initialWait = time.Second
		backoff     = 2
		maxAttempts = 5
	)
	retryStrategy := retry.WithMaxAttempts(
		retry.NewExponentialBackoff(initialWait, 0, backoff),
		maxAttempts)
	return retryWithStrategy(ctx, retryStrategy, f)
}

// Extracted to allow dependency injection for testing.
func retryWithStrategy(ctx context.Context, strategy retry.Backoff, f func() error) error {
	return retry.Retry(ctx, strategy, func() error {
		if err := f(); err != nil {
			if errors.Is(err, storage.ErrBucketNotExist) || errors.Is(err, storage.ErrObjectNotExist) {
				return retry.Fatal(err)
			}
			return TransientError{err: err}
		}
		return nil
	})
}

// SplitPath splits "gs://bucket/path/to/object" into bucket and object name.
func SplitPath(path string) (bucket, object string, err error) {
	if !strings.HasPrefix(path, Scheme) {
		return "", "", fmt.Errorf("%q is not a %s path", path, Scheme)
	}
	parts := strings.SplitN(strings.TrimPrefix(path, Scheme), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%q does not name a bucket and an object", path)
	}
	return parts[0], parts[1], nil
}

// NewObjectReader gets a reader for the given object, with retries.
func NewObjectReader(ctx context.Context, obj *storage.ObjectHandle) (io.ReadCloser, error) {
	return newReaderWithRetry(ctx, func() (io.ReadCloser, error) {
		r, err := obj.NewReader(ctx)
		if err != nil {
			return nil, err
		}
		return r, nil
	})
}

func newReaderWithRetry(ctx context.Context, open func() (io.ReadCloser, error)) (io.ReadCloser, error) {
	var reader io.ReadCloser
	err := Retry(ctx, func() error {
		var err error
		reader, err = open()
		return err
	})
	return reader, err
}
