// Copyright 2021 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package logsource opens ninja logs from the local disk or Cloud Storage.
package logsource

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/multierr"

	"go.fuchsia.dev/ninjawctr/tools/lib/gcsutil"
	"go.fuchsia.dev/ninjawctr/tools/lib/logger"
)

// Source opens logs by path. Paths starting with gs:// name Cloud Storage
// objects; anything else is a local file. Paths ending in .gz are
// decompressed.
type Source struct {
	// openObject opens a Cloud Storage object. Nil means openGCSObject.
	openObject func(ctx context.Context, bucket, object string) (io.ReadCloser, error)
}

// Open returns the contents of the log at path. The caller must close it.
func (s *Source) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	rc, err := s.openRaw(ctx, path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return rc, nil
	}
	logger.Debugf(ctx, "decompressing %s", path)
	zr, err := gzip.NewReader(rc)
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("decompressing %s: %w", path, err), rc.Close())
	}
	return &stackedReader{Reader: zr, closers: []io.Closer{zr, rc}}, nil
}

func (s *Source) openRaw(ctx context.Context, path string) (io.ReadCloser, error) {
	if !strings.HasPrefix(path, gcsutil.Scheme) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening ninja log: %w", err)
		}
		return f, nil
	}
	bucket, object, err := gcsutil.SplitPath(path)
	if err != nil {
		return nil, err
	}
	open := s.openObject
	if open == nil {
		open = openGCSObject
	}
	logger.Debugf(ctx, "fetching object %q from bucket %q", object, bucket)
	rc, err := open(ctx, bucket, object)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return rc, nil
}

func openGCSObject(ctx context.Context, bucket, object string) (io.ReadCloser, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Cloud Storage client: %w", err)
	}
	r, err := gcsutil.NewObjectReader(ctx, client.Bucket(bucket).Object(object))
	if err != nil {
		return nil, multierr.Append(err, client.Close())
	}
	return &stackedReader{Reader: r, closers: []io.Closer{r, client}}, nil
}

// stackedReader reads from Reader and closes every closer, innermost first.
type stackedReader struct {
	io.Reader
	closers []io.Closer
}

func (r *stackedReader) Close() error {
	var err error
	for _, c := range r.closers {
		err = multierr.Append(err, c.Close())
	}
	return err
}
