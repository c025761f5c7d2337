// Copyright 2018 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// +build !linux

package isatty

// Colored output is only auto-detected on Linux hosts.
func isTerminal() bool {
	return false
}
