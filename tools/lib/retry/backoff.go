// Copyright 2018 The Fuchsia Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package retry

import (
	"math/rand"
	"time"
)

// Stop indicates that no more retries should be made.
const Stop time.Duration = -1

type Backoff interface {
	// Next gets the duration to wait before retrying the operation or |Stop|
	// to indicate that no retries should be made.
	Next() time.Duration

	// Reset resets to initial state.
	Reset()
}

// ZeroBackoff is a fixed policy whose back-off time is always zero, meaning
// that the operation is retried immediately without waiting.
type ZeroBackoff struct{}

func (b *ZeroBackoff) Reset() {}

func (b *ZeroBackoff) Next() time.Duration { return 0 }

// ConstantBackoff is a fixed policy that always returns the same backoff delay.
type ConstantBackoff struct {
	interval time.Duration
}

func (b *ConstantBackoff) Reset() {}

func (b *ConstantBackoff) Next() time.Duration { return b.interval }

func NewConstantBackoff(d time.Duration) *ConstantBackoff {
	return &ConstantBackoff{interval: d}
}

// ExponentialBackoff grows the delay by multiplier after every attempt, adding
// up to half the current delay as jitter. A non-zero max caps the delay.
type ExponentialBackoff struct {
	initial    time.Duration
	max        time.Duration
	multiplier float64
	current    time.Duration
	rand       *rand.Rand
}

func NewExponentialBackoff(initial, max time.Duration, multiplier float64) *ExponentialBackoff {
	return &ExponentialBackoff{
		initial:    initial,
		max:        max,
		multiplier: multiplier,
		current:    initial,
		rand:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (b *ExponentialBackoff) Reset() { b.current = b.initial }

func (b *ExponentialBackoff) Next() time.Duration {
	next := b.current
	if half := int64(b.current / 2); half > 0 {
		next += time.Duration(b.rand.Int63n(half))
	}
	b.current = time.Duration(float64(b.current) * b.multiplier)
	if b.max > 0 {
		if next > b.max {
			next = b.max
		}
		if b.current > b.max {
			b.current = b.max
		}
	}
	return next
}

type maxTriesBackoff struct {
	backOff  Backoff
	maxTries uint64
	numTries uint64
}

func (b *maxTriesBackoff) Next() time.Duration {
	if b.maxTries > 0 {
		if b.maxTries <= b.numTries {
			return Stop
		}
		b.numTries++
	}
	return b.backOff.Next()
}

func (b *maxTriesBackoff) Reset() {
	b.numTries = 0
	b.backOff.Reset()
}

// WithMaxRetries wraps a back-off which stops after |max| retries.
func WithMaxRetries(b Backoff, max uint64) Backoff {
	return &maxTriesBackoff{backOff: b, maxTries: max}
}

// WithMaxAttempts wraps a back-off which stops after |max| calls in total,
// counting the first one.
func WithMaxAttempts(b Backoff, max uint64) Backoff {
	if max <= 1 {
		return &stopBackoff{}
	}
	return WithMaxRetries(b, max-1)
}

type stopBackoff struct{}

func (b *stopBackoff) Reset() {}

func (b *stopBackoff) Next() time.Duration { return Stop }
