// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package syncutil provides a weighted semaphore used as a concurrency
// bound inside the pipeline: capping how many bucket processors (goroutines
// or worker processes) may run in flight at once.
package syncutil

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Weighted is a wrapper around golang.org/x/sync/semaphore that additionally
// tracks how much weight is currently available, so callers can report it
// (e.g. in debug logs) without racing the semaphore's internal state.
type Weighted struct {
	sem           *semaphore.Weighted
	currentWeight int64
	mu            sync.Mutex
}

// NewWeighted returns a Weighted semaphore with the given capacity.
func NewWeighted(maxWeight int64) *Weighted {
	return &Weighted{
		sem:           semaphore.NewWeighted(maxWeight),
		currentWeight: maxWeight,
	}
}

// Acquire blocks until weight is available or ctx is done.
func (w *Weighted) Acquire(ctx context.Context, weight int64) error {
	if err := w.sem.Acquire(ctx, weight); err != nil {
		return err
	}
	w.mu.Lock()
	w.currentWeight -= weight
	w.mu.Unlock()
	return nil
}

// Release returns weight to the semaphore.
func (w *Weighted) Release(weight int64) {
	w.mu.Lock()
	w.currentWeight += weight
	w.mu.Unlock()
	w.sem.Release(weight)
}

// Available returns the currently unclaimed weight.
func (w *Weighted) Available() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.currentWeight
}
