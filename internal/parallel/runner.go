// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package parallel runs a list of tasks with a cap on how many are in flight.
//
// Workers pull indices from a shared cursor, so index i is always claimed
// after index i-1, while completion order is unspecified. Results keep the
// position of the task that produced them.
package parallel

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Task is a unit of work. Callers that need every result should convert
// failures into values inside the task; a returned error aborts the run.
type Task[T any] func(ctx context.Context) (T, error)

// Observer receives claim and settle notifications. Both methods may be
// called from several goroutines at once.
type Observer interface {
	OnClaim(index int)
	OnSettle(index int)
}

// PanicError is returned when a task panics.
type PanicError struct {
	Index int
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task %d panicked: %v", e.Index, e.Value)
}

type options struct {
	observer Observer
}

// Option configures Run.
type Option func(*options)

// WithObserver attaches an Observer to the run.
func WithObserver(o Observer) Option {
	return func(opts *options) {
		opts.observer = o
	}
}

// Run executes tasks with at most limit in flight and returns their results
// in task order. It returns only once every started task has settled. If a
// task fails, no further tasks are claimed and the first error is returned.
func Run[T any](ctx context.Context, tasks []Task[T], limit int, opts ...Option) ([]T, error) {
	if limit < 1 {
		return nil, fmt.Errorf("invalid concurrency limit %d: must be at least 1", limit)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	results := make([]T, len(tasks))
	if len(tasks) == 0 {
		return results, nil
	}

	workers := limit
	if workers > len(tasks) {
		workers = len(tasks)
	}

	var (
		mu   sync.Mutex
		next int
	)
	// claim hands out the next index; claims are serialised so that the
	// observer sees them in the same order they were taken
	claim := func() (int, bool) {
		mu.Lock()
		defer mu.Unlock()
		if next >= len(tasks) {
			return 0, false
		}
		i := next
		next++
		if o.observer != nil {
			o.observer.OnClaim(i)
		}
		return i, true
	}

	g, gctx := errgroup.WithContext(ctx)

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				// a failed sibling stops further claims
				if gctx.Err() != nil {
					return nil
				}
				i, ok := claim()
				if !ok {
					return nil
				}

				value, err := runOne(gctx, tasks[i], i)
				if o.observer != nil {
					o.observer.OnSettle(i)
				}
				if err != nil {
					return err
				}
				results[i] = value
			}
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// workers only stop short of the end when the parent context is done
	if next < len(tasks) {
		return nil, ctx.Err()
	}
	return results, nil
}

func runOne[T any](ctx context.Context, task Task[T], index int) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Index: index, Value: r}
		}
	}()
	return task(ctx)
}
