// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package groups

import "sync"

// Progress counts completed items of a bulk update
type Progress struct {
	Done  int `json:"done"`
	Total int `json:"total"`
}

// Fraction returns Done/Total in [0, 1]
func (p Progress) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Done) / float64(p.Total)
}

func (p Progress) Complete() bool {
	return p.Total > 0 && p.Done >= p.Total
}

// ProgressFunc observes progress changes
type ProgressFunc func(Progress)

// ProgressTracker is a concurrency-safe Done counter with a fixed Total.
// Observers see a non-decreasing sequence of values.
type ProgressTracker struct {
	mu       sync.Mutex
	done     int
	total    int
	onChange ProgressFunc
}

// NewProgressTracker creates a tracker at {0, total} and reports that
// initial value to onChange.
func NewProgressTracker(total int, onChange ProgressFunc) *ProgressTracker {
	t := &ProgressTracker{total: total, onChange: onChange}
	if onChange != nil {
		onChange(Progress{Done: 0, Total: total})
	}
	return t
}

// Credit marks n more items as done, never going past Total
func (t *ProgressTracker) Credit(n int) Progress {
	t.mu.Lock()
	defer t.mu.Unlock()

	if n <= 0 {
		return Progress{Done: t.done, Total: t.total}
	}
	t.done += n
	if t.done > t.total {
		t.done = t.total
	}
	p := Progress{Done: t.done, Total: t.total}
	if t.onChange != nil {
		t.onChange(p)
	}
	return p
}

func (t *ProgressTracker) Snapshot() Progress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Progress{Done: t.done, Total: t.total}
}
