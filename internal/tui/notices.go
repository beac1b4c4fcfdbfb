// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

package tui

import (
	"sync"
	"time"
)

type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeWarn
	NoticeError
)

// Notice is one toast-style message shown in the status bar
type Notice struct {
	Kind NoticeKind
	Text string
	At   time.Time
}

// Notices queues session notifications until the model drains them.
// It implements groups.Notifier and is safe for concurrent use.
type Notices struct {
	mu    sync.Mutex
	queue []Notice
	now   func() time.Time
}

func NewNotices() *Notices {
	return &Notices{now: time.Now}
}

func (n *Notices) push(kind NoticeKind, text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.queue = append(n.queue, Notice{Kind: kind, Text: text, At: n.now()})
}

func (n *Notices) Info(msg string)    { n.push(NoticeInfo, msg) }
func (n *Notices) Success(msg string) { n.push(NoticeSuccess, msg) }
func (n *Notices) Warn(msg string)    { n.push(NoticeWarn, msg) }
func (n *Notices) Error(msg string)   { n.push(NoticeError, msg) }

// Drain returns and forgets every queued notice, oldest first
func (n *Notices) Drain() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.queue
	n.queue = nil
	return out
}
