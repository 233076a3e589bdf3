// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"sync"
	"time"
)

// IdleTimer calls onIdle once the countdown runs out without a [IdleTimer.Touch].
//
// After it fires, or after [IdleTimer.Stop], it stays disarmed until the next
// [IdleTimer.Start]. A callback scheduled before Stop never runs.
type IdleTimer struct {
	mu         sync.Mutex
	timeout    time.Duration
	onIdle     func()
	timer      *time.Timer
	generation uint64
	running    bool
}

// NewIdleTimer returns a stopped timer.
func NewIdleTimer(timeout time.Duration, onIdle func()) *IdleTimer {
	return &IdleTimer{timeout: timeout, onIdle: onIdle}
}

// Start arms the countdown. It is a no-op on a running timer.
func (idle *IdleTimer) Start() {
	idle.mu.Lock()
	defer idle.mu.Unlock()

	if idle.running {
		return
	}
	idle.running = true
	idle.arm()
}

// Touch records activity and restarts the countdown of a running timer.
func (idle *IdleTimer) Touch() {
	idle.mu.Lock()
	defer idle.mu.Unlock()

	if idle.running {
		idle.arm()
	}
}

// Stop disarms the timer.
func (idle *IdleTimer) Stop() {
	idle.mu.Lock()
	defer idle.mu.Unlock()

	idle.running = false
	idle.generation++
	if idle.timer != nil {
		idle.timer.Stop()
		idle.timer = nil
	}
}

// Running reports whether a countdown is armed.
func (idle *IdleTimer) Running() bool {
	idle.mu.Lock()
	defer idle.mu.Unlock()
	return idle.running
}

// arm must be called with mu held.
func (idle *IdleTimer) arm() {
	idle.generation++
	generation := idle.generation

	if idle.timer != nil {
		idle.timer.Stop()
	}
	idle.timer = time.AfterFunc(idle.timeout, func() { idle.fire(generation) })
}

func (idle *IdleTimer) fire(generation uint64) {
	idle.mu.Lock()
	if !idle.running || generation != idle.generation {
		idle.mu.Unlock()
		return
	}
	idle.running = false
	idle.timer = nil
	idle.mu.Unlock()

	idle.onIdle()
}
