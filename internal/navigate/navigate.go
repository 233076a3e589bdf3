// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package navigate models the "hard navigation" side effects of the session layer.

A forced logout sends the user to the login entry point and a maintenance
answer sends them to the maintenance page. Neither can be cancelled once
issued. The [Navigator] is injected so that each host decides what a
navigation means:

  - CLI: the target is recorded and printed.
  - Console: the target is placed in a request-scoped [Slot] and turned into
    an HTTP redirect by the navigation middleware.
*/
package navigate

import (
	"context"
	"sync"

	"github.com/taibuivan/campus/internal/platform/ctxkey"
)

// Navigator performs a hard navigation to target.
type Navigator interface {
	Navigate(ctx context.Context, target string)
}

// Func adapts an ordinary function to [Navigator].
type Func func(ctx context.Context, target string)

// Navigate implements [Navigator].
func (f Func) Navigate(ctx context.Context, target string) { f(ctx, target) }

// # Recorder

// Recorder remembers every navigation, in order. Safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	targets []string
}

// Navigate implements [Navigator].
func (r *Recorder) Navigate(_ context.Context, target string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets = append(r.targets, target)
}

// Targets returns a copy of the recorded navigations.
func (r *Recorder) Targets() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.targets...)
}

// Last returns the most recent navigation, or "".
func (r *Recorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.targets) == 0 {
		return ""
	}
	return r.targets[len(r.targets)-1]
}

// # Request-scoped navigation

// Slot holds the navigation requested while serving one console request.
// The first navigation wins; later ones are ignored because the first already
// ended the page.
type Slot struct {
	mu     sync.Mutex
	target string
}

// NewContext attaches an empty [Slot] to ctx.
func NewContext(ctx context.Context) (context.Context, *Slot) {
	slot := &Slot{}
	return context.WithValue(ctx, ctxkey.KeyNavigation, slot), slot
}

// Target returns the requested navigation, or "".
func (s *Slot) Target() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

func (s *Slot) set(target string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.target == "" {
		s.target = target
	}
}

// Scoped returns a [Navigator] that writes into the request's [Slot] and
// falls back to next when ctx carries none (e.g. an idle-timeout logout).
func Scoped(next Navigator) Navigator {
	return Func(func(ctx context.Context, target string) {
		if slot, ok := ctx.Value(ctxkey.KeyNavigation).(*Slot); ok {
			slot.set(target)
			return
		}
		if next != nil {
			next.Navigate(ctx, target)
		}
	})
}
