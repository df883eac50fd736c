// Package effecttest provides an in-memory Publisher for tests.
package effecttest

import (
	"context"
	"sync"

	"Petly/internal/effect"
)

type Recorder struct {
	mu      sync.Mutex
	intents []effect.Intent
	Err     error
}

func (r *Recorder) Publish(_ context.Context, intents ...effect.Intent) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intents = append(r.intents, intents...)
	return nil
}

func (r *Recorder) Intents() []effect.Intent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]effect.Intent, len(r.intents))
	copy(out, r.intents)
	return out
}

// Kinds counts recorded intents per kind.
func (r *Recorder) Kinds() map[effect.Kind]int {
	out := map[effect.Kind]int{}
	for _, in := range r.Intents() {
		out[in.Kind]++
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	r.intents = nil
	r.mu.Unlock()
}
