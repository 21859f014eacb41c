// Copyright 2026 github.com/respawn-go/respawn - Respawn Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package respawn

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
)

// ErrUnknownTask means the identifier does not name a currently supervised
// task. Tasks are deregistered the moment they reach a terminal state, so a
// finished task is as unknown as one that never existed.
var ErrUnknownTask = errors.New("unknown task")

// Errorer is the logging surface the supervisor needs. Any scribe logger
// satisfies it.
type Errorer interface {
	Error(message string, fields ...*log.Field)
}

type nopLogger struct{}

func (nopLogger) Error(string, ...*log.Field) {}

// Registry tracks the supervised tasks that have not yet reached a terminal
// state. It is safe for concurrent use; all bookkeeping happens under one
// mutex so an identifier is never observable half-registered.
type Registry struct {
	logger Errorer

	mu    sync.Mutex
	tasks map[string]*Task
}

// RegistryOption adjusts the construction of a Registry.
type RegistryOption func(*Registry)

// WithLogger plugs a structured logger into the registry. Recovered panics,
// misbehaving hooks, and supervisor faults are reported through it. The
// default logger discards everything.
func WithLogger(logger Errorer) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// New creates an empty registry. Registries are independent of each other;
// a typical program needs exactly one, but tests are free to make more.
func New(opts ...RegistryOption) *Registry {
	r := &Registry{
		logger: nopLogger{},
		tasks:  make(map[string]*Task),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// TaskSpecification describes one task to be supervised.
type TaskSpecification struct {
	// Name prefixes the generated identifier. Purely cosmetic; uniqueness
	// comes from the generated suffix.
	Name string

	// Start is the unit of work. Spawn panics when it is missing.
	Start Work

	// Policy governs restarts. Nil means restart immediately and forever.
	Policy *Policy

	// Executor selects the execution substrate for attempts. Nil means
	// Goroutine().
	Executor Executor
}

// Spawn registers a new supervised task and starts its loop, returning
// immediately. The returned Task carries the registry identifier and is the
// reliable way to await the final outcome. Cancelling ctx stops further
// restarts but, like Cancel, lets a running attempt finish.
func (r *Registry) Spawn(ctx context.Context, spec TaskSpecification) (*Task, error) {
	if spec.Start == nil {
		panic("supervised task must always have a function")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "cannot spawn")
	}
	if spec.Policy == nil {
		spec.Policy = &Policy{}
	}
	if spec.Executor == nil {
		spec.Executor = Goroutine()
	}
	if spec.Name == "" {
		spec.Name = "task"
	}
	t := &Task{
		id:        spec.Name + "-" + uuid.NewString(),
		work:      spec.Start,
		policy:    spec.Policy,
		executor:  spec.Executor,
		registry:  r,
		logger:    r.logger,
		state:     Idle,
		cancelled: make(chan struct{}),
		done:      make(chan struct{}),
	}
	r.mu.Lock()
	r.tasks[t.id] = t
	r.mu.Unlock()
	go t.run(ctx)
	return t, nil
}

// Cancel requests cancellation of the named task. It reports whether an
// active task was found; cancelling an unknown or already finished
// identifier is a no-op.
func (r *Registry) Cancel(id string) bool {
	r.mu.Lock()
	t, ok := r.tasks[id]
	r.mu.Unlock()
	if !ok {
		return false
	}
	return t.Cancel()
}

// List returns the identifiers of all tasks currently under supervision, in
// no particular order.
func (r *Registry) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.tasks))
	for id := range r.tasks {
		ids = append(ids, id)
	}
	return ids
}

// Wait awaits the final outcome of the named task, with the same result
// semantics as Task.Wait. It fails with ErrUnknownTask when the identifier
// is not live anymore; keep the *Task from Spawn to await past
// deregistration.
func (r *Registry) Wait(ctx context.Context, id string) error {
	r.mu.Lock()
	t, ok := r.tasks[id]
	r.mu.Unlock()
	if !ok {
		return ErrUnknownTask
	}
	return t.Wait(ctx)
}

func (r *Registry) deregister(id string) {
	r.mu.Lock()
	delete(r.tasks, id)
	r.mu.Unlock()
}
