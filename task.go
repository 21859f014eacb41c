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
	"time"

	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
)

// ErrCancelled is returned from Wait when the task was cancelled before it
// could finish on its own.
var ErrCancelled = errors.New("task cancelled")

// Task is one supervised run of a unit of work. It is created by
// Registry.Spawn and driven by its own loop; callers interact with it
// through Wait, Cancel, and the introspection accessors.
type Task struct {
	id       string
	work     Work
	policy   *Policy
	executor Executor
	registry *Registry
	logger   Errorer

	cancelOnce sync.Once
	cancelled  chan struct{}
	done       chan struct{}

	// end is the terminal state chosen by the loop; finish publishes it
	// after deregistration. Written only from the task's own goroutine.
	// Anything but Cancelled means Terminated.
	end State

	mu        sync.Mutex
	state     State
	attempts  int
	outcome   error
	lastPanic *PanicInfo
}

// ID returns the identifier under which the task was registered.
func (t *Task) ID() string { return t.id }

// State returns the task's current state.
func (t *Task) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Attempts returns how many executions of the unit of work have started so
// far. It never decreases and grows by exactly one per attempt.
func (t *Task) Attempts() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.attempts
}

// Cancel requests cooperative cancellation. A running attempt is allowed to
// finish; the request is honored at the next checkpoint of the supervisor
// loop, before any further attempt starts. It reports whether the task was
// still active when the request arrived.
func (t *Task) Cancel() bool {
	t.mu.Lock()
	active := !t.state.terminal()
	t.mu.Unlock()
	t.cancelOnce.Do(func() { close(t.cancelled) })
	return active
}

// Wait blocks until the task reaches a terminal state or ctx is done. It
// returns nil when the unit of work succeeded, the work's own error when it
// failed in the ordinary way, a *PanicInfo when retries were exhausted, and
// ErrCancelled when the task was cancelled.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		t.mu.Lock()
		defer t.mu.Unlock()
		return t.outcome
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LastPanic returns the most recent recovered panic, or nil when no attempt
// has panicked yet.
func (t *Task) LastPanic() *PanicInfo {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastPanic
}

func (t *Task) setState(s State) {
	t.mu.Lock()
	t.state = s
	t.mu.Unlock()
}

func (t *Task) setOutcome(err error) {
	t.mu.Lock()
	t.outcome = err
	t.mu.Unlock()
}

func (t *Task) cancelRequested(ctx context.Context) bool {
	select {
	case <-t.cancelled:
		return true
	default:
	}
	return ctx.Err() != nil
}

// run is the supervisor loop. It owns every state transition except the
// flagging done by Cancel and runs attempts strictly one after another:
// attempt N is fully processed, hooks included, before attempt N+1 starts.
func (t *Task) run(ctx context.Context) {
	defer t.finish()
	for {
		if t.cancelRequested(ctx) {
			t.end = Cancelled
			return
		}
		t.mu.Lock()
		t.attempts++
		attempt := t.attempts
		t.state = Running
		t.mu.Unlock()

		result, err := t.executor.Run(ctx, t.work)
		if err != nil {
			t.setOutcome(errors.Wrapf(err, "attempt %d could not be started", attempt))
			return
		}
		if result.Panic == nil {
			t.setOutcome(result.Err)
			t.setState(Succeeded)
			return
		}

		info := result.Panic
		info.Attempt = attempt
		t.mu.Lock()
		t.lastPanic = info
		t.state = Failed
		t.mu.Unlock()
		t.logger.Error("recovered panic", log.Error(info),
			log.String("task", t.id), log.Int("attempt", attempt))
		if h := t.policy.OnPanic; h != nil {
			t.hook(func() { h(info) })
		}

		d := t.policy.decide(attempt)
		if !d.retry {
			if h := t.policy.OnExhausted; h != nil {
				t.hook(func() { h(info) })
			}
			t.setOutcome(info)
			return
		}
		if h := t.policy.OnRestart; h != nil {
			next := attempt + 1
			t.hook(func() { h(next) })
		}
		t.setState(Restarting)
		if !t.sleep(ctx, d.after) {
			t.end = Cancelled
			return
		}
	}
}

// sleep waits out the backoff delay. It returns false when a cancellation
// request or context expiry interrupted the wait.
func (t *Task) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return !t.cancelRequested(ctx)
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-t.cancelled:
		return false
	case <-ctx.Done():
		return false
	}
}

// hook runs one policy hook inside its own recovery boundary. A hook that
// panics is logged and otherwise ignored; it cannot stop the loop or leave
// the registry entry behind.
func (t *Task) hook(f func()) {
	if f == nil {
		return
	}
	if recovered := safeHook(f); recovered != nil {
		t.logger.Error("hook panicked", log.Error(recovered), log.String("task", t.id))
	}
}

// finish settles the terminal bookkeeping. It runs even if the loop itself
// blows up, so the registry entry is always cleaned up and waiters are
// always released. Deregistration comes first: a terminal state only
// becomes observable once the identifier has left the registry, so a listed
// identifier always refers to a task that is still under supervision.
func (t *Task) finish() {
	if r := recover(); r != nil {
		t.setOutcome(&PanicInfo{Message: panicMessage(r), Attempt: t.Attempts()})
		t.logger.Error("supervisor loop panicked", log.String("task", t.id))
	}
	final := Terminated
	if t.end == Cancelled {
		final = Cancelled
	}
	t.registry.deregister(t.id)
	t.mu.Lock()
	t.state = final
	if final == Cancelled && t.outcome == nil {
		t.outcome = ErrCancelled
	}
	t.mu.Unlock()
	t.hook(t.policy.Finally)
	close(t.done)
}
