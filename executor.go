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
	"runtime"
)

// Result is the outcome of one attempt. Exactly one of the two readings
// applies: Panic is non-nil when the attempt ended in a recovered panic,
// otherwise Err carries the work's ordinary return value (possibly nil).
type Result struct {
	Err   error
	Panic *PanicInfo
}

// Executor runs a single attempt of a unit of work and blocks until its
// outcome is known. Implementations must keep a panicking attempt from
// affecting sibling attempts or the supervisor loop; both bundled
// implementations do so by running the attempt through the package's
// recovery boundary on a fresh goroutine. The returned error reports a
// substrate problem (the attempt could not be run at all), not a failure of
// the work itself.
//
// Which executor to use is fixed at spawn time through TaskSpecification.
type Executor interface {
	Run(ctx context.Context, work Work) (Result, error)
}

type goroutineExecutor struct{}

// Goroutine runs each attempt on its own goroutine, scheduled cooperatively
// by the Go runtime. This is the default executor.
func Goroutine() Executor {
	return goroutineExecutor{}
}

func (goroutineExecutor) Run(ctx context.Context, work Work) (Result, error) {
	outcome := make(chan Result, 1)
	go func() {
		err, recovered := capture(ctx, work)
		outcome <- Result{Err: err, Panic: recovered}
	}()
	return <-outcome, nil
}

type osThreadExecutor struct{}

// OSThread runs each attempt on a goroutine pinned to a dedicated operating
// system thread. Restarting launches a fresh thread. Use it for work that
// relies on thread-local state, such as cgo libraries or syscalls that
// change per-thread attributes.
func OSThread() Executor {
	return osThreadExecutor{}
}

func (osThreadExecutor) Run(ctx context.Context, work Work) (Result, error) {
	outcome := make(chan Result, 1)
	go func() {
		runtime.LockOSThread()
		// no matching UnlockOSThread: exiting with the thread locked makes
		// the runtime retire it, so the next attempt gets a clean thread.
		err, recovered := capture(ctx, work)
		outcome <- Result{Err: err, Panic: recovered}
	}()
	return <-outcome, nil
}
