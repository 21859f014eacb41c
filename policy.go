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

import "time"

// Policy configures how a supervised task reacts to panics. The zero value
// restarts immediately and forever. A Policy is immutable after being
// handed to Spawn and is shared by reference for the lifetime of the task.
type Policy struct {
	// MaxAttempts bounds the number of executions of the unit of work.
	// Zero means unbounded; setting it to 1 disables restarts.
	MaxAttempts int

	// Backoff computes the delay before the next attempt. Nil restarts
	// immediately.
	Backoff Backoff

	// OnPanic is invoked after every recovered panic, before the restart
	// decision is acted upon.
	OnPanic func(info *PanicInfo)

	// OnRestart is invoked before each re-attempt, with the number of the
	// attempt about to start.
	OnRestart func(attempt int)

	// OnExhausted is invoked exactly once when the policy stops retrying,
	// with the PanicInfo of the final attempt.
	OnExhausted func(info *PanicInfo)

	// Finally is invoked exactly once when the task leaves supervision,
	// whatever the reason: success, ordinary failure, exhaustion, or
	// cancellation.
	Finally func()
}

// decision is the outcome of consulting the policy after a failed attempt.
type decision struct {
	retry bool
	after time.Duration
}

// decide is a pure function of the attempt counter. MaxAttempts wins over
// any backoff configuration; hooks never influence the outcome.
func (p *Policy) decide(attempt int) decision {
	if p.MaxAttempts > 0 && attempt >= p.MaxAttempts {
		return decision{retry: false}
	}
	d := decision{retry: true}
	if p.Backoff != nil {
		d.after = p.Backoff(attempt)
	}
	return d
}
