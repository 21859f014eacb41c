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

// State is the position of a supervised task in its lifecycle. A task is in
// exactly one state at any instant and only its own loop (plus cancellation
// requests) moves it forward.
type State int32

const (
	// Idle means no attempt has started yet.
	Idle State = iota

	// Running means an attempt is in progress inside the recovery
	// boundary.
	Running

	// Succeeded means the last attempt completed normally; the task is on
	// its way to Terminated. Success ends supervision.
	Succeeded

	// Failed means the last attempt panicked and the policy is being
	// consulted.
	Failed

	// Restarting means the policy granted a retry and the task is waiting
	// out the backoff delay.
	Restarting

	// Cancelled means a cancellation request was honored before the task
	// could finish. Terminal.
	Cancelled

	// Terminated means supervision is over and the task has been removed
	// from its registry. Terminal.
	Terminated
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case Restarting:
		return "restarting"
	case Cancelled:
		return "cancelled"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// terminal reports whether no further state transition can happen.
func (s State) terminal() bool {
	return s == Cancelled || s == Terminated
}
