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
	"math"
	"math/rand"
	"time"
)

// Backoff maps the number of the attempt that just failed to the delay
// inserted before the next attempt. Attempt numbers start at 1.
type Backoff func(attempt int) time.Duration

// NoBackoff restarts immediately. It is the behavior of a nil Backoff and
// exists so callers can be explicit about it.
func NoBackoff() Backoff {
	return func(int) time.Duration { return 0 }
}

// ConstantBackoff waits the same delay between every pair of attempts.
func ConstantBackoff(delay time.Duration) Backoff {
	return func(int) time.Duration { return delay }
}

// ExponentialBackoff doubles the delay on each failed attempt, starting at
// min and clamped to max, with jitter between 95% and 105% of the computed
// delay to avoid synchronicity between tasks restarting together.
func ExponentialBackoff(min, max time.Duration) Backoff {
	if min <= 0 {
		min = time.Second / 8
	}
	if max < min {
		max = min
	}
	return func(attempt int) time.Duration {
		factor := math.Pow(2, math.Min(
			float64(attempt-1),
			math.Log2(float64(max)/float64(min)),
		))
		factor *= .95 + .1*rand.Float64()
		d := time.Duration(factor * float64(min))
		if d > max {
			d = max
		}
		return d
	}
}
