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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoBackoff(t *testing.T) {
	b := NoBackoff()
	for attempt := 1; attempt < 10; attempt++ {
		assert.Zero(t, b(attempt))
	}
}

func TestConstantBackoff(t *testing.T) {
	b := ConstantBackoff(250 * time.Millisecond)
	for attempt := 1; attempt < 10; attempt++ {
		assert.Equal(t, 250*time.Millisecond, b(attempt))
	}
}

func TestExponentialBackoff(t *testing.T) {
	min := time.Second / 8
	max := 30 * time.Second
	b := ExponentialBackoff(min, max)

	prev := time.Duration(0)
	for attempt := 1; attempt <= 16; attempt++ {
		d := b(attempt)
		assert.GreaterOrEqual(t, d, time.Duration(float64(min)*.95),
			"attempt %d fell below the floor", attempt)
		assert.LessOrEqual(t, d, max, "attempt %d exceeded the cap", attempt)
		if attempt > 1 && prev < max/4 {
			assert.Greater(t, d, prev, "delay did not grow on attempt %d", attempt)
		}
		prev = d
	}
}

func TestExponentialBackoffDefaults(t *testing.T) {
	b := ExponentialBackoff(0, 0)
	d := b(1)
	assert.Greater(t, d, time.Duration(0))
	assert.LessOrEqual(t, d, time.Second)
}
