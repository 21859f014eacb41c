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

// Package respawn supervises units of work and restarts them when they
// panic. A panic inside a supervised function never reaches the caller: it
// is recovered, recorded, and handed to a retry policy that decides whether
// to run the function again and after what delay.
//
//	registry := respawn.New()
//	task, err := registry.Spawn(ctx, respawn.TaskSpecification{
//		Start: func(ctx context.Context) error {
//			return handleConnection(ctx)
//		},
//		Policy: &respawn.Policy{
//			MaxAttempts: 5,
//			Backoff:     respawn.ExponentialBackoff(time.Second/8, 30*time.Second),
//		},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := task.Wait(ctx); err != nil {
//		log.Println("gave up:", err)
//	}
//
// Only panics are retried. A unit of work that returns an error has failed
// in an ordinary, announced way; respawn hands that error back untouched
// and does not run the work again.
package respawn // import "github.com/respawn-go/respawn"
