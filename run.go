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

	"cirello.io/errors"
)

// Work is a unit of work that can be supervised for restart. A nil return
// means success, a non-nil return is an ordinary failure. Both end
// supervision; only a panic triggers the retry policy.
type Work func(ctx context.Context) error

// capture runs one attempt of the unit of work inside the recovery
// boundary. A panic is intercepted and reported as a PanicInfo; it never
// unwinds past this function. Attempt is left zero for the caller to fill.
func capture(ctx context.Context, f Work) (err error, recovered *PanicInfo) {
	defer func() {
		if r := recover(); r != nil {
			recovered = &PanicInfo{
				Message:  panicMessage(r),
				Location: identifyPanic(),
				Cause:    errors.E(r),
			}
		}
	}()
	err = f(ctx)
	return err, nil
}

// safeHook runs a policy hook under the same recovery discipline as the
// unit of work, so that a misbehaving hook cannot take the supervisor loop
// down with it. The recovered value is reported back for logging.
func safeHook(f func()) (recovered *PanicInfo) {
	defer func() {
		if r := recover(); r != nil {
			recovered = &PanicInfo{
				Message:  panicMessage(r),
				Location: identifyPanic(),
				Cause:    errors.E(r),
			}
		}
	}()
	f()
	return nil
}
