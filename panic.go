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
	"fmt"
	"runtime"
	"strings"
)

// PanicInfo describes one recovered panic from a unit of work. It is
// immutable once produced and is handed to the OnPanic and OnExhausted
// hooks and, on retry exhaustion, returned from Wait.
type PanicInfo struct {
	// Message is the recovered panic value rendered as text.
	Message string

	// Location points at the panicking frame ("func:line"), when the
	// runtime could identify it.
	Location string

	// Attempt is the 1-based attempt number during which the panic
	// happened.
	Attempt int

	// Cause is the recovered value converted to an error.
	Cause error
}

// Unwrap exposes the recovered value to errors.Is and errors.As.
func (p *PanicInfo) Unwrap() error { return p.Cause }

// Error implements the error interface so that exhausted supervision can be
// reported through an ordinary error return.
func (p *PanicInfo) Error() string {
	if p.Location == "" {
		return fmt.Sprintf("work panicked: %s (attempt %d)", p.Message, p.Attempt)
	}
	return fmt.Sprintf("work panicked at [%s]: %s (attempt %d)", p.Location, p.Message, p.Attempt)
}

// panicMessage renders an arbitrary recovered value. Strings and errors
// pass through as-is, everything else gets the default formatting.
func panicMessage(v interface{}) string {
	switch m := v.(type) {
	case string:
		return m
	case error:
		return m.Error()
	default:
		return fmt.Sprintf("%v", m)
	}
}

func identifyPanic() string {
	var name, file string
	var line int
	var pc [16]uintptr

	n := runtime.Callers(3, pc[:])
	for _, pc := range pc[:n] {
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		file, line = fn.FileLine(pc)
		name = fn.Name()
		if !strings.HasPrefix(name, "runtime.") {
			break
		}
	}

	switch {
	case name != "":
		return fmt.Sprintf("%v:%v", name, line)
	case file != "":
		return fmt.Sprintf("%v:%v", file, line)
	}

	return fmt.Sprintf("pc:%x", pc[0])
}
