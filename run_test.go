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
	"errors"
	"strings"
	"testing"
)

func Test_capture(t *testing.T) {
	canceledCtx, cancel := context.WithCancel(context.Background())
	cancel()
	type args struct {
		ctx context.Context
		f   Work
	}
	tests := []struct {
		name      string
		args      args
		wantErr   bool
		wantPanic bool
	}{
		{"happy case", args{context.Background(), func(context.Context) error { return nil }}, false, false},
		{"errored case", args{context.Background(), func(context.Context) error { return errors.New("error") }}, true, false},
		{"canceledContext case", args{canceledCtx, func(ctx context.Context) error { return ctx.Err() }}, true, false},
		{"panicked case", args{context.Background(), func(context.Context) error { panic("boom") }}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err, recovered := capture(tt.args.ctx, tt.args.f)
			if (err != nil) != tt.wantErr {
				t.Errorf("capture() error = %v, wantErr %v", err, tt.wantErr)
			}
			if (recovered != nil) != tt.wantPanic {
				t.Errorf("capture() recovered = %v, wantPanic %v", recovered, tt.wantPanic)
			}
		})
	}
}

func Test_capture_panicDetails(t *testing.T) {
	_, recovered := capture(context.Background(), func(context.Context) error {
		panic("exploded")
	})
	if recovered == nil {
		t.Fatal("expected a recovered panic")
	}
	if !strings.Contains(recovered.Message, "exploded") {
		t.Errorf("panic message lost: %q", recovered.Message)
	}
	if recovered.Location == "" {
		t.Error("expected a source location for the panic")
	}
}

func Test_panicMessage(t *testing.T) {
	tests := []struct {
		name string
		v    interface{}
		want string
	}{
		{"string payload", "boom", "boom"},
		{"error payload", errors.New("kaput"), "kaput"},
		{"other payload", 42, "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := panicMessage(tt.v); got != tt.want {
				t.Errorf("panicMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func Test_safeHook(t *testing.T) {
	if recovered := safeHook(func() {}); recovered != nil {
		t.Errorf("well-behaved hook reported a panic: %v", recovered)
	}
	recovered := safeHook(func() { panic("bad hook") })
	if recovered == nil {
		t.Fatal("expected the hook panic to be reported")
	}
	if !strings.Contains(recovered.Message, "bad hook") {
		t.Errorf("hook panic message lost: %q", recovered.Message)
	}
}
