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

/*
Package easy is an easier interface to use github.com/respawn-go/respawn.
Its lifecycle is managed through context.Context: prepare a context with
WithContext and every Add against that context lands in the same registry.

	package main

	import respawn "github.com/respawn-go/respawn/easy"

	func main() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		// use cancel() to stop all restarts
		ctx = respawn.WithContext(ctx)
		id, err := respawn.Add(ctx, func(ctx context.Context) error {
			// ...
			return nil
		})
		// ...
	}
*/
package easy // import "github.com/respawn-go/respawn/easy"

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/respawn-go/respawn"
)

type ctxKey int

const registryName ctxKey = 0

var (
	// ErrNoRegistryAttached means that the given context has not been
	// wrapped with WithContext, and thus this package cannot detect
	// which registry you are referring to.
	ErrNoRegistryAttached = errors.New("no registry attached to context")

	mu         sync.Mutex
	registries map[string]*respawn.Registry // map of name to respawn.Registry
)

func init() {
	registries = make(map[string]*respawn.Registry)
}

// WithContext takes a context and prepares it to be used by the easy
// supervisor package. Internally, it creates a registry dedicated to the
// returned context.
func WithContext(ctx context.Context, opts ...respawn.RegistryOption) context.Context {
	chosenName := fmt.Sprintf("registry-%d", rand.Uint64())
	registry := respawn.New(opts...)

	mu.Lock()
	registries[chosenName] = registry
	mu.Unlock()

	return context.WithValue(ctx, registryName, chosenName)
}

// Add inserts a supervised function into the attached registry; it launches
// automatically and restarts forever on panic. Use AddWithPolicy for a
// bounded task. If the context is not correctly prepared, it returns an
// ErrNoRegistryAttached error.
func Add(ctx context.Context, f respawn.Work) (string, error) {
	return AddWithPolicy(ctx, f, nil)
}

// AddWithPolicy inserts a supervised function with a custom retry policy
// into the attached registry.
func AddWithPolicy(ctx context.Context, f respawn.Work, policy *respawn.Policy) (string, error) {
	registry, ok := extractRegistry(ctx)
	if !ok {
		return "", ErrNoRegistryAttached
	}
	task, err := registry.Spawn(ctx, respawn.TaskSpecification{
		Start:  f,
		Policy: policy,
	})
	if err != nil {
		return "", err
	}
	return task.ID(), nil
}

// Cancel requests cancellation of the given task in the attached registry.
// If the context is not correctly prepared, it returns an
// ErrNoRegistryAttached error.
func Cancel(ctx context.Context, id string) error {
	registry, ok := extractRegistry(ctx)
	if !ok {
		return ErrNoRegistryAttached
	}
	registry.Cancel(id)
	return nil
}

// List enumerates the tasks currently supervised by the attached registry.
func List(ctx context.Context) ([]string, error) {
	registry, ok := extractRegistry(ctx)
	if !ok {
		return nil, ErrNoRegistryAttached
	}
	return registry.List(), nil
}

// WithLogger attaches a structured logger to the registry created by
// WithContext.
func WithLogger(logger respawn.Errorer) respawn.RegistryOption {
	return respawn.WithLogger(logger)
}

func extractRegistry(ctx context.Context) (*respawn.Registry, bool) {
	name, ok := ctx.Value(registryName).(string)
	if !ok {
		return nil, false
	}
	mu.Lock()
	registry, ok := registries[name]
	mu.Unlock()
	return registry, ok
}
