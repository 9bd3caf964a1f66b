// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package plugin

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

var (
	globalFactories = make(map[string]Factory)
	globalMu        sync.RWMutex
)

// Register adds a named factory to the global registry.
func Register(name string, factory Factory) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if _, exists := globalFactories[name]; exists {
		return fmt.Errorf("plugin %s already registered", name)
	}

	globalFactories[name] = factory
	return nil
}

// MustRegister is a convenience function that panics on registration error.
// Use this in init() functions where registration must succeed.
func MustRegister(name string, factory Factory) {
	if err := Register(name, factory); err != nil {
		panic(err)
	}
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, bool) {
	globalMu.RLock()
	defer globalMu.RUnlock()
	f, ok := globalFactories[name]
	return f, ok
}

// Names returns all registered plugin names, sorted.
func Names() []string {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return slices.Sorted(maps.Keys(globalFactories))
}

// Construct builds a registered plugin by name.
func Construct(name string, args any) (Plugin, error) {
	f, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("plugin %s not registered", name)
	}
	return f(args)
}

// Matching returns the registered names containing term, case-insensitively.
func Matching(term string) []string {
	term = strings.ToLower(term)
	var out []string
	for _, n := range Names() {
		if strings.Contains(strings.ToLower(n), term) {
			out = append(out, n)
		}
	}
	return out
}
