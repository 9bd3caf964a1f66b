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

package module

import (
	stderrors "errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/packcfg/packcfg/pkg/plugin"
)

// ErrNotFound is returned when a request cannot be resolved or a path has
// nothing loaded at it.
var ErrNotFound = stderrors.New("module not found")

// Resolver maps a module request to a path, relative to dir.
type Resolver interface {
	Resolve(dir, request string) (string, error)
}

// Loader returns the value exported by the module at path.
type Loader interface {
	Load(path string) (any, error)
}

// ResolveLoader is the full module capability handed to the merger.
type ResolveLoader interface {
	Resolver
	Loader
}

// Registry is an in-memory module system. Bare requests are looked up by
// name; relative and absolute requests are joined with dir first.
type Registry struct {
	modules map[string]any
	mu      sync.RWMutex
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]any)}
}

// Add registers value under path. Relative paths are kept as bare names.
func (r *Registry) Add(path string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modules[path] = value
}

// Resolve implements Resolver.
func (r *Registry) Resolve(dir, request string) (string, error) {
	if request == "" {
		return "", fmt.Errorf("empty request: %w", ErrNotFound)
	}
	key := request
	if isPathRequest(request) {
		if filepath.IsAbs(request) {
			key = filepath.Clean(request)
		} else {
			key = filepath.Join(dir, request)
		}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.modules[key]; !ok {
		return "", fmt.Errorf("cannot resolve %q in %s: %w", request, dir, ErrNotFound)
	}
	return key, nil
}

// Load implements Loader.
func (r *Registry) Load(path string) (any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.modules[path]
	if !ok {
		return nil, fmt.Errorf("nothing loaded at %s: %w", path, ErrNotFound)
	}
	return v, nil
}

// Paths returns all registered paths, sorted.
func (r *Registry) Paths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.modules))
}

func isPathRequest(request string) bool {
	return filepath.IsAbs(request) ||
		strings.HasPrefix(request, "./") ||
		strings.HasPrefix(request, "../") ||
		request == "." || request == ".."
}

// BuiltinPrefix is the module path prefix under which builtin plugin
// constructors are also exposed.
const BuiltinPrefix = "webpack/lib/"

// NewBuiltinRegistry returns a Registry exposing every registered plugin
// factory both by its bare name and under BuiltinPrefix.
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	for _, name := range plugin.Names() {
		f, _ := plugin.Lookup(name)
		r.Add(name, f)
		r.Add(BuiltinPrefix+name, f)
	}
	return r
}
