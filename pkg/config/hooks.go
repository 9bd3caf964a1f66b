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

package config

import (
	"context"
	"fmt"
	"sync"

	goccyyaml "github.com/goccy/go-yaml"
	"github.com/hashicorp/hcl/v2/hclparse"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/packcfg/packcfg/pkg/defaults"
	"github.com/packcfg/packcfg/pkg/serializer"
)

// SourceLoader turns the bytes of a config file into a RawConfig.
type SourceLoader func(ctx context.Context, path string, data []byte) (RawConfig, error)

// Hooks holds the source loader installed for each extension. Only the
// native extension is installed up front; the rest appear as compiler
// modules register.
type Hooks struct {
	mu      sync.RWMutex
	loaders map[string]SourceLoader
}

// NewHooks returns Hooks with the native loader installed.
func NewHooks() *Hooks {
	h := &Hooks{loaders: make(map[string]SourceLoader)}
	h.Set(defaults.NativeExtension, decodeSource(serializer.FormatJSON))
	return h
}

// Set installs fn for ext, replacing any earlier loader.
func (h *Hooks) Set(ext string, fn SourceLoader) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.loaders[ext] = fn
}

// Get returns the loader installed for ext.
func (h *Hooks) Get(ext string) (SourceLoader, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	fn, ok := h.loaders[ext]
	return fn, ok
}

// CompilerModule is a loadable compiler. Loading it may install hooks
// directly, and whatever it returns is passed to the Compiler's Register.
type CompilerModule func(hooks *Hooks) (any, error)

// DefaultModules returns the compiler modules referenced by DefaultExtensions.
func DefaultModules() map[string]CompilerModule {
	return map[string]CompilerModule{
		YAMLModule:      installFor(decodeSource(serializer.FormatYAML), ".yml", ".yaml"),
		GoccyYAMLModule: installFor(goccyYAMLSource, ".yml", ".yaml"),
		TOMLModule:      installFor(tomlSource, ".toml"),
		HCLModule: func(_ *Hooks) (any, error) {
			return hclparse.NewParser(), nil
		},
		TemplateModule: func(h *Hooks) (any, error) {
			h.Set(".tmpl.json", templateSource(serializer.FormatJSON))
			h.Set(".tmpl.yaml", templateSource(serializer.FormatYAML))
			return nil, nil
		},
	}
}

func installFor(fn SourceLoader, exts ...string) CompilerModule {
	return func(h *Hooks) (any, error) {
		for _, ext := range exts {
			h.Set(ext, fn)
		}
		return nil, nil
	}
}

func decodeSource(format serializer.Format) SourceLoader {
	return func(_ context.Context, path string, data []byte) (RawConfig, error) {
		var v any
		if err := serializer.Decode(format, data, &v); err != nil {
			return RawConfig{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return Plain(v), nil
	}
}

func goccyYAMLSource(_ context.Context, path string, data []byte) (RawConfig, error) {
	var v any
	if err := goccyyaml.Unmarshal(data, &v); err != nil {
		return RawConfig{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return Plain(v), nil
}

func tomlSource(_ context.Context, path string, data []byte) (RawConfig, error) {
	var v map[string]any
	if err := toml.Unmarshal(data, &v); err != nil {
		return RawConfig{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return Plain(v), nil
}
