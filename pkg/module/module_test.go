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
	"errors"
	"path/filepath"
	"testing"

	"github.com/packcfg/packcfg/pkg/plugin"
)

func TestRegistryResolve(t *testing.T) {
	dir := filepath.FromSlash("/work/app")
	reg := NewRegistry()
	reg.Add("bare-plugin", 1)
	reg.Add(filepath.Join(dir, "local.js"), 2)
	reg.Add(filepath.FromSlash("/abs/p.js"), 3)

	tests := []struct {
		name    string
		request string
		want    string
		wantErr bool
	}{
		{name: "bare", request: "bare-plugin", want: "bare-plugin"},
		{name: "relative", request: "./local.js", want: filepath.Join(dir, "local.js")},
		{name: "parent", request: "../app/local.js", want: filepath.Join(dir, "local.js")},
		{name: "absolute", request: filepath.FromSlash("/abs/p.js"), want: filepath.FromSlash("/abs/p.js")},
		{name: "missing", request: "nope", wantErr: true},
		{name: "empty", request: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reg.Resolve(dir, tt.request)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Resolve() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrNotFound) {
					t.Errorf("expected ErrNotFound, got %v", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Resolve() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRegistryLoad(t *testing.T) {
	reg := NewRegistry()
	reg.Add("x", "value")

	v, err := reg.Load("x")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if v != "value" {
		t.Errorf("Load() = %v", v)
	}
	if _, err := reg.Load("y"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBuiltinRegistry(t *testing.T) {
	reg := NewBuiltinRegistry()

	for _, req := range []string{plugin.DefinePluginName, BuiltinPrefix + plugin.DefinePluginName} {
		path, err := reg.Resolve("/", req)
		if err != nil {
			t.Fatalf("Resolve(%s) error = %v", req, err)
		}
		v, err := reg.Load(path)
		if err != nil {
			t.Fatalf("Load(%s) error = %v", path, err)
		}
		f, ok := v.(plugin.Factory)
		if !ok {
			t.Fatalf("Load(%s) returned %T, want plugin.Factory", path, v)
		}
		p, err := f(map[string]any{"A": "1"})
		if err != nil {
			t.Fatalf("factory error = %v", err)
		}
		if p.Name() != plugin.DefinePluginName {
			t.Errorf("Name() = %s", p.Name())
		}
	}

	if got, want := len(reg.Paths()), 2*len(plugin.Names()); got != want {
		t.Errorf("Paths() has %d entries, want %d", got, want)
	}
}
