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

// Plugin is an opaque bundler plugin instance. The merger only constructs
// plugins and appends them to the plugin list; it never calls into them.
type Plugin interface {
	// Name is the constructor name, e.g. "DefinePlugin".
	Name() string

	// Options is the constructor argument, or nil when there is none.
	Options() any
}

// Factory constructs a plugin from its constructor argument. args is nil
// when no argument was given.
type Factory func(args any) (Plugin, error)

// Instance is a plugin produced by a factory this package knows nothing
// about, such as one loaded through a module registry.
type Instance struct {
	PluginName string
	Args       any
}

// New returns an Instance.
func New(name string, args any) *Instance {
	return &Instance{PluginName: name, Args: args}
}

func (i *Instance) Name() string { return i.PluginName }
func (i *Instance) Options() any { return i.Args }

// Raw is a plugin entry read verbatim from a config file.
type Raw struct {
	Value any
}

// Name returns the "name" key of a map entry, or "" for anything else.
func (r Raw) Name() string {
	if m, ok := r.Value.(map[string]any); ok {
		if s, ok := m["name"].(string); ok {
			return s
		}
	}
	return ""
}

func (r Raw) Options() any {
	if m, ok := r.Value.(map[string]any); ok {
		return m["options"]
	}
	return nil
}

// Describe renders a plugin as serializable data. Raw plugins are returned
// unchanged; everything else becomes {name, options}.
func Describe(p Plugin) any {
	if r, ok := p.(Raw); ok {
		return r.Value
	}
	if r, ok := p.(*Raw); ok {
		return r.Value
	}
	out := map[string]any{"name": p.Name()}
	if opts := p.Options(); opts != nil {
		out["options"] = opts
	}
	return out
}

// DescribeAll renders a plugin list.
func DescribeAll(plugins []Plugin) []any {
	out := make([]any, 0, len(plugins))
	for _, p := range plugins {
		out = append(out, Describe(p))
	}
	return out
}
