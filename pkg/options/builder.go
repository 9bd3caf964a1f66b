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

package options

import (
	"github.com/packcfg/packcfg/pkg/plugin"
)

// LoaderCollection selects one of the module loader lists.
type LoaderCollection string

const (
	Loaders     LoaderCollection = "loaders"
	PreLoaders  LoaderCollection = "preLoaders"
	PostLoaders LoaderCollection = "postLoaders"
)

// ResolveTarget selects resolve or resolveLoader.
type ResolveTarget string

const (
	ResolveModules ResolveTarget = "resolve"
	ResolveLoaders ResolveTarget = "resolveLoader"
)

// Builder owns a BuildOptions value and exposes mutators that create the
// containers they write into. A container that already exists is never
// replaced.
type Builder struct {
	opts *BuildOptions
}

// NewBuilder wraps opts; a nil opts starts from an empty value.
func NewBuilder(opts *BuildOptions) *Builder {
	if opts == nil {
		opts = &BuildOptions{}
	}
	return &Builder{opts: opts}
}

// Options returns the options being built.
func (b *Builder) Options() *BuildOptions {
	return b.opts
}

// EnsureEntry returns the entry, creating an empty one.
func (b *Builder) EnsureEntry() *Entry {
	if b.opts.Entry == nil {
		b.opts.Entry = &Entry{}
	}
	return b.opts.Entry
}

// AddEntry appends request to the named entry point. A second request
// for the same name turns the entry point into a list.
func (b *Builder) AddEntry(name, request string) {
	b.EnsureEntry().Add(name, request)
}

// EnsureOutput returns the output section, creating it.
func (b *Builder) EnsureOutput() *Output {
	if b.opts.Output == nil {
		b.opts.Output = &Output{}
	}
	return b.opts.Output
}

// EnsureModule returns the module section, creating it.
func (b *Builder) EnsureModule() *Module {
	if b.opts.Module == nil {
		b.opts.Module = &Module{}
	}
	return b.opts.Module
}

// EnsureLoaders makes sure the selected loader list exists.
func (b *Builder) EnsureLoaders(c LoaderCollection) {
	list := b.loaderList(c)
	if *list == nil {
		*list = []LoaderRule{}
	}
}

// AddLoaderRule appends a rule to the selected loader list.
func (b *Builder) AddLoaderRule(c LoaderCollection, rule LoaderRule) {
	list := b.loaderList(c)
	*list = append(*list, rule)
}

func (b *Builder) loaderList(c LoaderCollection) *[]LoaderRule {
	m := b.EnsureModule()
	switch c {
	case PreLoaders:
		return &m.PreLoaders
	case PostLoaders:
		return &m.PostLoaders
	default:
		return &m.Loaders
	}
}

// EnsurePlugins makes sure the plugin list exists.
func (b *Builder) EnsurePlugins() {
	if b.opts.Plugins == nil {
		b.opts.Plugins = []plugin.Plugin{}
	}
}

// AddPlugin appends p to the plugin list.
func (b *Builder) AddPlugin(p plugin.Plugin) {
	b.EnsurePlugins()
	b.opts.Plugins = append(b.opts.Plugins, p)
}

// EnsureResolve returns the selected resolve section, creating it.
func (b *Builder) EnsureResolve(t ResolveTarget) *Resolve {
	field := &b.opts.Resolve
	if t == ResolveLoaders {
		field = &b.opts.ResolveLoader
	}
	if *field == nil {
		*field = &Resolve{}
	}
	return *field
}

// SetAlias maps name to value in the selected resolve section.
func (b *Builder) SetAlias(t ResolveTarget, name, value string) {
	r := b.EnsureResolve(t)
	if r.Alias == nil {
		r.Alias = make(map[string]string)
	}
	r.Alias[name] = value
}

// SetExtensions replaces the module resolve extensions.
func (b *Builder) SetExtensions(exts []string) {
	b.EnsureResolve(ResolveModules).Extensions = exts
}

// EnsureWatchOptions returns the watch options, creating them.
func (b *Builder) EnsureWatchOptions() *WatchOptions {
	if b.opts.WatchOptions == nil {
		b.opts.WatchOptions = &WatchOptions{}
	}
	return b.opts.WatchOptions
}

// BoolPtr returns a pointer to v.
func BoolPtr(v bool) *bool {
	return &v
}
