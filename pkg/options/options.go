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
	"encoding/json"
	"maps"

	"github.com/packcfg/packcfg/pkg/plugin"
)

// BuildOptions is the merged configuration handed to the bundler.
// Nil pointers and nil slices mean the section was never referenced.
type BuildOptions struct {
	Context           string          `mapstructure:"context"`
	Entry             *Entry          `mapstructure:"entry"`
	Output            *Output         `mapstructure:"output"`
	Module            *Module         `mapstructure:"module"`
	Resolve           *Resolve        `mapstructure:"resolve"`
	ResolveLoader     *Resolve        `mapstructure:"resolveLoader"`
	Plugins           []plugin.Plugin `mapstructure:"plugins"`
	Target            string          `mapstructure:"target"`
	Cache             *bool           `mapstructure:"cache"`
	Bail              *bool           `mapstructure:"bail"`
	Profile           *bool           `mapstructure:"profile"`
	Watch             *bool           `mapstructure:"watch"`
	WatchOptions      *WatchOptions   `mapstructure:"watchOptions"`
	Devtool           string          `mapstructure:"devtool"`
	RecordsInputPath  string          `mapstructure:"recordsInputPath"`
	RecordsOutputPath string          `mapstructure:"recordsOutputPath"`
	RecordsPath       string          `mapstructure:"recordsPath"`

	// Extra holds keys this package does not model; they pass through.
	Extra map[string]any `mapstructure:",remain"`
}

// Output configures emitted files.
type Output struct {
	Path              string `mapstructure:"path"`
	Filename          string `mapstructure:"filename"`
	ChunkFilename     string `mapstructure:"chunkFilename"`
	SourceMapFilename string `mapstructure:"sourceMapFilename"`
	PublicPath        string `mapstructure:"publicPath"`
	JsonpFunction     string `mapstructure:"jsonpFunction"`
	Library           string `mapstructure:"library"`
	LibraryTarget     string `mapstructure:"libraryTarget"`
	Pathinfo          *bool  `mapstructure:"pathinfo"`

	Extra map[string]any `mapstructure:",remain"`

	// empty holds the string keys a config set to "". They render as-is.
	empty map[string]bool
}

// keepEmpty records which string keys of raw are explicitly empty.
func (o *Output) keepEmpty(raw map[string]any) {
	for k, v := range raw {
		if s, ok := v.(string); ok && s == "" {
			if o.empty == nil {
				o.empty = make(map[string]bool)
			}
			o.empty[k] = true
		}
	}
}

func (o *Output) putString(m map[string]any, key, v string) {
	if v != "" || o.empty[key] {
		m[key] = v
	}
}

// Module holds the loader rule lists.
type Module struct {
	Loaders     []LoaderRule `mapstructure:"loaders"`
	PreLoaders  []LoaderRule `mapstructure:"preLoaders"`
	PostLoaders []LoaderRule `mapstructure:"postLoaders"`

	Extra map[string]any `mapstructure:",remain"`
}

// LoaderRule applies Loader to module paths matching Test.
type LoaderRule struct {
	Test   *Pattern `mapstructure:"test"`
	Loader string   `mapstructure:"loader"`

	Extra map[string]any `mapstructure:",remain"`
}

// Resolve configures module or loader resolution.
type Resolve struct {
	Alias      map[string]string `mapstructure:"alias"`
	Extensions []string          `mapstructure:"extensions"`

	Extra map[string]any `mapstructure:",remain"`
}

// WatchOptions configures watch mode. Poll is true or a number of
// milliseconds.
type WatchOptions struct {
	AggregateTimeout *float64 `mapstructure:"aggregateTimeout"`
	Poll             any      `mapstructure:"poll"`
	Stdin            *bool    `mapstructure:"stdin"`

	Extra map[string]any `mapstructure:",remain"`
}

func newMap(extra map[string]any) map[string]any {
	if extra == nil {
		return map[string]any{}
	}
	return maps.Clone(extra)
}

func putString(m map[string]any, key, v string) {
	if v != "" {
		m[key] = v
	}
}

func putBool(m map[string]any, key string, v *bool) {
	if v != nil {
		m[key] = *v
	}
}

// ToMap renders the options as plain data.
func (o *BuildOptions) ToMap() map[string]any {
	m := newMap(o.Extra)
	putString(m, "context", o.Context)
	if o.Entry != nil {
		m["entry"] = o.Entry.Value()
	}
	if o.Output != nil {
		m["output"] = o.Output.ToMap()
	}
	if o.Module != nil {
		m["module"] = o.Module.ToMap()
	}
	if o.Resolve != nil {
		m["resolve"] = o.Resolve.ToMap()
	}
	if o.ResolveLoader != nil {
		m["resolveLoader"] = o.ResolveLoader.ToMap()
	}
	if o.Plugins != nil {
		m["plugins"] = plugin.DescribeAll(o.Plugins)
	}
	putString(m, "target", o.Target)
	putBool(m, "cache", o.Cache)
	putBool(m, "bail", o.Bail)
	putBool(m, "profile", o.Profile)
	putBool(m, "watch", o.Watch)
	if o.WatchOptions != nil {
		m["watchOptions"] = o.WatchOptions.ToMap()
	}
	putString(m, "devtool", o.Devtool)
	putString(m, "recordsInputPath", o.RecordsInputPath)
	putString(m, "recordsOutputPath", o.RecordsOutputPath)
	putString(m, "recordsPath", o.RecordsPath)
	return m
}

// MarshalJSON implements json.Marshaler.
func (o *BuildOptions) MarshalJSON() ([]byte, error) { return json.Marshal(o.ToMap()) }

// MarshalYAML implements yaml.Marshaler.
func (o *BuildOptions) MarshalYAML() (any, error) { return o.ToMap(), nil }

// ToMap renders the output section.
func (o *Output) ToMap() map[string]any {
	m := newMap(o.Extra)
	o.putString(m, "path", o.Path)
	o.putString(m, "filename", o.Filename)
	o.putString(m, "chunkFilename", o.ChunkFilename)
	o.putString(m, "sourceMapFilename", o.SourceMapFilename)
	o.putString(m, "publicPath", o.PublicPath)
	o.putString(m, "jsonpFunction", o.JsonpFunction)
	o.putString(m, "library", o.Library)
	o.putString(m, "libraryTarget", o.LibraryTarget)
	putBool(m, "pathinfo", o.Pathinfo)
	return m
}

// ToMap renders the module section.
func (o *Module) ToMap() map[string]any {
	m := newMap(o.Extra)
	if o.Loaders != nil {
		m["loaders"] = rulesToList(o.Loaders)
	}
	if o.PreLoaders != nil {
		m["preLoaders"] = rulesToList(o.PreLoaders)
	}
	if o.PostLoaders != nil {
		m["postLoaders"] = rulesToList(o.PostLoaders)
	}
	return m
}

func rulesToList(rules []LoaderRule) []any {
	out := make([]any, 0, len(rules))
	for _, r := range rules {
		out = append(out, r.ToMap())
	}
	return out
}

// ToMap renders a loader rule; the test pattern becomes its source text.
func (r LoaderRule) ToMap() map[string]any {
	m := newMap(r.Extra)
	if r.Test != nil {
		m["test"] = r.Test.String()
	}
	putString(m, "loader", r.Loader)
	return m
}

// ToMap renders a resolve section.
func (o *Resolve) ToMap() map[string]any {
	m := newMap(o.Extra)
	if o.Alias != nil {
		m["alias"] = maps.Clone(o.Alias)
	}
	if o.Extensions != nil {
		m["extensions"] = append([]string{}, o.Extensions...)
	}
	return m
}

// ToMap renders the watch options.
func (o *WatchOptions) ToMap() map[string]any {
	m := newMap(o.Extra)
	if o.AggregateTimeout != nil {
		m["aggregateTimeout"] = *o.AggregateTimeout
	}
	if o.Poll != nil {
		m["poll"] = o.Poll
	}
	putBool(m, "stdin", o.Stdin)
	return m
}
