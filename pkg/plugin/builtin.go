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

	"github.com/go-viper/mapstructure/v2"
)

// Builtin bundler plugin constructor names.
const (
	DefinePluginName               = "DefinePlugin"
	HotModuleReplacementPluginName = "HotModuleReplacementPlugin"
	LoaderOptionsPluginName        = "LoaderOptionsPlugin"
	LimitChunkCountPluginName      = "LimitChunkCountPlugin"
	MinChunkSizePluginName         = "MinChunkSizePlugin"
	UglifyJsPluginName             = "UglifyJsPlugin"
	PrefetchPluginName             = "PrefetchPlugin"
	ProvidePluginName              = "ProvidePlugin"
	LabeledModulesPluginName       = "LabeledModulesPlugin"
)

func init() {
	MustRegister(DefinePluginName, func(args any) (Plugin, error) {
		defs := map[string]any{}
		if err := decodeArgs(args, &defs); err != nil {
			return nil, err
		}
		return NewDefine(defs), nil
	})
	MustRegister(HotModuleReplacementPluginName, func(any) (Plugin, error) {
		return &HotModuleReplacement{}, nil
	})
	MustRegister(LoaderOptionsPluginName, func(args any) (Plugin, error) {
		p := &LoaderOptions{}
		return p, decodeArgs(args, p)
	})
	MustRegister(LimitChunkCountPluginName, func(args any) (Plugin, error) {
		p := &LimitChunkCount{}
		return p, decodeArgs(args, p)
	})
	MustRegister(MinChunkSizePluginName, func(args any) (Plugin, error) {
		p := &MinChunkSize{}
		return p, decodeArgs(args, p)
	})
	MustRegister(UglifyJsPluginName, func(args any) (Plugin, error) {
		p := &UglifyJs{}
		return p, decodeArgs(args, p)
	})
	MustRegister(PrefetchPluginName, func(args any) (Plugin, error) {
		if s, ok := args.(string); ok {
			return NewPrefetch(s), nil
		}
		p := &Prefetch{}
		return p, decodeArgs(args, p)
	})
	MustRegister(ProvidePluginName, func(args any) (Plugin, error) {
		defs := map[string]string{}
		if err := decodeArgs(args, &defs); err != nil {
			return nil, err
		}
		return &Provide{Definitions: defs}, nil
	})
	MustRegister(LabeledModulesPluginName, func(any) (Plugin, error) {
		return &LabeledModules{}, nil
	})
}

// decodeArgs maps a constructor argument onto out. Query strings carry
// every value as a string, so weak typing is enabled.
func decodeArgs(args any, out any) error {
	if args == nil {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(args); err != nil {
		return fmt.Errorf("invalid plugin arguments: %w", err)
	}
	return nil
}

// Define replaces free identifiers with compile-time values.
type Define struct {
	Definitions map[string]any
}

// NewDefine returns a Define plugin.
func NewDefine(defs map[string]any) *Define {
	return &Define{Definitions: defs}
}

func (p *Define) Name() string { return DefinePluginName }
func (p *Define) Options() any { return p.Definitions }

// HotModuleReplacement enables hot module replacement.
type HotModuleReplacement struct{}

func (p *HotModuleReplacement) Name() string { return HotModuleReplacementPluginName }
func (p *HotModuleReplacement) Options() any { return nil }

// LoaderOptions passes global options to loaders.
type LoaderOptions struct {
	Debug    bool `mapstructure:"debug" json:"debug,omitempty" yaml:"debug,omitempty"`
	Minimize bool `mapstructure:"minimize" json:"minimize,omitempty" yaml:"minimize,omitempty"`
}

func (p *LoaderOptions) Name() string { return LoaderOptionsPluginName }
func (p *LoaderOptions) Options() any { return p }

// LimitChunkCount caps the number of emitted chunks.
type LimitChunkCount struct {
	MaxChunks int `mapstructure:"maxChunks" json:"maxChunks" yaml:"maxChunks"`
}

func (p *LimitChunkCount) Name() string { return LimitChunkCountPluginName }
func (p *LimitChunkCount) Options() any { return p }

// MinChunkSize merges chunks below a size.
type MinChunkSize struct {
	MinChunkSize int `mapstructure:"minChunkSize" json:"minChunkSize" yaml:"minChunkSize"`
}

func (p *MinChunkSize) Name() string { return MinChunkSizePluginName }
func (p *MinChunkSize) Options() any { return p }

// UglifyJs minimizes the output.
type UglifyJs struct {
	SourceMap bool `mapstructure:"sourceMap" json:"sourceMap" yaml:"sourceMap"`
}

func (p *UglifyJs) Name() string { return UglifyJsPluginName }
func (p *UglifyJs) Options() any { return p }

// Prefetch prefetches a module request.
type Prefetch struct {
	Request string `mapstructure:"request" json:"request" yaml:"request"`
}

// NewPrefetch returns a Prefetch plugin.
func NewPrefetch(request string) *Prefetch {
	return &Prefetch{Request: request}
}

func (p *Prefetch) Name() string { return PrefetchPluginName }
func (p *Prefetch) Options() any { return p }

// Provide makes a module available as a free variable.
type Provide struct {
	Definitions map[string]string
}

// NewProvide returns a Provide plugin binding name to request.
func NewProvide(name, request string) *Provide {
	return &Provide{Definitions: map[string]string{name: request}}
}

func (p *Provide) Name() string { return ProvidePluginName }
func (p *Provide) Options() any { return p.Definitions }

// LabeledModules enables labeled module syntax.
type LabeledModules struct{}

func (p *LabeledModules) Name() string { return LabeledModulesPluginName }
func (p *LabeledModules) Options() any { return nil }
