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
	"cmp"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/packcfg/packcfg/pkg/defaults"
)

// Names of the compiler modules known to DefaultModules.
const (
	YAMLModule      = "yaml.v3"
	GoccyYAMLModule = "goccy-yaml"
	TOMLModule      = "go-toml"
	HCLModule       = "hcl"
	TemplateModule  = "template"
)

// RegisterFunc installs the source loaders a compiler module provides,
// given the value the module exported.
type RegisterFunc func(export any, hooks *Hooks) error

// Compiler describes what has to be registered before a file with a given
// extension can be loaded. The zero value is the native format, which needs
// nothing. A Compiler is one of:
//   - a single module name, loaded for its side effect
//   - a module name with a Register function receiving the module's export
//   - an ordered fallback list, where the first entry that registers wins
type Compiler struct {
	Module   string
	Register RegisterFunc
	FirstOf  []Compiler
}

// Module returns a Compiler that only needs the named module loaded.
func Module(name string) Compiler {
	return Compiler{Module: name}
}

// ModuleWithRegister returns a Compiler that hands the named module's export
// to register.
func ModuleWithRegister(name string, register RegisterFunc) Compiler {
	return Compiler{Module: name, Register: register}
}

// FirstOf returns a Compiler trying each alternative in order.
func FirstOf(alternatives ...Compiler) Compiler {
	return Compiler{FirstOf: alternatives}
}

// IsNative reports whether the compiler needs no registration.
func (c Compiler) IsNative() bool {
	return c.Module == "" && len(c.FirstOf) == 0
}

// Extensions maps a recognized extension to its Compiler.
type Extensions map[string]Compiler

// DefaultExtensions returns the recognized extension table.
func DefaultExtensions() Extensions {
	yamlCompiler := FirstOf(Module(YAMLModule), Module(GoccyYAMLModule))
	return Extensions{
		defaults.NativeExtension: {},
		".yml":                   yamlCompiler,
		".yaml":                  yamlCompiler,
		".toml":                  Module(TOMLModule),
		".hcl":                   ModuleWithRegister(HCLModule, registerHCL),
		".tmpl.json":             Module(TemplateModule),
		".tmpl.yaml":             Module(TemplateModule),
	}
}

// Sorted returns the extensions with the native one first and the rest by
// increasing length. Equal lengths are ordered lexically so the candidate
// list is stable.
func (e Extensions) Sorted() []string {
	exts := slices.Collect(maps.Keys(e))
	slices.SortFunc(exts, func(a, b string) int {
		an, bn := a == defaults.NativeExtension, b == defaults.NativeExtension
		switch {
		case an && !bn:
			return -1
		case bn && !an:
			return 1
		}
		if c := cmp.Compare(len(a), len(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return exts
}

// extensionOf matches path against sorted from the longest extension down,
// so compound extensions such as ".tmpl.yaml" win over ".yaml". Paths
// matching nothing get their filesystem extension.
func extensionOf(sorted []string, path string) string {
	for i := len(sorted) - 1; i >= 0; i-- {
		if strings.HasSuffix(path, sorted[i]) {
			return sorted[i]
		}
	}
	return filepath.Ext(path)
}
