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

// Package plugin models bundler plugins as opaque values.
//
// The option merger constructs plugins (DefinePlugin, HotModuleReplacementPlugin,
// LoaderOptionsPlugin and friends) and appends them to the plugin list of the
// build options. It never invokes them. Builtin constructors register
// themselves in a global registry at init time, the same way external
// constructors can:
//
//	func init() {
//	    plugin.MustRegister("BannerPlugin", func(args any) (plugin.Plugin, error) {
//	        return plugin.New("BannerPlugin", args), nil
//	    })
//	}
//
// ParseQuery turns the "?query" suffix of a --plugin request into the
// constructor argument.
package plugin
