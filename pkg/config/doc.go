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

// Package config locates and loads build config files.
//
// # Locating
//
// Explicit config paths are resolved against the working directory and
// tagged with a recognized extension. Compound extensions such as
// ".tmpl.yaml" are matched before their suffixes. Without explicit paths,
// every combination of the base names "webpack.config" and "webpackfile"
// with each recognized extension is tried, and the first existing file wins.
//
// Recognized extensions, in search order:
//
//	.json        native, no registration
//	.hcl         {module: "hcl", register: ...}
//	.yml         first of "yaml.v3", "goccy-yaml"
//	.toml        "go-toml"
//	.yaml        first of "yaml.v3", "goccy-yaml"
//	.tmpl.json   "template"
//	.tmpl.yaml   "template"
//
// Remote sources (http://, https:// and cm://namespace/name) are never
// resolved against the working directory.
//
// # Loading
//
// Before a file is read, the compiler registered for its extension is
// loaded. Compiler modules install source loaders into Hooks; the loader
// for the file's extension then turns its bytes into a RawConfig.
//
// RawConfig is one of four variants:
//   - Plain: a decoded object or list
//   - Factory: a function of env and argv (HCL and template configs)
//   - Deferred: a value that must be awaited (remote configs)
//   - DefaultWrapped: a module whose primary export is its default
//
// Normalize reduces any variant to a list of plain objects:
//
//	configs, isArray, err := config.Normalize(ctx, raw, args.Env, args.Map())
//
// A config that is neither an object nor a list of objects fails with an
// INVALID_CONFIG error.
//
// # Usage
//
//	locator := config.NewLocator(cwd)
//	loader := config.NewLoader(config.WithFetcher(config.NewRemoteFetcher(kubeconfig)))
//	res, err := loader.Load(ctx, locator.Locate(args.Strings("config")), args)
package config
