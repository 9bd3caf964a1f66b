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

// Package cli implements the packcfg command-line interface.
//
// # Commands
//
// build - Merge flags into the bundler configuration:
//
//	packcfg build [flags] [entry...] [output] [--output FILE|cm://ns/name] [--format yaml|json|table]
//
// Locates and loads the config file, applies every bundler flag on top of it
// and writes the resulting build options. Output defaults to stdout in YAML.
//
// add - Edit the configuration file interactively:
//
//	packcfg add [--config FILE]
//
// # Argument Forms
//
// Before parsing, a bare --watch-poll becomes --watch-poll=true and
// --env.key=value becomes --env=key=value. Repeatable flags are never split
// on commas.
//
// # Environment Variables
//
//	LOG_LEVEL            Set logging verbosity (debug, info, warn, error)
//	KUBECONFIG           Kubeconfig for cm:// sources and output
//	NPM_CONFIG_REGISTRY  Registry used by add to check plugin packages
//
// # Exit Codes
//
//	0    Success, including add when a plugin package does not exist
//	1    General error
//	255  Invalid arguments, config or plugin
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/packcfg/packcfg/pkg/cli.version=1.0.0'"
package cli
