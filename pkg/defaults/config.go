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

package defaults

// Config file discovery.
var (
	// ConfigBaseNames are the conventional config file names, in search order.
	ConfigBaseNames = []string{"webpack.config", "webpackfile"}
)

const (
	// NativeExtension is loaded without a compiler and is always searched first.
	NativeExtension = ".json"

	// NewConfigFile is created by the add wizard when no config exists.
	NewConfigFile = "webpack.config.yaml"
)

// Merge defaults.
const (
	// EntryName is the implicit entry name for unnamed entries.
	EntryName = "main"

	// DebugDevtool is the devtool applied by -d when none is given.
	DebugDevtool = "eval-cheap-module-source-map"

	// ProductionDefine is appended to --define by -p.
	ProductionDefine = "process.env.NODE_ENV='production'"
)

// NpmRegistryURL is the registry queried by the add wizard.
const NpmRegistryURL = "https://registry.npmjs.org"
