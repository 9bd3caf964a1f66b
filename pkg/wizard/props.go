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

package wizard

import "slices"

// properties is the ordered catalogue of top-level options the wizard can add.
var properties = []string{
	"context",
	"devServer",
	"devtool",
	"entry",
	"externals",
	"module",
	"node",
	"output",
	"performance",
	"plugins",
	"resolve",
	"resolveLoader",
	"stats",
	"target",
	"watch",
	"watchOptions",
	"amd",
	"bail",
	"cache",
	"dependencies",
	"loader",
	"parallelism",
	"profile",
	"recordsInputPath",
	"recordsOutputPath",
	"recordsPath",
	"name",
}

// Properties returns the options the wizard offers, in prompt order.
func Properties() []string {
	return slices.Clone(properties)
}

// IsProperty reports whether name is in the catalogue.
func IsProperty(name string) bool {
	return slices.Contains(properties, name)
}
