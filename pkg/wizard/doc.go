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

// Package wizard implements the interactive "add" flow that edits a config
// file one property at a time.
//
// A Generator asks which top-level property to add to, then offers the
// sub-keys or values the embedded options schema lists for it (or free text
// when it lists none). Plugins are matched against the builtin plugin names
// first and otherwise looked up in the npm registry.
//
// Apply writes the answer back into a JSON or YAML config file as a merge
// patch and reports schema violations as warnings:
//
//	g, err := wizard.NewGenerator(prompter)
//	res, err := g.Run(ctx)
//	applied, err := wizard.Apply("webpack.config.yaml", res.Configuration, schema)
package wizard
