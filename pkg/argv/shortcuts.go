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

package argv

import "github.com/packcfg/packcfg/pkg/defaults"

// Shortcut flag names.
const (
	FlagDebugShortcut      = "d"
	FlagProductionShortcut = "p"
)

// ApplyShortcuts expands -d and -p in place.
//
// -d sets --debug and --output-pathinfo, and --devtool when none was given.
// -p sets --optimize-minimize and appends the production define to --define.
func ApplyShortcuts(a *Arguments) {
	if a.Bool(FlagDebugShortcut) {
		a.Set("debug", Bool(true))
		a.Set("output-pathinfo", Bool(true))
		if v, ok := a.Last("devtool"); !ok || !v.Truthy() {
			a.Set("devtool", String(defaults.DebugDevtool))
		}
	}
	if a.Bool(FlagProductionShortcut) {
		a.Set("optimize-minimize", Bool(true))
		a.Append("define", String(defaults.ProductionDefine))
	}
}
