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

// Package merger folds command-line arguments into loaded build configs.
//
// Every flag the merger understands is described by a Handler in a fixed
// table. For each loaded config the handlers run in table order, each one
// seeing every occurrence of its flag, and write into the config through an
// options.Builder so that sections referenced by a flag are created on
// demand. Plugins are appended in the order their flags appear in the table
// and, within one flag, in command-line order.
//
// After the handlers run, the output filename falls back to the last
// positional argument, remaining positionals become entry points, and the
// context and watch options are set.
//
// Usage:
//
//	res, err := merger.Convert(ctx, args, merger.Options{})
//	if err != nil {
//	    return err
//	}
//	out := res.Value()
//
// Errors carry codes from pkg/errors: INVALID_REQUEST for missing or
// malformed arguments, INVALID_CONFIG for unusable config files, NOT_FOUND
// and PLUGIN_LOAD for plugins that cannot be resolved or constructed.
package merger
