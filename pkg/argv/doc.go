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

// Package argv holds the parsed command line handed to the option merger.
//
// Arguments maps a flag name to its ordered occurrences. Each occurrence is a
// Value holding a string, a boolean or a number. Positional arguments are kept
// separately, and the folded --env value is passed to config factories.
//
// The -d and -p shortcuts are expanded by ApplyShortcuts before any
// config file is loaded, so config factories observe the expanded flags.
package argv
