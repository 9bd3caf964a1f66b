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

// Package defaults provides centralized configuration constants for packcfg.
//
// This package defines timeout values, conventional config file names, and
// the values injected by the -d and -p shortcuts. Centralizing these values
// ensures consistency and makes tuning easier.
//
// # Timeout Categories
//
// Timeouts are organized by component:
//
//   - Config timeouts: For the locate/load/normalize stage
//   - HTTP client timeouts: For remote configs and the npm registry check
//   - ConfigMap timeouts: For cm:// config sources and output sinks
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/packcfg/packcfg/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.ConfigLoadTimeout)
//	defer cancel()
package defaults
