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

// Package options defines BuildOptions, the configuration object produced
// by the merger, and the Builder used to mutate it.
//
// Config files are decoded into BuildOptions with Decode. Sections the
// merger knows about are typed; everything else is carried in Extra maps
// so that a config round-trips without loss. ToMap and the JSON/YAML
// marshalers render the options back to plain data.
package options
