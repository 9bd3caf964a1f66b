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

// Package module is the injected module capability: a Resolver that maps a
// request to a path and a Loader that returns the value exported there.
//
// The option merger uses it to load --plugin constructors. Registry is an
// in-memory implementation; NewBuiltinRegistry pre-populates it with the
// registered plugin factories so that requests like "DefinePlugin" or
// "webpack/lib/DefinePlugin" resolve.
package module
