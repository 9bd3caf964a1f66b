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

package merger

import (
	"github.com/packcfg/packcfg/pkg/errors"
	"github.com/packcfg/packcfg/pkg/options"
)

// finalize sets the context and the watch options once every handler ran.
func finalize(s *State) error {
	o := s.Builder.Options()
	args := s.Args

	if v, ok := args.Last(FlagContext); ok && v.Truthy() {
		o.Context = s.Resolve(v.String())
	}
	if o.Context == "" {
		o.Context = s.Dir
	}

	if args.Bool(FlagWatch) {
		o.Watch = options.BoolPtr(true)
	}

	if v, ok := args.Last(FlagWatchAggregateTimeout); ok && v.Truthy() {
		n, ok := v.Number()
		if !ok {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest, "--"+FlagWatchAggregateTimeout+" <number>",
				map[string]any{"value": v.String()})
		}
		s.Builder.EnsureWatchOptions().AggregateTimeout = &n
	}

	if v, ok := args.Last(FlagWatchPoll); ok && v.Truthy() {
		w := s.Builder.EnsureWatchOptions()
		if v.IsBool() || v.String() == "true" {
			w.Poll = true
		} else {
			n, ok := v.Number()
			if !ok {
				return errors.NewWithContext(errors.ErrCodeInvalidRequest, "--"+FlagWatchPoll+" [<number>]",
					map[string]any{"value": v.String()})
			}
			w.Poll = n
		}
	}

	if args.Bool(FlagWatchStdin) {
		s.Builder.EnsureWatchOptions().Stdin = options.BoolPtr(true)
		o.Watch = options.BoolPtr(true)
	}
	return nil
}
