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

package cli

import (
	"strconv"
	"strings"

	"github.com/packcfg/packcfg/pkg/merger"
)

const envFlagPrefix = "--" + merger.FlagEnv + "."

// normalizeArgs rewrites the argument forms the flag parser cannot take
// directly: a bare --watch-poll becomes --watch-poll=true, and
// --env.key=value becomes --env=key=value. args[0] and everything after
// "--" are left alone.
func normalizeArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}
	out := make([]string, 0, len(args))
	out = append(out, args[0])

	watchPoll := "--" + merger.FlagWatchPoll
	for i := 1; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return append(out, args[i:]...)
		case arg == watchPoll:
			if i+1 < len(args) && isNumber(args[i+1]) {
				out = append(out, arg)
				continue
			}
			out = append(out, watchPoll+"=true")
		case strings.HasPrefix(arg, envFlagPrefix):
			out = append(out, "--"+merger.FlagEnv+"="+strings.TrimPrefix(arg, envFlagPrefix))
		default:
			out = append(out, arg)
		}
	}
	return out
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
