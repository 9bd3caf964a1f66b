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

import "strings"

// ParseEnv folds the occurrences of --env into the value passed to config
// factories. No occurrences yield nil and a single bare word yields that
// string. Anything else yields an object where "k=v" sets k to v and a bare
// "k" sets k to true; dotted keys nest.
func ParseEnv(values []string) any {
	if len(values) == 0 {
		return nil
	}
	if len(values) == 1 && !strings.Contains(values[0], "=") && !strings.Contains(values[0], ".") {
		return values[0]
	}

	env := make(map[string]any)
	for _, v := range values {
		key, val, found := strings.Cut(v, "=")
		if key == "" {
			continue
		}
		var leaf any = true
		if found {
			leaf = val
		}
		setPath(env, strings.Split(key, "."), leaf)
	}
	return env
}

func setPath(m map[string]any, path []string, val any) {
	for _, p := range path[:len(path)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[p] = next
		}
		m = next
	}
	m[path[len(path)-1]] = val
}
