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

package plugin

import (
	"fmt"
	"net/url"
	"strings"

	"gopkg.in/yaml.v3"
)

var specialQueryValues = map[string]any{
	"null":  nil,
	"true":  true,
	"false": false,
}

// SplitRequest separates "name?query" into its name and query. The query
// keeps its leading "?"; it is empty when there is none.
func SplitRequest(request string) (name, query string) {
	if i := strings.Index(request, "?"); i > -1 {
		return request[:i], request[i:]
	}
	return request, ""
}

// ParseQuery parses a loader-style query string into an options object.
//
// "?{...}" is parsed as a flow mapping. Otherwise the query is split on "&"
// and ",": "name=value" sets a URL-decoded value (null, true and false are
// converted), "name[]=value" appends to a list, "-name" sets false, and
// "+name" or a bare "name" sets true.
func ParseQuery(query string) (map[string]any, error) {
	if query == "" {
		return map[string]any{}, nil
	}
	if !strings.HasPrefix(query, "?") {
		return nil, fmt.Errorf("a valid query string should begin with '?'")
	}
	query = query[1:]

	if strings.HasPrefix(query, "{") && strings.HasSuffix(query, "}") {
		result := map[string]any{}
		if err := yaml.Unmarshal([]byte(query), &result); err != nil {
			return nil, fmt.Errorf("invalid query object: %w", err)
		}
		return result, nil
	}

	result := map[string]any{}
	for _, arg := range strings.FieldsFunc(query, func(r rune) bool { return r == '&' || r == ',' }) {
		name, raw, found := strings.Cut(arg, "=")
		if !found {
			switch {
			case strings.HasPrefix(arg, "-"):
				key, err := url.PathUnescape(arg[1:])
				if err != nil {
					return nil, fmt.Errorf("invalid query name %q: %w", arg, err)
				}
				result[key] = false
			case strings.HasPrefix(arg, "+"):
				key, err := url.PathUnescape(arg[1:])
				if err != nil {
					return nil, fmt.Errorf("invalid query name %q: %w", arg, err)
				}
				result[key] = true
			default:
				key, err := url.PathUnescape(arg)
				if err != nil {
					return nil, fmt.Errorf("invalid query name %q: %w", arg, err)
				}
				result[key] = true
			}
			continue
		}

		decoded, err := url.PathUnescape(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid query value %q: %w", raw, err)
		}
		var value any = decoded
		if special, ok := specialQueryValues[decoded]; ok {
			value = special
		}

		isList := strings.HasSuffix(name, "[]")
		name = strings.TrimSuffix(name, "[]")
		key, err := url.PathUnescape(name)
		if err != nil {
			return nil, fmt.Errorf("invalid query name %q: %w", name, err)
		}
		if isList {
			list, _ := result[key].([]any)
			result[key] = append(list, value)
			continue
		}
		result[key] = value
	}
	return result, nil
}
