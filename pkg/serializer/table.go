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

package serializer

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"
)

type row struct {
	key   string
	value string
}

// renderTable lays build options out as KEY/VALUE rows. Nested sections
// use dotted keys, lists of plain values are joined, plugins render as
// their name and options, and loader rules as "test -> loader". A list of
// configs prefixes each config's rows with its index.
func renderTable(data any) ([]byte, error) {
	var rows []row
	addRows(&rows, "", data)
	if len(rows) == 0 {
		return []byte("<empty>\n"), nil
	}

	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tVALUE")
	fmt.Fprintln(tw, "---\t-----")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", r.key, r.value)
	}
	if err := tw.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush table: %w", err)
	}
	return []byte(b.String()), nil
}

func addRows(rows *[]row, key string, v any) {
	switch t := v.(type) {
	case map[string]any:
		if len(t) == 0 {
			if key != "" {
				*rows = append(*rows, row{key, "{}"})
			}
			return
		}
		for _, k := range slices.Sorted(maps.Keys(t)) {
			addRows(rows, joinKey(key, k), t[k])
		}
	case map[string]string:
		m := make(map[string]any, len(t))
		for k, s := range t {
			m[k] = s
		}
		addRows(rows, key, m)
	case []string:
		*rows = append(*rows, row{key, "[" + strings.Join(t, ", ") + "]"})
	case []any:
		addList(rows, key, t)
	default:
		*rows = append(*rows, row{key, scalar(v)})
	}
}

func addList(rows *[]row, key string, items []any) {
	if len(items) == 0 || allScalars(items) {
		parts := make([]string, 0, len(items))
		for _, item := range items {
			parts = append(parts, scalar(item))
		}
		*rows = append(*rows, row{key, "[" + strings.Join(parts, ", ") + "]"})
		return
	}
	plugins := key == "plugins" || strings.HasSuffix(key, ".plugins")
	for i, item := range items {
		itemKey := fmt.Sprintf("%s[%d]", key, i)
		if plugins {
			if s, ok := describePlugin(item); ok {
				*rows = append(*rows, row{itemKey, s})
				continue
			}
		}
		if s, ok := describeLoaderRule(item); ok {
			*rows = append(*rows, row{itemKey, s})
			continue
		}
		addRows(rows, itemKey, item)
	}
}

// describePlugin renders {name, options, package} plugin descriptors.
func describePlugin(v any) (string, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return "", false
	}
	name, ok := m["name"].(string)
	if !ok {
		return "", false
	}
	s := name
	if pkg, ok := m["package"].(string); ok {
		s += " (" + pkg + ")"
	}
	if opts, ok := m["options"]; ok && opts != nil {
		s += " " + compact(opts)
	}
	return s, true
}

func describeLoaderRule(v any) (string, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return "", false
	}
	test, hasTest := m["test"].(string)
	loader, hasLoader := m["loader"].(string)
	if !hasTest || !hasLoader || len(m) != 2 {
		return "", false
	}
	return test + " -> " + loader, true
}

func allScalars(items []any) bool {
	for _, item := range items {
		switch item.(type) {
		case map[string]any, map[string]string, []any, []string:
			return false
		}
	}
	return true
}

func scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func compact(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

func joinKey(prefix, suffix string) string {
	if prefix == "" {
		return suffix
	}
	return prefix + "." + suffix
}
