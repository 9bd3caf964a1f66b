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

package options

import (
	"fmt"
	"maps"
	"slices"

	"github.com/packcfg/packcfg/pkg/defaults"
)

// EntryPoint is one or more module requests bundled together.
type EntryPoint []string

// Value renders a single request as a string and anything else as a list.
func (e EntryPoint) Value() any {
	return e.render(false)
}

func (e EntryPoint) render(list bool) any {
	if len(e) == 1 && !list {
		return e[0]
	}
	return []string(slices.Clone(e))
}

// Entry is either an unnamed entry point (a string or list in config) or a
// set of named entry points. At most one of the two forms is in use.
type Entry struct {
	Unnamed EntryPoint
	Named   map[string]EntryPoint

	// Entry points written as lists in config stay lists when rendered,
	// even with a single request.
	unnamedList bool
	namedLists  map[string]bool
}

// IsEmpty reports whether no request is configured.
func (e *Entry) IsEmpty() bool {
	if e == nil {
		return true
	}
	if len(e.Unnamed) > 0 {
		return false
	}
	for _, ep := range e.Named {
		if len(ep) > 0 {
			return false
		}
	}
	return true
}

// Names returns the named entry points, sorted.
func (e *Entry) Names() []string {
	return slices.Sorted(maps.Keys(e.Named))
}

// Get returns the named entry point.
func (e *Entry) Get(name string) EntryPoint {
	return e.Named[name]
}

// Add appends request to the named entry point, converting an unnamed
// entry to the implicit name first.
func (e *Entry) Add(name, request string) {
	e.toNamed()
	e.Named[name] = append(e.Named[name], request)
}

func (e *Entry) toNamed() {
	if e.Named == nil {
		e.Named = make(map[string]EntryPoint)
	}
	if e.Unnamed != nil {
		e.Named[defaults.EntryName] = slices.Concat(e.Unnamed, e.Named[defaults.EntryName])
		if e.unnamedList {
			e.markList(defaults.EntryName)
		}
		e.Unnamed = nil
		e.unnamedList = false
	}
}

func (e *Entry) markList(name string) {
	if e.namedLists == nil {
		e.namedLists = make(map[string]bool)
	}
	e.namedLists[name] = true
}

// Value renders the entry as plain data.
func (e *Entry) Value() any {
	if e.Named == nil && e.Unnamed != nil {
		return e.Unnamed.render(e.unnamedList)
	}
	m := make(map[string]any, len(e.Named))
	for k, v := range e.Named {
		m[k] = v.render(e.namedLists[k])
	}
	return m
}

// ParseEntry converts a config value (string, list or map of either) to an Entry.
func ParseEntry(v any) (Entry, error) {
	switch t := v.(type) {
	case string:
		return Entry{Unnamed: EntryPoint{t}}, nil
	case []string:
		return Entry{Unnamed: slices.Clone(t), unnamedList: true}, nil
	case []any:
		ep, err := parseEntryPoint(t)
		if err != nil {
			return Entry{}, err
		}
		return Entry{Unnamed: ep, unnamedList: true}, nil
	case map[string]any:
		e := Entry{Named: make(map[string]EntryPoint, len(t))}
		for k, raw := range t {
			ep, err := parseEntryPoint(raw)
			if err != nil {
				return Entry{}, fmt.Errorf("entry %q: %w", k, err)
			}
			e.Named[k] = ep
			if _, isString := raw.(string); !isString {
				e.markList(k)
			}
		}
		return e, nil
	default:
		return Entry{}, fmt.Errorf("entry must be a string, a list or an object, got %T", v)
	}
}

func parseEntryPoint(v any) (EntryPoint, error) {
	switch t := v.(type) {
	case string:
		return EntryPoint{t}, nil
	case []string:
		return slices.Clone(t), nil
	case []any:
		ep := make(EntryPoint, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("entry request must be a string, got %T", item)
			}
			ep = append(ep, s)
		}
		return ep, nil
	default:
		return nil, fmt.Errorf("entry point must be a string or a list, got %T", v)
	}
}
