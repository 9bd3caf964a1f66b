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

import (
	"maps"
	"slices"
	"strconv"
)

// Value is a single flag occurrence: a string, a boolean or a number.
type Value struct {
	raw any
}

// String returns a string value.
func String(s string) Value { return Value{raw: s} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{raw: b} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{raw: f} }

// Raw returns the underlying string, bool or float64.
func (v Value) Raw() any { return v.raw }

// IsBool reports whether the value is a boolean.
func (v Value) IsBool() bool {
	_, ok := v.raw.(bool)
	return ok
}

// Truthy mirrors the loose truthiness of command-line flags: false, the
// empty string and zero are false, everything else is true.
func (v Value) Truthy() bool {
	switch t := v.raw.(type) {
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	default:
		return false
	}
}

// Number parses the value as a number. Booleans are not numbers.
func (v Value) Number() (float64, bool) {
	switch t := v.raw.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func (v Value) String() string {
	switch t := v.raw.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

// Arguments holds parsed command-line flags and positional arguments.
// A flag may be absent, set once, or repeated; repeated occurrences keep
// their command-line order.
type Arguments struct {
	flags map[string][]Value

	// Positional holds the non-flag arguments in order.
	Positional []string

	// Env is the value handed to config factories as their first argument.
	Env any
}

// New returns empty Arguments.
func New() *Arguments {
	return &Arguments{flags: make(map[string][]Value)}
}

// Has reports whether the flag was given at least once.
func (a *Arguments) Has(name string) bool {
	return len(a.flags[name]) > 0
}

// Values returns all occurrences of the flag in order.
func (a *Arguments) Values(name string) []Value {
	return a.flags[name]
}

// Last returns the last occurrence of the flag.
func (a *Arguments) Last(name string) (Value, bool) {
	vals := a.flags[name]
	if len(vals) == 0 {
		return Value{}, false
	}
	return vals[len(vals)-1], true
}

// String returns the last occurrence of the flag as a string.
func (a *Arguments) String(name string) string {
	v, _ := a.Last(name)
	return v.String()
}

// Strings returns every occurrence of the flag as strings.
func (a *Arguments) Strings(name string) []string {
	vals := a.flags[name]
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		out = append(out, v.String())
	}
	return out
}

// Bool reports whether the last occurrence of the flag is truthy.
func (a *Arguments) Bool(name string) bool {
	v, ok := a.Last(name)
	return ok && v.Truthy()
}

// Set replaces all occurrences of the flag.
func (a *Arguments) Set(name string, vals ...Value) {
	if a.flags == nil {
		a.flags = make(map[string][]Value)
	}
	if len(vals) == 0 {
		delete(a.flags, name)
		return
	}
	a.flags[name] = slices.Clone(vals)
}

// Append adds one occurrence of the flag.
func (a *Arguments) Append(name string, v Value) {
	if a.flags == nil {
		a.flags = make(map[string][]Value)
	}
	a.flags[name] = append(a.flags[name], v)
}

// Names returns the given flag names, sorted.
func (a *Arguments) Names() []string {
	return slices.Sorted(maps.Keys(a.flags))
}

// Clone returns a deep copy.
func (a *Arguments) Clone() *Arguments {
	c := &Arguments{
		flags:      make(map[string][]Value, len(a.flags)),
		Positional: slices.Clone(a.Positional),
		Env:        a.Env,
	}
	for k, v := range a.flags {
		c.flags[k] = slices.Clone(v)
	}
	return c
}

// Map renders the arguments the way config factories see them: single
// occurrences as scalars, repeated ones as lists, positionals under "_"
// and the env value under "env".
func (a *Arguments) Map() map[string]any {
	m := make(map[string]any, len(a.flags)+2)
	for k, vals := range a.flags {
		if len(vals) == 1 {
			m[k] = vals[0].Raw()
			continue
		}
		list := make([]any, 0, len(vals))
		for _, v := range vals {
			list = append(list, v.Raw())
		}
		m[k] = list
	}
	pos := make([]any, 0, len(a.Positional))
	for _, p := range a.Positional {
		pos = append(pos, p)
	}
	m["_"] = pos
	if a.Env != nil {
		m["env"] = a.Env
	}
	return m
}
