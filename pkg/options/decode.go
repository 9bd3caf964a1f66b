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
	"reflect"

	"github.com/go-viper/mapstructure/v2"

	"github.com/packcfg/packcfg/pkg/plugin"
)

var (
	entryType   = reflect.TypeOf(Entry{})
	patternType = reflect.TypeOf(Pattern{})
	pluginType  = reflect.TypeOf((*plugin.Plugin)(nil)).Elem()
)

// Decode maps a plain config object onto BuildOptions. Keys that are not
// modeled are kept in the Extra maps; plugin entries are kept verbatim as
// plugin.Raw.
func Decode(m map[string]any) (*BuildOptions, error) {
	var opts BuildOptions
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &opts,
		TagName: "mapstructure",
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			entryHook,
			patternHook,
			pluginHook,
			falseToEmptyStringHook,
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(m); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if raw, ok := m["output"].(map[string]any); ok && opts.Output != nil {
		opts.Output.keepEmpty(raw)
	}
	return &opts, nil
}

func entryHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != entryType {
		return data, nil
	}
	if _, ok := data.(Entry); ok {
		return data, nil
	}
	return ParseEntry(data)
}

func patternHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != patternType {
		return data, nil
	}
	s, ok := data.(string)
	if !ok {
		return data, nil
	}
	p, err := NewPattern(s)
	if err != nil {
		return nil, err
	}
	return *p, nil
}

func pluginHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != pluginType {
		return data, nil
	}
	if p, ok := data.(plugin.Plugin); ok {
		return p, nil
	}
	return plugin.Raw{Value: data}, nil
}

// devtool may be false in config files, meaning "none".
func falseToEmptyStringHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Bool || to.Kind() != reflect.String {
		return data, nil
	}
	if b, _ := data.(bool); !b {
		return "", nil
	}
	return data, nil
}
